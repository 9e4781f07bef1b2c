// Package translate proxies supplier-facing text through a DeepL-compatible
// translation API with a Redis-backed response cache.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrEmptyText is returned when there is nothing to translate.
var ErrEmptyText = errors.New("text cannot be empty")

// ErrUpstream is returned when the translation API rejects the request.
var ErrUpstream = errors.New("translation API error")

// Result is a completed translation.
type Result struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang,omitempty"`
	TargetLang string `json:"target_lang"`
	Cached     bool   `json:"cached"`
}

// apiResponse mirrors the DeepL v2 translate response shape.
type apiResponse struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
}

// Client calls a DeepL-compatible translation endpoint.
type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a translation client. The URL should point at the API
// root (the /v2/translate path is appended).
func NewClient(apiURL, apiKey string) *Client {
	return &Client{
		apiURL: strings.TrimSuffix(apiURL, "/"),
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Translate sends one text to the upstream API.
func (c *Client) Translate(ctx context.Context, text, targetLang string) (*Result, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("target_lang", strings.ToUpper(targetLang))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/v2/translate", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build translation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "DeepL-Auth-Key "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode translation response: %w", err)
	}
	if len(parsed.Translations) == 0 {
		return nil, fmt.Errorf("%w: empty translations", ErrUpstream)
	}

	t := parsed.Translations[0]
	return &Result{
		Text:       t.Text,
		SourceLang: t.DetectedSourceLanguage,
		TargetLang: strings.ToUpper(targetLang),
	}, nil
}

// Translator is the upstream API surface the service depends on.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (*Result, error)
}

// Service answers translation requests, consulting the cache first.
// Cache failures degrade to upstream calls rather than errors.
type Service struct {
	client Translator
	cache  Cache
	logger *slog.Logger
}

// NewService creates a translation service. A nil cache disables caching.
func NewService(client Translator, cache Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, cache: cache, logger: logger}
}

// Translate returns the translation for text, from cache when possible.
func (s *Service) Translate(ctx context.Context, text, targetLang string) (*Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if targetLang == "" {
		targetLang = "EN"
	}
	targetLang = strings.ToUpper(targetLang)

	key := CacheKey(text, targetLang)
	if s.cache != nil {
		if entry, err := s.cache.Get(ctx, key); err != nil {
			s.logger.Warn("translation cache read failed", "error", err)
		} else if entry != nil {
			return &Result{
				Text:       entry.Text,
				SourceLang: entry.SourceLang,
				TargetLang: targetLang,
				Cached:     true,
			}, nil
		}
	}

	result, err := s.client.Translate(ctx, text, targetLang)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		entry := &Entry{
			Text:       result.Text,
			SourceLang: result.SourceLang,
			CachedAt:   time.Now().Unix(),
		}
		if err := s.cache.Set(ctx, key, entry); err != nil {
			s.logger.Warn("translation cache write failed", "error", err)
		}
	}
	return result, nil
}
