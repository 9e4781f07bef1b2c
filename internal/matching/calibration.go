package matching

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// Calibration holds the deploy-time pipeline knobs. The scoring weight
// tables are fixed in code; only the surrounding pipeline behavior is
// tunable.
type Calibration struct {
	TopN             int     `json:"top_n"`             // Shortlist length (default: 10)
	DisplayThreshold int     `json:"display_threshold"` // Result count at or below which diagnostics run (default: 3)
	SurvivalRatio    float64 `json:"survival_ratio"`    // Per-constraint survival ratio below which a diagnostic fires (default: 0.3)
	JitterPct        float64 `json:"jitter_pct"`        // Maximum absolute diversity adjustment in percent (default: 5)
}

// CalibrationFile represents the JSON structure of the calibration file.
type CalibrationFile struct {
	Version  string      `json:"version"` // Config version for future compatibility
	Pipeline Calibration `json:"pipeline"`
}

// DefaultCalibration returns the stock pipeline configuration.
func DefaultCalibration() *Calibration {
	return &Calibration{
		TopN:             10,
		DisplayThreshold: 3,
		SurvivalRatio:    0.3,
		JitterPct:        5,
	}
}

// LoadCalibration loads pipeline calibration from a JSON file. An empty
// path yields the defaults. On read or parse failure it returns the
// defaults along with the error so callers can degrade gracefully. Partial
// files are merged with defaults.
func LoadCalibration(filePath string) (*Calibration, error) {
	if filePath == "" {
		return DefaultCalibration(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		slog.Warn("failed to read calibration file, using defaults",
			"path", filePath,
			"error", err)
		return DefaultCalibration(), fmt.Errorf("failed to read calibration file: %w", err)
	}

	var file CalibrationFile
	if err := json.Unmarshal(data, &file); err != nil {
		slog.Warn("failed to parse calibration file, using defaults",
			"path", filePath,
			"error", err)
		return DefaultCalibration(), fmt.Errorf("failed to parse calibration file: %w", err)
	}

	defaults := DefaultCalibration()
	merged := MergeCalibration(defaults, &file.Pipeline)
	logCalibrationOverrides(defaults, merged)

	return merged, nil
}

// MergeCalibration applies non-zero override values on top of the base so
// a calibration file only needs to name the knobs it changes.
func MergeCalibration(base *Calibration, override *Calibration) *Calibration {
	if base == nil {
		return DefaultCalibration()
	}
	if override == nil {
		result := *base
		return &result
	}

	result := *base
	if override.TopN != 0 {
		result.TopN = override.TopN
	}
	if override.DisplayThreshold != 0 {
		result.DisplayThreshold = override.DisplayThreshold
	}
	if override.SurvivalRatio != 0 {
		result.SurvivalRatio = override.SurvivalRatio
	}
	if override.JitterPct != 0 {
		result.JitterPct = override.JitterPct
	}
	return &result
}

// logCalibrationOverrides logs which knobs were overridden from defaults.
func logCalibrationOverrides(defaults *Calibration, loaded *Calibration) {
	var overrides []string

	if loaded.TopN != defaults.TopN {
		overrides = append(overrides, fmt.Sprintf("top_n: %d -> %d",
			defaults.TopN, loaded.TopN))
	}
	if loaded.DisplayThreshold != defaults.DisplayThreshold {
		overrides = append(overrides, fmt.Sprintf("display_threshold: %d -> %d",
			defaults.DisplayThreshold, loaded.DisplayThreshold))
	}
	if loaded.SurvivalRatio != defaults.SurvivalRatio {
		overrides = append(overrides, fmt.Sprintf("survival_ratio: %.2f -> %.2f",
			defaults.SurvivalRatio, loaded.SurvivalRatio))
	}
	if loaded.JitterPct != defaults.JitterPct {
		overrides = append(overrides, fmt.Sprintf("jitter_pct: %.1f -> %.1f",
			defaults.JitterPct, loaded.JitterPct))
	}

	if len(overrides) > 0 {
		slog.Info("loaded matching calibration with overrides",
			"overrides", overrides)
	} else {
		slog.Info("loaded matching calibration (using all defaults)")
	}
}
