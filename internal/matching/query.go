package matching

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidInput marks a query that cannot be normalized. Handlers map it
// to a 400 response.
var ErrInvalidInput = errors.New("invalid query input")

// Product categories accepted by the engine.
const (
	CategoryTshirt = "tshirt"
	CategoryCap    = "cap"
	CategoryHoodie = "hoodie"
)

// categoryNames maps category keys to display names used in reason strings.
var categoryNames = map[string]string{
	CategoryTshirt: "T-shirt",
	CategoryCap:    "cap",
	CategoryHoodie: "hoodie",
}

// Region is the buyer's sourcing preference relative to the home country.
type Region string

// Region preferences.
const (
	RegionEither        Region = "either"
	RegionDomestic      Region = "domestic"
	RegionInternational Region = "international"
)

// ParseRegion normalizes a raw region preference. A blank value means no
// preference.
func ParseRegion(raw string) (Region, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "either", "any", "both":
		return RegionEither, nil
	case "domestic":
		return RegionDomestic, nil
	case "international", "overseas":
		return RegionInternational, nil
	default:
		return "", fmt.Errorf("%w: unknown region preference %q", ErrInvalidInput, raw)
	}
}

// QueryInput is the raw, untrusted form of a match request. Numeric fields
// arrive as strings because they come from form fields and query params.
type QueryInput struct {
	Category             string   `json:"category"`
	Quantity             string   `json:"quantity"`
	Budget               string   `json:"budget"`
	Region               string   `json:"region"`
	RequiredCapabilities []string `json:"required_capabilities"`
	MinYearsActive       string   `json:"min_years_active"`
}

// Query is a normalized, validated match request. Quantity and Budget are
// always positive; MinYearsActive of zero means the constraint is unset.
type Query struct {
	Category             string
	Quantity             int
	Budget               int
	Region               Region
	RequiredCapabilities []string
	MinYearsActive       int
}

// NormalizeQuery validates raw input and produces a Query. Quantity and
// budget must parse as positive base-10 integers; a blank or unparseable
// minimum-years field degrades to unset rather than failing the request.
func NormalizeQuery(in QueryInput) (Query, error) {
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return Query{}, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if _, ok := categoryNames[category]; !ok {
		return Query{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}

	quantity, err := parsePositiveInt(in.Quantity)
	if err != nil {
		return Query{}, fmt.Errorf("%w: quantity must be a positive integer (got %q)", ErrInvalidInput, in.Quantity)
	}

	budget, err := parsePositiveInt(in.Budget)
	if err != nil {
		return Query{}, fmt.Errorf("%w: budget must be a positive integer (got %q)", ErrInvalidInput, in.Budget)
	}

	region, err := ParseRegion(in.Region)
	if err != nil {
		return Query{}, err
	}

	var capabilities []string
	for _, c := range in.RequiredCapabilities {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			capabilities = append(capabilities, trimmed)
		}
	}

	// Unset, blank, or malformed minimum years means "no floor", never an
	// error: the field is an optional refinement.
	minYears := 0
	if trimmed := strings.TrimSpace(in.MinYearsActive); trimmed != "" {
		if n, err := strconv.Atoi(trimmed); err == nil && n > 0 {
			minYears = n
		}
	}

	return Query{
		Category:             category,
		Quantity:             quantity,
		Budget:               budget,
		Region:               region,
		RequiredCapabilities: capabilities,
		MinYearsActive:       minYears,
	}, nil
}

func parsePositiveInt(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("value must be > 0 (got %d)", n)
	}
	return n, nil
}
