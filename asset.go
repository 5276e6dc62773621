package finreport

import (
	"fmt"
	"regexp"
)

var isinPattern = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{10}$`)

// Asset identifies a tradable instrument as reported by a broker export.
// Metadata may be incomplete: only the name is mandatory.
type Asset struct {
	Name   string `json:"name"`
	ISIN   string `json:"isin,omitempty"`
	Ticker string `json:"ticker,omitempty"`
}

// NewAsset creates an Asset, validating the ISIN syntax when one is given.
func NewAsset(name, isin, ticker string) (Asset, error) {
	if name == "" {
		return Asset{}, fmt.Errorf("asset name is missing")
	}
	if isin != "" && !isinPattern.MatchString(isin) {
		return Asset{}, fmt.Errorf("invalid ISIN %q for asset %q", isin, name)
	}
	return Asset{Name: name, ISIN: isin, Ticker: ticker}, nil
}

// Key returns the identity used to group operations for matching: the ISIN
// when present, the name otherwise. Operations sharing a key are matched
// against each other regardless of other metadata differences.
func (a Asset) Key() string {
	if a.ISIN != "" {
		return a.ISIN
	}
	return a.Name
}

func (a Asset) String() string {
	if a.ISIN != "" {
		return fmt.Sprintf("%s (%s)", a.Name, a.ISIN)
	}
	return a.Name
}
