package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Defaults substituted when the upstream record lacks a field. The API's
// schema is not contractually stable, so extraction is best-effort and never
// fails on a missing or oddly-typed field.
const (
	DefaultName   = "Unnamed"
	DefaultWinery = "Unknown"
	// NoRating marks a record without a usable rating.
	NoRating = 0
)

// looseFloat decodes a JSON number that may arrive as a number, a numeric
// string, or null. Anything unparsable decodes to zero rather than erroring.
type looseFloat float64

func (f *looseFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = looseFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = looseFloat(v)
	return nil
}

// Record is one raw wine object as returned by the catalog API. Alternate key
// spellings observed in the wild are decoded side by side; accessors pick the
// first non-empty value and substitute defaults.
type Record struct {
	Wine    string `json:"wine"`
	NameAlt string `json:"name"`
	WineryF string `json:"winery"`
	Rating  struct {
		Average looseFloat `json:"average"`
	} `json:"rating"`
	Image    string     `json:"image"`
	ImageAlt string     `json:"image_url"`
	PriceF   looseFloat `json:"price"`
	RegionF  string     `json:"region"`
	CountryF string     `json:"country"`
	Location string     `json:"location"`
	Link     string     `json:"link"`
}

// Name returns the wine's display name, first non-empty of the known
// spellings, or DefaultName.
func (r Record) Name() string {
	if r.Wine != "" {
		return r.Wine
	}
	if r.NameAlt != "" {
		return r.NameAlt
	}
	return DefaultName
}

// Winery returns the producer name or DefaultWinery.
func (r Record) Winery() string {
	if r.WineryF != "" {
		return r.WineryF
	}
	return DefaultWinery
}

// RatingAverage returns the average rating, or NoRating when absent.
func (r Record) RatingAverage() float64 { return float64(r.Rating.Average) }

// ImageURL returns the first non-empty image field, or "".
func (r Record) ImageURL() string {
	if r.Image != "" {
		return r.Image
	}
	return r.ImageAlt
}

// Price returns the listed price, zero when absent.
func (r Record) Price() float64 { return float64(r.PriceF) }

// Region and Country fall back to splitting the combined "location" field the
// API sometimes emits ("Spain\n·\nEmpordà").
func (r Record) Region() string {
	if r.RegionF != "" {
		return r.RegionF
	}
	if _, region, ok := splitLocation(r.Location); ok {
		return region
	}
	return ""
}

func (r Record) Country() string {
	if r.CountryF != "" {
		return r.CountryF
	}
	if country, _, ok := splitLocation(r.Location); ok {
		return country
	}
	return strings.TrimSpace(r.Location)
}

func splitLocation(loc string) (country, region string, ok bool) {
	parts := strings.Split(loc, "\n·\n")
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}
