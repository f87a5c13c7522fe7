// Package wines defines the domain types shared across the cellarlens
// pipeline: vision-model guesses, catalog search hits with their vintages,
// arbitration verdicts, and the final resolved wine entries.
package wines

import (
	"fmt"
	"net/url"
	"strings"
)

// Type is the varietal type of a wine as read from a label.
type Type string

// Known wine types. The vision model is instructed to emit "red" or "white"
// only when the label states it; anything else stays TypeUnknown.
const (
	TypeRed     Type = "red"
	TypeWhite   Type = "white"
	TypeUnknown Type = ""
)

// ParseType normalizes a raw vision-model type string.
func ParseType(raw string) Type {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "red":
		return TypeRed
	case "white":
		return TypeWhite
	default:
		return TypeUnknown
	}
}

// GuessedWine is a wine guess extracted from the user's photo by the vision
// model. Fields other than Name may be empty when the model could not read
// them from the label.
type GuessedWine struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Year  string `json:"year"`
	Price string `json:"price"`
}

// ParsedGuessedWine is a GuessedWine with its free-form fields normalized.
// It is derived from the raw guess, never written back.
type ParsedGuessedWine struct {
	Name  string
	Type  Type
	Year  *int // nil when unknown or unparseable
	Price string
}

// Parse derives the normalized form of the guess.
func (g GuessedWine) Parse() ParsedGuessedWine {
	return ParsedGuessedWine{
		Name:  g.Name,
		Type:  ParseType(g.Type),
		Year:  ParseYear(g.Year),
		Price: g.Price,
	}
}

// CatalogHit is a candidate wine record returned by the catalog search index.
type CatalogHit struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	SEOName     string           `json:"seo_name"`
	Description string           `json:"description"`
	Image       CatalogImage     `json:"image"`
	Region      CatalogRegion    `json:"region"`
	Vintages    []CatalogVintage `json:"vintages"`
}

// CatalogImage holds the hit's thumbnail location.
type CatalogImage struct {
	Location string `json:"location"`
}

// CatalogRegion holds the hit's region data.
type CatalogRegion struct {
	Country string `json:"country"`
}

// CatalogVintage is a specific year's release of a catalog hit.
type CatalogVintage struct {
	Year       string            `json:"year"`
	Name       string            `json:"name"`
	SEOName    string            `json:"seo_name"`
	Statistics VintageStatistics `json:"statistics"`
}

// VintageStatistics carries the community rating data of a vintage.
type VintageStatistics struct {
	RatingsCount   int     `json:"ratings_count"`
	RatingsAverage float64 `json:"ratings_average"`
	LabelsCount    int     `json:"labels_count"`
	ReviewsCount   int     `json:"reviews_count"`
}

// WithVintages returns a copy of the hit with its vintage list replaced.
// The original hit is never mutated; matching narrows copies only.
func (h CatalogHit) WithVintages(vintages []CatalogVintage) CatalogHit {
	narrowed := h
	narrowed.Vintages = make([]CatalogVintage, len(vintages))
	copy(narrowed.Vintages, vintages)
	return narrowed
}

// ImageURL returns the absolute URL of the hit's thumbnail. Catalog responses
// use protocol-relative locations ("//images...").
func (h CatalogHit) ImageURL() string {
	loc := h.Image.Location
	if strings.HasPrefix(loc, "//") {
		return "https:" + loc
	}
	return loc
}

// ImageExt returns the normalized file extension of the hit's thumbnail,
// or empty when it cannot be determined.
func (h CatalogHit) ImageExt() string {
	idx := strings.LastIndex(h.Image.Location, ".")
	if idx < 0 || idx == len(h.Image.Location)-1 {
		return ""
	}
	ext := strings.ToLower(h.Image.Location[idx+1:])
	if ext == "jpg" {
		ext = "jpeg"
	}
	return ext
}

// ResolvedWine is a final output entry with confirmed identity.
type ResolvedWine struct {
	CatalogID   int64    `json:"catalogId"`
	Name        string   `json:"name"`
	Year        string   `json:"year"`
	Price       *float64 `json:"price"`
	ImageURL    string   `json:"imageUrl"`
	Rating      float64  `json:"rating"`
	Description string   `json:"description"`
	CatalogURL  string   `json:"catalogUrl"`
}

// ArbitrationVerdict is the vision model's judgment for one candidate image:
// whether that exact bottle is visually present in the user's photo.
// FileName correlates back to the originating catalog hit by its name.
type ArbitrationVerdict struct {
	Name      string `json:"name"`
	FileName  string `json:"fileName"`
	IsPresent bool   `json:"isPresent"`
}

// Image is a base64-encoded user or catalog image.
type Image struct {
	Base64 string
	Ext    string // "jpeg" or "png"
}

// LabeledImage is an image tagged with the catalog name it depicts, used to
// correlate arbitration verdicts back to hits.
type LabeledImage struct {
	Name   string
	Base64 string
	Ext    string
}

// AllowedImageExts are the upload formats the pipeline accepts.
var AllowedImageExts = []string{"jpeg", "png"}

// ValidExt reports whether ext is an accepted upload format.
func ValidExt(ext string) bool {
	for _, allowed := range AllowedImageExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

// MIMEType returns the image's MIME type.
func (i Image) MIMEType() string {
	return "image/" + i.Ext
}

// CatalogURL builds the public catalog page URL for a hit, optionally pinned
// to a vintage year.
func CatalogURL(base, seoName string, id int64, year string) string {
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}
	u.Path = fmt.Sprintf("/%s/w/%d", seoName, id)
	if year != "" {
		q := u.Query()
		q.Set("year", year)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// DedupeByName removes duplicate entries by wine name, keeping the first
// occurrence. Final results must never list the same name twice.
func DedupeByName(list []ResolvedWine) []ResolvedWine {
	seen := make(map[string]struct{}, len(list))
	out := make([]ResolvedWine, 0, len(list))
	for _, w := range list {
		if _, ok := seen[w.Name]; ok {
			continue
		}
		seen[w.Name] = struct{}{}
		out = append(out, w)
	}
	return out
}
