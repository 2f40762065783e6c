// Package catalog turns the full list of services fetched from the backend
// into the filtered, ordered list shown to the user.
//
// Query is pure: it holds no state between calls, never mutates its input and
// always returns a freshly allocated slice.
package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/evently/internal/client/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CategoryFilter is a category name or All.
type CategoryFilter string

const All CategoryFilter = "all"

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
)

var SortKeys = []SortKey{SortNewest, SortOldest, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc}

// State is the transient query state owned by the list view.
type State struct {
	SearchText string
	Category   CategoryFilter
	Sort       SortKey
}

func DefaultState() State {
	return State{Category: All, Sort: SortNewest}
}

// Filtering reports whether the state narrows the list at all.
func (s State) Filtering() bool {
	return s.SearchText != "" || (s.Category != All && s.Category != "")
}

// ParseSortKey accepts the sort key names plus the "price-low"/"price-high"
// spellings used by the web client.
func ParseSortKey(s string) (SortKey, error) {
	switch s {
	case "price-low":
		return SortPriceAsc, nil
	case "price-high":
		return SortPriceDesc, nil
	}
	k := SortKey(s)
	if !slices.Contains(SortKeys, k) {
		return "", fmt.Errorf("unknown sort key %q", s)
	}
	return k, nil
}

func ParseCategoryFilter(s string) (CategoryFilter, error) {
	if s == "" || s == string(All) {
		return All, nil
	}
	c, err := models.ParseCategory(s)
	if err != nil {
		return "", err
	}
	return CategoryFilter(c), nil
}

// Pipeline runs queries with names collated for one language.
type Pipeline struct {
	lang language.Tag
}

func New(lang language.Tag) *Pipeline {
	return &Pipeline{lang: lang}
}

// Query applies the text filter, the category filter and the sort selected by
// state. Search text is matched as a literal, case-insensitive substring of
// name or description; it is not trimmed. The sort is stable.
func (p *Pipeline) Query(records []models.ServiceRecord, state State) []models.ServiceRecord {
	needle := strings.ToLower(state.SearchText)

	out := make([]models.ServiceRecord, 0, len(records))
	for _, r := range records {
		if !matchesText(r, needle) || !matchesCategory(r, state.Category) {
			continue
		}
		out = append(out, r)
	}

	if less := p.comparator(state.Sort); less != nil {
		slices.SortStableFunc(out, less)
	}
	return out
}

// Query runs with English collation.
func Query(records []models.ServiceRecord, state State) []models.ServiceRecord {
	return New(language.English).Query(records, state)
}

func matchesText(r models.ServiceRecord, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), needle) ||
		strings.Contains(strings.ToLower(r.Description), needle)
}

func matchesCategory(r models.ServiceRecord, f CategoryFilter) bool {
	return f == All || f == "" || string(r.Category) == string(f)
}

// comparator returns nil for an unknown key, which leaves input order intact.
func (p *Pipeline) comparator(key SortKey) func(a, b models.ServiceRecord) int {
	switch key {
	case SortNewest:
		return func(a, b models.ServiceRecord) int { return b.CreatedAt.Compare(a.CreatedAt) }
	case SortOldest:
		return func(a, b models.ServiceRecord) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortPriceAsc:
		return func(a, b models.ServiceRecord) int { return cmp.Compare(a.BasePrice, b.BasePrice) }
	case SortPriceDesc:
		return func(a, b models.ServiceRecord) int { return cmp.Compare(b.BasePrice, a.BasePrice) }
	case SortNameAsc:
		c := collate.New(p.lang)
		return func(a, b models.ServiceRecord) int { return c.CompareString(a.Name, b.Name) }
	case SortNameDesc:
		c := collate.New(p.lang)
		return func(a, b models.ServiceRecord) int { return c.CompareString(b.Name, a.Name) }
	default:
		return nil
	}
}
