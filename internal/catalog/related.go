package catalog

import (
	"encoding/json"
	"strings"
)

// relatedLimit caps the related strip on a product detail page.
const relatedLimit = 12

// RelatedFilter narrows the related-products strip. Category and Brand use
// CategoryAll / BrandAll to relax their clause; FeatureText is a
// case-insensitive substring match against the JSON-serialized features map.
type RelatedFilter struct {
	Category    string
	Brand       string
	FeatureText string
}

// BrandAll disables the brand restriction of a RelatedFilter.
const BrandAll = "ALL"

// Related returns up to 12 products other than the focus product, in
// catalog order, matching the given filter.
func (e *Engine) Related(focusID ID, f RelatedFilter) []Product {
	e.mu.Lock()
	defer e.mu.Unlock()

	feature := strings.ToLower(f.FeatureText)

	out := make([]Product, 0, relatedLimit)
	for _, p := range e.products {
		if p.ID == focusID {
			continue
		}
		if f.Category != CategoryAll && p.Category != f.Category {
			continue
		}
		if f.Brand != BrandAll && p.Brand != f.Brand {
			continue
		}
		if feature != "" && !featureMatch(p.Features, feature) {
			continue
		}

		out = append(out, p)
		if len(out) == relatedLimit {
			break
		}
	}
	return out
}

// featureMatch searches the serialized form of the features map, so both
// keys and values (including list values) are searchable text.
func featureMatch(features map[string]any, needle string) bool {
	if len(features) == 0 {
		return false
	}
	raw, err := json.Marshal(features)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(raw)), needle)
}
