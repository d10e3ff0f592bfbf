package products

import "strings"

// FilterParams narrows a catalog snapshot. Empty fields match everything.
type FilterParams struct {
	Category string
	Material string
}

// IsZero reports whether the params apply no constraint at all.
func (p FilterParams) IsZero() bool {
	return normalizeFilterValue(p.Category) == "" && normalizeFilterValue(p.Material) == ""
}

// Filter returns the listings matching every set constraint, preserving the
// input order. The input slice is never mutated.
func Filter(items []ProductResponse, params FilterParams) []ProductResponse {
	category := normalizeFilterValue(params.Category)
	material := normalizeFilterValue(params.Material)

	out := make([]ProductResponse, 0, len(items))
	for _, item := range items {
		if category != "" && !strings.EqualFold(string(item.Category), category) {
			continue
		}
		if material != "" && !strings.EqualFold(item.Material, material) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Materials returns the distinct material names found in the snapshot,
// in first-seen order.
func Materials(items []ProductResponse) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item.Material)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item.Material)
	}
	return out
}

// normalizeFilterValue treats "all" (any casing) the same as no constraint.
func normalizeFilterValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if strings.EqualFold(trimmed, "all") {
		return ""
	}
	return trimmed
}
