package enums

import "fmt"

// BagCategory represents the canonical bag categories carried by the catalog.
type BagCategory string

const (
	BagCategoryTote     BagCategory = "Tote"
	BagCategoryBackpack BagCategory = "Backpack"
	BagCategoryClutches BagCategory = "Clutches"
)

var validBagCategories = []BagCategory{
	BagCategoryTote,
	BagCategoryBackpack,
	BagCategoryClutches,
}

// String implements fmt.Stringer.
func (c BagCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known BagCategory.
func (c BagCategory) IsValid() bool {
	for _, candidate := range validBagCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseBagCategory converts raw input into a BagCategory.
func ParseBagCategory(value string) (BagCategory, error) {
	for _, candidate := range validBagCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid bag category %q", value)
}
