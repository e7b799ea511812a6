package constants

import (
	"strings"
)

type Category string

const (
	Fruits     Category = "Fruits"
	Vegetables Category = "Vegetables"
	Dairy      Category = "Dairy"
	Meat       Category = "Meat"
	Bakery     Category = "Bakery"
	Beverages  Category = "Beverages"
	Snacks     Category = "Snacks"
	Frozen     Category = "Frozen"
	Canned     Category = "Canned"
	Other      Category = "Other"
)

var allCategories = []Category{
	Fruits,
	Vegetables,
	Dairy,
	Meat,
	Bakery,
	Beverages,
	Snacks,
	Frozen,
	Canned,
	Other,
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

func Canonicalize(input string) (Category, bool) {
	if input == "" {
		return Other, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]Category{
		"produce":   Vegetables,
		"veggies":   Vegetables,
		"fruit":     Fruits,
		"deli":      Meat,
		"seafood":   Meat,
		"drinks":    Beverages,
		"beverage":  Beverages,
		"baked":     Bakery,
		"sweets":    Snacks,
		"candy":     Snacks,
		"ice cream": Frozen,
	}

	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	// check if it matches any category string
	for _, cat := range allCategories {
		if normalized == strings.ToLower(string(cat)) {
			return cat, true
		}
	}

	return Other, false
}
