package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"BANANA", "Banana"},
		{"ORGANIC APPLE", "Apple"},
		{"org banana", "Banana"},
		{"FRESH MILK", "Milk"},
		{"PREMIUM GROUND BEEF", "Ground Beef"},
		{"ORGANIC FRESH APPLE", "Apple"},
		{"LB CHICKEN", "Pound Chicken"},
		{"CHEESE 8 OZ", "Cheese 8 Ounce"},
		{"PKG NOODLES", "Package Noodles"},
		{"EGGS 12 CT", "Eggs 12 Count"},
		{"  WHOLE   WHEAT   BREAD ", "Whole Wheat Bread"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeName(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeNameKeepsEmbeddedQualifierWords(t *testing.T) {
	// only the leading token is a qualifier; mid-name occurrences stay
	assert.Equal(t, "Garden Fresh Salsa", NormalizeName("GARDEN FRESH SALSA"))
}

func TestNormalizeNameDoesNotExpandSubstrings(t *testing.T) {
	// LB/OZ/CT expand only as whole words
	assert.Equal(t, "Elbow Macaroni", NormalizeName("ELBOW MACARONI"))
	assert.Equal(t, "Frozen Pizza", NormalizeName("FROZEN PIZZA"))
	assert.Equal(t, "Cactus Pear", NormalizeName("CACTUS PEAR"))
}

func TestNormalizeNameIdempotent(t *testing.T) {
	inputs := []string{
		"ORGANIC APPLE",
		"ORGANIC FRESH APPLE",
		"2 LB CHICKEN",
		"  WHOLE   WHEAT  BREAD ",
		"Pound Chicken",
		"banana",
	}
	for _, in := range inputs {
		once := NormalizeName(in)
		assert.Equal(t, once, NormalizeName(once), "input %q", in)
	}
}
