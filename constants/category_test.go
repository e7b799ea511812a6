package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsStringSlice(t *testing.T) {
	got := AsStringSlice()

	assert.Len(t, got, 10)
	assert.Equal(t, "Fruits", got[0])
	assert.Equal(t, "Other", got[len(got)-1])
}

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		in     string
		want   Category
		wantOK bool
	}{
		{"Fruits", Fruits, true},
		{"fruits", Fruits, true},
		{"  DAIRY  ", Dairy, true},
		{"produce", Vegetables, true},
		{"seafood", Meat, true},
		{"drinks", Beverages, true},
		{"ice cream", Frozen, true},
		{"unknown stuff", Other, false},
		{"", Other, false},
	}
	for _, tc := range cases {
		got, ok := Canonicalize(tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
		assert.Equal(t, tc.wantOK, ok, "input %q", tc.in)
	}
}
