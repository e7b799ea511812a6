package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFallbackSalvagesTrailingPrice(t *testing.T) {
	p := NewParser(nil)

	items := p.ParseFallback("** MILK ** 3.50")

	require.Len(t, items, 1)
	assert.InDelta(t, 3.50, items[0].Price, 1e-9)
}

func TestParseFallbackIgnoresMetadataFiltering(t *testing.T) {
	p := NewParser(nil)

	// the salvage pass deliberately takes every line, totals included
	items := p.ParseFallback("SUBTOTAL 42.10")

	require.Len(t, items, 1)
	assert.Equal(t, "Subtotal", items[0].Name)
}

func TestParseFallbackAppliesValidityChecks(t *testing.T) {
	p := NewParser(nil)

	assert.Empty(t, p.ParseFallback("MILK 0.00"))
	assert.Empty(t, p.ParseFallback("12345 67.89\n**** 0.50"))
}

func TestParseFallbackNoTrailingPrice(t *testing.T) {
	p := NewParser(nil)

	assert.Empty(t, p.ParseFallback("VISA\n04/12/2023\n****"))
}
