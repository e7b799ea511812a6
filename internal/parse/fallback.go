package parse

import (
	"regexp"
	"strings"

	"github.com/narayan09-boop/GroceryIntelligence/internal/entity"
)

// Anything ending in "<text> <price>", searched anywhere in the line.
var reTrailingPrice = regexp.MustCompile(`(.+?)\s+\$?(\d{1,3}\.\d{2})\s*$`)

// ParseFallback is the salvage pass for receipts whose layout defeated every
// structured rule. It runs only when Parse produced nothing, takes every line
// (no metadata filtering), and keeps any trailing text/price fragment that
// survives the usual validity checks.
func (p *Parser) ParseFallback(text string) []entity.LineItem {
	var items []entity.LineItem
	for _, raw := range strings.Split(strings.TrimSpace(text), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		m := reTrailingPrice.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		item, ok := finalize(Candidate{Name: m[1], Price: mustPrice(m[2])})
		if !ok {
			continue
		}
		p.logger.Debug("fallback salvaged line", "item", item.Name, "price", item.Price)
		items = append(items, item)
	}
	return items
}
