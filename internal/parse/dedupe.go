package parse

import (
	"fmt"
	"strings"

	"github.com/narayan09-boop/GroceryIntelligence/internal/entity"
)

// Dedupe collapses repeated (lowercased name, price) pairs, keeping the first
// occurrence and the original order. Repeated pairs are assumed to be
// re-scans of the same physical line, not genuine repeated purchases.
func Dedupe(items []entity.LineItem) []entity.LineItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]entity.LineItem, 0, len(items))
	for _, it := range items {
		key := fmt.Sprintf("%s|%.2f", strings.ToLower(it.Name), it.Price)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}
