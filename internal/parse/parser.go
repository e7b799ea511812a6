package parse

import (
	"log/slog"
	"strings"

	"github.com/narayan09-boop/GroceryIntelligence/internal/entity"
)

// Parser scans extracted receipt text line by line against an ordered rule
// cascade and emits candidate items in line-encounter order.
type Parser struct {
	rules  []Rule
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{rules: defaultRules(), logger: logger}
}

// Parse walks the text with a cursor that can consume one lookahead line.
// Blank lines, very short lines, and metadata lines are skipped; a line
// matching no rule is silently dropped. The result is not yet deduplicated.
func (p *Parser) Parse(text string) []entity.LineItem {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var items []entity.LineItem

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if len(line) < 3 {
			continue
		}
		if IsMetadataLine(line) {
			continue
		}

		next := ""
		if i+1 < len(lines) {
			next = strings.TrimSpace(lines[i+1])
		}

		for _, r := range p.rules {
			cand, ok := r.Match(line, next)
			if !ok {
				continue
			}
			item, valid := finalize(cand)
			if !valid {
				// regex matched but captures failed validation; the line
				// stays up for grabs by the remaining rules
				continue
			}
			p.logger.Debug("line matched", "rule", r.Name(), "item", item.Name, "price", item.Price)
			items = append(items, item)
			if cand.UsedNext {
				i++ // the price line is spent
			}
			break
		}
	}
	return items
}

// finalize normalizes the captured name and applies the shared validity
// checks: in-range price, non-empty name containing at least one letter.
func finalize(c Candidate) (entity.LineItem, bool) {
	if !validPrice(c.Price) {
		return entity.LineItem{}, false
	}
	name := NormalizeName(c.Name)
	if name == "" || !hasLetter(name) {
		return entity.LineItem{}, false
	}
	return entity.LineItem{Name: name, Price: c.Price}, true
}
