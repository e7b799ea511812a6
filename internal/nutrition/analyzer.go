package nutrition

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed data/scores.json data/scores.schema.json
var dataFS embed.FS

const (
	// DefaultScore is assigned when nothing matches an item.
	DefaultScore = 5
	// HealthyThreshold and UnhealthyThreshold split items for the
	// shopping-pattern summary.
	HealthyThreshold   = 7
	UnhealthyThreshold = 4
)

var reWords = regexp.MustCompile(`\b\w+\b`)

// Analyzer scores grocery items on a 1-10 healthiness scale from a static
// table, falling back to word-overlap fuzzy matching and pattern heuristics.
type Analyzer struct {
	scores map[string]int
	// table keys in sorted order; fuzzy matching walks these so a name
	// overlapping several entries always resolves to the same one
	names []string
}

// NewAnalyzer loads the embedded score table, validating it against its
// schema so a bad edit fails at startup instead of scoring garbage.
func NewAnalyzer() (*Analyzer, error) {
	schemaRaw, err := dataFS.ReadFile("data/scores.schema.json")
	if err != nil {
		return nil, fmt.Errorf("read score schema: %w", err)
	}
	raw, err := dataFS.ReadFile("data/scores.json")
	if err != nil {
		return nil, fmt.Errorf("read score table: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("scores.schema.json", bytes.NewReader(schemaRaw)); err != nil {
		return nil, fmt.Errorf("add score schema: %w", err)
	}
	schema, err := compiler.Compile("scores.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile score schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode score table: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("score table invalid: %w", err)
	}

	var scores map[string]int
	if err := json.Unmarshal(raw, &scores); err != nil {
		return nil, fmt.Errorf("decode score table: %w", err)
	}

	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Analyzer{scores: scores, names: names}, nil
}

// Score returns the nutrition score for an item name (1-10, 10 healthiest).
func (a *Analyzer) Score(itemName string) int {
	if strings.TrimSpace(itemName) == "" {
		return DefaultScore
	}
	name := strings.ToLower(strings.TrimSpace(itemName))

	if s, ok := a.scores[name]; ok {
		return s
	}

	// fuzzy: share more than half their words with a known item
	for _, known := range a.names {
		if similar(name, known) {
			return a.scores[known]
		}
	}

	return scoreByPattern(name)
}

// similar is a Jaccard word-overlap check.
func similar(a, b string) bool {
	wa := reWords.FindAllString(a, -1)
	wb := reWords.FindAllString(b, -1)
	if len(wa) == 0 || len(wb) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(wa))
	for _, w := range wa {
		set[w] = struct{}{}
	}
	inter := 0
	union := len(set)
	for _, w := range wb {
		if _, ok := set[w]; ok {
			inter++
		} else {
			union++
		}
	}
	return float64(inter)/float64(union) > 0.5
}

var (
	healthyPatterns = []string{
		"apple", "banana", "orange", "berry", "grape", "kiwi", "mango",
		"broccoli", "spinach", "kale", "carrot", "pepper", "tomato",
		"quinoa", "brown rice", "oats", "whole wheat", "whole grain",
		"salmon", "tuna", "chicken breast", "turkey", "tofu",
		"almond", "walnut", "chia", "flax",
	}
	moderatePatterns = []string{
		"milk", "yogurt", "cheese", "egg", "pasta", "rice", "potato",
		"bread", "cereal", "legume", "bean",
	}
	lessHealthyPatterns = []string{
		"bacon", "sausage", "hot dog", "pizza", "burger",
		"french fries", "chip", "cracker", "cookie",
	}
	unhealthyPatterns = []string{
		"soda", "candy", "chocolate", "ice cream", "donut",
		"energy drink", "alcohol", "beer", "wine",
	}
)

func scoreByPattern(name string) int {
	for _, p := range healthyPatterns {
		if strings.Contains(name, p) {
			return 9
		}
	}
	for _, p := range moderatePatterns {
		if strings.Contains(name, p) {
			return 6
		}
	}
	for _, p := range lessHealthyPatterns {
		if strings.Contains(name, p) {
			return 4
		}
	}
	for _, p := range unhealthyPatterns {
		if strings.Contains(name, p) {
			return 2
		}
	}
	return DefaultScore
}
