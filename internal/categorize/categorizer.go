package categorize

import (
	"strings"

	"github.com/narayan09-boop/GroceryIntelligence/constants"
)

// Static keyword lists per grocery category. Loaded once into a flat
// keyword -> category index; no runtime mutation.
var categoryKeywords = map[constants.Category][]string{
	constants.Fruits: {
		"apple", "banana", "orange", "grape", "strawberry", "blueberry", "raspberry",
		"pear", "peach", "plum", "cherry", "kiwi", "mango", "pineapple", "watermelon",
		"cantaloupe", "honeydew", "lemon", "lime", "grapefruit", "avocado", "berry",
		"fruit", "citrus",
	},
	constants.Vegetables: {
		"carrot", "broccoli", "spinach", "lettuce", "tomato", "cucumber", "pepper",
		"onion", "garlic", "potato", "sweet potato", "corn", "peas", "beans",
		"celery", "cabbage", "cauliflower", "zucchini", "squash", "eggplant",
		"mushroom", "asparagus", "artichoke", "vegetable", "veggie", "salad",
	},
	constants.Dairy: {
		"milk", "cheese", "yogurt", "butter", "cream", "sour cream", "cottage cheese",
		"cream cheese", "mozzarella", "cheddar", "swiss", "parmesan", "dairy",
		"ice cream", "frozen yogurt", "whipped cream",
	},
	constants.Meat: {
		"chicken", "beef", "pork", "turkey", "fish", "salmon", "tuna", "shrimp",
		"bacon", "ham", "sausage", "ground beef", "steak", "roast", "meat",
		"poultry", "seafood", "deli", "lunch meat",
	},
	constants.Bakery: {
		"bread", "bagel", "muffin", "croissant", "cake", "cookie", "pie",
		"donut", "pastry", "roll", "baguette", "loaf", "bakery", "baked",
	},
	constants.Beverages: {
		"water", "juice", "soda", "coffee", "tea", "beer", "wine", "energy drink",
		"sports drink", "lemonade", "beverage", "drink", "cola", "sprite",
		"pepsi", "coca cola", "alcohol",
	},
	constants.Snacks: {
		"chips", "crackers", "nuts", "pretzels", "popcorn", "candy", "chocolate",
		"granola bar", "trail mix", "cookies", "snack", "treats",
	},
	constants.Frozen: {
		"frozen", "ice cream", "frozen pizza", "frozen vegetables", "frozen fruit",
		"frozen dinner", "frozen meal", "popsicle", "frozen foods",
	},
	constants.Canned: {
		"canned", "can", "soup", "beans", "tomatoes", "corn", "peas",
		"tuna", "salmon", "sauce", "paste", "broth", "stock",
	},
}

// Lookup precedence when a keyword appears in several lists ("tuna" is both
// meat and canned). First category in this order claims the keyword.
var categoryOrder = []constants.Category{
	constants.Fruits,
	constants.Vegetables,
	constants.Dairy,
	constants.Meat,
	constants.Bakery,
	constants.Beverages,
	constants.Snacks,
	constants.Frozen,
	constants.Canned,
}

// Categorizer assigns grocery categories by keyword lookup.
type Categorizer struct {
	keywordToCategory map[string]constants.Category
	phrases           []string // multi-word keywords, precedence order
}

func NewCategorizer() *Categorizer {
	c := &Categorizer{keywordToCategory: make(map[string]constants.Category)}
	for _, cat := range categoryOrder {
		for _, kw := range categoryKeywords[cat] {
			if _, taken := c.keywordToCategory[kw]; taken {
				continue
			}
			c.keywordToCategory[kw] = cat
			if strings.Contains(kw, " ") {
				c.phrases = append(c.phrases, kw)
			}
		}
	}
	return c
}

// Categorize returns the category for an item name. Multi-word keywords are
// checked first (most specific), then single words; unknown items land in
// Other.
func (c *Categorizer) Categorize(itemName string) constants.Category {
	name := strings.ToLower(strings.TrimSpace(itemName))
	if name == "" {
		return constants.Other
	}

	// whole-phrase keywords like "sweet potato" or "ground beef"
	for _, kw := range c.phrases {
		if strings.Contains(name, kw) {
			return c.keywordToCategory[kw]
		}
	}

	for _, word := range strings.Fields(name) {
		if cat, ok := c.keywordToCategory[word]; ok {
			return cat
		}
	}

	// singular/plural slack: "apples" should still hit "apple"
	for _, word := range strings.Fields(name) {
		trimmed := strings.TrimSuffix(word, "s")
		if cat, ok := c.keywordToCategory[trimmed]; ok {
			return cat
		}
	}

	return constants.Other
}
