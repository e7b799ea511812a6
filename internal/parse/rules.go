package parse

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	minPrice = 0.01
	maxPrice = 999.99
)

// Candidate holds the raw captures of a rule before name normalization and
// price validation.
type Candidate struct {
	Name     string
	Price    float64
	UsedNext bool // the lookahead line was consumed as the price
}

// Rule tries to explain one receipt line (plus one line of lookahead) as an
// item/price pair. Rules are tried in fixed order; the first rule that
// plausibly explains a line claims it.
type Rule interface {
	Name() string
	Match(line, next string) (Candidate, bool)
}

func defaultRules() []Rule {
	return []Rule{
		combinedNamePrice{},
		quantityPrefixed{},
		wideGapSeparated{},
		nameOnlyLookahead{},
	}
}

var (
	// "ITEM NAME 12.99" / "ITEM NAME $12.99"
	reCombined = regexp.MustCompile(`^([A-Za-z][A-Za-z\s\-&']{2,30})\s+\$?(\d{1,3}\.\d{2})$`)
	// "2 APPLES 5.99" / "3 @ BANANA 1.29"
	reQuantity = regexp.MustCompile(`^\d+\s*(?:@\s*)?([A-Za-z][A-Za-z\s\-&']{2,30})\s+\$?(\d{1,3}\.\d{2})$`)
	// tabular layout: name, then a run of two or more spaces, then the price
	reWideGap = regexp.MustCompile(`^(\S.*?\S)\s{2,}\$?(\d{1,3}\.\d{2})$`)
	// bare item name with the price expected on the following line
	reNameOnly  = regexp.MustCompile(`^([A-Za-z][A-Za-z\s\-&']{2,30})$`)
	rePriceLine = regexp.MustCompile(`^\$?(\d{1,3}\.\d{2})$`)
)

type combinedNamePrice struct{}

func (combinedNamePrice) Name() string { return "combined" }

func (combinedNamePrice) Match(line, _ string) (Candidate, bool) {
	m := reCombined.FindStringSubmatch(line)
	if m == nil {
		return Candidate{}, false
	}
	return Candidate{Name: m[1], Price: mustPrice(m[2])}, true
}

type quantityPrefixed struct{}

func (quantityPrefixed) Name() string { return "quantity" }

func (quantityPrefixed) Match(line, _ string) (Candidate, bool) {
	m := reQuantity.FindStringSubmatch(line)
	if m == nil {
		return Candidate{}, false
	}
	return Candidate{Name: m[1], Price: mustPrice(m[2])}, true
}

type wideGapSeparated struct{}

func (wideGapSeparated) Name() string { return "widegap" }

func (wideGapSeparated) Match(line, _ string) (Candidate, bool) {
	m := reWideGap.FindStringSubmatch(line)
	if m == nil {
		return Candidate{}, false
	}
	return Candidate{Name: m[1], Price: mustPrice(m[2])}, true
}

type nameOnlyLookahead struct{}

func (nameOnlyLookahead) Name() string { return "lookahead" }

// Match claims a bare name line only when the next line is a standalone,
// in-range price; otherwise the name line contributes nothing.
func (nameOnlyLookahead) Match(line, next string) (Candidate, bool) {
	m := reNameOnly.FindStringSubmatch(line)
	if m == nil {
		return Candidate{}, false
	}
	pm := rePriceLine.FindStringSubmatch(next)
	if pm == nil {
		return Candidate{}, false
	}
	price := mustPrice(pm[1])
	if !validPrice(price) {
		return Candidate{}, false
	}
	return Candidate{Name: m[1], Price: price, UsedNext: true}, true
}

func mustPrice(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func validPrice(p float64) bool {
	return p >= minPrice && p <= maxPrice
}

func hasLetter(s string) bool {
	return strings.ContainsFunc(s, unicode.IsLetter)
}
