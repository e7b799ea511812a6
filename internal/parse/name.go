package parse

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	reSpaceRuns = regexp.MustCompile(`\s+`)
	reQualifier = regexp.MustCompile(`(?i)^(ORGANIC|ORG|FRESH|PREMIUM|SELECT)\s+`)
)

// Standalone unit abbreviations expanded to full words.
var unitExpansions = []struct {
	re   *regexp.Regexp
	word string
}{
	{regexp.MustCompile(`(?i)\bLB\b`), "POUND"},
	{regexp.MustCompile(`(?i)\bOZ\b`), "OUNCE"},
	{regexp.MustCompile(`(?i)\bPKG\b`), "PACKAGE"},
	{regexp.MustCompile(`(?i)\bCT\b`), "COUNT"},
}

// NormalizeName cleans an OCR'd item label: collapse whitespace runs, drop a
// leading freshness/quality qualifier, expand unit abbreviations, Title-case.
// Always returns a string; the caller rejects empty or letterless results.
// Idempotent.
func NormalizeName(name string) string {
	name = reSpaceRuns.ReplaceAllString(strings.TrimSpace(name), " ")
	// strip stacked qualifiers ("ORGANIC FRESH APPLE") so a second pass over
	// the result is a no-op
	for {
		stripped := reQualifier.ReplaceAllString(name, "")
		if stripped == name {
			break
		}
		name = stripped
	}
	for _, u := range unitExpansions {
		name = u.re.ReplaceAllString(name, u.word)
	}
	return cases.Title(language.English).String(strings.ToLower(name))
}
