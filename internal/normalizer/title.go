package normalizer

import (
	"regexp"

	"emploiscan/pkg/textutil"
)

// TitleCleaner strips recruiting boilerplate from job titles.
type TitleCleaner struct {
	hoursPattern     *regexp.Regexp
	noisePatterns    []*regexp.Regexp
	separatorPattern *regexp.Regexp
}

// NewTitleCleaner compiles the noise patterns once.
func NewTitleCleaner() *TitleCleaner {
	// Order matters: H/F is removed before parenthesized text so "(H/F)"
	// leaves an empty pair for the parenthesis pattern to collect.
	noise := []string{
		`(?i)temps\s?plein`,
		`(?i)temps\s?partiel`,
		`(?i)\bCDI\b`,
		`(?i)\bCDD\b`,
		`(?i)\bIntérim\b`,
		`(?i)\bStage\b`,
		`(?i)\bAlternance\b`,
		`(?i)\bH/F\b`,
		`(?i)\bF/H\b`,
		`\(.*?\)`,
		`\s-\s`,
		`\|`,
	}

	patterns := make([]*regexp.Regexp, 0, len(noise))
	for _, expr := range noise {
		patterns = append(patterns, regexp.MustCompile(expr))
	}

	return &TitleCleaner{
		hoursPattern:     regexp.MustCompile(`\d+(?:[.,]\d+)?\s?[hH]`),
		noisePatterns:    patterns,
		separatorPattern: regexp.MustCompile(`[-_]`),
	}
}

// Clean removes working-hours mentions, contract-type words, gender tags and
// parenthesized text, collapses whitespace and capitalizes the result. It is
// deterministic and idempotent; an empty title stays empty.
func (c *TitleCleaner) Clean(title string) string {
	cleaned := c.hoursPattern.ReplaceAllString(title, "")

	for _, pattern := range c.noisePatterns {
		cleaned = pattern.ReplaceAllString(cleaned, " ")
	}

	cleaned = c.separatorPattern.ReplaceAllString(cleaned, " ")
	cleaned = textutil.NormalizeWhitespace(cleaned)

	return textutil.Capitalize(cleaned)
}
