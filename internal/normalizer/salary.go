package normalizer

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Period conversion factors. 151.67 is the legal monthly working time at
// 35 hours a week; 218 days is the usual forfait-jour year.
var (
	monthlyFactor = decimal.NewFromInt(12)
	hourlyFactor  = decimal.RequireFromString("151.67").Mul(decimal.NewFromInt(12))
	dailyFactor   = decimal.NewFromInt(218)

	// Bare figures in this range read as monthly salaries.
	monthlyFloor = decimal.NewFromInt(1200)
	monthlyCeil  = decimal.NewFromInt(12000)

	thousand = decimal.NewFromInt(1000)
	one      = decimal.NewFromInt(1)
)

// SalaryParser turns free-text salary mentions into an annual gross figure.
type SalaryParser struct {
	minAnnual decimal.Decimal
	maxAnnual decimal.Decimal

	spaceReplacer  *strings.Replacer
	numberPattern  *regexp.Regexp
	kSuffixPattern *regexp.Regexp
}

// NewSalaryParser creates a parser with the default plausibility bounds.
func NewSalaryParser() *SalaryParser {
	return NewSalaryParserWithBounds(14000, 200000)
}

// NewSalaryParserWithBounds creates a parser that rejects annual figures
// outside [minAnnual, maxAnnual].
func NewSalaryParserWithBounds(minAnnual, maxAnnual float64) *SalaryParser {
	return &SalaryParser{
		minAnnual: decimal.NewFromFloat(minAnnual),
		maxAnnual: decimal.NewFromFloat(maxAnnual),
		// Thousands separators: regular, narrow no-break and no-break spaces.
		spaceReplacer:  strings.NewReplacer(" ", "", " ", "", " ", ""),
		numberPattern:  regexp.MustCompile(`\d+(?:[.,]\d+)?`),
		kSuffixPattern: regexp.MustCompile(`\d+(?:[.,]\d+)?k`),
	}
}

// Parse extracts an annual gross salary from text like "2 000 - 2 500 € / mois".
// Ranges resolve to the midpoint of their bounds (the arithmetic mean of every
// number found). The result is not Valid when the text carries no readable
// salary or the annual figure falls outside the plausibility bounds. Parse
// never fails: unreadable input just yields an absent value.
func (p *SalaryParser) Parse(text string) decimal.NullDecimal {
	lowered := strings.ToLower(text)
	if lowered == "" || strings.Contains(lowered, "non affiché") {
		return decimal.NullDecimal{}
	}

	cleaned := p.spaceReplacer.Replace(lowered)

	// Expand k suffixes numerically: "35k" -> 35000, "1,5k" -> 1500.
	kSeen := false

	cleaned = p.kSuffixPattern.ReplaceAllStringFunc(cleaned, func(match string) string {
		number := strings.ReplaceAll(strings.TrimSuffix(match, "k"), ",", ".")

		value, err := decimal.NewFromString(number)
		if err != nil {
			return match
		}

		kSeen = true

		return value.Mul(thousand).String()
	})

	matches := p.numberPattern.FindAllString(cleaned, -1)
	if len(matches) == 0 {
		return decimal.NullDecimal{}
	}

	values := make([]decimal.Decimal, 0, len(matches))

	for _, match := range matches {
		value, err := decimal.NewFromString(strings.ReplaceAll(match, ",", "."))
		if err != nil {
			continue
		}

		// A k suffix on one bound covers the whole range: "30 - 35k"
		// means 30000 to 35000, not 30 to 35000.
		if kSeen && value.LessThan(thousand) {
			value = value.Mul(thousand)
		}

		values = append(values, value)
	}

	if len(values) == 0 {
		return decimal.NullDecimal{}
	}

	value := decimal.Avg(values[0], values[1:]...)
	annual := value.Mul(p.periodFactor(cleaned, value))

	if annual.LessThan(p.minAnnual) || annual.GreaterThan(p.maxAnnual) {
		return decimal.NullDecimal{}
	}

	return decimal.NullDecimal{Decimal: annual.Round(2), Valid: true}
}

// periodFactor picks the annualization factor from the period mentioned in
// the text, falling back to a monthly reading for bare mid-range figures.
func (p *SalaryParser) periodFactor(text string, value decimal.Decimal) decimal.Decimal {
	switch {
	case strings.Contains(text, "mois"):
		return monthlyFactor
	case strings.Contains(text, "heure"):
		return hourlyFactor
	case strings.Contains(text, "jour"):
		return dailyFactor
	case value.GreaterThanOrEqual(monthlyFloor) && value.LessThanOrEqual(monthlyCeil):
		return monthlyFactor
	}

	return one
}
