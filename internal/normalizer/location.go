package normalizer

import (
	"regexp"
	"strings"
)

// LocationSplitter separates a combined location string into city and
// department code.
type LocationSplitter struct {
	districtPattern *regexp.Regexp
	parenPattern    *regexp.Regexp
}

// NewLocationSplitter compiles the location patterns once.
func NewLocationSplitter() *LocationSplitter {
	return &LocationSplitter{
		// Trailing district suffixes: "Paris 15e", "Lyon 1er", "Marseille 13".
		districtPattern: regexp.MustCompile(`\s\d+(?:er|e|ème)?$`),
		// "Ville (75)" form. Department codes are 2-3 digits plus the
		// Corsican 2A/2B.
		parenPattern: regexp.MustCompile(`^(.*?)\s*\((\d{2,3}|2[AB])\)$`),
	}
}

// Split recognizes "Ville - 75" (split on the last " - ") and "Ville (75)".
// Anything else keeps the whole text as the city with an empty department.
// District suffixes are stripped from the city either way.
func (s *LocationSplitter) Split(location string) (string, string) {
	city := strings.TrimSpace(location)
	department := ""

	if i := strings.LastIndex(city, " - "); i >= 0 {
		department = strings.TrimSpace(city[i+3:])
		city = strings.TrimSpace(city[:i])
	} else if m := s.parenPattern.FindStringSubmatch(city); m != nil {
		city = strings.TrimSpace(m[1])
		department = m[2]
	}

	return s.districtPattern.ReplaceAllString(city, ""), department
}
