// Package normalizer turns raw scraped listings into clean, analysis-ready
// rows: titles are de-noised, locations split into city and department, and
// salary mentions converted to annual gross figures.
package normalizer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"emploiscan/internal/config"
	"emploiscan/internal/csvio"
	"emploiscan/internal/models"
	"emploiscan/pkg/textutil"
)

// Normalizer applies the field-level cleaners to raw listings.
type Normalizer struct {
	salary   *SalaryParser
	titles   *TitleCleaner
	location *LocationSplitter

	dedupe bool
}

// RunStats summarizes one normalization run.
type RunStats struct {
	RowsRead          int
	RowsSkipped       int
	RowsWritten       int
	SalariesParsed    int
	SalariesMissing   int
	DuplicatesDropped int
}

// String returns a one-line summary of the run.
func (s *RunStats) String() string {
	return fmt.Sprintf(
		"RunStats{Read: %d, Written: %d, Salaries: %d parsed / %d missing, Duplicates: %d}",
		s.RowsRead, s.RowsWritten, s.SalariesParsed, s.SalariesMissing, s.DuplicatesDropped,
	)
}

// NewNormalizer creates a normalizer with default settings: standard salary
// bounds, deduplication off.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		salary:   NewSalaryParser(),
		titles:   NewTitleCleaner(),
		location: NewLocationSplitter(),
	}
}

// NewNormalizerWithConfig creates a normalizer honoring the configured
// salary bounds and dedupe setting.
func NewNormalizerWithConfig(cfg *config.Config) *Normalizer {
	return &Normalizer{
		salary:   NewSalaryParserWithBounds(cfg.Normalizer.Salary.MinAnnual, cfg.Normalizer.Salary.MaxAnnual),
		titles:   NewTitleCleaner(),
		location: NewLocationSplitter(),
		dedupe:   cfg.Normalizer.Dedupe,
	}
}

// NormalizeRow cleans a single listing. It is total: any raw listing yields
// a clean one, with an absent salary when the text is unreadable.
func (n *Normalizer) NormalizeRow(raw models.RawListing) models.CleanListing {
	city, department := n.location.Split(raw.Location)

	return models.CleanListing{
		Title:        n.titles.Clean(raw.Title),
		Company:      raw.Company,
		City:         city,
		Department:   department,
		Contract:     raw.Contract,
		AnnualSalary: n.salary.Parse(raw.Salary),
	}
}

// NormalizeAll cleans every listing, preserving input order. With dedupe
// enabled, rows repeating an earlier (title, company, city) are dropped;
// otherwise row count is preserved exactly.
func (n *Normalizer) NormalizeAll(raw []models.RawListing) ([]models.CleanListing, *RunStats) {
	stats := &RunStats{RowsRead: len(raw)}
	clean := make([]models.CleanListing, 0, len(raw))

	var seen map[string]struct{}
	if n.dedupe {
		seen = make(map[string]struct{}, len(raw))
	}

	for _, listing := range raw {
		row := n.NormalizeRow(listing)

		if n.dedupe {
			key := dedupeKey(row)
			if _, dup := seen[key]; dup {
				stats.DuplicatesDropped++
				continue
			}

			seen[key] = struct{}{}
		}

		if row.AnnualSalary.Valid {
			stats.SalariesParsed++
		} else {
			stats.SalariesMissing++
		}

		clean = append(clean, row)
	}

	stats.RowsWritten = len(clean)

	return clean, stats
}

// Run loads the raw CSV, normalizes every row and writes the clean CSV.
// It fails only on file-level problems; malformed fields never abort a run.
func (n *Normalizer) Run(inputPath, outputPath string) (*RunStats, error) {
	raw, skipped, err := csvio.ReadRawListings(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load raw listings: %w", err)
	}

	clean, stats := n.NormalizeAll(raw)
	stats.RowsSkipped = skipped

	if err := csvio.WriteCleanListings(outputPath, clean); err != nil {
		return nil, fmt.Errorf("failed to save clean listings: %w", err)
	}

	return stats, nil
}

// dedupeKey builds a short digest of the case- and accent-folded identity
// fields, matching offers that differ only in casing or accents.
func dedupeKey(listing models.CleanListing) string {
	key := textutil.FoldKey(listing.Title) + "|" + textutil.FoldKey(listing.Company) + "|" + textutil.FoldKey(listing.City)
	digest := sha256.Sum256([]byte(key))

	return hex.EncodeToString(digest[:])[:12]
}
