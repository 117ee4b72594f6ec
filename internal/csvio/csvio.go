// Package csvio reads and writes the pipeline's CSV files.
//
// The raw file is semicolon separated and the clean file comma separated,
// both UTF-8 with a BOM so Excel renders accents correctly. The reader
// sniffs the delimiter from the header line, so a raw file that was saved
// back with commas still loads.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"emploiscan/internal/models"
)

// utf8BOM marks output files as UTF-8 for Excel.
const utf8BOM = "\xEF\xBB\xBF"

// CSV structure errors.
var (
	ErrEmptyFile      = errors.New("file contains no header row")
	ErrMissingColumns = errors.New("missing required columns")
)

// rawHeader lists the raw CSV columns in write order.
var rawHeader = []string{"Titre", "Entreprise", "Localisation", "Contrat", "Salaire", "Lien"}

// cleanHeader lists the clean CSV columns in write order.
var cleanHeader = []string{"Titre_Simplifie", "Entreprise", "Ville", "Departement", "Contrat", "Salaire_Annuel"}

// ReadRawListings loads the collector's CSV. Rows with fewer fields than
// the header are skipped; the second return value is the skipped count.
func ReadRawListings(path string) ([]models.RawListing, int, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, 0, err
	}

	cols, err := mapColumns(records[0], rawHeader)
	if err != nil {
		return nil, 0, err
	}

	listings := make([]models.RawListing, 0, len(records)-1)
	skipped := 0

	for _, record := range records[1:] {
		if len(record) <= cols.max() {
			skipped++
			continue
		}

		listings = append(listings, models.RawListing{
			Title:    strings.TrimSpace(record[cols.index["Titre"]]),
			Company:  strings.TrimSpace(record[cols.index["Entreprise"]]),
			Location: strings.TrimSpace(record[cols.index["Localisation"]]),
			Contract: strings.TrimSpace(record[cols.index["Contrat"]]),
			Salary:   strings.TrimSpace(record[cols.index["Salaire"]]),
			Link:     strings.TrimSpace(record[cols.index["Lien"]]),
		})
	}

	return listings, skipped, nil
}

// ReadCleanListings loads a normalizer output file. Salary cells that do
// not parse are treated as absent.
func ReadCleanListings(path string) ([]models.CleanListing, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	cols, err := mapColumns(records[0], cleanHeader)
	if err != nil {
		return nil, err
	}

	listings := make([]models.CleanListing, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) <= cols.max() {
			continue
		}

		listing := models.CleanListing{
			Title:      record[cols.index["Titre_Simplifie"]],
			Company:    record[cols.index["Entreprise"]],
			City:       record[cols.index["Ville"]],
			Department: record[cols.index["Departement"]],
			Contract:   record[cols.index["Contrat"]],
		}

		if cell := record[cols.index["Salaire_Annuel"]]; cell != "" {
			if d, parseErr := decimal.NewFromString(cell); parseErr == nil {
				listing.AnnualSalary = decimal.NullDecimal{Decimal: d, Valid: true}
			}
		}

		listings = append(listings, listing)
	}

	return listings, nil
}

// WriteRawListings writes the collector output (BOM, semicolon separated).
func WriteRawListings(path string, listings []models.RawListing) error {
	records := make([][]string, 0, len(listings))
	for _, l := range listings {
		records = append(records, []string{l.Title, l.Company, l.Location, l.Contract, l.Salary, l.Link})
	}

	return writeRecords(path, ';', rawHeader, records)
}

// WriteCleanListings writes the normalizer output (BOM, comma separated).
// Absent salaries become empty cells.
func WriteCleanListings(path string, listings []models.CleanListing) error {
	records := make([][]string, 0, len(listings))

	for _, l := range listings {
		salary := ""
		if l.AnnualSalary.Valid {
			salary = l.AnnualSalary.Decimal.String()
		}

		records = append(records, []string{l.Title, l.Company, l.City, l.Department, l.Contract, salary})
	}

	return writeRecords(path, ',', cleanHeader, records)
}

// columns maps header names to their positions in the file.
type columns struct {
	index map[string]int
}

func (c *columns) max() int {
	maxIdx := 0
	for _, i := range c.index {
		if i > maxIdx {
			maxIdx = i
		}
	}

	return maxIdx
}

func mapColumns(header, required []string) (*columns, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.TrimSpace(name)] = i
	}

	cols := &columns{index: make(map[string]int, len(required))}

	var missing []string

	for _, name := range required {
		if i, ok := positions[name]; ok {
			cols.index[name] = i
		} else {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	return cols, nil
}

func readRecords(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	content := strings.TrimPrefix(string(data), utf8BOM)
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyFile
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = detectDelimiter(content)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	return records, nil
}

// detectDelimiter picks the separator from the header line. Semicolon wins
// ties because it is the raw format's separator.
func detectDelimiter(content string) rune {
	line := content
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		line = content[:i]
	}

	if strings.Count(line, ";") >= strings.Count(line, ",") {
		return ';'
	}

	return ','
}

func writeRecords(path string, delimiter rune, header []string, records [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	writer.Comma = delimiter

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return nil
}
