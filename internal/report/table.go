// Package report renders console previews of collected and cleaned listings.
package report

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"emploiscan/internal/models"
)

// RenderTable renders rows as an aligned text table. Column widths follow
// display width, so accented and wide characters line up.
func RenderTable(headers []string, rows [][]string) string {
	colCount := len(headers)

	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	if colCount == 0 {
		return ""
	}

	colWidths := make([]int, colCount)

	measure := func(row []string) {
		for i := 0; i < len(row) && i < colCount; i++ {
			if width := runewidth.StringWidth(row[i]); width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	measure(headers)

	for _, row := range rows {
		measure(row)
	}

	// Keep the separator visible for empty columns
	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	var sb strings.Builder

	writeRow := func(row []string) {
		sb.WriteString("|")

		for j := 0; j < colCount; j++ {
			content := ""
			if j < len(row) {
				content = row[j]
			}

			sb.WriteString(" ")
			sb.WriteString(content)

			if padding := colWidths[j] - runewidth.StringWidth(content); padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}

			sb.WriteString(" |")
		}

		sb.WriteString("\n")
	}

	writeRow(headers)

	sb.WriteString("|")

	for j := 0; j < colCount; j++ {
		sb.WriteString(strings.Repeat("-", colWidths[j]+2))
		sb.WriteString("|")
	}

	sb.WriteString("\n")

	for _, row := range rows {
		writeRow(row)
	}

	return sb.String()
}

// CleanPreview renders the first rows of the cleaned dataset with the final
// CSV column names.
func CleanPreview(listings []models.CleanListing, limit int) string {
	if limit <= 0 || limit > len(listings) {
		limit = len(listings)
	}

	headers := []string{"Titre_Simplifie", "Entreprise", "Ville", "Departement", "Contrat", "Salaire_Annuel"}
	rows := make([][]string, 0, limit)

	for _, listing := range listings[:limit] {
		salary := ""
		if listing.AnnualSalary.Valid {
			salary = listing.AnnualSalary.Decimal.String()
		}

		rows = append(rows, []string{
			listing.Title,
			listing.Company,
			listing.City,
			listing.Department,
			listing.Contract,
			salary,
		})
	}

	return RenderTable(headers, rows)
}

// RawPreview renders the first rows of the raw dataset. The link column is
// left out to keep the table console-sized.
func RawPreview(listings []models.RawListing, limit int) string {
	if limit <= 0 || limit > len(listings) {
		limit = len(listings)
	}

	headers := []string{"Titre", "Entreprise", "Localisation", "Contrat", "Salaire"}
	rows := make([][]string, 0, limit)

	for _, listing := range listings[:limit] {
		rows = append(rows, []string{
			listing.Title,
			listing.Company,
			listing.Location,
			listing.Contract,
			listing.Salary,
		})
	}

	return RenderTable(headers, rows)
}
