// Package validator checks scraped listings before they are saved or
// normalized.
package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"emploiscan/internal/config"
	"emploiscan/internal/models"
)

// Validation errors.
var (
	ErrTitleRequired = errors.New("title is required")
	ErrLinkRequired  = errors.New("link is required")
	ErrLinkPattern   = errors.New("link does not match pattern")
)

// ValidationError represents a validation error with row context.
type ValidationError struct {
	Field   string
	Value   string
	Pattern string
	Message string
	Row     int
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []string
	Stats    ValidationStats
	IsValid  bool
}

// ValidationStats contains validation statistics.
type ValidationStats struct {
	TotalListings    int
	ValidListings    int
	InvalidListings  int
	UnlistedSalaries int
	DefaultLocations int
}

// ListingValidator validates raw listings against the configured rules.
type ListingValidator struct {
	cfg *config.Config
	// Compiled regex patterns
	salaryPattern *regexp.Regexp
	linkPattern   *regexp.Regexp
}

// NewListingValidator creates a new validator.
func NewListingValidator(cfg *config.Config) (*ListingValidator, error) {
	v := &ListingValidator{cfg: cfg}

	var err error
	if cfg.Validation.Patterns.Salary != "" {
		v.salaryPattern, err = regexp.Compile(cfg.Validation.Patterns.Salary)
		if err != nil {
			return nil, fmt.Errorf("invalid salary pattern: %w", err)
		}
	}

	if cfg.Validation.Patterns.Link != "" {
		v.linkPattern, err = regexp.Compile(cfg.Validation.Patterns.Link)
		if err != nil {
			return nil, fmt.Errorf("invalid link pattern: %w", err)
		}
	}

	return v, nil
}

// ValidateListings checks the batch bounds and every row. Structural
// problems (missing title or link) are errors; odd salary text only
// warns, because the normalizer handles any salary text.
func (v *ListingValidator) ValidateListings(listings []models.RawListing) *ValidationResult {
	result := &ValidationResult{
		IsValid:  true,
		Errors:   []ValidationError{},
		Warnings: []string{},
	}

	result.Stats.TotalListings = len(listings)

	if len(listings) < v.cfg.Validation.MinListings {
		result.IsValid = false
		result.Errors = append(result.Errors, ValidationError{
			Field: "listings",
			Message: fmt.Sprintf("expected at least %d listings, got %d",
				v.cfg.Validation.MinListings, len(listings)),
		})
	}

	if len(listings) > v.cfg.Validation.MaxListings {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("collected %d listings, above the expected maximum of %d",
				len(listings), v.cfg.Validation.MaxListings))
	}

	for i, listing := range listings {
		rowErrs := v.validateListing(i+1, listing)
		if len(rowErrs) > 0 {
			result.Stats.InvalidListings++
			result.Errors = append(result.Errors, rowErrs...)
			result.IsValid = false
		} else {
			result.Stats.ValidListings++
		}

		if strings.EqualFold(listing.Salary, models.UnlistedSalary) {
			result.Stats.UnlistedSalaries++
		} else if listing.Salary != "" && v.salaryPattern != nil && !v.salaryPattern.MatchString(listing.Salary) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("row %d: salary text %q does not look like a salary", i+1, truncate(listing.Salary, 50)))
		}

		if listing.Location == models.DefaultLocation {
			result.Stats.DefaultLocations++
		}
	}

	return result
}

// validateListing checks the structural fields of a single row.
func (v *ListingValidator) validateListing(row int, listing models.RawListing) []ValidationError {
	var errs []ValidationError

	if listing.Title == "" {
		errs = append(errs, ValidationError{
			Row:     row,
			Field:   "titre",
			Message: "title is empty",
		})
	}

	if listing.Link == "" {
		errs = append(errs, ValidationError{
			Row:     row,
			Field:   "lien",
			Message: "link is empty",
		})
	} else if listing.Link != models.UnavailableLink && v.linkPattern != nil && !v.linkPattern.MatchString(listing.Link) {
		errs = append(errs, ValidationError{
			Row:     row,
			Field:   "lien",
			Value:   truncate(listing.Link, 50),
			Pattern: v.cfg.Validation.Patterns.Link,
			Message: "link does not match pattern",
		})
	}

	return errs
}

// ValidateSingleListing validates one listing (helper for use while collecting).
func (v *ListingValidator) ValidateSingleListing(listing models.RawListing) error {
	if listing.Title == "" {
		return ErrTitleRequired
	}

	if listing.Link == "" {
		return ErrLinkRequired
	}

	if listing.Link != models.UnavailableLink && v.linkPattern != nil && !v.linkPattern.MatchString(listing.Link) {
		return fmt.Errorf("%w: %s", ErrLinkPattern, listing.Link)
	}

	return nil
}

// truncate truncates string to max length.
func truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}

	return s
}

// String returns string representation of validation result.
func (r *ValidationResult) String() string {
	status := "✅ VALID"
	if !r.IsValid {
		status = "❌ INVALID"
	}

	return fmt.Sprintf(
		"%s | Total: %d | Valid: %d | Invalid: %d | Warnings: %d",
		status,
		r.Stats.TotalListings,
		r.Stats.ValidListings,
		r.Stats.InvalidListings,
		len(r.Warnings),
	)
}

// PrintErrors prints validation errors in readable format.
func (r *ValidationResult) PrintErrors() {
	if len(r.Errors) == 0 {
		return
	}

	fmt.Println("❌ Validation Errors:")

	for _, err := range r.Errors {
		if err.Row > 0 {
			fmt.Printf("  Row %d", err.Row)

			if err.Field != "" {
				fmt.Printf(" [%s]", err.Field)
			}

			fmt.Printf(": %s\n", err.Message)

			if err.Value != "" {
				fmt.Printf("    Found: %q\n", err.Value)
			}

			if err.Pattern != "" {
				fmt.Printf("    Expected pattern: %s\n", err.Pattern)
			}
		} else {
			fmt.Printf("  %s\n", err.Message)
		}
	}
}

// PrintWarnings prints validation warnings.
func (r *ValidationResult) PrintWarnings() {
	if len(r.Warnings) == 0 {
		return
	}

	fmt.Println("⚠️  Validation Warnings:")

	for _, warn := range r.Warnings {
		fmt.Printf("  %s\n", warn)
	}
}
