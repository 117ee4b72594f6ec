package collector

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"emploiscan/internal/models"
	"emploiscan/pkg/textutil"
)

// Parser extracts job listings from HelloWork search result pages.
type Parser struct {
	baseURL       *url.URL
	salaryPattern *regexp.Regexp
}

// NewParser creates a parser that resolves offer links against baseURL.
func NewParser(baseURL string) (*Parser, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %s: %w", baseURL, err)
	}

	return &Parser{
		baseURL: parsed,
		// Digit run (spaces allowed, including the no-break variants the site
		// uses as thousands separators) up to a euro sign, then the rest of
		// the line.
		salaryPattern: regexp.MustCompile(`[0-9\s\x{a0}\x{202f}]+€[^\n]*`),
	}, nil
}

// ParseSearchPage extracts all listings from a search result page. Cards
// without a title are dropped.
func (p *Parser) ParseSearchPage(html string) ([]models.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var listings []models.RawListing

	doc.Find("[data-cy='serpCard']").Each(func(_ int, card *goquery.Selection) {
		if listing, ok := p.parseCard(card); ok {
			listings = append(listings, listing)
		}
	})

	return listings, nil
}

// parseCard extracts one listing from a result card. Every field except the
// title falls back to a placeholder when its element is missing.
func (p *Parser) parseCard(card *goquery.Selection) (models.RawListing, bool) {
	title, company := p.parseHeading(card)
	if title == "" {
		return models.RawListing{}, false
	}

	return models.RawListing{
		Title:    title,
		Company:  company,
		Location: p.cardField(card, "[data-cy='localisationCard']", models.DefaultLocation),
		Contract: p.cardField(card, "[data-cy='contractCard']", models.UnknownContract),
		Salary:   p.parseSalary(card),
		Link:     p.parseLink(card),
	}, true
}

// parseHeading extracts title and company from the card heading. Cards
// usually render two <p> elements inside the <h3> (title then company), with
// older cards putting both on separate lines of the heading text.
func (p *Parser) parseHeading(card *goquery.Selection) (string, string) {
	heading := card.Find("h3").First()
	if heading.Length() == 0 {
		return "", ""
	}

	paragraphs := heading.Find("p")
	if paragraphs.Length() >= 2 {
		title := textutil.NormalizeWhitespace(paragraphs.Eq(0).Text())
		company := textutil.NormalizeWhitespace(paragraphs.Eq(1).Text())

		if company == "" {
			company = models.UnknownCompany
		}

		return title, company
	}

	parts := strings.SplitN(strings.TrimSpace(heading.Text()), "\n", 2)

	title := textutil.NormalizeWhitespace(parts[0])
	company := models.UnknownCompany

	if len(parts) > 1 {
		if c := textutil.NormalizeWhitespace(parts[1]); c != "" {
			company = c
		}
	}

	return title, company
}

// cardField returns the text of the first element matching selector, or
// fallback when the element is missing or empty.
func (p *Parser) cardField(card *goquery.Selection, selector, fallback string) string {
	text := textutil.NormalizeWhitespace(card.Find(selector).First().Text())
	if text == "" {
		return fallback
	}

	return text
}

// parseSalary scans the card text for a euro amount. There is no stable
// selector for salaries, so the amount is pulled straight out of the text,
// with a line-by-line fallback for amounts the pattern misses.
func (p *Parser) parseSalary(card *goquery.Selection) string {
	text := card.Text()
	if !strings.Contains(text, "€") {
		return models.UnlistedSalary
	}

	if match := p.salaryPattern.FindString(text); match != "" {
		return textutil.NormalizeWhitespace(match)
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "€") {
			return textutil.NormalizeWhitespace(line)
		}
	}

	return models.UnlistedSalary
}

// parseLink returns the absolute URL of the first link in the card.
func (p *Parser) parseLink(card *goquery.Selection) string {
	href := strings.TrimSpace(card.Find("a[href]").First().AttrOr("href", ""))
	if href == "" {
		return models.UnavailableLink
	}

	resolved, err := p.baseURL.Parse(href)
	if err != nil {
		return href
	}

	return resolved.String()
}
