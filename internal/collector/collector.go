// Package collector scrapes HelloWork search results into raw job listings.
package collector

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"emploiscan/internal/config"
	"emploiscan/internal/logger"
	"emploiscan/internal/models"
)

// Collector drives the scrape loop: build the page URL, fetch, parse, repeat.
type Collector struct {
	scraper *Scraper
	parser  *Parser
	pager   *Pager
	cfg     *config.Config
	log     *logger.Logger
}

// NewCollector creates a collector from configuration.
func NewCollector(cfg *config.Config, log *logger.Logger) (*Collector, error) {
	parser, err := NewParser(cfg.Collector.Search.BaseURL)
	if err != nil {
		return nil, err
	}

	scraper := NewScraperWithConfig(
		&cfg.Collector.Retry,
		cfg.Advanced.BufferSizeKb,
		cfg.Collector.Search.RotateUserAgent,
	)

	pager := NewPager(
		cfg.Collector.Search.BaseURL,
		cfg.Collector.Search.Keywords,
		cfg.Collector.Search.MaxPages,
	)

	return &Collector{
		scraper: scraper,
		parser:  parser,
		pager:   pager,
		cfg:     cfg,
		log:     log,
	}, nil
}

// NewCollectorWithDeps creates a collector with injected dependencies.
func NewCollectorWithDeps(scraper *Scraper, parser *Parser, pager *Pager, cfg *config.Config, log *logger.Logger) *Collector {
	return &Collector{
		scraper: scraper,
		parser:  parser,
		pager:   pager,
		cfg:     cfg,
		log:     log,
	}
}

// CollectPage fetches and parses a single result page.
func (c *Collector) CollectPage() ([]models.RawListing, int, error) {
	pageURL, page, err := c.pager.NextPageURL()
	if err != nil {
		return nil, 0, err
	}

	content, statusCode, duration, err := c.scraper.ScrapeWithMetrics(pageURL)
	c.pager.RecordAttempt(pageURL, page, err == nil, err, statusCode, duration)

	if err != nil {
		return nil, page, fmt.Errorf("failed to fetch page %d: %w", page, err)
	}

	listings, err := c.parser.ParseSearchPage(content)
	if err != nil {
		return nil, page, fmt.Errorf("failed to parse page %d: %w", page, err)
	}

	return listings, page, nil
}

// CollectAll fetches result pages until the listing target is reached, a page
// comes back without cards, or the page limit is hit. A page without cards
// means either the end of the results or bot blocking, so the crawl stops
// with a warning rather than an error.
func (c *Collector) CollectAll() ([]models.RawListing, error) {
	var listings []models.RawListing

	target := c.cfg.Collector.Search.TargetListings

	for {
		pageListings, page, err := c.CollectPage()
		if errors.Is(err, ErrNoMorePages) {
			break
		}

		if err != nil {
			if len(listings) == 0 {
				return nil, err
			}

			c.log.Warn(fmt.Sprintf("⚠️  Stopping after page error: %v", err))

			break
		}

		if len(pageListings) == 0 {
			c.log.Warn(fmt.Sprintf("⚠️  Page %d returned no listings: end of results or bot blocking", page))

			break
		}

		listings = append(listings, pageListings...)

		if target > 0 && len(listings) >= target {
			listings = listings[:target]

			if c.cfg.Logging.ShowProgress {
				fmt.Printf("📄 Page %d | %d offres collectées\n", page, len(listings))
			}

			break
		}

		if c.cfg.Logging.ShowProgress {
			fmt.Printf("📄 Page %d | %d offres collectées\n", page, len(listings))
		}

		c.sleepBetweenPages()
	}

	return listings, nil
}

// CollectFromFile parses listings from a search page saved on disk, which is
// handy for checking selectors without hitting the site.
func (c *Collector) CollectFromFile(filePath string) ([]models.RawListing, error) {
	listings, _, err := c.CollectFromFileWithMetrics(filePath)

	return listings, err
}

// CollectFromFileWithMetrics returns (listings, fileSize, error).
func (c *Collector) CollectFromFileWithMetrics(filePath string) ([]models.RawListing, int64, error) {
	content, fileSize, _, err := c.scraper.ReadLocalFileWithMetrics(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read local file: %w", err)
	}

	listings, err := c.parser.ParseSearchPage(content)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse local file: %w", err)
	}

	return listings, fileSize, nil
}

// LogAttemptSummary logs a summary of the page fetches performed so far.
func (c *Collector) LogAttemptSummary() {
	c.pager.LogAttemptSummary(c.log)
}

// sleepBetweenPages waits a random delay inside the configured window so the
// crawl does not hammer the site.
func (c *Collector) sleepBetweenPages() {
	minMs := c.cfg.Collector.Search.DelayMinMs
	maxMs := c.cfg.Collector.Search.DelayMaxMs

	if maxMs <= 0 {
		return
	}

	delayMs := minMs
	if maxMs > minMs {
		delayMs += rand.Intn(maxMs - minMs)
	}

	time.Sleep(time.Duration(delayMs) * time.Millisecond)
}
