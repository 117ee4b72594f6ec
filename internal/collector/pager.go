package collector

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"emploiscan/internal/logger"
)

// ErrNoMorePages indicates the pager has reached the configured page limit.
var ErrNoMorePages = errors.New("no more pages")

// Pager builds successive search result URLs and records fetch attempts.
type Pager struct {
	baseURL    string
	keywords   string
	maxPages   int
	page       int
	attemptLog []PageAttempt
}

// PageAttempt records the result of a page fetch attempt.
type PageAttempt struct {
	Timestamp  time.Time
	URL        string
	Error      string
	Page       int
	Duration   time.Duration
	StatusCode int
	Success    bool
}

// AttemptStats contains statistics about page fetch attempts.
type AttemptStats struct {
	TotalPages      int
	SuccessfulPages int
	FailedPages     int
	TotalDuration   time.Duration
}

// String returns a string representation of attempt stats.
func (s AttemptStats) String() string {
	return fmt.Sprintf(
		"Pages: %d total, %d success, %d failed | Elapsed: %.2fs",
		s.TotalPages,
		s.SuccessfulPages,
		s.FailedPages,
		s.TotalDuration.Seconds(),
	)
}

// NewPager creates a pager for the given search.
func NewPager(baseURL, keywords string, maxPages int) *Pager {
	return &Pager{
		baseURL:  baseURL,
		keywords: keywords,
		maxPages: maxPages,
	}
}

// NextPageURL returns the URL of the next result page. Page 1 carries only
// the keyword parameter, later pages append &p=N.
func (pg *Pager) NextPageURL() (string, int, error) {
	if pg.page >= pg.maxPages {
		return "", 0, fmt.Errorf("%w: %d pages fetched", ErrNoMorePages, pg.page)
	}

	pg.page++

	pageURL := fmt.Sprintf("%s?k=%s", pg.baseURL, url.QueryEscape(pg.keywords))
	if pg.page > 1 {
		pageURL = fmt.Sprintf("%s&p=%d", pageURL, pg.page)
	}

	return pageURL, pg.page, nil
}

// CurrentPage returns the number of the last page handed out.
func (pg *Pager) CurrentPage() int {
	return pg.page
}

// RecordAttempt records the result of a page fetch attempt.
func (pg *Pager) RecordAttempt(pageURL string, page int, success bool, err error, statusCode int, duration time.Duration) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}

	pg.attemptLog = append(pg.attemptLog, PageAttempt{
		URL:        pageURL,
		Page:       page,
		Success:    success,
		Error:      errMsg,
		Timestamp:  time.Now(),
		Duration:   duration,
		StatusCode: statusCode,
	})
}

// Stats returns statistics about page fetch attempts.
func (pg *Pager) Stats() AttemptStats {
	stats := AttemptStats{
		TotalPages: len(pg.attemptLog),
	}

	for _, attempt := range pg.attemptLog {
		stats.TotalDuration += attempt.Duration

		if attempt.Success {
			stats.SuccessfulPages++
		} else {
			stats.FailedPages++
		}
	}

	return stats
}

// LogAttemptSummary logs a summary of page fetch attempts using the provided logger.
func (pg *Pager) LogAttemptSummary(l *logger.Logger) {
	l.Info("📊 Fetch Attempt Summary:")

	for _, attempt := range pg.attemptLog {
		statusStr := "✅ Success"
		if !attempt.Success {
			statusStr = fmt.Sprintf("❌ Failed: %s", attempt.Error)
		}

		l.Info(fmt.Sprintf("  Page %d: %s (%.2fs)", attempt.Page, statusStr, attempt.Duration.Seconds()))
		l.Info(fmt.Sprintf("    URL: %s", attempt.URL))
	}

	l.Info(fmt.Sprintf("Overall: %s", pg.Stats()))
}

// Reset resets the pager state.
func (pg *Pager) Reset() {
	pg.page = 0
	pg.attemptLog = nil
}
