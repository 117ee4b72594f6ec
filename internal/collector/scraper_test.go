package collector

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"emploiscan/internal/config"
)

func testRetryPolicy() *config.RetryPolicy {
	return &config.RetryPolicy{
		MaxAttempts:       3,
		InitialDelayMs:    1,
		MaxDelayMs:        5,
		BackoffMultiplier: 2.0,
		TimeoutSec:        5,
	}
}

func TestScrape_Success(t *testing.T) {
	var gotUserAgent, gotLanguage string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotLanguage = r.Header.Get("Accept-Language")

		fmt.Fprint(w, "<html>ok</html>")
	}))
	defer server.Close()

	s := NewScraperWithConfig(testRetryPolicy(), 1024, false)

	content, err := s.Scrape(server.URL)
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}

	if content != "<html>ok</html>" {
		t.Errorf("Expected page content, got %q", content)
	}

	if gotUserAgent != defaultUserAgent {
		t.Errorf("Expected default user agent, got %q", gotUserAgent)
	}

	if !strings.HasPrefix(gotLanguage, "fr-FR") {
		t.Errorf("Expected French Accept-Language, got %q", gotLanguage)
	}
}

func TestScrapeWithMetrics_RetriesOnServerError(t *testing.T) {
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++

		if requests < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		fmt.Fprint(w, "recovered")
	}))
	defer server.Close()

	s := NewScraperWithConfig(testRetryPolicy(), 1024, false)

	content, statusCode, _, err := s.ScrapeWithMetrics(server.URL)
	if err != nil {
		t.Fatalf("ScrapeWithMetrics failed: %v", err)
	}

	if content != "recovered" {
		t.Errorf("Expected recovered content, got %q", content)
	}

	if statusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", statusCode)
	}

	if requests != 3 {
		t.Errorf("Expected 3 requests, got %d", requests)
	}
}

func TestScrapeWithMetrics_FailsAfterMaxAttempts(t *testing.T) {
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++

		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	s := NewScraperWithConfig(testRetryPolicy(), 1024, false)

	_, statusCode, _, err := s.ScrapeWithMetrics(server.URL)
	if !errors.Is(err, ErrUnexpectedStatusCode) {
		t.Fatalf("Expected ErrUnexpectedStatusCode, got %v", err)
	}

	if statusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", statusCode)
	}

	if requests != 3 {
		t.Errorf("Expected 3 requests, got %d", requests)
	}
}

func TestScrapeWithMetrics_NoRetryOnNotFound(t *testing.T) {
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++

		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	s := NewScraperWithConfig(testRetryPolicy(), 1024, false)

	_, _, _, err := s.ScrapeWithMetrics(server.URL)
	if !errors.Is(err, ErrUnexpectedStatusCode) {
		t.Fatalf("Expected ErrUnexpectedStatusCode, got %v", err)
	}

	if requests != 1 {
		t.Errorf("Expected 1 request for non-retryable status, got %d", requests)
	}
}

func TestScrapeWithMetrics_BufferLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Repeat("x", 3000))
	}))
	defer server.Close()

	s := NewScraperWithConfig(testRetryPolicy(), 1, false)

	content, err := s.Scrape(server.URL)
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}

	if len(content) != 1024 {
		t.Errorf("Expected content capped at 1024 bytes, got %d", len(content))
	}
}

func TestReadLocalFile(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "page.html")

	if err := os.WriteFile(filePath, []byte("<html>local</html>"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	s := NewScraper()

	content, err := s.ReadLocalFile(filePath)
	if err != nil {
		t.Fatalf("ReadLocalFile failed: %v", err)
	}

	if content != "<html>local</html>" {
		t.Errorf("Expected local content, got %q", content)
	}
}

func TestReadLocalFileWithMetrics(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "page.html")
	payload := "<html>metrics</html>"

	if err := os.WriteFile(filePath, []byte(payload), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	s := NewScraper()

	content, fileSize, _, err := s.ReadLocalFileWithMetrics(filePath)
	if err != nil {
		t.Fatalf("ReadLocalFileWithMetrics failed: %v", err)
	}

	if content != payload {
		t.Errorf("Expected file content, got %q", content)
	}

	if fileSize != int64(len(payload)) {
		t.Errorf("Expected file size %d, got %d", len(payload), fileSize)
	}
}

func TestReadLocalFile_NotFound(t *testing.T) {
	s := NewScraper()

	_, err := s.ReadLocalFile("/nonexistent/page.html")
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestIsRetryableStatus(t *testing.T) {
	tests := []struct {
		statusCode int
		want       bool
	}{
		{http.StatusRequestTimeout, true},
		{http.StatusTooManyRequests, true},
		{http.StatusServiceUnavailable, true},
		{http.StatusGatewayTimeout, true},
		{http.StatusOK, false},
		{http.StatusNotFound, false},
		{http.StatusForbidden, false},
		{http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		if got := isRetryableStatus(tt.statusCode); got != tt.want {
			t.Errorf("isRetryableStatus(%d) = %v, want %v", tt.statusCode, got, tt.want)
		}
	}
}
