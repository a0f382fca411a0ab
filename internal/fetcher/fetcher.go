// Package fetcher retrieves a page and extracts the title and description
// stored with a bookmark.
package fetcher

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/MrSnakeDoc/bm/internal/domain"
	"github.com/MrSnakeDoc/bm/internal/logger"
	"github.com/MrSnakeDoc/bm/internal/utils"
)

// Fetcher returns the metadata of the page at rawURL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (domain.PageMeta, error)
}

// HTTPFetcher issues one GET per call and parses the HTML response.
// It never retries.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	logger    logger.Logger
}

// Options configures an HTTPFetcher.
type Options struct {
	Timeout   time.Duration // whole request timeout, 0 = none
	UserAgent string
}

// New creates an HTTP fetcher.
func New(opts Options, log logger.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: opts.Timeout},
		userAgent: opts.UserAgent,
		logger:    log,
	}
}

// Fetch downloads rawURL and extracts its title and meta description.
// The title falls back to the URL host name, the description to "".
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (domain.PageMeta, error) {
	parsed, err := parseURL(rawURL)
	if err != nil {
		return domain.PageMeta{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return domain.PageMeta{}, fmt.Errorf("failed to create request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return domain.PageMeta{}, fmt.Errorf("failed to fetch: %w", err)
	}
	defer utils.Close(resp.Body)

	if ct := resp.Header.Get("Content-Type"); !isTextual(ct) {
		return domain.PageMeta{}, fmt.Errorf("non-text response (%s)", ct)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return domain.PageMeta{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	meta := Extract(doc, parsed)

	f.logger.Debug("fetched page metadata",
		logger.String("url", rawURL),
		logger.Int("status", resp.StatusCode),
		logger.Duration("elapsed", time.Since(start)),
		logger.String("title", meta.Title))

	return meta, nil
}

// Extract reads the metadata out of a parsed document.
func Extract(doc *goquery.Document, pageURL *url.URL) domain.PageMeta {
	title := normalize(doc.Find("title").First().Text())
	if title == "" {
		title = pageURL.Hostname()
	}

	var description string
	doc.Find("meta[name]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		name, _ := s.Attr("name")
		if !strings.EqualFold(strings.TrimSpace(name), "description") {
			return true
		}
		content, _ := s.Attr("content")
		description = strings.TrimSpace(strings.ReplaceAll(content, "\u00a0", " "))
		return false
	})

	return domain.PageMeta{Title: title, Description: description}
}

// normalize collapses whitespace runs to a single space. strings.Fields
// treats U+00A0 as a space, which is how &nbsp; decodes.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func parseURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid URL: %q is not an absolute http(s) URL", rawURL)
	}
	return u, nil
}

// isTextual accepts a missing Content-Type, text/* and the XML flavours of HTML.
func isTextual(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return true
	case mediaType == "application/xhtml+xml", mediaType == "application/xml":
		return true
	}
	return false
}
