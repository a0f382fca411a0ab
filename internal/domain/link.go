package domain

import "time"

// DateLayout is the calendar date format written to the front matter.
const DateLayout = "2006-01-02"

// Link represents a bookmarked external page stored as a front-matter document.
//
// A Link is identified by its file name (slug of the title plus the store
// extension), not by its URL. Two links with different titles may point to
// the same URL.
type Link struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// File is the document file name inside the link store.
	// Example: example-domain.mdx
	// Empty until the link has been written or read from disk.
	File string `json:"file,omitempty"`

	// URL is the bookmarked resource.
	URL string `json:"url"`

	// ─────────────────────────────
	// Page metadata
	// ─────────────────────────────

	// Title comes from the fetched page <title>, or the URL hostname.
	Title string `json:"title"`

	// Description comes from the page meta description, or is empty.
	Description string `json:"description"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// Date is the creation day, formatted with DateLayout.
	Date string `json:"date"`

	// Tags is optional. A nil slice means no tags line is written.
	Tags []string `json:"tags,omitempty"`
}

// NewLink builds a link from fetched page metadata, dated on the UTC day of now.
func NewLink(url string, meta PageMeta, tags []string, now time.Time) Link {
	return Link{
		URL:         url,
		Title:       meta.Title,
		Description: meta.Description,
		Date:        now.UTC().Format(DateLayout),
		Tags:        tags,
	}
}
