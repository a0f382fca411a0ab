package domain

// PageMeta is what the fetcher extracts from a page.
type PageMeta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
