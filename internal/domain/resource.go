package domain

import "strings"

// Resource is an entry of the JSON resource collection (the "perl" section).
// Resources are identified by exact URL.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Note  string `json:"note"`
}

// Matches reports whether target selects this resource for removal:
// exact URL, or a case-insensitive substring of the title.
func (r Resource) Matches(target string) bool {
	if r.URL == target {
		return true
	}
	return strings.Contains(strings.ToLower(r.Title), strings.ToLower(target))
}
