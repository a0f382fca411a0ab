package domain

import "strings"

// MaxSlugLength is the maximum length of a slug, in bytes.
const MaxSlugLength = 80

// Slugify turns a title into a file-system safe identifier.
//
// The result is lower-case, contains only [a-z0-9-], never starts or ends
// with a hyphen and is at most MaxSlugLength bytes long. Slugify(Slugify(s))
// equals Slugify(s).
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	slug := b.String()
	if len(slug) > MaxSlugLength {
		slug = slug[:MaxSlugLength]
	}
	// Truncation can cut right after a separator.
	return strings.TrimRight(slug, "-")
}
