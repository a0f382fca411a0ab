package links

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/bm/internal/domain"
)

const delimiter = "---"

// header mirrors the front matter fields written by Encode.
type header struct {
	URL         string   `yaml:"url"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	Tags        []string `yaml:"tags"`
}

var yamlFormat = frontmatter.NewFormat(delimiter, delimiter, yaml.Unmarshal)

var quoteEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func quote(s string) string {
	return `"` + quoteEscaper.Replace(s) + `"`
}

// Encode renders a link as a front matter document with an empty body.
// The tags line is only written when Tags is non-nil.
func Encode(link domain.Link) []byte {
	lines := []string{
		delimiter,
		"url: " + quote(link.URL),
		"title: " + quote(link.Title),
		"description: " + quote(link.Description),
		"date: " + link.Date,
	}
	if link.Tags != nil {
		quoted := make([]string, 0, len(link.Tags))
		for _, tag := range link.Tags {
			if tag = strings.TrimSpace(tag); tag != "" {
				quoted = append(quoted, quote(tag))
			}
		}
		lines = append(lines, "tags: ["+strings.Join(quoted, ", ")+"]")
	}
	lines = append(lines, delimiter, "")
	return []byte(strings.Join(lines, "\n"))
}

var (
	urlLine   = regexp.MustCompile(`(?m)^url:\s*"(.*)"\s*$`)
	titleLine = regexp.MustCompile(`(?m)^title:\s*"(.*)"\s*$`)
)

// Decode reads the front matter of a link document. When the header is not
// valid YAML, only the url and title lines are recovered.
func Decode(content []byte) domain.Link {
	var h header
	if _, err := frontmatter.Parse(bytes.NewReader(content), &h, yamlFormat); err == nil && h.URL != "" {
		return domain.Link{
			URL:         h.URL,
			Title:       h.Title,
			Description: h.Description,
			Date:        h.Date,
			Tags:        h.Tags,
		}
	}

	return domain.Link{
		URL:   matchQuoted(urlLine, content),
		Title: matchQuoted(titleLine, content),
	}
}

func matchQuoted(re *regexp.Regexp, content []byte) string {
	m := re.FindSubmatch(content)
	if m == nil {
		return ""
	}
	raw := string(m[1])
	if s, err := strconv.Unquote(`"` + raw + `"`); err == nil {
		return s
	}
	return raw
}
