package resources

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/MrSnakeDoc/bm/internal/domain"
)

// Encode renders the collection as a JSON array indented with four spaces
// and terminated by a newline. HTML characters are written as-is.
func Encode(resources []domain.Resource) ([]byte, error) {
	if resources == nil {
		resources = []domain.Resource{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(resources); err != nil {
		return nil, fmt.Errorf("failed to encode resources: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a JSON array of resources. Blank input is an empty collection.
func Decode(data []byte) ([]domain.Resource, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.Resource{}, nil
	}

	var resources []domain.Resource
	if err := json.Unmarshal(data, &resources); err != nil {
		return nil, fmt.Errorf("failed to decode resources: %w", err)
	}
	if resources == nil {
		resources = []domain.Resource{}
	}
	return resources, nil
}
