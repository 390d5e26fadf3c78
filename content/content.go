// Package content loads the slide records that drive a deck.
package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var ErrNotArray = errors.New("content must be a JSON array of slide records")

// Record is one slide worth of content. The first record of a file is the
// cover: Body[0] is the presenter and Body[1] the date.
type Record struct {
	Title string   `json:"title"`
	Body  []string `json:"body"`
}

// Field returns Body[i], or "" when the body is shorter.
func (r Record) Field(i int) string {
	if i < 0 || i >= len(r.Body) {
		return ""
	}
	return r.Body[i]
}

// Load reads and parses a content file.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON array of records.
func Parse(data []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}
	var records []Record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}
	return records, nil
}
