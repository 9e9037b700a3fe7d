// Package frontmatter extracts the "---" delimited metadata block at the top of a
// note.
//
// The parser is line based on purpose: each "key: value" line becomes one entry and
// "[a, b]" values become string lists. Multi-line YAML lists are not supported; a
// "key:" line followed by "- item" lines yields an empty value for key and the item
// lines are ignored, so later keys still parse.
package frontmatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

const delimiter = "---"

// Metadata maps frontmatter keys to either a string or a []string.
type Metadata map[string]any

// String returns the scalar value for key. List values are joined with ", ".
func (m Metadata) String(key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	}
	return ""
}

// List returns the list value for key. A non-empty scalar is returned as a single
// element list.
func (m Metadata) List(key string) []string {
	switch v := m[key].(type) {
	case []string:
		return v
	case string:
		if v != "" {
			return []string{v}
		}
	}
	return nil
}

// Extract returns the metadata of text, or false when text does not open with a
// frontmatter block.
func Extract(text string) (Metadata, bool) {
	block, _, ok := split(text)
	if !ok {
		return nil, false
	}
	return parseLines(block), true
}

// Strip returns the Markdown body following the frontmatter block. Text without a
// block is returned unchanged.
func Strip(text string) string {
	_, rest, ok := split(text)
	if !ok {
		return text
	}
	var meta Metadata
	body, err := frontmatter.MustParse(strings.NewReader(text), &meta, format)
	if err != nil {
		return rest
	}
	return string(body)
}

var format = frontmatter.NewFormat(delimiter, delimiter, unmarshal)

func unmarshal(data []byte, v any) error {
	meta, ok := v.(*Metadata)
	if !ok {
		return fmt.Errorf("frontmatter: unsupported target %T", v)
	}
	*meta = parseLines(string(bytes.TrimSpace(data)))
	return nil
}

// split separates the block contents from the rest of text.
func split(text string) (block, rest string, ok bool) {
	text = strings.TrimPrefix(text, "\ufeff")
	first, remainder, found := strings.Cut(text, "\n")
	if !found || !isDelimiter(first) {
		return "", "", false
	}

	var lines []string
	for {
		line, next, more := strings.Cut(remainder, "\n")
		if isDelimiter(line) {
			return strings.Join(lines, "\n"), next, true
		}
		if !more {
			return "", "", false
		}
		lines = append(lines, line)
		remainder = next
	}
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r") == delimiter
}

func parseLines(block string) Metadata {
	meta := Metadata{}
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		meta[key] = parseValue(strings.TrimSpace(value))
	}
	return meta
}

func parseValue(value string) any {
	if len(value) < 2 || !strings.HasPrefix(value, "[") || !strings.HasSuffix(value, "]") {
		return value
	}
	inner := strings.TrimSpace(value[1 : len(value)-1])
	if inner == "" {
		return []string{}
	}
	parts := strings.Split(inner, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		items = append(items, strings.TrimSpace(p))
	}
	return items
}
