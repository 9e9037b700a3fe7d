package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

// Post is the index record of one note. Frontmatter keys without a dedicated field
// are kept in Extra and written back next to the named fields.
type Post struct {
	ID       string
	Title    string
	Date     string
	Author   string
	Excerpt  string
	Tags     []string
	Filename string
	Extra    map[string]any
}

// Field names as they appear in the index file.
const (
	FieldID       = "id"
	FieldTitle    = "title"
	FieldDate     = "date"
	FieldAuthor   = "author"
	FieldExcerpt  = "excerpt"
	FieldTags     = "tags"
	FieldFilename = "filename"
)

var namedFields = []string{FieldID, FieldTitle, FieldDate, FieldAuthor, FieldExcerpt, FieldTags, FieldFilename}

func isNamed(key string) bool {
	for _, f := range namedFields {
		if f == key {
			return true
		}
	}
	return false
}

// DisplayTitle returns the title, falling back to the filename title-cased with
// dashes and underscores turned into spaces.
func (p Post) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	base := strings.TrimSuffix(path.Base(p.Filename), path.Ext(p.Filename))
	if base == "" || base == "." {
		base = p.ID
	}
	base = strings.ReplaceAll(strings.ReplaceAll(base, "-", " "), "_", " ")
	return cases.Title(language.English).String(base)
}

// fields lists the record as ordered key/value pairs: named fields first, then the
// extra keys sorted by name.
func (p Post) fields() []keyValue {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	kv := []keyValue{
		{FieldID, p.ID},
		{FieldTitle, p.Title},
		{FieldDate, p.Date},
		{FieldAuthor, p.Author},
		{FieldExcerpt, p.Excerpt},
		{FieldTags, tags},
		{FieldFilename, p.Filename},
	}
	keys := make([]string, 0, len(p.Extra))
	for k := range p.Extra {
		if !isNamed(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		kv = append(kv, keyValue{k, p.Extra[k]})
	}
	return kv
}

func (p *Post) set(key string, value any) {
	switch key {
	case FieldID:
		p.ID = scalar(value)
	case FieldTitle:
		p.Title = scalar(value)
	case FieldDate:
		p.Date = scalar(value)
	case FieldAuthor:
		p.Author = scalar(value)
	case FieldExcerpt:
		p.Excerpt = scalar(value)
	case FieldTags:
		p.Tags = list(value)
	case FieldFilename:
		p.Filename = scalar(value)
	default:
		if p.Extra == nil {
			p.Extra = make(map[string]any)
		}
		p.Extra[key] = value
	}
}

type keyValue struct {
	Key   string
	Value any
}

// MarshalJSON writes the named fields in a fixed order followed by the extras.
func (p Post) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range p.fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal field %q: %w", kv.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p *Post) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Post{}
	for k, v := range raw {
		p.set(k, v)
	}
	return nil
}

func (p Post) MarshalYAML() (interface{}, error) {
	fields := p.fields()
	out := make(yaml.MapSlice, 0, len(fields))
	for _, kv := range fields {
		out = append(out, yaml.MapItem{Key: kv.Key, Value: kv.Value})
	}
	return out, nil
}

func (p *Post) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw yaml.MapSlice
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*p = Post{}
	for _, item := range raw {
		p.set(scalar(item.Key), item.Value)
	}
	return nil
}

func scalar(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case time.Time:
		if s.Hour() == 0 && s.Minute() == 0 && s.Second() == 0 {
			return s.Format("2006-01-02")
		}
		return s.Format(time.RFC3339)
	case []string:
		return strings.Join(s, ", ")
	}
	return fmt.Sprint(v)
}

func list(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			out = append(out, scalar(item))
		}
		return out
	case nil:
		return nil
	}
	if s := scalar(v); s != "" {
		return []string{s}
	}
	return nil
}

// FromMetadata builds a Post from frontmatter entries. filename is the slash
// separated path of the note relative to the content directory; the id defaults to
// filename without its extension.
func FromMetadata(meta map[string]any, filename string) Post {
	p := Post{}
	for k, v := range meta {
		p.set(k, v)
	}
	p.Filename = filename
	if p.ID == "" {
		p.ID = strings.TrimSuffix(filename, path.Ext(filename))
	}
	return p
}
