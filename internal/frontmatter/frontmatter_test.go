package frontmatter

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Metadata
	}{
		{
			name: "scalars and list",
			in:   "---\ntitle: Hello World\ndate: 2024-01-02\ntags: [go, notes , web]\n---\n# Body\n",
			want: Metadata{
				"title": "Hello World",
				"date":  "2024-01-02",
				"tags":  []string{"go", "notes", "web"},
			},
		},
		{
			name: "value keeps later colons",
			in:   "---\nexcerpt: time: 10:30\n---\n",
			want: Metadata{"excerpt": "time: 10:30"},
		},
		{
			name: "blank and colonless lines ignored",
			in:   "---\n\ntitle: A\njust words\n: orphan\n---\n",
			want: Metadata{"title": "A"},
		},
		{
			name: "empty list",
			in:   "---\ntags: []\n---\n",
			want: Metadata{"tags": []string{}},
		},
		{
			name: "crlf line endings",
			in:   "---\r\ntitle: Windows\r\n---\r\nbody",
			want: Metadata{"title": "Windows"},
		},
		{
			name: "block list is not parsed",
			in:   "---\ntags:\n  - a\n  - b: c\ntitle: After\n---\n",
			want: Metadata{"tags": "", "title": "After"},
		},
		{
			name: "unclosed brackets stay scalar",
			in:   "---\ntags: [a, b\n---\n",
			want: Metadata{"tags": "[a, b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.in)
			if !ok {
				t.Fatalf("Extract(%q) found no metadata", tt.in)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Extract(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractNoMetadata(t *testing.T) {
	inputs := []string{
		"",
		"# Just markdown\n",
		"\n---\ntitle: late\n---\n",
		"---\ntitle: never closed\n",
		"--- title: inline\n---\n",
		"text\n---\ntitle: x\n---\n",
	}
	for _, in := range inputs {
		if meta, ok := Extract(in); ok {
			t.Errorf("Extract(%q) = %#v, want no metadata", in, meta)
		}
	}
}

func TestMetadataAccessors(t *testing.T) {
	meta := Metadata{"title": "T", "tags": []string{"a", "b"}, "tag": "solo", "empty": ""}

	if got := meta.String("tags"); got != "a, b" {
		t.Errorf("String(tags) = %q", got)
	}
	if got := meta.String("missing"); got != "" {
		t.Errorf("String(missing) = %q", got)
	}
	if got := meta.List("tag"); !reflect.DeepEqual(got, []string{"solo"}) {
		t.Errorf("List(tag) = %#v", got)
	}
	if got := meta.List("empty"); got != nil {
		t.Errorf("List(empty) = %#v, want nil", got)
	}
}

func TestStrip(t *testing.T) {
	doc := "---\ntitle: Hello\ntags: [a]\n---\n# Heading\n\nParagraph.\n"
	got := strings.TrimSpace(Strip(doc))
	if got != "# Heading\n\nParagraph." {
		t.Fatalf("Strip() = %q", got)
	}

	plain := "# No frontmatter\n"
	if got := Strip(plain); got != plain {
		t.Fatalf("Strip(plain) = %q, want unchanged", got)
	}
}
