// Package toc renders the table of contents of an outlined note and resolves
// navigation requests against it.
package toc

import (
	"html"
	"strings"

	"github.com/Bitlatte/notebook/internal/outline"
)

// Entry is one TOC line. SubsectionID is empty for section entries.
type Entry struct {
	SectionID    string
	SubsectionID string
	Title        string
}

// Target returns the id the entry points at.
func (e Entry) Target() string {
	if e.SubsectionID != "" {
		return e.SubsectionID
	}
	return e.SectionID
}

// Entries flattens sections into TOC entries in document order.
func Entries(sections []outline.Section) []Entry {
	var out []Entry
	for _, s := range sections {
		out = append(out, Entry{SectionID: s.ID, Title: s.Title})
		for _, sub := range s.Subsections {
			out = append(out, Entry{SectionID: s.ID, SubsectionID: sub.ID, Title: sub.Title})
		}
	}
	return out
}

// Render returns the TOC list markup, or "" when there are no sections. href
// builds the link of each entry.
func Render(sections []outline.Section, href func(Entry) string) string {
	if len(sections) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<ul id="toc-list">` + "\n")
	for _, s := range sections {
		sec := Entry{SectionID: s.ID, Title: s.Title}
		b.WriteString("<li>")
		link(&b, "toc-link", href(sec), sec)
		if len(s.Subsections) > 0 {
			b.WriteString("\n" + `<ul class="toc-sublist">` + "\n")
			for _, sub := range s.Subsections {
				e := Entry{SectionID: s.ID, SubsectionID: sub.ID, Title: sub.Title}
				b.WriteString("<li>")
				link(&b, "toc-sublink", href(e), e)
				b.WriteString("</li>\n")
			}
			b.WriteString("</ul>\n")
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
	return b.String()
}

func link(b *strings.Builder, class, href string, e Entry) {
	b.WriteString(`<a href="`)
	b.WriteString(html.EscapeString(href))
	b.WriteString(`" class="`)
	b.WriteString(class)
	b.WriteString(`" data-section="`)
	b.WriteString(html.EscapeString(e.SectionID))
	if e.SubsectionID != "" {
		b.WriteString(`" data-subsection="`)
		b.WriteString(html.EscapeString(e.SubsectionID))
	}
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(e.Title))
	b.WriteString("</a>")
}
