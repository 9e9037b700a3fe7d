// Package outline regroups a rendered note into collapsible sections.
//
// Every level-2 heading opens a section that owns the blocks up to the next level-2
// heading. Level-3 headings inside a section are recorded as subsections so they
// can be linked to directly. Blocks before the first section form the intro.
// Section and subsection ids come from the block position ("section-3", "h3-5"),
// so they are stable for a given input but change when the note is edited.
package outline

import (
	"fmt"
	"html"
	"strings"
)

// Kind classifies a top-level block.
type Kind int

const (
	Other Kind = iota
	Heading1
	Heading2
	Heading3
)

// Block is one top-level node of a rendered note.
type Block struct {
	Kind Kind
	// Text is the plain text of the block; for headings, the heading text.
	Text string
	// Inner is the rendered content of a heading, without the enclosing tag.
	Inner string
	// HTML is the block as rendered.
	HTML string
	// ID, when set on a heading, replaces the rendered element with one
	// carrying this id.
	ID string
}

func (b Block) render() string {
	if b.ID == "" || b.Kind == Other {
		return b.HTML
	}
	level := int(b.Kind)
	return fmt.Sprintf("<h%d id=\"%s\">%s</h%d>\n", level, html.EscapeString(b.ID), b.Inner, level)
}

type Subsection struct {
	Title string
	ID    string
}

type Section struct {
	Title string
	// Header is the rendered heading content used for the section toggle.
	Header      string
	ID          string
	Subsections []Subsection
	Blocks      []Block
}

// Outline is the result of Transform.
type Outline struct {
	Intro    []Block
	Sections []Section
	source   []Block
}

// Transform folds blocks into an Outline. When blocks contain no level-2 heading
// the outline has no sections and renders the blocks unchanged.
func Transform(blocks []Block) Outline {
	var f fold
	for i, b := range blocks {
		f = f.step(i, b)
	}
	return Outline{Intro: f.intro, Sections: f.sections, source: blocks}
}

// fold accumulates the outline. Once a section exists the last one is the open
// section; opening the next one closes it.
type fold struct {
	intro    []Block
	sections []Section
}

func (f fold) step(i int, b Block) fold {
	switch {
	case b.Kind == Heading2:
		f.sections = append(f.sections, Section{
			Title:  b.Text,
			Header: b.Inner,
			ID:     fmt.Sprintf("section-%d", i),
		})
	case len(f.sections) == 0:
		f.intro = append(f.intro, b)
	case b.Kind == Heading3:
		b.ID = fmt.Sprintf("h3-%d", i)
		cur := f.sections[len(f.sections)-1]
		cur.Subsections = append(cur.Subsections, Subsection{Title: b.Text, ID: b.ID})
		cur.Blocks = append(cur.Blocks, b)
		f.sections[len(f.sections)-1] = cur
	default:
		cur := f.sections[len(f.sections)-1]
		cur.Blocks = append(cur.Blocks, b)
		f.sections[len(f.sections)-1] = cur
	}
	return f
}

// Section returns the section with the given id.
func (o Outline) Section(id string) (Section, bool) {
	for _, s := range o.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// WithoutTitle returns a copy of o without its first level-1 heading, searching
// the intro and then each section in document order. Transform keeps the heading;
// callers that show the note title elsewhere drop it with this.
func (o Outline) WithoutTitle() Outline {
	out := Outline{
		Intro:    append([]Block(nil), o.Intro...),
		Sections: make([]Section, len(o.Sections)),
		source:   append([]Block(nil), o.source...),
	}
	copy(out.Sections, o.Sections)

	if len(o.Sections) == 0 {
		out.source = dropFirstH1(out.source)
		out.Intro = dropFirstH1(out.Intro)
		return out
	}
	if firstH1(out.Intro) >= 0 {
		out.Intro = dropFirstH1(out.Intro)
		return out
	}
	for i, s := range out.Sections {
		if firstH1(s.Blocks) >= 0 {
			s.Blocks = dropFirstH1(append([]Block(nil), s.Blocks...))
			out.Sections[i] = s
			break
		}
	}
	return out
}

func firstH1(blocks []Block) int {
	for i, b := range blocks {
		if b.Kind == Heading1 {
			return i
		}
	}
	return -1
}

func dropFirstH1(blocks []Block) []Block {
	i := firstH1(blocks)
	if i < 0 {
		return blocks
	}
	return append(blocks[:i:i], blocks[i+1:]...)
}

// RenderOptions controls accordion markup.
type RenderOptions struct {
	// Open reports whether a section is expanded. Nil means every section is.
	Open func(sectionID string) bool
	// HeaderHref, when set, renders section headers as links instead of buttons.
	HeaderHref func(sectionID string) string
}

// HTML renders the outline with every section expanded.
func (o Outline) HTML() string {
	return o.Render(RenderOptions{})
}

// Render writes the intro, then each section as a header followed by its content
// region.
func (o Outline) Render(opts RenderOptions) string {
	var b strings.Builder
	if len(o.Sections) == 0 {
		for _, blk := range o.source {
			b.WriteString(blk.HTML)
		}
		return b.String()
	}

	if len(o.Intro) > 0 {
		b.WriteString(`<div class="intro-section">`)
		for _, blk := range o.Intro {
			b.WriteString(blk.render())
		}
		b.WriteString("</div>\n")
	}

	for _, s := range o.Sections {
		open := opts.Open == nil || opts.Open(s.ID)
		id := html.EscapeString(s.ID)
		headerClass, contentClass := "accordion-header", "accordion-content"
		if open {
			headerClass += " active"
			contentClass += " open"
		}
		if opts.HeaderHref != nil {
			fmt.Fprintf(&b, `<a class="%s" data-target="%s" href="%s">%s</a>`,
				headerClass, id, html.EscapeString(opts.HeaderHref(s.ID)), s.Header)
		} else {
			fmt.Fprintf(&b, `<button class="%s" data-target="%s">%s</button>`, headerClass, id, s.Header)
		}
		fmt.Fprintf(&b, "\n<div id=\"%s\" class=\"%s\">\n", id, contentClass)
		for _, blk := range s.Blocks {
			b.WriteString(blk.render())
		}
		b.WriteString("</div>\n")
	}
	return b.String()
}
