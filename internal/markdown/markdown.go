// Package markdown converts a note body into top-level blocks for the outline.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/Bitlatte/notebook/internal/outline"
)

// Converter renders Markdown with goldmark.
type Converter struct {
	md goldmark.Markdown
}

// New returns a converter with GitHub flavoured Markdown and hard wraps enabled.
func New() *Converter {
	return &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
			),
		),
	}
}

// Blocks parses source and returns its top-level nodes, each rendered on its own.
func (c *Converter) Blocks(source []byte) ([]outline.Block, error) {
	doc := c.md.Parser().Parse(text.NewReader(source))
	r := c.md.Renderer()

	var blocks []outline.Block
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		var buf bytes.Buffer
		if err := r.Render(&buf, source, n); err != nil {
			return nil, fmt.Errorf("failed to render %s block: %w", n.Kind(), err)
		}
		blk := outline.Block{Kind: outline.Other, Text: plainText(n, source), HTML: buf.String()}
		if heading, ok := n.(*ast.Heading); ok && heading.Level <= 3 {
			blk.Kind = outline.Kind(heading.Level)
			inner, err := renderChildren(r, source, heading)
			if err != nil {
				return nil, err
			}
			blk.Inner = inner
		}
		blocks = append(blocks, blk)
	}
	return blocks, nil
}

// HTML renders source as one document.
func (c *Converter) HTML(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return buf.String(), nil
}

func renderChildren(r renderer.Renderer, source []byte, n ast.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if err := r.Render(&buf, source, c); err != nil {
			return "", fmt.Errorf("failed to render heading content: %w", err)
		}
	}
	return buf.String(), nil
}

// plainText collects the text of n, one line per nested block.
func plainText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	newline := func() {
		if buf.Len() > 0 && buf.Bytes()[buf.Len()-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if node != n && node.Type() == ast.TypeBlock {
			newline()
		}
		switch t := node.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				newline()
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.CodeBlock, *ast.FencedCodeBlock, *ast.HTMLBlock:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(source))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}
