package markdown

import (
	"strings"
	"testing"

	"github.com/Bitlatte/notebook/internal/outline"
)

func TestBlocks(t *testing.T) {
	src := "# Title\n\n## First *part*\n\nSome text.\n\n### Detail `x`\n\n- one\n- two\n\n#### Deep\n"
	blocks, err := New().Blocks([]byte(src))
	if err != nil {
		t.Fatalf("Blocks: %v", err)
	}

	kinds := []outline.Kind{outline.Heading1, outline.Heading2, outline.Other, outline.Heading3, outline.Other, outline.Other}
	if len(blocks) != len(kinds) {
		t.Fatalf("got %d blocks, want %d: %+v", len(blocks), len(kinds), blocks)
	}
	for i, k := range kinds {
		if blocks[i].Kind != k {
			t.Errorf("block %d kind = %v, want %v", i, blocks[i].Kind, k)
		}
	}

	if blocks[1].Text != "First part" {
		t.Errorf("heading text = %q", blocks[1].Text)
	}
	if blocks[1].Inner != "First <em>part</em>" {
		t.Errorf("heading inner = %q", blocks[1].Inner)
	}
	if blocks[3].Text != "Detail x" {
		t.Errorf("h3 text = %q", blocks[3].Text)
	}
	if !strings.HasPrefix(blocks[2].HTML, "<p>Some text.</p>") {
		t.Errorf("paragraph html = %q", blocks[2].HTML)
	}
	if !strings.HasPrefix(blocks[4].HTML, "<ul>") {
		t.Errorf("list html = %q", blocks[4].HTML)
	}
	if blocks[4].Text != "one\ntwo" {
		t.Errorf("list text = %q", blocks[4].Text)
	}
}

func TestBlocksFeedOutline(t *testing.T) {
	blocks, err := New().Blocks([]byte("Intro.\n\n## A\n\ntext\n\n### A1\n\n## B\n"))
	if err != nil {
		t.Fatal(err)
	}
	o := outline.Transform(blocks)
	if len(o.Sections) != 2 || o.Sections[0].Subsections[0].ID != "h3-3" {
		t.Fatalf("sections = %+v", o.Sections)
	}
	if !strings.Contains(o.HTML(), `<h3 id="h3-3">A1</h3>`) {
		t.Fatalf("html = %s", o.HTML())
	}
}

func TestBlocksCodeText(t *testing.T) {
	blocks, err := New().Blocks([]byte("```go\nfmt.Println(1)\n```\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 || blocks[0].Text != "fmt.Println(1)" {
		t.Fatalf("blocks = %+v", blocks)
	}
}

func TestHTML(t *testing.T) {
	out, err := New().HTML([]byte("line one\nline two\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<br") {
		t.Fatalf("expected hard wrap in %q", out)
	}
}
