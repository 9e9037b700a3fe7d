package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Bitlatte/notebook/internal/fetch"
	"github.com/Bitlatte/notebook/internal/frontmatter"
	"github.com/Bitlatte/notebook/internal/markdown"
	"github.com/Bitlatte/notebook/internal/model"
	"github.com/Bitlatte/notebook/internal/outline"
	"github.com/Bitlatte/notebook/internal/toc"
)

var (
	showGoto        string
	showCollapseAll bool
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Prints one note as an outline with its table of contents",
	Long: `The show command prints a note grouped into its level-2 sections, with
collapsed sections reduced to their header. --goto takes a TOC target such as
"section-3" or "section-3/h3-5" and expands the section it points into.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := newFetcher(appConfig)
		posts, err := f.FetchIndex(cmd.Context())
		if err != nil {
			return fmt.Errorf("error fetching posts: %w", err)
		}
		post, ok := fetch.Lookup(posts, args[0])
		if !ok {
			return fmt.Errorf("no note with id %q", args[0])
		}

		out := cmd.OutOrStdout()
		body, err := f.FetchDocument(cmd.Context(), post.Filename)
		if err != nil {
			if errors.Is(err, fetch.ErrNotFound) {
				log.Printf("Note file %s is missing from the content directory", post.Filename)
			} else {
				log.Printf("Error loading note %s: %v", post.Filename, err)
			}
			printHeader(out, post)
			fmt.Fprintln(out, emptyStyle.Render("Error loading post content."))
			return nil
		}
		return printDocument(out, post, body, showGoto, showCollapseAll)
	},
}

func printDocument(out io.Writer, post model.Post, body, target string, collapseAll bool) error {
	blocks, err := markdown.New().Blocks([]byte(frontmatter.Strip(body)))
	if err != nil {
		return err
	}
	doc := outline.Transform(blocks).WithoutTitle()

	state := toc.NewState(doc.Sections)
	if collapseAll {
		state.ToggleAll()
	}
	var rec toc.Recorder
	if target != "" {
		nav := toc.NewNavigator(doc.Sections, state, &rec)
		if !nav.Navigate(target) {
			log.Printf("Unknown section %q in %s", target, post.ID)
		}
	}
	current := ""
	if t, ok := rec.Last(); ok {
		current = t.ID
	}

	printHeader(out, post)

	if entries := toc.Entries(doc.Sections); len(entries) > 0 {
		fmt.Fprintln(out, headingStyle.Render("Contents"))
		for _, e := range entries {
			indent := "  "
			if e.SubsectionID != "" {
				indent = "    "
			}
			fmt.Fprintln(out, indent+mark(e.Target() == current, e.Title))
		}
		fmt.Fprintln(out)
	}

	printBlocks(out, "", doc.Intro)
	for _, s := range doc.Sections {
		if !state.IsOpen(s.ID) {
			fmt.Fprintln(out, mark(s.ID == current, "▸ "+s.Title))
			continue
		}
		fmt.Fprintln(out, mark(s.ID == current, "▾ "+s.Title))
		for _, b := range s.Blocks {
			if b.Kind == outline.Heading3 && b.ID != "" {
				fmt.Fprintln(out, "  "+mark(b.ID == current, b.Text))
				continue
			}
			printBlocks(out, "  ", []outline.Block{b})
		}
	}
	return nil
}

func printHeader(out io.Writer, post model.Post) {
	fmt.Fprintln(out, titleStyle.Render(post.DisplayTitle()))
	if meta := metaLine(post); meta != "" {
		fmt.Fprintln(out, metaStyle.Render(meta))
	}
	fmt.Fprintln(out)
}

func printBlocks(out io.Writer, indent string, blocks []outline.Block) {
	for _, b := range blocks {
		if b.Text == "" {
			continue
		}
		for _, line := range strings.Split(b.Text, "\n") {
			fmt.Fprintln(out, indent+line)
		}
		fmt.Fprintln(out)
	}
}

func mark(current bool, s string) string {
	if current {
		return targetStyle.Render("→ " + s)
	}
	return s
}

func init() {
	showCmd.Flags().StringVar(&showGoto, "goto", "", "TOC target to expand and highlight, e.g. section-3/h3-5")
	showCmd.Flags().BoolVar(&showCollapseAll, "collapse-all", false, "collapse every section")
	showCmd.Flags().StringVar(&remoteURL, "remote", "", "base URL of a served site to read from")
	rootCmd.AddCommand(showCmd)
}
