package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Bitlatte/notebook/internal/filter"
	"github.com/Bitlatte/notebook/internal/model"
)

var listSearch string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the indexed notes, optionally filtered by a search term",
	Long: `The list command prints the post index newest first. With --search only
notes whose title, excerpt or tags contain the term (case-insensitive) are shown.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		posts, err := newFetcher(appConfig).FetchIndex(cmd.Context())
		if err != nil {
			return fmt.Errorf("error fetching posts: %w", err)
		}
		printListing(cmd.OutOrStdout(), posts, listSearch)
		return nil
	},
}

func printListing(out io.Writer, posts []model.Post, term string) {
	term = strings.TrimSpace(term)
	if term != "" {
		posts = filter.Posts(posts, term)
		fmt.Fprintln(out, headingStyle.Render(fmt.Sprintf("Search results: %q (%d)", term, len(posts))))
	}
	if len(posts) == 0 {
		fmt.Fprintln(out, emptyStyle.Render("No matching posts found."))
		return
	}
	for _, p := range posts {
		fmt.Fprintf(out, "%s  %s\n", titleStyle.Render(p.DisplayTitle()), metaStyle.Render(p.ID))
		if meta := metaLine(p); meta != "" {
			fmt.Fprintln(out, "  "+metaStyle.Render(meta))
		}
		if p.Excerpt != "" {
			fmt.Fprintln(out, "  "+p.Excerpt)
		}
	}
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "only show notes matching this term")
	listCmd.Flags().StringVar(&remoteURL, "remote", "", "base URL of a served site to read from")
	rootCmd.AddCommand(listCmd)
}
