// cmd/build.go
package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Bitlatte/notebook/internal/config"
	"github.com/Bitlatte/notebook/internal/index"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Regenerates the posts index from the content directory",
	Long: `The build command reads every Markdown file under the content directory,
extracts its frontmatter and writes the full post index, newest first, to the
configured index file (default './posts.json'). Files without frontmatter are
left out.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runBuildProcess(appConfig, cmd.OutOrStdout())
		return err
	},
}

func runBuildProcess(cfg config.Config, out io.Writer) (int, error) {
	contentDir := cfg.ContentPath()
	indexPath := cfg.IndexPath()

	res, err := index.Build(contentDir)
	if err != nil {
		if errors.Is(err, index.ErrMissingContentDirectory) {
			return 0, fmt.Errorf("content directory '%s' not found. Please create it and add your Markdown files", contentDir)
		}
		return 0, err
	}

	for _, s := range res.Skipped {
		switch s.Reason {
		case index.SkipNoFrontmatter:
			fmt.Fprintf(out, "Skipping %s: %s\n", s.Filename, s.Reason)
		default:
			fmt.Fprintf(out, "Warning: skipping %s: %s: %v\n", s.Filename, s.Reason, s.Err)
		}
	}
	for _, p := range res.Posts {
		if _, ok := index.ParseDate(p.Date); !ok && p.Date != "" {
			fmt.Fprintf(out, "Warning: could not parse date '%s' for %s. Please use YYYY-MM-DD or RFC3339 format.\n", p.Date, p.Filename)
		}
	}

	if err := index.Write(indexPath, res.Posts); err != nil {
		return 0, err
	}
	fmt.Fprintf(out, "Successfully generated %s with %d posts.\n", indexPath, len(res.Posts))
	return len(res.Posts), nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
