// Package index builds the post index from a directory of Markdown notes and
// persists it.
package index

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Bitlatte/notebook/internal/frontmatter"
	"github.com/Bitlatte/notebook/internal/model"
)

// ErrMissingContentDirectory is returned by Build when the content directory does
// not exist.
var ErrMissingContentDirectory = errors.New("content directory not found")

// SkipReason says why a file was left out of the index.
type SkipReason string

const (
	SkipNoFrontmatter SkipReason = "no frontmatter"
	SkipUnreadable    SkipReason = "unreadable"
	SkipDuplicateID   SkipReason = "duplicate id"
)

// Skipped records a file that did not make it into the index.
type Skipped struct {
	Filename string
	Reason   SkipReason
	Err      error
}

// Result is the outcome of one build.
type Result struct {
	Posts   []model.Post
	Skipped []Skipped
}

// Build reads every .md file under contentDir and returns the sorted index.
// Individual bad files are skipped; only a missing or unwalkable directory fails.
func Build(contentDir string) (Result, error) {
	info, err := os.Stat(contentDir)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, fmt.Errorf("%w: %s", ErrMissingContentDirectory, contentDir)
		}
		return Result{}, fmt.Errorf("stat content directory %s: %w", contentDir, err)
	}
	if !info.IsDir() {
		return Result{}, fmt.Errorf("%w: %s is not a directory", ErrMissingContentDirectory, contentDir)
	}

	var res Result
	seen := make(map[string]string)

	walkErr := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error accessing path '%s' during walk: %w", path, err)
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		rel, err := filepath.Rel(contentDir, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		data, err := os.ReadFile(path)
		if err != nil {
			res.Skipped = append(res.Skipped, Skipped{Filename: rel, Reason: SkipUnreadable, Err: err})
			return nil
		}

		meta, ok := frontmatter.Extract(string(data))
		if !ok {
			res.Skipped = append(res.Skipped, Skipped{Filename: rel, Reason: SkipNoFrontmatter})
			return nil
		}

		post := model.FromMetadata(meta, rel)
		if first, dup := seen[post.ID]; dup {
			res.Skipped = append(res.Skipped, Skipped{
				Filename: rel,
				Reason:   SkipDuplicateID,
				Err:      fmt.Errorf("id %q already used by %s", post.ID, first),
			})
			return nil
		}
		seen[post.ID] = rel
		res.Posts = append(res.Posts, post)
		return nil
	})
	if walkErr != nil {
		return Result{}, fmt.Errorf("error during content collection walk: %w", walkErr)
	}

	Sort(res.Posts)
	return res, nil
}

// Sort orders posts by date, newest first. Posts whose date does not parse go
// after every dated post; ties keep their input order.
func Sort(posts []model.Post) {
	keys := make([]dated, len(posts))
	order := make([]int, len(posts))
	for i := range posts {
		t, ok := ParseDate(posts[i].Date)
		keys[i] = dated{t: t, ok: ok}
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		da, db := keys[order[a]], keys[order[b]]
		if !da.ok || !db.ok {
			return da.ok && !db.ok
		}
		return da.t.After(db.t)
	})
	sorted := make([]model.Post, len(posts))
	for i, k := range order {
		sorted[i] = posts[k]
	}
	copy(posts, sorted)
}
