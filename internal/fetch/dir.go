package fetch

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Bitlatte/notebook/internal/index"
	"github.com/Bitlatte/notebook/internal/model"
)

// Dir reads from a site directory on disk.
type Dir struct {
	IndexFile  string
	ContentDir string
}

func (d Dir) FetchIndex(ctx context.Context) ([]model.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	posts, err := index.Load(d.IndexFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("index %s: %w", d.IndexFile, ErrNotFound)
		}
		return nil, fmt.Errorf("load index %s: %w", d.IndexFile, err)
	}
	return posts, nil
}

func (d Dir) FetchDocument(ctx context.Context, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, ok := cleanDocumentPath(filename)
	if !ok {
		return "", fmt.Errorf("document %q: %w", filename, ErrNotFound)
	}
	data, err := os.ReadFile(filepath.Join(d.ContentDir, filepath.FromSlash(clean)))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("document %s: %w", clean, ErrNotFound)
		}
		return "", fmt.Errorf("read document %s: %w", clean, err)
	}
	return string(data), nil
}

// cleanDocumentPath rejects filenames that would leave the content directory.
func cleanDocumentPath(filename string) (string, bool) {
	if filename == "" || strings.Contains(filename, "\\") {
		return "", false
	}
	clean := path.Clean("/" + filename)[1:]
	if clean == "" || clean != strings.TrimPrefix(filename, "./") {
		return "", false
	}
	return clean, true
}
