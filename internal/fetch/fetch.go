// Package fetch retrieves the post index and raw note bodies, either from a site
// directory on disk or from a served site over HTTP. Every call is a fresh
// one-shot read; nothing is cached or retried.
package fetch

import (
	"context"
	"errors"

	"github.com/Bitlatte/notebook/internal/model"
)

// ErrNotFound reports a missing index or document.
var ErrNotFound = errors.New("not found")

// ContentPrefix is the path, relative to the site root, under which note bodies
// are addressed by filename.
const ContentPrefix = "content"

// Fetcher retrieves the index and note bodies.
type Fetcher interface {
	FetchIndex(ctx context.Context) ([]model.Post, error)
	FetchDocument(ctx context.Context, filename string) (string, error)
}

// Lookup returns the post with the given id.
func Lookup(posts []model.Post, id string) (model.Post, bool) {
	for _, p := range posts {
		if p.ID == id {
			return p, true
		}
	}
	return model.Post{}, false
}
