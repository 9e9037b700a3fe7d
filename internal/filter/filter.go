// Package filter does case-insensitive substring search over the post index.
package filter

import (
	"strings"

	"github.com/Bitlatte/notebook/internal/model"
)

// Normalize trims and lowercases a search term.
func Normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Match reports whether term occurs in the post's title, excerpt or one of its
// tags. An empty term matches everything.
func Match(p model.Post, term string) bool {
	term = Normalize(term)
	if term == "" {
		return true
	}
	if contains(p.Title, term) || contains(p.Excerpt, term) {
		return true
	}
	for _, tag := range p.Tags {
		if contains(tag, term) {
			return true
		}
	}
	return false
}

// Posts returns the matching posts in index order.
func Posts(posts []model.Post, term string) []model.Post {
	out := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		if Match(p, term) {
			out = append(out, p)
		}
	}
	return out
}

func contains(field, term string) bool {
	return strings.Contains(strings.ToLower(field), term)
}
