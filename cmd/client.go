package cmd

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Bitlatte/notebook/internal/config"
	"github.com/Bitlatte/notebook/internal/fetch"
	"github.com/Bitlatte/notebook/internal/model"
)

// remoteURL is shared by the client commands; when set, notes are fetched from a
// served site instead of the local site directory.
var remoteURL string

func newFetcher(cfg config.Config) fetch.Fetcher {
	if remoteURL != "" {
		return fetch.HTTP{
			BaseURL:   remoteURL,
			IndexPath: filepath.Base(cfg.IndexFile),
			Client:    &http.Client{Timeout: 30 * time.Second},
		}
	}
	return fetch.Dir{IndexFile: cfg.IndexPath(), ContentDir: cfg.ContentPath()}
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	metaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headingStyle = lipgloss.NewStyle().Bold(true)
	targetStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	emptyStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8"))
)

// metaLine joins the date, author and tags of a post, skipping empty ones.
func metaLine(p model.Post) string {
	var parts []string
	if p.Date != "" {
		parts = append(parts, p.Date)
	}
	if p.Author != "" {
		parts = append(parts, "by "+p.Author)
	}
	if len(p.Tags) > 0 {
		parts = append(parts, strings.Join(p.Tags, ", "))
	}
	return strings.Join(parts, " • ")
}
