package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Bitlatte/notebook/internal/index"
	"github.com/Bitlatte/notebook/internal/model"
)

// HTTP reads from a served site. IndexPath is relative to BaseURL, e.g.
// "posts.json"; documents are requested at BaseURL/content/<filename>.
type HTTP struct {
	BaseURL   string
	IndexPath string
	Client    *http.Client
}

func (h HTTP) FetchIndex(ctx context.Context) ([]model.Post, error) {
	body, err := h.get(ctx, h.IndexPath)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return index.Decode(body, index.FormatFor(h.IndexPath))
}

func (h HTTP) FetchDocument(ctx context.Context, filename string) (string, error) {
	clean, ok := cleanDocumentPath(filename)
	if !ok {
		return "", fmt.Errorf("document %q: %w", filename, ErrNotFound)
	}
	body, err := h.get(ctx, ContentPrefix+"/"+clean)
	if err != nil {
		return "", err
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read document %s: %w", clean, err)
	}
	return string(data), nil
}

func (h HTTP) get(ctx context.Context, rel string) (io.ReadCloser, error) {
	target, err := h.resolve(rel)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", target, err)
	}
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", target, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %s", target, resp.Status)
	}
	return resp.Body, nil
}

func (h HTTP) resolve(rel string) (string, error) {
	base, err := url.Parse(strings.TrimSuffix(h.BaseURL, "/") + "/")
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", h.BaseURL, err)
	}
	segments := strings.Split(rel, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	ref, err := url.Parse(strings.Join(segments, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", rel, err)
	}
	return base.ResolveReference(ref).String(), nil
}
