package index

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/Bitlatte/notebook/internal/model"
)

// Format is the serialization of the index file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks the format from the file extension. Anything that is not
// .yaml or .yml is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Encode writes posts to w.
func Encode(w io.Writer, posts []model.Post, f Format) error {
	if posts == nil {
		posts = []model.Post{}
	}
	switch f {
	case FormatYAML:
		data, err := yaml.Marshal(posts)
		if err != nil {
			return fmt.Errorf("encode yaml index: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(posts); err != nil {
			return fmt.Errorf("encode json index: %w", err)
		}
		return nil
	}
}

// Decode reads an index from r.
func Decode(r io.Reader, f Format) ([]model.Post, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	var posts []model.Post
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, &posts)
	default:
		err = json.Unmarshal(data, &posts)
	}
	if err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	return posts, nil
}

// Write persists posts at path. The file is written to a temporary sibling and
// renamed into place so readers never observe a partial index.
func Write(path string, posts []model.Post) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary index file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, posts, FormatFor(path)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary index file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to set permissions on index file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move index into place at '%s': %w", path, err)
	}
	return nil
}

// Load reads the index file at path.
func Load(path string) ([]model.Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, FormatFor(path))
}
