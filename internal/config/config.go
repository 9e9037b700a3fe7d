package config

import (
	"path/filepath"
	"time"
)

type Config struct {
	SiteTitle   string        `mapstructure:"siteTitle"`
	SiteDir     string        `mapstructure:"siteDir"`
	ContentDir  string        `mapstructure:"contentDir"`
	IndexFile   string        `mapstructure:"indexFile"`
	BaseURL     string        `mapstructure:"baseURL"`
	SettleDelay time.Duration `mapstructure:"settleDelay"`
}

// ContentPath is the content directory, resolved against SiteDir when relative.
func (c Config) ContentPath() string {
	return c.resolve(c.ContentDir)
}

// IndexPath is the index file, resolved against SiteDir when relative.
func (c Config) IndexPath() string {
	return c.resolve(c.IndexFile)
}

func (c Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.SiteDir == "" {
		return p
	}
	return filepath.Join(c.SiteDir, p)
}
