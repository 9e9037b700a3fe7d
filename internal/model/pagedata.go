package model

import "html/template"

// PageData is handed to the page templates.
type PageData struct {
	SiteTitle string
	PageTitle string
	BaseURL   string
	Sidebar   []Post

	// Listing view.
	Heading    string
	Posts      []Post
	Search     string
	SearchOpen bool

	// Document view.
	Post          *Post
	Meta          string
	Content       template.HTML
	TOC           template.HTML
	Expanded      bool
	ToggleAllHref string
	Scroll        *Scroll
}

// Scroll asks the page to bring an element into view once loaded.
type Scroll struct {
	TargetID string
	Header   bool   // scroll the header of section TargetID
	Block    string // "start" or "center"
	DelayMS  int64
}
