// Package view composes the listing and document pages from the post index and
// raw note bodies. Pages are built per request; nothing is prerendered.
package view

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Bitlatte/notebook/internal/fetch"
	"github.com/Bitlatte/notebook/internal/filter"
	"github.com/Bitlatte/notebook/internal/frontmatter"
	"github.com/Bitlatte/notebook/internal/markdown"
	"github.com/Bitlatte/notebook/internal/model"
	"github.com/Bitlatte/notebook/internal/outline"
	"github.com/Bitlatte/notebook/internal/toc"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	ListingPath  = "/index.html"
	DocumentPath = "/post.html"

	queryID     = "id"
	querySearch = "search"
	queryGoto   = "goto"
)

// Options configure a Server.
type Options struct {
	SiteTitle   string
	BaseURL     string
	SettleDelay time.Duration
	Logger      *log.Logger
}

// Server renders the two page types.
type Server struct {
	fetcher   fetch.Fetcher
	converter *markdown.Converter
	opts      Options
	pages     map[string]*template.Template
}

func New(f fetch.Fetcher, opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = toc.DefaultSettleDelay
	}
	if opts.BaseURL != "" && !strings.HasSuffix(opts.BaseURL, "/") {
		opts.BaseURL += "/"
	}

	base, err := template.New("base").Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base layout: %w", err)
	}
	pages := make(map[string]*template.Template)
	for _, name := range []string{"listing.html", "post.html"} {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone base layout for %s: %w", name, err)
		}
		if pages[name], err = clone.ParseFS(templateFS, "templates/"+name); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	}

	return &Server{fetcher: f, converter: markdown.New(), opts: opts, pages: pages}, nil
}

// Register mounts the pages on mux. "/" and ListingPath serve the listing.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/{$}", s.handleListing)
	mux.HandleFunc(ListingPath, s.handleListing)
	mux.HandleFunc(DocumentPath, s.handleDocument)
}

func (s *Server) handleListing(w http.ResponseWriter, r *http.Request) {
	posts := s.index(r)
	term := strings.TrimSpace(r.URL.Query().Get(querySearch))

	data := s.page()
	data.PageTitle = s.opts.SiteTitle
	data.Sidebar = posts
	data.Heading = "All posts"
	data.Posts = posts
	if term != "" {
		data.Posts = filter.Posts(posts, term)
		data.Heading = fmt.Sprintf("Search results: %q (%d)", term, len(data.Posts))
		data.Search = term
		data.SearchOpen = true
	}
	s.render(w, "listing.html", data)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := q.Get(queryID)
	if id == "" {
		http.Redirect(w, r, s.listingURL(), http.StatusFound)
		return
	}

	posts, err := s.fetcher.FetchIndex(r.Context())
	data := s.page()
	data.PageTitle = s.opts.SiteTitle
	if err != nil {
		// Without an index the id cannot be resolved; show an empty page.
		s.opts.Logger.Printf("Error fetching posts: %v", err)
		s.render(w, "post.html", data)
		return
	}
	post, ok := fetch.Lookup(posts, id)
	if !ok {
		http.Redirect(w, r, s.listingURL(), http.StatusFound)
		return
	}

	data.Sidebar = posts
	data.Post = &post
	data.PageTitle = post.DisplayTitle() + " - " + s.opts.SiteTitle
	data.Meta = post.Date + " | " + post.Author
	data.Expanded = true

	doc, err := s.Document(r, post)
	if err != nil {
		s.opts.Logger.Printf("Error loading markdown: %v", err)
		s.render(w, "post.html", data)
		return
	}
	data.Content = doc.Content
	data.TOC = doc.TOC
	data.Expanded = doc.Expanded
	data.ToggleAllHref = doc.ToggleAllHref
	data.Scroll = doc.Scroll
	s.render(w, "post.html", data)
}

// Document is the rendered body of one note.
type Document struct {
	Outline       outline.Outline
	Content       template.HTML
	TOC           template.HTML
	Expanded      bool
	ToggleAllHref string
	Scroll        *model.Scroll
}

// Document fetches and renders the body of post, applying the accordion state and
// navigation target carried in the request query.
func (s *Server) Document(r *http.Request, post model.Post) (Document, error) {
	raw, err := s.fetcher.FetchDocument(r.Context(), post.Filename)
	if err != nil {
		return Document{}, err
	}
	blocks, err := s.converter.Blocks([]byte(frontmatter.Strip(raw)))
	if err != nil {
		return Document{}, err
	}
	out := outline.Transform(blocks).WithoutTitle()

	q := r.URL.Query()
	state := toc.StateFromQuery(out.Sections, q)
	rec := &toc.Recorder{}
	nav := toc.NewNavigator(out.Sections, state, rec)
	nav.SettleDelay = s.opts.SettleDelay
	if target := q.Get(queryGoto); target != "" {
		nav.Navigate(target)
	}

	doc := Document{Outline: out, Expanded: state.Expanded()}
	doc.Content = template.HTML(out.Render(outline.RenderOptions{
		Open: state.IsOpen,
		HeaderHref: func(sectionID string) string {
			next := state.Clone()
			next.Toggle(sectionID)
			return s.documentURL(post.ID, next, "")
		},
	}))
	if len(out.Sections) > 0 {
		doc.TOC = template.HTML(toc.Render(out.Sections, func(e toc.Entry) string {
			return s.documentURL(post.ID, state, toc.LinkTarget(e))
		}))
		all := state.Clone()
		all.ToggleAll()
		doc.ToggleAllHref = s.documentURL(post.ID, all, "")
	}
	if t, ok := rec.Last(); ok {
		doc.Scroll = &model.Scroll{
			TargetID: t.ID,
			Header:   t.Header,
			Block:    string(t.Align),
			DelayMS:  t.Delay.Milliseconds(),
		}
	}
	return doc, nil
}

func (s *Server) index(r *http.Request) []model.Post {
	posts, err := s.fetcher.FetchIndex(r.Context())
	if err != nil {
		if errors.Is(err, fetch.ErrNotFound) {
			s.opts.Logger.Printf("Post index not found: %v", err)
		} else {
			s.opts.Logger.Printf("Error fetching posts: %v", err)
		}
		return nil
	}
	return posts
}

func (s *Server) page() model.PageData {
	return model.PageData{SiteTitle: s.opts.SiteTitle, BaseURL: s.opts.BaseURL}
}

func (s *Server) listingURL() string {
	return s.opts.BaseURL + strings.TrimPrefix(ListingPath, "/")
}

func (s *Server) documentURL(id string, state *toc.State, target string) string {
	q := state.Query()
	q.Set(queryID, id)
	if target != "" {
		q.Set(queryGoto, target)
	}
	return s.opts.BaseURL + strings.TrimPrefix(DocumentPath, "/") + "?" + encode(q)
}

// encode keeps the id first so links read naturally.
func encode(q url.Values) string {
	id := q.Get(queryID)
	q.Del(queryID)
	rest := q.Encode()
	out := queryID + "=" + url.QueryEscape(id)
	if rest != "" {
		out += "&" + rest
	}
	return out
}

func (s *Server) render(w http.ResponseWriter, page string, data model.PageData) {
	var buf bytes.Buffer
	if err := s.pages[page].ExecuteTemplate(&buf, "base", data); err != nil {
		s.opts.Logger.Printf("failed to execute template '%s': %v", page, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
