package toc

import (
	"net/url"
	"strings"

	"github.com/Bitlatte/notebook/internal/outline"
)

// Query keys used to carry accordion state between page views.
const (
	QueryCollapsed = "collapsed"
	QueryExpanded  = "expanded"
)

// State is the accordion state of one document view. Sections start open and the
// expand-all toggle starts expanded.
type State struct {
	order    []string
	open     map[string]bool
	expanded bool
}

func NewState(sections []outline.Section) *State {
	s := &State{open: make(map[string]bool, len(sections)), expanded: true}
	for _, sec := range sections {
		s.order = append(s.order, sec.ID)
		s.open[sec.ID] = true
	}
	return s
}

// StateFromQuery restores a state written by Query. Unknown ids are ignored.
func StateFromQuery(sections []outline.Section, q url.Values) *State {
	s := NewState(sections)
	if q.Get(QueryExpanded) == "0" {
		s.expanded = false
	}
	for _, v := range q[QueryCollapsed] {
		for _, id := range strings.Split(v, ",") {
			if s.Has(id) {
				s.open[id] = false
			}
		}
	}
	return s
}

// Has reports whether id names a section of this view.
func (s *State) Has(id string) bool {
	_, ok := s.open[id]
	return ok
}

func (s *State) IsOpen(id string) bool {
	return s.open[id]
}

// Expanded is the state of the expand-all toggle.
func (s *State) Expanded() bool {
	return s.expanded
}

// Toggle flips one section, like clicking its header. It returns false for an
// unknown id.
func (s *State) Toggle(id string) bool {
	if !s.Has(id) {
		return false
	}
	s.open[id] = !s.open[id]
	return true
}

// ToggleAll flips the expand-all toggle and applies it to every section.
func (s *State) ToggleAll() {
	s.expanded = !s.expanded
	for _, id := range s.order {
		s.open[id] = s.expanded
	}
}

// Collapsed returns the closed sections in document order.
func (s *State) Collapsed() []string {
	var ids []string
	for _, id := range s.order {
		if !s.open[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *State) Clone() *State {
	c := &State{
		order:    append([]string(nil), s.order...),
		open:     make(map[string]bool, len(s.open)),
		expanded: s.expanded,
	}
	for k, v := range s.open {
		c.open[k] = v
	}
	return c
}

// Query encodes the state for a link back to the same view.
func (s *State) Query() url.Values {
	q := url.Values{}
	if ids := s.Collapsed(); len(ids) > 0 {
		q.Set(QueryCollapsed, strings.Join(ids, ","))
	}
	if !s.expanded {
		q.Set(QueryExpanded, "0")
	}
	return q
}
