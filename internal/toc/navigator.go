package toc

import (
	"strings"
	"time"

	"github.com/Bitlatte/notebook/internal/outline"
)

// DefaultSettleDelay matches the accordion expand transition.
const DefaultSettleDelay = 300 * time.Millisecond

type Align string

const (
	AlignStart  Align = "start"
	AlignCenter Align = "center"
)

// Target describes one scroll request. When Header is set the scroller brings
// the header of section ID into view instead of the element itself.
type Target struct {
	ID     string
	Header bool
	Align  Align
	Delay  time.Duration
}

// Scroller performs scroll requests on whatever surface shows the note.
type Scroller interface {
	ScrollIntoView(t Target)
}

// Navigator resolves TOC clicks against the sections of one view.
type Navigator struct {
	Sections    []outline.Section
	State       *State
	Scroller    Scroller
	SettleDelay time.Duration
}

func NewNavigator(sections []outline.Section, state *State, scroller Scroller) *Navigator {
	return &Navigator{Sections: sections, State: state, Scroller: scroller, SettleDelay: DefaultSettleDelay}
}

// NavigateToSection expands a collapsed section the same way its header toggle
// does, then scrolls the header into view. Unknown ids are ignored and reported
// as false.
func (n *Navigator) NavigateToSection(id string) bool {
	if !n.State.Has(id) {
		return false
	}
	n.expand(id)
	n.Scroller.ScrollIntoView(Target{ID: id, Header: true, Align: AlignStart})
	return true
}

// NavigateToSubsection expands the owning section and, after the settle delay,
// scrolls the subsection heading to the center. Nothing happens unless
// subsectionID belongs to sectionID.
func (n *Navigator) NavigateToSubsection(sectionID, subsectionID string) bool {
	if !n.hasSubsection(sectionID, subsectionID) {
		return false
	}
	n.expand(sectionID)
	n.Scroller.ScrollIntoView(Target{ID: subsectionID, Align: AlignCenter, Delay: n.SettleDelay})
	return true
}

// Navigate handles "section" and "section/subsection" targets as used in links.
func (n *Navigator) Navigate(target string) bool {
	sec, sub, ok := strings.Cut(target, "/")
	if !ok {
		return n.NavigateToSection(sec)
	}
	return n.NavigateToSubsection(sec, sub)
}

func (n *Navigator) expand(id string) {
	if !n.State.IsOpen(id) {
		n.State.Toggle(id)
	}
}

func (n *Navigator) hasSubsection(sectionID, subsectionID string) bool {
	if !n.State.Has(sectionID) {
		return false
	}
	for _, s := range n.Sections {
		if s.ID != sectionID {
			continue
		}
		for _, sub := range s.Subsections {
			if sub.ID == subsectionID {
				return true
			}
		}
	}
	return false
}

// LinkTarget is the inverse of Navigate for an entry.
func LinkTarget(e Entry) string {
	if e.SubsectionID == "" {
		return e.SectionID
	}
	return e.SectionID + "/" + e.SubsectionID
}

// Recorder is a Scroller that keeps the requests it receives.
type Recorder struct {
	Targets []Target
}

func (r *Recorder) ScrollIntoView(t Target) {
	r.Targets = append(r.Targets, t)
}

// Last returns the most recent request.
func (r *Recorder) Last() (Target, bool) {
	if len(r.Targets) == 0 {
		return Target{}, false
	}
	return r.Targets[len(r.Targets)-1], true
}
