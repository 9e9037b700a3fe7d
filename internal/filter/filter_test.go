package filter

import (
	"strings"
	"testing"

	"github.com/Bitlatte/notebook/internal/model"
)

var posts = []model.Post{
	{ID: "vm", Title: "Azure VM Basics", Excerpt: "Spinning up machines", Tags: []string{"azure", "compute"}},
	{ID: "net", Title: "Networking", Excerpt: "VNets and subnets", Tags: []string{"Azure"}},
	{ID: "go", Title: "Go notes", Excerpt: "Channels", Tags: nil},
}

func TestPosts(t *testing.T) {
	tests := []struct {
		term string
		want []string
	}{
		{"", []string{"vm", "net", "go"}},
		{"   ", []string{"vm", "net", "go"}},
		{"AZURE", []string{"vm", "net"}},
		{"subnet", []string{"net"}},
		{"comp", []string{"vm"}},
		{" channels ", []string{"go"}},
		{"kubernetes", nil},
	}
	for _, tt := range tests {
		got := Posts(posts, tt.term)
		if len(got) != len(tt.want) {
			t.Errorf("Posts(%q) = %d posts, want %v", tt.term, len(got), tt.want)
			continue
		}
		for i := range got {
			if got[i].ID != tt.want[i] {
				t.Errorf("Posts(%q)[%d] = %s, want %s", tt.term, i, got[i].ID, tt.want[i])
			}
		}
	}
}

func TestEveryResultContainsTerm(t *testing.T) {
	for _, term := range []string{"a", "Net", "S", "zz"} {
		for _, p := range Posts(posts, term) {
			lt := strings.ToLower(term)
			found := strings.Contains(strings.ToLower(p.Title), lt) || strings.Contains(strings.ToLower(p.Excerpt), lt)
			for _, tag := range p.Tags {
				found = found || strings.Contains(strings.ToLower(tag), lt)
			}
			if !found {
				t.Errorf("%s returned for %q but no field contains it", p.ID, term)
			}
		}
	}
}
