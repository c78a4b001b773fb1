package domain

import (
	"errors"
	"sort"
)

// NodeKind tags a sidebar node variant.
type NodeKind string

const (
	// KindDoc is a leaf pointing to one content document.
	KindDoc NodeKind = "doc"
	// KindCategory is a labeled, ordered group of nodes.
	KindCategory NodeKind = "category"
)

var (
	ErrUnknownSidebar = errors.New("unknown sidebar")
	ErrUnknownDoc     = errors.New("unknown doc")
)

// SidebarNode is either a doc reference or a category.
//
// Only the fields of its Kind are meaningful:
//   - KindDoc: ID
//   - KindCategory: Label, Items
type SidebarNode struct {
	Kind NodeKind

	// ID references a content document (KindDoc).
	// Example: block-1/variables
	ID string

	// Label is the displayed category title (KindCategory).
	Label string

	// Items is the ordered content of a category.
	// Order determines display order and prev/next linkage.
	Items []SidebarNode
}

// DocRef builds a doc reference node.
func DocRef(id string) SidebarNode {
	return SidebarNode{Kind: KindDoc, ID: id}
}

// Category builds a category node.
func Category(label string, items ...SidebarNode) SidebarNode {
	return SidebarNode{Kind: KindCategory, Label: label, Items: items}
}

// Sidebar is one named navigation tree.
type Sidebar struct {
	Name  string
	Items []SidebarNode
}

// VisitFunc is called for every node. parents holds the labels of the
// enclosing categories, outermost first.
type VisitFunc func(node SidebarNode, parents []string)

// Walk visits nodes depth-first in display order.
func (s Sidebar) Walk(fn VisitFunc) {
	walkNodes(s.Items, nil, fn)
}

func walkNodes(nodes []SidebarNode, parents []string, fn VisitFunc) {
	for _, n := range nodes {
		fn(n, parents)
		if n.Kind == KindCategory {
			// copy so callers may retain parents
			next := make([]string, len(parents), len(parents)+1)
			copy(next, parents)
			walkNodes(n.Items, append(next, n.Label), fn)
		}
	}
}

// DocIDs returns every referenced doc id in display order (duplicates kept).
func (s Sidebar) DocIDs() []string {
	var ids []string
	s.Walk(func(n SidebarNode, _ []string) {
		if n.Kind == KindDoc {
			ids = append(ids, n.ID)
		}
	})
	return ids
}

// PrevNext returns the doc ids displayed before and after id.
// Empty strings mean there is no neighbour on that side.
func (s Sidebar) PrevNext(id string) (prev, next string, ok bool) {
	ids := s.DocIDs()
	for i, v := range ids {
		if v != id {
			continue
		}
		if i > 0 {
			prev = ids[i-1]
		}
		if i < len(ids)-1 {
			next = ids[i+1]
		}
		return prev, next, true
	}
	return "", "", false
}

// Sidebars is the full set of trees, keyed by name.
type Sidebars map[string]Sidebar

// Names returns sidebar names in sorted order.
func (s Sidebars) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a sidebar by name.
func (s Sidebars) Get(name string) (Sidebar, error) {
	sb, ok := s[name]
	if !ok {
		return Sidebar{}, ErrUnknownSidebar
	}
	return sb, nil
}

// Location is where a doc sits in the navigation.
type Location struct {
	Sidebar    string   `json:"sidebar"`
	Breadcrumb []string `json:"breadcrumb"`
	Prev       string   `json:"prev,omitempty"`
	Next       string   `json:"next,omitempty"`
}

// Locate finds the first sidebar (in name order) referencing id.
func (s Sidebars) Locate(id string) (Location, error) {
	for _, name := range s.Names() {
		sb := s[name]
		var (
			found      bool
			breadcrumb []string
		)
		sb.Walk(func(n SidebarNode, parents []string) {
			if found || n.Kind != KindDoc || n.ID != id {
				return
			}
			found = true
			breadcrumb = parents
		})
		if !found {
			continue
		}
		prev, next, _ := sb.PrevNext(id)
		if breadcrumb == nil {
			breadcrumb = []string{}
		}
		return Location{Sidebar: name, Breadcrumb: breadcrumb, Prev: prev, Next: next}, nil
	}
	return Location{}, ErrUnknownDoc
}
