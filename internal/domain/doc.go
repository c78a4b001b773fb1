package domain

import "sort"

// Doc is one content document found in the docs directory.
type Doc struct {
	// ID is the generator doc id: the relative path without extension,
	// with the last segment replaced by a front matter id when present.
	// Example: block-1/variables
	ID string `json:"id"`

	// Source is the file path relative to the docs directory, slash separated.
	// Example: block-1/variables.md
	Source string `json:"source"`

	Title        string `json:"title"`
	SidebarLabel string `json:"sidebar_label,omitempty"`

	// Links holds markdown link destinations found in the body.
	Links []string `json:"links,omitempty"`
}

// Catalog indexes docs by id.
type Catalog map[string]*Doc

// Has reports whether a doc with id exists.
func (c Catalog) Has(id string) bool {
	_, ok := c[id]
	return ok
}

// IDs returns every doc id in sorted order.
func (c Catalog) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
