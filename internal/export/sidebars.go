// Package export serializes the site definition into the generator's
// expected schemas: sidebars JSON, site config JSON and sitemap XML.
package export

import (
	"encoding/json"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
)

// SidebarItem is one node in the generator's sidebar schema.
type SidebarItem struct {
	Type  string
	ID    string
	Label string
	Items []SidebarItem
}

type docItem struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type categoryItem struct {
	Type  string        `json:"type"`
	Label string        `json:"label"`
	Items []SidebarItem `json:"items"`
}

// MarshalJSON emits {type:"doc",id} or {type:"category",label,items}.
// Category items are always present, even when empty.
func (it SidebarItem) MarshalJSON() ([]byte, error) {
	if it.Type == string(domain.KindCategory) {
		items := it.Items
		if items == nil {
			items = []SidebarItem{}
		}
		return json.Marshal(categoryItem{Type: it.Type, Label: it.Label, Items: items})
	}
	return json.Marshal(docItem{Type: it.Type, ID: it.ID})
}

// SidebarTree converts one domain sidebar into generator items.
func SidebarTree(sb domain.Sidebar) []SidebarItem {
	return convertNodes(sb.Items)
}

func convertNodes(nodes []domain.SidebarNode) []SidebarItem {
	out := make([]SidebarItem, 0, len(nodes))
	for _, n := range nodes {
		switch n.Kind {
		case domain.KindCategory:
			out = append(out, SidebarItem{
				Type:  string(domain.KindCategory),
				Label: n.Label,
				Items: convertNodes(n.Items),
			})
		default:
			out = append(out, SidebarItem{Type: string(domain.KindDoc), ID: n.ID})
		}
	}
	return out
}

// Sidebars converts every tree: sidebar name -> items.
func Sidebars(sidebars domain.Sidebars) map[string][]SidebarItem {
	out := make(map[string][]SidebarItem, len(sidebars))
	for name, sb := range sidebars {
		out[name] = SidebarTree(sb)
	}
	return out
}

// SidebarsJSON renders the sidebars file content.
// encoding/json sorts map keys, so output is stable.
func SidebarsJSON(sidebars domain.Sidebars) ([]byte, error) {
	return json.MarshalIndent(Sidebars(sidebars), "", "  ")
}
