package content

import (
	"net/url"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// bodyInfo is what the catalog needs from a markdown body.
type bodyInfo struct {
	title string // first level-1 heading
	links []string
}

var md = goldmark.New()

// analyzeBody parses a markdown body (front matter removed) and extracts
// the first H1 and every link destination.
func analyzeBody(body []byte) bodyInfo {
	var info bodyInfo
	root := md.Parser().Parse(text.NewReader(body))

	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Heading:
			if node.Level == 1 && info.title == "" {
				info.title = strings.TrimSpace(inlineText(node, body))
			}
		case *gmast.Link:
			info.links = append(info.links, string(node.Destination))
		case *gmast.AutoLink:
			info.links = append(info.links, string(node.URL(body)))
		}
		return gmast.WalkContinue, nil
	})

	return info
}

func inlineText(n gmast.Node, src []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return b.String()
}

// ResolveMarkdownLink resolves a link written inside fromSource to the
// docs-relative path of the markdown file it targets.
// ok is false for links that are not relative links to .md/.mdx files
// (external URLs, anchors, absolute routes, doc routes without extension).
func ResolveMarkdownLink(fromSource, dest string) (target string, ok bool) {
	if dest == "" || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "/") {
		return "", false
	}
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	p, err := url.PathUnescape(u.Path)
	if err != nil {
		p = u.Path
	}
	if !isMarkdown(p) {
		return "", false
	}
	target = path.Clean(path.Join(path.Dir(fromSource), p))
	return target, true
}

func isMarkdown(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	return ext == ".md" || ext == ".mdx"
}
