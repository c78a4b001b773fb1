package content

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
)

// DefaultWorkers bounds concurrent file parsing.
const DefaultWorkers = 8

// Scanner builds a doc catalog from a docs directory.
type Scanner struct {
	root    string
	workers int
}

// NewScanner creates a scanner for the docs directory root.
func NewScanner(root string) *Scanner {
	return &Scanner{root: root, workers: DefaultWorkers}
}

// WithWorkers overrides the parse concurrency.
func (s *Scanner) WithWorkers(n int) *Scanner {
	if n > 0 {
		s.workers = n
	}
	return s
}

// Scan walks the docs directory and parses every .md/.mdx file.
// Files and directories starting with "_" or "." are skipped, as the
// generator does. Two files resolving to the same id is an error.
func (s *Scanner) Scan(ctx context.Context) (domain.Catalog, error) {
	var sources []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if p != s.root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isMarkdown(name) {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		sources = append(sources, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk docs dir %s: %w", s.root, err)
	}

	docs := make([]*domain.Doc, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(src)))
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", src, err)
			}
			doc, err := ParseDoc(src, data)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	catalog := make(domain.Catalog, len(docs))
	for _, doc := range docs {
		if prev, dup := catalog[doc.ID]; dup {
			return nil, fmt.Errorf("duplicate doc id %q (%s and %s)", doc.ID, prev.Source, doc.Source)
		}
		catalog[doc.ID] = doc
	}
	return catalog, nil
}

// ParseDoc builds a Doc from a docs-relative source path and file content.
func ParseDoc(source string, data []byte) (*domain.Doc, error) {
	header, body, err := splitFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	fm, err := parseFrontMatter(header)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid front matter: %w", source, err)
	}

	info := analyzeBody(body)

	doc := &domain.Doc{
		ID:           docID(source, fm.ID),
		Source:       source,
		Title:        fm.Title,
		SidebarLabel: fm.SidebarLabel,
		Links:        info.links,
	}
	if doc.Title == "" {
		doc.Title = info.title
	}
	if doc.Title == "" {
		doc.Title = doc.ID
	}
	return doc, nil
}

// docID strips the extension and applies a front matter id to the last
// path segment.
// Example: ("block-1/01-vars.md", "variables") -> "block-1/variables"
func docID(source, override string) string {
	id := strings.TrimSuffix(source, path.Ext(source))
	if override == "" {
		return id
	}
	dir := path.Dir(id)
	if dir == "." {
		return override
	}
	return dir + "/" + override
}
