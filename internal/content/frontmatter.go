package content

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

var ErrMissingClosingDelimiter = errors.New("front matter: missing closing ---")

// FrontMatter holds the keys the generator reads from a doc header.
type FrontMatter struct {
	ID           string `yaml:"id"`
	Title        string `yaml:"title"`
	SidebarLabel string `yaml:"sidebar_label"`
}

// splitFrontMatter separates a `---` delimited YAML header from the body.
// Documents without a header return a nil header and the full content.
func splitFrontMatter(content []byte) (header, body []byte, err error) {
	nl := []byte("\n")
	if bytes.Contains(content, []byte("\r\n")) {
		nl = []byte("\r\n")
	}

	open := append([]byte("---"), nl...)
	if !bytes.HasPrefix(content, open) {
		return nil, content, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], nil
	}

	closing := append(append(append([]byte{}, nl...), "---"...), nl...)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		// header closed at EOF without trailing newline
		closingEOF := append(append([]byte{}, nl...), "---"...)
		if bytes.HasSuffix(rest, closingEOF) {
			return rest[:len(rest)-len(closingEOF)], nil, nil
		}
		return nil, nil, ErrMissingClosingDelimiter
	}
	return rest[:idx], rest[idx+len(closing):], nil
}

// parseFrontMatter decodes the header into FrontMatter, ignoring unknown keys.
func parseFrontMatter(header []byte) (FrontMatter, error) {
	var fm FrontMatter
	if len(bytes.TrimSpace(header)) == 0 {
		return fm, nil
	}
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return fm, err
	}
	return fm, nil
}
