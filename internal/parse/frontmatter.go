package parse

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// ErrFrontMatter indicates the front-matter block could not be decoded.
var ErrFrontMatter = errors.New("invalid front matter")

// frontMatterFence delimits the metadata block at the top of the source.
var frontMatterFence = []byte("---")

// metadata is the YAML front-matter shape. Author accepts either a single
// scalar or a list of scalars.
type metadata struct {
	Title  string `yaml:"title"`
	Author any    `yaml:"author"`
	Date   string `yaml:"date"`
}

// splitFrontMatter separates a leading "---" fenced YAML block from the
// markdown body. Sources without a front-matter block are returned whole.
func splitFrontMatter(src []byte) (meta, body []byte) {
	rest, ok := bytes.CutPrefix(src, frontMatterFence)
	if !ok || (len(rest) > 0 && rest[0] != '\n') {
		return nil, src
	}
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return nil, src
	}
	meta = rest[1 : end+1]
	body = rest[end+len("\n---"):]
	body = bytes.TrimPrefix(body, []byte("\n"))
	return meta, body
}

// decodeMetadata parses the front-matter block. A date of "auto" (any case)
// resolves to the current date in ISO form using now.
func decodeMetadata(raw []byte, now func() time.Time) (metadata, error) {
	var m metadata
	if len(bytes.TrimSpace(raw)) == 0 {
		return m, nil
	}
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return metadata{}, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}
	if strings.EqualFold(strings.TrimSpace(m.Date), "auto") {
		m.Date = now().Format("2006-01-02")
	}
	return m, nil
}

// authorNames normalizes the author field to a list of names.
func authorNames(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(t) == "" {
			return nil
		}
		return []string{t}
	case []any:
		names := make([]string, 0, len(t))
		for _, item := range t {
			s := fmt.Sprint(item)
			if strings.TrimSpace(s) == "" {
				continue
			}
			names = append(names, s)
		}
		return names
	default:
		return []string{fmt.Sprint(t)}
	}
}
