package content

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Document is a Markdown source split into its optional frontmatter and body.
type Document struct {
	Frontmatter []byte
	Body        []byte
	Fields      map[string]any
}

// Weight returns the integer "weight" frontmatter field, if present.
func (d Document) Weight() (int, bool) {
	switch v := d.Fields["weight"].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// Parse splits raw into frontmatter and body and decodes the frontmatter.
//
// Documents that do not open with a "---" line are returned whole as body.
// On error the returned Document still holds the full input as body so callers
// can degrade to treating the file as plain Markdown.
func Parse(raw []byte) (Document, error) {
	whole := Document{Body: raw, Fields: map[string]any{}}

	nl := detectNewline(raw)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(raw, open) {
		return whole, nil
	}

	start := len(open)
	var fm, body []byte
	if bytes.HasPrefix(raw[start:], open) {
		fm, body = []byte{}, raw[start+len(open):]
	} else {
		closeSeq := []byte(nl + "---" + nl)
		idx := bytes.Index(raw[start:], closeSeq)
		if idx < 0 {
			return whole, ErrMissingClosingDelimiter
		}
		fm = raw[start : start+idx+len(nl)]
		body = raw[start+idx+len(closeSeq):]
	}

	fields := map[string]any{}
	if len(fm) > 0 {
		if err := yaml.Unmarshal(fm, &fields); err != nil {
			return whole, fmt.Errorf("parse frontmatter: %w", err)
		}
		if fields == nil {
			fields = map[string]any{}
		}
	}

	return Document{Frontmatter: fm, Body: body, Fields: fields}, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
