package legacy

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/autosite/internal/foundation/errors"
)

// HeaderDelimiter opens and closes the metadata header.
const HeaderDelimiter = "###"

// Source is a parsed entry source file.
type Source struct {
	Header map[string]string
	Body   []byte
}

// ParseSource splits raw into its header and Markdown body. The header starts
// at the first line that is exactly "###"; anything before it is dropped.
// Without such a line the whole input is body and the header is empty.
func ParseSource(raw []byte) (Source, error) {
	lines := splitLines(raw)

	start := -1
	for i, line := range lines {
		if trimEOL(line) == HeaderDelimiter {
			start = i
			break
		}
	}
	if start < 0 {
		return Source{Header: map[string]string{}, Body: raw}, nil
	}

	header := make(map[string]string)
	for i := start + 1; i < len(lines); i++ {
		line := trimEOL(lines[i])
		if strings.TrimSpace(line) == HeaderDelimiter {
			return Source{Header: header, Body: []byte(strings.Join(lines[i+1:], ""))}, nil
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return Source{}, errors.ValidationError(fmt.Sprintf("header line %d is not a key: value pair", i+1)).
				WithContext("line", line).Build()
		}
		header[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return Source{}, errors.ValidationError("header block is not closed with " + HeaderDelimiter).Build()
}

// splitLines splits raw after every newline, keeping line endings.
func splitLines(raw []byte) []string {
	var lines []string
	r := bufio.NewReader(bytes.NewReader(raw))
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if err != nil {
			return lines
		}
	}
}

func trimEOL(line string) string {
	return strings.TrimRight(line, "\r\n")
}
