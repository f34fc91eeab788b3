package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"first line", "# Welcome\n\nbody", "Welcome", true},
		{"later line", "intro\n\n# Title  \nmore", "Title", true},
		{"first of many", "# One\n# Two\n", "One", true},
		{"crlf", "# Windows\r\nbody\r\n", "Windows", true},
		{"no space", "#NoSpace\n", "", false},
		{"h2 only", "## Sub\n", "", false},
		{"h3", "### Deep\n", "", false},
		{"indented", "  # Indented\n", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractTitle(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractSubtitle(t *testing.T) {
	assert.Equal(t, "Summary", ExtractSubtitle("# T\n## Summary\n## Later\n"))
	assert.Equal(t, "", ExtractSubtitle("# T\n### not h2\n"))
	assert.Equal(t, "", ExtractSubtitle(""))
}

func TestExtractMetadata(t *testing.T) {
	md := ExtractMetadata("# Hello\n## World\n", "fallback")
	assert.Equal(t, Metadata{Title: "Hello", Description: "World"}, md)

	md = ExtractMetadata("plain text only", "my-first-post")
	assert.Equal(t, "My First Post", md.Title)
	assert.Empty(t, md.Description)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Getting Started", TitleCase("getting-started"))
	assert.Equal(t, "Release Notes", TitleCase("release_notes"))
	assert.Equal(t, "Blog", TitleCase("blog"))
	assert.Equal(t, "Api Docs", TitleCase("API docs"))
	assert.Equal(t, "", TitleCase(""))
}

func TestParse(t *testing.T) {
	t.Run("no frontmatter", func(t *testing.T) {
		raw := []byte("# Title\n\nHello\n")
		doc, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, doc.Body)
		_, ok := doc.Weight()
		assert.False(t, ok)
	})

	t.Run("weight", func(t *testing.T) {
		doc, err := Parse([]byte("---\nweight: 3\n---\n# Title\n"))
		require.NoError(t, err)
		assert.Equal(t, []byte("# Title\n"), doc.Body)
		w, ok := doc.Weight()
		require.True(t, ok)
		assert.Equal(t, 3, w)
	})

	t.Run("empty frontmatter", func(t *testing.T) {
		doc, err := Parse([]byte("---\n---\nbody\n"))
		require.NoError(t, err)
		assert.Equal(t, []byte("body\n"), doc.Body)
	})

	t.Run("crlf", func(t *testing.T) {
		doc, err := Parse([]byte("---\r\nweight: 1\r\n---\r\n# T\r\n"))
		require.NoError(t, err)
		assert.Equal(t, []byte("# T\r\n"), doc.Body)
	})

	t.Run("missing closing delimiter", func(t *testing.T) {
		raw := []byte("---\nweight: 1\n# Title\n")
		doc, err := Parse(raw)
		require.ErrorIs(t, err, ErrMissingClosingDelimiter)
		assert.Equal(t, raw, doc.Body)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		raw := []byte("---\nweight: [1\n---\nbody\n")
		doc, err := Parse(raw)
		require.Error(t, err)
		assert.Equal(t, raw, doc.Body)
	})
}
