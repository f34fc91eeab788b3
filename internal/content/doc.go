// Package content reads page metadata out of Markdown sources.
//
// A page's title is its first level-one heading and its description the first
// level-two heading. Both are matched line by line, so headings inside fenced
// code blocks are not special-cased. An optional YAML frontmatter block may carry
// a numeric weight used to order collection items.
package content
