// Package legacy renders the per-entry pages of the older list workflow.
//
// An entry source is a Markdown file with a metadata header:
//
//	###
//	title: First post
//	url: posts/first.html
//	data: 2024-05-01
//	description: What this post is about
//	###
//	Body in Markdown...
//
// The body is converted to HTML, the entry's template is executed with the
// header keys plus "main_content", and the result is written to the entry's
// output path. The entry is then prepended to its JSON list file.
package legacy
