// Package site turns the configured pages into a static website.
//
// A Generator resets the output directory, writes the theme assets, builds the
// navigation once and then renders the homepage, one HTML file per single-file
// page, and for each directory-backed page an item page per Markdown file plus
// the paginated collection index. Optional post-build steps run the legacy
// entries, verify internal links and write the metrics textfile and manifest.
//
// Rendering is sequential. The build context is checked between page
// declarations only.
package site
