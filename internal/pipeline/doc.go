// Package pipeline implements the section rendering pipeline.
//
// A root document is split into sections at top-level headings. Each
// section body then goes through:
//   - line ending normalization
//   - embed protection, swapping ![[ref]] outside fenced code for markers
//   - Markdown to HTML conversion via goldmark with the vault syntax
//     (wikilinks, callouts, comments, strikethrough, insertions,
//     highlights, heading anchors)
//   - embed substitution with fragments from the media package
//
// The Assembler then renders all sections into one page with html/template.
// Output is a static page; nothing here touches the filesystem.
package pipeline
