package pipeline

import (
	"regexp"
	"strings"
)

// sectionHeading matches a top-level heading line: "#", whitespace, text.
var sectionHeading = regexp.MustCompile(`^#\s+(.*)`)

// Section is one top-level heading of the root document and its body.
type Section struct {
	Title string
	ID    string
	// RawBody holds the lines after the heading, verbatim.
	RawBody string
	// RenderedBody is filled once by the content pipeline.
	RenderedBody string
}

// SplitSections partitions content at top-level headings, in source order.
// Text before the first heading belongs to no section and is dropped.
func SplitSections(content string) []Section {
	var (
		sections []Section
		current  *Section
		body     []string
	)

	flush := func() {
		if current != nil {
			current.RawBody = strings.Join(body, "\n")
			sections = append(sections, *current)
		}
	}

	for _, line := range strings.Split(content, "\n") {
		if m := sectionHeading.FindStringSubmatch(line); m != nil {
			flush()
			title := strings.TrimSpace(m[1])
			current = &Section{Title: title, ID: Slugify(title)}
			body = nil
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	flush()

	return sections
}
