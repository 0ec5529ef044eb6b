package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// embedPattern matches ![[reference]]; the reference cannot span "]]".
	embedPattern = regexp.MustCompile(`!\[\[(.*?)\]\]`)

	// fenceLine matches a code fence line, inside blockquotes or lists too.
	fenceLine = regexp.MustCompile("^[\\s>]*(`{3,}|~{3,})(.*)$")
)

// embedMarkerFormat is an HTML comment: goldmark passes it through
// unchanged when unsafe HTML is enabled, and on a line of its own it is an
// HTML block that ends on the same line, so following Markdown is still
// parsed.
const embedMarkerFormat = `<!--embed:%s-->`

func embedMarker(token string) string {
	return fmt.Sprintf(embedMarkerFormat, token)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// protectEmbeds replaces every embed outside fenced code with a marker
// carrying a fresh token. The returned map holds token -> trimmed reference
// for this body only. Embeds inside fences are left as written.
func protectEmbeds(content string) (string, map[string]string) {
	placeholders := make(map[string]string)
	lines := strings.Split(content, "\n")

	var fence string
	for i, line := range lines {
		if m := fenceLine.FindStringSubmatch(line); m != nil {
			switch {
			case fence == "":
				fence = m[1]
			case m[1][0] == fence[0] && len(m[1]) >= len(fence) && strings.TrimSpace(m[2]) == "":
				fence = ""
			}
			continue
		}
		if fence != "" {
			continue
		}
		lines[i] = protectLine(line, placeholders)
	}

	return strings.Join(lines, "\n"), placeholders
}

// protectLine swaps the embeds of one line for markers. A marker that
// starts a line would open an HTML block swallowing the rest of the line,
// so it gets a line break when text follows it; elsewhere it stays inline.
func protectLine(line string, placeholders map[string]string) string {
	locs := embedPattern.FindAllStringSubmatchIndex(line, -1)
	if locs == nil {
		return line
	}

	var b strings.Builder
	last, lineStart := 0, 0
	for _, loc := range locs {
		b.WriteString(line[last:loc[0]])

		token := uuid.NewString()
		placeholders[token] = strings.TrimSpace(line[loc[2]:loc[3]])
		b.WriteString(embedMarker(token))

		if strings.TrimLeft(line[lineStart:loc[0]], " \t>") == "" && strings.TrimSpace(line[loc[1]:]) != "" {
			b.WriteByte('\n')
			lineStart = loc[1]
		}
		last = loc[1]
	}
	b.WriteString(line[last:])

	return b.String()
}
