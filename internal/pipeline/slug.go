package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases s and collapses every run of characters outside
// [a-z0-9] into one hyphen. Leading and trailing hyphens are kept.
func Slugify(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "-")
}

// slugIDs generates heading ids with Slugify, suffixing "-1", "-2", ...
// when a slug repeats within one document. Implements parser.IDs.
type slugIDs struct {
	used map[string]bool
}

func newSlugIDs() *slugIDs {
	return &slugIDs{used: make(map[string]bool)}
}

func (s *slugIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	slug := Slugify(string(value))
	id := slug
	for n := 1; s.used[id]; n++ {
		id = slug + "-" + strconv.Itoa(n)
	}
	s.used[id] = true
	return []byte(id)
}

func (s *slugIDs) Put(value []byte) {
	s.used[string(value)] = true
}

var _ parser.IDs = (*slugIDs)(nil)
