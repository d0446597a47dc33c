package domain

import "regexp"

var sectionNumberRegex = regexp.MustCompile(`(?i)Section\s+(\d+-\d+)`)

// Chunk is a retrievable unit produced by one chunking pass over an
// ordinance document. Immutable after creation; the search index owns it.
type Chunk struct {
	Text          string
	Section       string
	Article       string
	Category      string
	Tokens        int
	HasTables     bool
	HasLists      bool
	SectionNumber string
}

// SectionNumberFrom extracts the "5-603" part from a section header.
// Returns "" when the header carries no recognizable section number.
func SectionNumberFrom(sectionHeader string) string {
	m := sectionNumberRegex.FindStringSubmatch(sectionHeader)
	if m == nil {
		return ""
	}
	return m[1]
}
