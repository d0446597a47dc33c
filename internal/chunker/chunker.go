// Package chunker splits ordinance text into section-aware, categorized
// chunks sized for embedding.
package chunker

import (
	"regexp"
	"strings"

	"github.com/parcelworks/ordino/internal/domain"
)

// Chunking thresholds.
const (
	// minSectionTokens is the floor below which a section-boundary flush
	// is discarded as fragment noise. The final chunk is exempt.
	minSectionTokens = 100
	// mergeTokenLimit caps the combined size of a merged chunk pair.
	mergeTokenLimit = 1200
)

var (
	sectionRegex = regexp.MustCompile(`(?i)Section\s+(\d+-\d+)`)
	articleRegex = regexp.MustCompile(`(?i)Article\s+(\d+)`)

	listPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*\d+\.`),     // numbered
		regexp.MustCompile(`(?m)^\s*\([a-z]\)`), // lettered (a), (b)
		regexp.MustCompile(`(?m)^\s*[•·\-\*]`),  // bulleted
	}
)

// TokenCounter reports how many tokens a piece of text costs.
type TokenCounter interface {
	Count(text string) int
}

// Chunker is the structure-aware ordinance chunking engine.
type Chunker struct {
	tokens     TokenCounter
	categories []categoryEntry
}

// New creates a Chunker with the default category table.
func New(tokens TokenCounter) *Chunker {
	return &Chunker{tokens: tokens, categories: defaultCategories}
}

// ChunkDocument scans the document line by line and emits chunks that
// respect section boundaries and the maxTokens budget. Section headers
// are re-seeded into overflow continuation chunks for retrieval context,
// so concatenated chunks cover every input line at least once.
func (c *Chunker) ChunkDocument(text string, maxTokens int) []domain.Chunk {
	var chunks []domain.Chunk

	var (
		section string
		article string
		buffer  []string
		tokens  int
	)

	flush := func() {
		chunks = append(chunks, c.build(buffer, section, article, tokens))
	}

	for _, line := range strings.Split(text, "\n") {
		if m := articleRegex.FindStringSubmatch(line); m != nil {
			article = "Article " + m[1]
		}

		if sectionRegex.MatchString(line) {
			if len(buffer) > 0 && tokens > minSectionTokens {
				flush()
			}
			section = strings.TrimSpace(line)
			buffer = []string{line}
			tokens = c.tokens.Count(line)
			continue
		}

		lineTokens := c.tokens.Count(line)
		if tokens+lineTokens > maxTokens && len(buffer) > 0 {
			flush()
			if section != "" {
				buffer = []string{section, line}
				tokens = c.tokens.Count(section) + lineTokens
			} else {
				buffer = []string{line}
				tokens = lineTokens
			}
			continue
		}

		buffer = append(buffer, line)
		tokens += lineTokens
	}

	// Final chunk flushes unconditionally: no minimum-size floor.
	if len(buffer) > 0 {
		flush()
	}

	return chunks
}

// Merge greedily joins adjacent chunks of the same section while the
// combined token count stays under mergeTokenLimit. Single pass, left to
// right; a merged pair is never reconsidered.
func (c *Chunker) Merge(chunks []domain.Chunk) []domain.Chunk {
	merged := make([]domain.Chunk, 0, len(chunks))

	for i := 0; i < len(chunks); i++ {
		cur := chunks[i]

		if i+1 < len(chunks) {
			next := chunks[i+1]
			if cur.Section == next.Section && cur.Tokens+next.Tokens < mergeTokenLimit {
				text := cur.Text + "\n\n" + next.Text
				cur.Text = text
				cur.Tokens += next.Tokens
				cur.Category = c.DetectCategory(text)
				merged = append(merged, cur)
				i++ // consume the merged neighbor
				continue
			}
		}

		merged = append(merged, cur)
	}

	return merged
}

func (c *Chunker) build(lines []string, section, article string, tokens int) domain.Chunk {
	text := strings.Join(lines, "\n")
	return domain.Chunk{
		Text:          text,
		Section:       section,
		Article:       article,
		Category:      c.DetectCategory(text),
		Tokens:        tokens,
		HasTables:     hasTables(text),
		HasLists:      hasLists(text),
		SectionNumber: domain.SectionNumberFrom(section),
	}
}

// hasTables is a heuristic: more than 3 lines containing a tab or two
// consecutive spaces suggests tabular layout.
func hasTables(text string) bool {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "\t") || strings.Contains(line, "  ") {
			count++
		}
	}
	return count > 3
}

func hasLists(text string) bool {
	for _, p := range listPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
