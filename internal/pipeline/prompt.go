package pipeline

import (
	"fmt"
	"strings"

	"github.com/parcelworks/ordino/internal/domain"
)

const systemPrompt = "You are a zoning code assistant. Answer only based on provided ordinance text."

const promptTemplate = `You are a helpful assistant that answers zoning questions based solely on the provided ordinance text.

Question: %s

Relevant ordinance sections:
%s

Instructions:
1. Answer the question based ONLY on the provided text
2. Cite specific section numbers
3. If the answer isn't in the provided text, say so
4. Be concise and direct

Answer:`

const sectionDelimiter = "\n\n---\n\n"

// buildPrompt assembles the grounding context by grouping passages under
// their section label, preserving rank order of first appearance.
func buildPrompt(question string, passages []domain.Passage) string {
	type group struct {
		section string
		texts   []string
	}

	var groups []*group
	index := make(map[string]*group)
	for _, p := range passages {
		section := p.Section
		if section == "" {
			section = "Unknown"
		}
		g, ok := index[section]
		if !ok {
			g = &group{section: section}
			index[section] = g
			groups = append(groups, g)
		}
		g.texts = append(g.texts, p.Text)
	}

	blocks := make([]string, 0, len(groups))
	for _, g := range groups {
		blocks = append(blocks, fmt.Sprintf("Section: %s\n%s", g.section, strings.Join(g.texts, "\n\n")))
	}

	return fmt.Sprintf(promptTemplate, question, strings.Join(blocks, sectionDelimiter))
}
