package chunker

import "strings"

// CategoryGeneral is assigned when no category keyword matches.
const CategoryGeneral = "general"

// categoryEntry pairs a category name with the keywords that vote for it.
// Order matters: ties resolve to the earlier entry.
type categoryEntry struct {
	name     string
	keywords []string
}

// defaultCategories is the fixed category table for zoning ordinance text.
var defaultCategories = []categoryEntry{
	{"setback", []string{"setback", "yard", "distance", "feet from", "property line", "boundary"}},
	{"permit", []string{"permit", "approval", "certificate", "application", "license", "authorization"}},
	{"use", []string{"permitted use", "allowed use", "conditional use", "special exception", "prohibited"}},
	{"livestock", []string{"animal", "livestock", "poultry", "horse", "chicken", "fowl", "cattle", "sheep"}},
	{"structure", []string{"building", "structure", "accessory", "shed", "barn", "garage", "dwelling"}},
	{"density", []string{"density", "lot size", "minimum area", "acre", "square feet"}},
	{"height", []string{"height", "stories", "feet tall", "maximum height"}},
	{"parking", []string{"parking", "vehicle", "driveway", "garage"}},
}

// DetectCategory scores the text against every category keyword set and
// returns the best match, or CategoryGeneral when nothing hits.
func (c *Chunker) DetectCategory(text string) string {
	lower := strings.ToLower(text)

	best := CategoryGeneral
	bestScore := 0
	for _, entry := range c.categories {
		score := 0
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			best = entry.name
			bestScore = score
		}
	}
	return best
}
