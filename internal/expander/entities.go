package expander

import (
	"regexp"
	"strings"
)

// Entities groups the concrete things a question mentions.
type Entities struct {
	Structures   []string
	Animals      []string
	Zones        []string
	Measurements []string
}

var (
	structureKeywords = []string{"shed", "barn", "garage", "fence", "pool", "deck", "house", "building"}
	animalKeywords    = []string{"chicken", "horse", "cow", "goat", "pig", "sheep", "bee", "poultry", "livestock"}

	zoneRegex        = regexp.MustCompile(`(?i)\b(AR-\d+|R-\d+|TR-\d+|PD-[A-Z]+)\b`)
	// Units capture in singular form; "2 acres" yields "2 acre".
	measurementRegex = regexp.MustCompile(`\b(\d+)\s*(acre|feet|foot|ft|square feet|sq ft)`)
)

// ExtractEntities scans the question for structures, animals, zone codes,
// and numeric measurements.
func ExtractEntities(query string) Entities {
	lower := strings.ToLower(query)
	var e Entities

	for _, kw := range structureKeywords {
		if strings.Contains(lower, kw) {
			e.Structures = append(e.Structures, kw)
		}
	}

	// Animal keywords are singular; match either form.
	for _, kw := range animalKeywords {
		if strings.Contains(lower, kw) || strings.Contains(lower, kw+"s") {
			e.Animals = append(e.Animals, kw)
		}
	}

	for _, m := range zoneRegex.FindAllString(query, -1) {
		e.Zones = append(e.Zones, m)
	}

	for _, m := range measurementRegex.FindAllStringSubmatch(lower, -1) {
		e.Measurements = append(e.Measurements, m[1]+" "+m[2])
	}

	return e
}
