// Package expander rewrites lay questions into ordinance-register query
// variants to bridge the vocabulary gap at retrieval time.
package expander

import (
	"regexp"
	"strings"
)

// mapping pairs a colloquial user term with its ordinance-register synonyms.
// Table order fixes the order of generated variants.
type mapping struct {
	term     string
	synonyms []string
}

var termMappings = []mapping{
	// Structures
	{"shed", []string{"accessory structure", "accessory building", "outbuilding", "storage structure"}},
	{"barn", []string{"agricultural structure", "farm building", "livestock shelter", "accessory structure"}},
	{"garage", []string{"accessory structure", "vehicle storage", "carport"}},
	{"pool", []string{"swimming pool", "pool structure", "recreational facility"}},
	{"fence", []string{"fence", "fencing", "enclosure", "barrier"}},
	{"deck", []string{"deck", "patio", "outdoor structure"}},
	{"gazebo", []string{"accessory structure", "pavilion", "outdoor structure"}},

	// Animals
	{"chickens", []string{"poultry", "fowl", "domestic fowl", "birds", "hens"}},
	{"horses", []string{"equine", "livestock", "large animals", "horses"}},
	{"cows", []string{"cattle", "bovine", "livestock", "large animals"}},
	{"goats", []string{"goats", "livestock", "small livestock"}},
	{"pigs", []string{"swine", "hogs", "livestock"}},
	{"bees", []string{"beekeeping", "apiary", "honeybees"}},

	// Distances and measurements
	{"setback", []string{"setback", "yard requirement", "distance", "minimum distance"}},
	{"property line", []string{"property line", "lot line", "boundary", "property boundary"}},
	{"how far", []string{"setback", "distance", "minimum distance", "required distance"}},
	{"distance", []string{"setback", "separation", "spacing", "buffer"}},

	// Permits and approvals
	{"permit", []string{"permit", "approval", "authorization", "certificate", "license"}},
	{"allowed", []string{"permitted", "allowed", "permissible", "authorized"}},
	{"can i", []string{"permitted", "allowed", "may", "permissible"}},
	{"do i need", []string{"required", "necessary", "must", "shall"}},

	// Zones
	{"ar-1", []string{"AR-1", "Agricultural Rural-1", "Agricultural Rural 1"}},
	{"ar-2", []string{"AR-2", "Agricultural Rural-2", "Agricultural Rural 2"}},
	{"residential", []string{"residential", "R-1", "R-2", "R-3", "dwelling"}},

	// Actions
	{"build", []string{"construct", "erect", "establish", "install"}},
	{"add", []string{"construct", "install", "establish", "place"}},
	{"put up", []string{"erect", "construct", "install"}},
	{"have", []string{"keep", "maintain", "house", "raise"}},
	{"raise", []string{"keep", "raise", "maintain", "house"}},

	// Size and area
	{"acre", []string{"acre", "acreage", "lot size", "parcel size"}},
	{"square feet", []string{"square feet", "sq ft", "square footage", "area"}},
	{"size", []string{"area", "dimensions", "square footage", "lot size"}},
}

// QuestionType classifies what kind of answer a question is after.
type QuestionType int

const (
	// QuestionUnknown matches no known pattern.
	QuestionUnknown QuestionType = iota
	// QuestionSetback asks for a distance requirement.
	QuestionSetback
	// QuestionPermit asks whether an approval is needed.
	QuestionPermit
	// QuestionAllowed asks whether something is permitted at all.
	QuestionAllowed
	// QuestionSize asks about minimum dimensions or lot area.
	QuestionSize
)

// questionPatterns are checked in order; the first match wins.
var questionPatterns = []struct {
	qtype   QuestionType
	pattern *regexp.Regexp
}{
	{QuestionSetback, regexp.MustCompile(`(?i)(how far|what.{0,10}setback|distance.{0,10}from)`)},
	{QuestionPermit, regexp.MustCompile(`(?i)(do i need.{0,10}permit|permit.{0,10}required|need.{0,10}approval)`)},
	{QuestionAllowed, regexp.MustCompile(`(?i)(can i|am i allowed|is it permitted|are.{0,10}allowed)`)},
	{QuestionSize, regexp.MustCompile(`(?i)(how big|what size|minimum.{0,10}size|how many.{0,10}acre)`)},
}

// Expander rewrites user questions into retrieval-friendly variants.
type Expander struct{}

// New creates an Expander with the fixed term-mapping table.
func New() *Expander {
	return &Expander{}
}

// Expand lowercases the query, substitutes every mapped term with each of
// its synonyms, and joins the de-duplicated variants with " OR ". The
// result is a textual hint handed to the embedding model, not a boolean
// search expression.
func (e *Expander) Expand(query string) string {
	lower := strings.ToLower(query)

	variants := []string{query}
	seen := map[string]bool{query: true}

	add := func(v string) {
		if !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}

	for _, m := range termMappings {
		if !strings.Contains(lower, m.term) {
			continue
		}
		for _, syn := range m.synonyms {
			add(strings.ReplaceAll(lower, m.term, syn))
		}
	}

	for _, term := range e.questionTerms(DetectQuestionType(lower), lower) {
		add(term)
	}

	return strings.Join(variants, " OR ")
}

// DetectQuestionType classifies the question against the fixed patterns.
func DetectQuestionType(query string) QuestionType {
	for _, qp := range questionPatterns {
		if qp.pattern.MatchString(query) {
			return qp.qtype
		}
	}
	return QuestionUnknown
}

// questionTerms supplies extra retrieval terms per question type.
func (e *Expander) questionTerms(qtype QuestionType, query string) []string {
	switch qtype {
	case QuestionSetback:
		terms := []string{"yard requirements", "minimum distance", "setback requirements"}
		if strings.Contains(query, "shed") || strings.Contains(query, "accessory") {
			terms = append(terms, "accessory structure setback")
		}
		if strings.Contains(query, "barn") {
			terms = append(terms, "agricultural structure setback")
		}
		return terms
	case QuestionPermit:
		return []string{"zoning permit", "building permit", "permit requirements"}
	case QuestionAllowed:
		return []string{"permitted uses", "allowed uses", "use regulations"}
	case QuestionSize:
		return []string{"minimum lot size", "area requirements", "dimensional requirements"}
	default:
		return nil
	}
}

// FocusedVariants builds an ordered, de-duplicated list of focused query
// strings: the original question first, then entity-specific combinations.
func (e *Expander) FocusedVariants(query string) []string {
	lower := strings.ToLower(query)

	queries := []string{query}
	seen := map[string]bool{query: true}

	add := func(q string) {
		if !seen[q] {
			seen[q] = true
			queries = append(queries, q)
		}
	}

	entities := ExtractEntities(query)

	for _, structure := range entities.Structures {
		if strings.Contains(lower, "setback") {
			add(structure + " setback requirements")
			add("accessory structure setback " + structure)
		}
		if strings.Contains(lower, "permit") {
			add(structure + " permit requirements")
		}
	}

	for _, animal := range entities.Animals {
		add(animal + " regulations")
		add("livestock " + animal + " requirements")
		if strings.Contains(lower, "permit") {
			add(animal + " permit requirements")
		}
	}

	for _, zone := range entities.Zones {
		add(zone + " regulations")
		add(zone + " permitted uses")
		if len(entities.Structures) > 0 {
			add(zone + " " + entities.Structures[0] + " requirements")
		}
	}

	return queries
}
