package formatter

import (
	"regexp"
	"strings"
)

var (
	distanceRegex      = regexp.MustCompile(`(?i)(\d+)\s*(?:feet|ft|foot)`)
	setbackZoneRegex   = regexp.MustCompile(`(?i)(AR-\d+|R-\d+|TR-\d+)`)
	livestockZoneRegex = regexp.MustCompile(`(?i)(AR-\d+|R-\d+|A-\d+)`)
	feeRegex           = regexp.MustCompile(`\$(\d+)`)
	acreRegex          = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*acre`)
	sectionRefRegex    = regexp.MustCompile(`(?i)Section\s+(\d+-\d+)`)
)

const fallbackReference = "See Zoning Ordinance"

// extractFields pulls structured fields out of a raw answer for the
// chosen template. Missing information degrades to default values,
// never to an error.
func extractFields(answer string, kind TemplateType) map[string]string {
	switch kind {
	case TemplateSetback:
		return extractSetback(answer)
	case TemplatePermit:
		return extractPermit(answer)
	case TemplateLivestock:
		return extractLivestock(answer)
	case TemplateUse:
		return extractUse(answer)
	default:
		return extractSimple(answer)
	}
}

func extractSetback(answer string) map[string]string {
	fields := map[string]string{
		"distance":         "Not specified",
		"from_point":       "property line",
		"zone":             "Not specified",
		"structure_type":   "accessory structure",
		"additional_notes": "",
		"reference":        extractReference(answer),
	}

	if m := distanceRegex.FindStringSubmatch(answer); m != nil {
		fields["distance"] = m[1] + " feet"
	}
	if m := setbackZoneRegex.FindStringSubmatch(answer); m != nil {
		fields["zone"] = m[1]
	}

	lower := strings.ToLower(answer)
	switch {
	case strings.Contains(lower, "side"):
		fields["from_point"] = "side property line"
	case strings.Contains(lower, "rear"):
		fields["from_point"] = "rear property line"
	case strings.Contains(lower, "front"):
		fields["from_point"] = "front property line"
	}

	switch {
	case strings.Contains(lower, "shed"):
		fields["structure_type"] = "shed"
	case strings.Contains(lower, "barn"):
		fields["structure_type"] = "barn/agricultural structure"
	case strings.Contains(lower, "garage"):
		fields["structure_type"] = "garage"
	}

	return fields
}

func extractPermit(answer string) map[string]string {
	fields := map[string]string{
		"required":                "Yes",
		"permit_type":             "Zoning Permit",
		"fee_info":                "",
		"process":                 "Submit application to Planning Department",
		"timeline_info":           "",
		"additional_requirements": "",
		"reference":               extractReference(answer),
	}

	lower := strings.ToLower(answer)
	switch {
	case strings.Contains(lower, "not required") || strings.Contains(lower, "no permit"):
		fields["required"] = "No"
	case strings.Contains(lower, "exempt"):
		fields["required"] = "No (Exempt)"
	}

	switch {
	case strings.Contains(lower, "building permit"):
		fields["permit_type"] = "Building Permit"
	case strings.Contains(lower, "special") && strings.Contains(lower, "permit"):
		fields["permit_type"] = "Special Use Permit"
	case strings.Contains(lower, "zoning permit"):
		fields["permit_type"] = "Zoning Permit"
	}

	if m := feeRegex.FindStringSubmatch(answer); m != nil {
		fields["fee_info"] = "**Fee:** $" + m[1]
	}

	return fields
}

var livestockAnimals = []string{"chickens", "horses", "cows", "goats", "sheep", "poultry", "livestock"}

func extractLivestock(answer string) map[string]string {
	fields := map[string]string{
		"animal_type":  "Not specified",
		"allowed":      "Check regulations",
		"zone":         "Not specified",
		"min_lot_size": "Not specified",
		"max_number":   "Not specified",
		"requirements": "",
		"reference":    extractReference(answer),
	}

	lower := strings.ToLower(answer)
	for _, animal := range livestockAnimals {
		if strings.Contains(lower, animal) {
			fields["animal_type"] = strings.ToUpper(animal[:1]) + animal[1:]
			break
		}
	}

	switch {
	case strings.Contains(lower, "not permitted") || strings.Contains(lower, "prohibited"):
		fields["allowed"] = "No"
	case strings.Contains(lower, "permitted") || strings.Contains(lower, "allowed"):
		fields["allowed"] = "Yes"
	}

	if m := acreRegex.FindStringSubmatch(answer); m != nil {
		fields["min_lot_size"] = m[1] + " acres"
	}
	if m := livestockZoneRegex.FindStringSubmatch(answer); m != nil {
		fields["zone"] = m[1]
	}

	return fields
}

func extractUse(answer string) map[string]string {
	fields := map[string]string{
		"use_type":   "Not specified",
		"permitted":  "Check regulations",
		"zone":       "Not specified",
		"conditions": "",
		"process":    "Contact Planning Department",
		"reference":  extractReference(answer),
	}

	lower := strings.ToLower(answer)
	switch {
	case strings.Contains(lower, "permitted by right"):
		fields["permitted"] = "Yes (By Right)"
	case strings.Contains(lower, "special exception"):
		fields["permitted"] = "Yes (With Special Exception)"
	case strings.Contains(lower, "conditional use"):
		fields["permitted"] = "Yes (Conditional)"
	case strings.Contains(lower, "not permitted"):
		fields["permitted"] = "No"
	}

	return fields
}

func extractSimple(answer string) map[string]string {
	first := "See explanation"
	if answer != "" {
		first = strings.SplitN(answer, "\n", 2)[0]
	}
	return map[string]string{
		"answer":      first,
		"explanation": answer,
		"reference":   extractReference(answer),
	}
}

// extractReference collects every "Section N-NNN" mention in the answer.
func extractReference(answer string) string {
	matches := sectionRefRegex.FindAllStringSubmatch(answer, -1)
	if len(matches) == 0 {
		return fallbackReference
	}
	sections := make([]string, 0, len(matches))
	for _, m := range matches {
		sections = append(sections, m[1])
	}
	return "Section " + strings.Join(sections, ", ")
}
