package formatter

// TemplateType selects the presentation shape for a formatted answer.
// The set is closed; unknown stored tags parse to TemplateSimple.
type TemplateType string

const (
	TemplateSetback   TemplateType = "setback"
	TemplatePermit    TemplateType = "permit"
	TemplateLivestock TemplateType = "livestock"
	TemplateUse       TemplateType = "use"
	TemplateSimple    TemplateType = "simple"
)

// ParseTemplateType maps a stored tag back to a known template type.
func ParseTemplateType(s string) TemplateType {
	switch TemplateType(s) {
	case TemplateSetback, TemplatePermit, TemplateLivestock, TemplateUse, TemplateSimple:
		return TemplateType(s)
	}
	return TemplateSimple
}

type template struct {
	format   string
	required []string
}

var defaultTemplates = map[TemplateType]template{
	TemplateSetback: {
		format: `**Setback Requirements:**

**Distance Required:** {distance}
**Measured From:** {from_point}
**Applicable Zone:** {zone}
**Structure Type:** {structure_type}

{additional_notes}

**Reference:** {reference}`,
		required: []string{"distance", "from_point", "zone", "structure_type", "reference"},
	},

	TemplatePermit: {
		format: `**Permit Requirements:**

**Permit Required:** {required}
**Permit Type:** {permit_type}
{fee_info}
**Application Process:** {process}
{timeline_info}

{additional_requirements}

**Reference:** {reference}`,
		required: []string{"required", "permit_type", "reference"},
	},

	TemplateLivestock: {
		format: `**Livestock/Animal Regulations:**

**Animal Type:** {animal_type}
**Allowed:** {allowed}
**Zone:** {zone}
**Minimum Lot Size:** {min_lot_size}
**Maximum Number:** {max_number}

**Additional Requirements:**
{requirements}

**Reference:** {reference}`,
		required: []string{"animal_type", "allowed", "zone", "reference"},
	},

	TemplateUse: {
		format: `**Use Regulations:**

**Use Type:** {use_type}
**Permitted:** {permitted}
**Zone:** {zone}
{conditions}

**Process:**
{process}

**Reference:** {reference}`,
		required: []string{"use_type", "permitted", "zone", "reference"},
	},

	TemplateSimple: {
		format: `**Answer:** {answer}

**Explanation:** {explanation}

**Reference:** {reference}`,
		required: []string{"answer", "reference"},
	},
}

// triggerSet binds a template type to the keywords that select it.
// Sets are evaluated in declaration order; the first keyword hit wins.
type triggerSet struct {
	kind     TemplateType
	keywords []string
}

var defaultTriggers = []triggerSet{
	{TemplateSetback, []string{"setback", "distance from", "how far", "yards", "feet from"}},
	{TemplatePermit, []string{"permit", "approval", "application", "need permit", "authorization"}},
	{TemplateLivestock, []string{"chicken", "horse", "cow", "livestock", "animal", "poultry", "fowl"}},
	{TemplateUse, []string{"allowed use", "permitted use", "can i use", "conditional use", "special exception"}},
}
