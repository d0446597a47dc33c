package answercache

// curatedSeeds are the fixed question/answer pairs for the most common
// zoning questions. Keys are normalized at construction, so canonical
// phrasings hit exactly and near-phrasings hit through the fuzzy tier.
var curatedSeeds = []struct {
	question string
	entry    Entry
}{
	{
		"can i build a shed in ar-1",
		Entry{
			Answer: "Yes, you can build a shed in AR-1 zones. Sheds are considered accessory structures and are permitted.",
			Fields: map[string]string{
				"distance":       "25 feet",
				"from_point":     "side and rear property lines",
				"zone":           "AR-1",
				"structure_type": "shed/accessory structure",
				"reference":      "Section 5-603",
			},
			TemplateType: "setback",
		},
	},
	{
		"what's the setback for a barn",
		Entry{
			Answer: "In AR-1 zones, barns (agricultural structures) must be set back at least 50 feet from all property lines.",
			Fields: map[string]string{
				"distance":       "50 feet",
				"from_point":     "all property lines",
				"zone":           "AR-1",
				"structure_type": "barn/agricultural structure",
				"reference":      "Section 5-603",
			},
			TemplateType: "setback",
		},
	},
	{
		"how far from property line for accessory structure",
		Entry{
			Answer: "Accessory structures in AR-1 must be at least 25 feet from side and rear property lines.",
			Fields: map[string]string{
				"distance":       "25 feet",
				"from_point":     "side and rear property lines",
				"zone":           "AR-1",
				"structure_type": "accessory structure",
				"reference":      "Section 5-603",
			},
			TemplateType: "setback",
		},
	},
	{
		"do i need a permit for chickens",
		Entry{
			Answer: "No permit is required for chickens in AR-1 zones on lots of 2 acres or more. Chickens are considered agricultural use.",
			Fields: map[string]string{
				"required":                "No",
				"permit_type":             "Not required",
				"additional_requirements": "Minimum 2 acre lot required in AR-1",
				"reference":               "Section 5-102",
			},
			TemplateType: "permit",
		},
	},
	{
		"do i need a permit for a shed",
		Entry{
			Answer: "Yes, a zoning permit is required for sheds over 200 square feet. Sheds 200 sq ft or smaller are exempt.",
			Fields: map[string]string{
				"required":    "Yes (if over 200 sq ft)",
				"permit_type": "Zoning Permit",
				"process":     "Submit application with site plan to Planning Department",
				"reference":   "Section 6-101",
			},
			TemplateType: "permit",
		},
	},
	{
		"permit for fence",
		Entry{
			Answer: "No permit is required for fences up to 6 feet in height in rear and side yards. Front yard fences over 4 feet need a permit.",
			Fields: map[string]string{
				"required":                "Depends on location and height",
				"permit_type":             "Zoning Permit (if required)",
				"additional_requirements": "Max 6 ft in rear/side, max 4 ft in front without permit",
				"reference":               "Section 5-900",
			},
			TemplateType: "permit",
		},
	},
	{
		"are horses allowed on 2 acres",
		Entry{
			Answer: "Yes, horses are allowed on 2 acres in AR-1. The requirement is 1 horse per acre with a minimum of 2 acres.",
			Fields: map[string]string{
				"animal_type":  "Horses",
				"allowed":      "Yes",
				"zone":         "AR-1",
				"min_lot_size": "2 acres",
				"max_number":   "2 horses on 2 acres (1 per acre)",
				"reference":    "Section 5-102",
			},
			TemplateType: "livestock",
		},
	},
	{
		"can i have chickens on 1 acre",
		Entry{
			Answer: "No, chickens require a minimum of 2 acres in AR-1 zones as they are considered agricultural use.",
			Fields: map[string]string{
				"animal_type":  "Chickens/Poultry",
				"allowed":      "No (lot too small)",
				"zone":         "AR-1",
				"min_lot_size": "2 acres",
				"reference":    "Section 5-102",
			},
			TemplateType: "livestock",
		},
	},
	{
		"how many chickens can i have",
		Entry{
			Answer: "In AR-1 zones with 2+ acres, there is no specific limit on chickens for personal/agricultural use. Commercial operations have different requirements.",
			Fields: map[string]string{
				"animal_type":  "Chickens/Poultry",
				"allowed":      "Yes (with 2+ acres)",
				"zone":         "AR-1",
				"min_lot_size": "2 acres",
				"max_number":   "No limit for personal use",
				"requirements": "Must be for personal/agricultural use, not commercial",
				"reference":    "Section 5-102",
			},
			TemplateType: "livestock",
		},
	},
	{
		"maximum shed size without permit",
		Entry{
			Answer: "Sheds 200 square feet or smaller do not require a permit in AR-1 zones.",
			Fields: map[string]string{
				"answer":      "200 square feet",
				"explanation": "Accessory structures 200 sq ft or less are exempt from permit requirements",
				"reference":   "Section 6-101",
			},
			TemplateType: "simple",
		},
	},
	{
		"can i build a pool",
		Entry{
			Answer: "Yes, pools are permitted in AR-1 zones with proper permits and setbacks. Pools must be at least 10 feet from property lines.",
			Fields: map[string]string{
				"required":                "Yes",
				"permit_type":             "Building Permit and Zoning Permit",
				"additional_requirements": "10 ft setback, fencing required",
				"reference":               "Section 5-1000",
			},
			TemplateType: "permit",
		},
	},
	{
		"what can i build in ar-1",
		Entry{
			Answer: "AR-1 permits single-family dwellings, agricultural uses, and accessory structures like sheds, barns, and garages.",
			Fields: map[string]string{
				"answer":      "Single-family homes, agricultural structures, accessory buildings",
				"explanation": "AR-1 is Agricultural Rural district allowing residential and agricultural uses",
				"reference":   "Section 3-102",
			},
			TemplateType: "simple",
		},
	},
	{
		"minimum lot size ar-1",
		Entry{
			Answer: "The minimum lot size in AR-1 is 3 acres for new subdivisions.",
			Fields: map[string]string{
				"answer":      "3 acres",
				"explanation": "AR-1 requires minimum 3 acre lots for new subdivisions",
				"reference":   "Section 4-100",
			},
			TemplateType: "simple",
		},
	},
	{
		"can i run a business from home",
		Entry{
			Answer: "Yes, home businesses are allowed in AR-1 with a Special Exception permit. Restrictions apply on employees, parking, and signage.",
			Fields: map[string]string{
				"use_type":   "Home Business",
				"permitted":  "Yes (With Special Exception)",
				"zone":       "AR-1",
				"conditions": "Limited employees, no retail sales, restricted signage",
				"process":    "Apply for Special Exception through Board of Supervisors",
				"reference":  "Section 5-500",
			},
			TemplateType: "use",
		},
	},
	{
		"shed setback requirements",
		Entry{
			Answer: "Sheds in AR-1 must be at least 25 feet from side and rear property lines.",
			Fields: map[string]string{
				"distance":       "25 feet",
				"from_point":     "side and rear property lines",
				"zone":           "AR-1",
				"structure_type": "shed",
				"reference":      "Section 5-603",
			},
			TemplateType: "setback",
		},
	},
	{
		"garage setback",
		Entry{
			Answer: "Detached garages in AR-1 must be at least 25 feet from side and rear property lines.",
			Fields: map[string]string{
				"distance":       "25 feet",
				"from_point":     "side and rear property lines",
				"zone":           "AR-1",
				"structure_type": "detached garage",
				"reference":      "Section 5-603",
			},
			TemplateType: "setback",
		},
	},
	{
		"fence height limit",
		Entry{
			Answer: "Fences can be up to 6 feet in rear and side yards, 4 feet in front yards without a permit.",
			Fields: map[string]string{
				"answer":      "6 ft (rear/side), 4 ft (front)",
				"explanation": "Height limits vary by yard location. Higher fences require permits.",
				"reference":   "Section 5-900",
			},
			TemplateType: "simple",
		},
	},
	{
		"accessory structure height",
		Entry{
			Answer: "Accessory structures in AR-1 can be up to 25 feet in height.",
			Fields: map[string]string{
				"answer":      "25 feet maximum",
				"explanation": "Height limit for accessory structures in agricultural zones",
				"reference":   "Section 5-604",
			},
			TemplateType: "simple",
		},
	},
	{
		"driveway permit",
		Entry{
			Answer: "A permit is required for new driveways or driveway modifications that connect to public roads.",
			Fields: map[string]string{
				"required":    "Yes",
				"permit_type": "VDOT Land Use Permit",
				"process":     "Apply through VDOT for connections to state roads",
				"reference":   "Section 7-400",
			},
			TemplateType: "permit",
		},
	},
	{
		"beekeeping allowed",
		Entry{
			Answer: "Yes, beekeeping is allowed in AR-1 zones as an agricultural use on lots of 2 acres or more.",
			Fields: map[string]string{
				"animal_type":  "Bees/Beekeeping",
				"allowed":      "Yes",
				"zone":         "AR-1",
				"min_lot_size": "2 acres",
				"requirements": "Hives must be 50 ft from property lines",
				"reference":    "Section 5-102",
			},
			TemplateType: "livestock",
		},
	},
}

var curatedEntries = buildCurated()

func buildCurated() map[string]Entry {
	m := make(map[string]Entry, len(curatedSeeds))
	for _, s := range curatedSeeds {
		m[Normalize(s.question)] = s.entry
	}
	return m
}

func curatedKeyOrder() []string {
	keys := make([]string, 0, len(curatedSeeds))
	for _, s := range curatedSeeds {
		keys = append(keys, Normalize(s.question))
	}
	return keys
}
