// Package formatter renders raw model answers into a consistent,
// field-structured presentation chosen from a fixed template registry.
package formatter

import (
	"regexp"
	"strings"

	"github.com/parcelworks/ordino/internal/domain"
)

var placeholderRegex = regexp.MustCompile(`\{([a-z_]+)\}`)

// Formatter selects a template for an answer, extracts its fields and
// renders it. The registry and trigger tables are fixed at construction.
type Formatter struct {
	templates map[TemplateType]template
	triggers  []triggerSet
}

func New() *Formatter {
	return &Formatter{
		templates: defaultTemplates,
		triggers:  defaultTriggers,
	}
}

// Detect picks the template for a question/answer pair. Trigger sets are
// scanned in priority order over the lowercased concatenation; the first
// hit wins and no hit falls back to the simple template.
func (f *Formatter) Detect(question, answer string) TemplateType {
	combined := strings.ToLower(question + " " + answer)
	for _, set := range f.triggers {
		for _, kw := range set.keywords {
			if strings.Contains(combined, kw) {
				return set.kind
			}
		}
	}
	return TemplateSimple
}

// Format renders answer through the detected template and reports which
// template was used. Citations, when present, override the extracted
// reference with up to three distinct section labels. A template whose
// placeholders cannot all be resolved degrades to a minimal rendering.
func (f *Formatter) Format(question, answer string, citations []domain.Citation) (string, TemplateType) {
	kind := f.Detect(question, answer)
	fields := extractFields(answer, kind)

	if len(citations) > 0 {
		refs := make([]string, 0, domain.MaxCitations)
		for _, c := range citations {
			if len(refs) == domain.MaxCitations {
				break
			}
			refs = append(refs, "Section "+c.Section)
		}
		fields["reference"] = strings.Join(refs, ", ")
	}

	rendered, ok := render(f.templates[kind], fields)
	if !ok {
		return minimalFallback(answer, fields), kind
	}
	return rendered, kind
}

// render substitutes every {placeholder} in the template. A placeholder
// with no corresponding field fails the whole rendering.
func render(t template, fields map[string]string) (string, bool) {
	missing := false
	out := placeholderRegex.ReplaceAllStringFunc(t.format, func(m string) string {
		v, ok := fields[m[1:len(m)-1]]
		if !ok {
			missing = true
			return ""
		}
		return v
	})
	if missing {
		return "", false
	}
	return collapseBlankLines(out), true
}

func minimalFallback(answer string, fields map[string]string) string {
	ref := fields["reference"]
	if strings.TrimSpace(ref) == "" {
		ref = fallbackReference
	}
	return "**Answer:** " + answer + "\n\n**Reference:** " + ref
}

// collapseBlankLines squeezes runs of blank lines left behind by empty
// optional fields down to a single separator and trims the edges.
func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blank = true
			continue
		}
		if blank && len(out) > 0 {
			out = append(out, "")
		}
		blank = false
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
