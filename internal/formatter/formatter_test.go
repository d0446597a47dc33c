package formatter

import (
	"strings"
	"testing"

	"github.com/parcelworks/ordino/internal/domain"
)

func TestDetect(t *testing.T) {
	f := New()

	tests := []struct {
		name     string
		question string
		answer   string
		want     TemplateType
	}{
		{"setback trigger", "how far must my shed be from the line", "", TemplateSetback},
		{"permit trigger", "do i need a permit for a fence", "", TemplatePermit},
		{"livestock trigger", "can i keep chickens", "", TemplateLivestock},
		{"use trigger", "is a home business an allowed use", "", TemplateUse},
		{"no trigger", "what is the height limit", "", TemplateSimple},
		{"answer triggers too", "tell me about sheds", "sheds need a zoning permit", TemplatePermit},
		{"setback outranks livestock", "what setback applies for chicken coops", "", TemplateSetback},
		{"permitted in answer outranks livestock", "can i keep chickens", "chickens are permitted in AR-1", TemplatePermit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Detect(tt.question, tt.answer); got != tt.want {
				t.Errorf("Detect(%q, %q) = %q, want %q", tt.question, tt.answer, got, tt.want)
			}
		})
	}
}

func TestFormat_Setback(t *testing.T) {
	f := New()
	answer := "Accessory structures like sheds must be set back 25 feet from side and rear property lines in AR-1. See Section 5-603."

	got, kind := f.Format("how far from property line for accessory structure", answer, nil)

	if kind != TemplateSetback {
		t.Fatalf("kind = %q, want setback", kind)
	}
	for _, want := range []string{
		"**Distance Required:** 25 feet",
		"**Measured From:** side property line",
		"**Applicable Zone:** AR-1",
		"**Structure Type:** shed",
		"**Reference:** Section 5-603",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("formatted answer missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "{") {
		t.Errorf("unresolved placeholder in output:\n%s", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("blank lines not collapsed:\n%s", got)
	}
}

func TestFormat_Permit(t *testing.T) {
	f := New()
	answer := "No permit is required for fences under 6 feet. Otherwise a zoning permit costs $50."

	got, kind := f.Format("do i need a permit for a fence", answer, nil)

	if kind != TemplatePermit {
		t.Fatalf("kind = %q, want permit", kind)
	}
	for _, want := range []string{
		"**Permit Required:** No",
		"**Permit Type:** Zoning Permit",
		"**Fee:** $50",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("formatted answer missing %q:\n%s", want, got)
		}
	}
}

func TestFormat_Livestock(t *testing.T) {
	f := New()
	answer := "Chickens are allowed in AR-1 on lots of 2 acres or more."

	got, kind := f.Format("can i keep chickens", answer, nil)

	if kind != TemplateLivestock {
		t.Fatalf("kind = %q, want livestock", kind)
	}
	for _, want := range []string{
		"**Animal Type:** Chickens",
		"**Allowed:** Yes",
		"**Zone:** AR-1",
		"**Minimum Lot Size:** 2 acres",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("formatted answer missing %q:\n%s", want, got)
		}
	}
}

func TestFormat_Simple(t *testing.T) {
	f := New()
	answer := "The maximum building height is 35 feet.\nTaller structures require a variance. See Section 5-604."

	got, kind := f.Format("what is the height limit", answer, nil)

	if kind != TemplateSimple {
		t.Fatalf("kind = %q, want simple", kind)
	}
	if !strings.Contains(got, "**Answer:** The maximum building height is 35 feet.") {
		t.Errorf("first answer line not surfaced:\n%s", got)
	}
	if !strings.Contains(got, "**Reference:** Section 5-604") {
		t.Errorf("reference not extracted:\n%s", got)
	}
}

func TestFormat_CitationsOverrideReference(t *testing.T) {
	f := New()
	citations := []domain.Citation{
		{Section: "5-603"}, {Section: "4-100"}, {Section: "6-101"}, {Section: "7-400"},
	}

	got, _ := f.Format("how far for a shed", "Sheds need a 25 foot setback. See Section 9-999.", citations)

	if !strings.Contains(got, "**Reference:** Section 5-603, Section 4-100, Section 6-101") {
		t.Errorf("citations did not override reference:\n%s", got)
	}
	if strings.Contains(got, "7-400") {
		t.Errorf("more than three citations rendered:\n%s", got)
	}
	if strings.Contains(got, "9-999") {
		t.Errorf("extracted reference survived citation override:\n%s", got)
	}
}

func TestExtractReference(t *testing.T) {
	if got := extractReference("See Section 5-603 and Section 4-100."); got != "Section 5-603, 4-100" {
		t.Errorf("extractReference = %q", got)
	}
	if got := extractReference("no references here"); got != fallbackReference {
		t.Errorf("extractReference fallback = %q", got)
	}
}

func TestRender_MissingFieldFallsBack(t *testing.T) {
	_, ok := render(defaultTemplates[TemplateSetback], map[string]string{"distance": "25 feet"})
	if ok {
		t.Fatal("render must fail when placeholders are unresolved")
	}

	got := minimalFallback("raw answer text", map[string]string{})
	if !strings.Contains(got, "**Answer:** raw answer text") || !strings.Contains(got, fallbackReference) {
		t.Errorf("minimal fallback = %q", got)
	}
}
