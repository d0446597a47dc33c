package answercache

import "strings"

// stopWords are dropped during normalization. A query of three or fewer
// words keeps all of them: dropping any could erase all signal.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true,
	"in": true, "on": true, "at": true, "to": true, "for": true,
}

const punctuation = "?.!,;"

// keyTerms is the restricted vocabulary used for fuzzy matching: only
// domain-significant structure, zone, and action nouns count toward the
// overlap ratio.
var keyTerms = map[string]bool{
	"shed": true, "barn": true, "setback": true, "permit": true,
	"chicken": true, "horse": true, "fence": true, "pool": true,
	"ar-1": true, "acre": true, "property line": true, "garage": true,
}

// fuzzyThreshold is the minimum Jaccard overlap of restricted token sets
// for two questions to share a curated answer.
const fuzzyThreshold = 0.7

// Normalize canonicalizes a question for cache keying: lowercase, strip
// punctuation, drop stop words (unless the question is three words or
// fewer). Idempotent.
func Normalize(question string) string {
	n := strings.ToLower(strings.TrimSpace(question))
	for _, p := range punctuation {
		n = strings.ReplaceAll(n, string(p), "")
	}

	words := strings.Fields(n)
	if len(words) <= 3 {
		return strings.Join(words, " ")
	}

	kept := words[:0]
	for _, w := range words {
		if !stopWords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// keyTermSet returns the normalized question's tokens restricted to the
// fuzzy-match vocabulary.
func keyTermSet(normalized string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(normalized) {
		if keyTerms[w] {
			set[w] = true
		}
	}
	return set
}

// similar reports whether two normalized questions overlap enough in
// restricted vocabulary to be treated as the same question.
func similar(a, b string) bool {
	as, bs := keyTermSet(a), keyTermSet(b)
	if len(as) == 0 || len(bs) == 0 {
		return false
	}

	overlap := 0
	for t := range as {
		if bs[t] {
			overlap++
		}
	}
	union := len(as) + len(bs) - overlap

	return float64(overlap)/float64(union) >= fuzzyThreshold
}
