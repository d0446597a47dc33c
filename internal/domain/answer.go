package domain

// MaxCitations caps how many citations a single answer may carry.
const MaxCitations = 3

// Citation points an answer back at an ordinance section.
type Citation struct {
	Section   string  `json:"section"`
	Relevance float64 `json:"relevance"`
}

// Answer is the structured result of one question against one jurisdiction.
type Answer struct {
	Question       string     `json:"question"`
	Answer         string     `json:"answer"`
	Citations      []Citation `json:"citations"`
	Jurisdiction   string     `json:"jurisdiction"`
	Cached         bool       `json:"cached"`
	ChunksSearched int        `json:"chunks_searched"`
}

// CitationsFrom builds at most MaxCitations citations from ranked passages,
// keeping the first occurrence per section and skipping unlabeled passages.
func CitationsFrom(passages []Passage) []Citation {
	seen := make(map[string]bool, MaxCitations)
	citations := make([]Citation, 0, MaxCitations)
	for _, p := range passages {
		if p.Section == "" || seen[p.Section] {
			continue
		}
		seen[p.Section] = true
		citations = append(citations, Citation{
			Section:   p.Section,
			Relevance: p.Relevance(),
		})
		if len(citations) == MaxCitations {
			break
		}
	}
	return citations
}
