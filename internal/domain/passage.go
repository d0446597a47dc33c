package domain

// Passage is a single retrieved ordinance excerpt. Distance is a cosine
// dissimilarity, non-negative, lower = more relevant.
type Passage struct {
	Text     string
	Section  string
	Article  string
	Category string
	Distance float64
}

// Relevance converts the passage distance into a similarity score.
func (p Passage) Relevance() float64 {
	return 1 - p.Distance
}
