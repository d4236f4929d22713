package relevance

// Scorer assigns a listing title a non-negative match score against a
// search term. Implementations must be deterministic: the same
// title/term/rating triple always yields the same score.
type Scorer interface {
	Score(title, term, rating string) int
}
