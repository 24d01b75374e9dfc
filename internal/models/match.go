package models

// Candidate is one entry of a similarity corpus.
type Candidate struct {
	ID   string
	Text string
}

// MatchScore pairs a candidate with its cosine similarity in [0, 1].
type MatchScore struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// RankedResult is ordered by descending score; ties keep input order.
type RankedResult []MatchScore

func (r RankedResult) IDs() []string {
	ids := make([]string, len(r))
	for i, m := range r {
		ids[i] = m.ID
	}
	return ids
}
