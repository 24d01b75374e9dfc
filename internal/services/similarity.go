package services

import (
	"sort"
	"strings"

	"alfredoptarigan/resume-matcher/internal/models"
)

type SimilarityEngine interface {
	Rank(query string, corpus []models.Candidate) models.RankedResult
	Pairwise(a, b string) float64
}

type similarityEngine struct{}

func NewSimilarityEngine() SimilarityEngine {
	return &similarityEngine{}
}

// Rank fits a tf-idf space on the corpus, projects the query into it and
// orders candidates by cosine similarity. Ties keep corpus order.
func (s *similarityEngine) Rank(query string, corpus []models.Candidate) models.RankedResult {
	if len(corpus) == 0 {
		return models.RankedResult{}
	}

	texts := make([]string, len(corpus))
	for i, c := range corpus {
		texts[i] = c.Text
	}

	space := fitTFIDF(texts)
	queryVec := space.transform(query)

	result := make(models.RankedResult, len(corpus))
	for i, c := range corpus {
		result[i] = models.MatchScore{
			ID:    c.ID,
			Score: cosine(queryVec, space.transform(c.Text)),
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})

	return result
}

// Pairwise scores two texts in a space fitted on both. Empty input scores 0
// without building a space.
func (s *similarityEngine) Pairwise(a, b string) float64 {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0
	}

	space := fitTFIDF([]string{a, b})
	return cosine(space.transform(a), space.transform(b))
}

// TopK returns the first k entries of an already ranked result.
func TopK(result models.RankedResult, k int) models.RankedResult {
	if k < 0 {
		k = 0
	}
	if len(result) <= k {
		return result
	}
	return result[:k]
}
