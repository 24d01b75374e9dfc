package services

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// termPattern keeps runs of two or more word characters.
var termPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// tfidfSpace is a vocabulary and idf table fitted on one corpus. It is
// built per call and never shared.
type tfidfSpace struct {
	vocabulary map[string]int
	idf        []float64
}

// fitTFIDF uses smoothed idf: ln((1+n)/(1+df)) + 1.
func fitTFIDF(docs []string) *tfidfSpace {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, term := range tokenizeTerms(doc) {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	space := &tfidfSpace{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
	}
	n := float64(len(docs))
	for i, term := range terms {
		space.vocabulary[term] = i
		space.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	return space
}

// transform returns the L2-normalised tf-idf vector of text. Terms outside
// the fitted vocabulary are ignored; a text with no known terms yields the
// zero vector.
func (s *tfidfSpace) transform(text string) []float64 {
	vec := make([]float64, len(s.idf))
	for _, term := range tokenizeTerms(text) {
		if i, ok := s.vocabulary[term]; ok {
			vec[i]++
		}
	}

	var norm float64
	for i := range vec {
		vec[i] *= s.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm == 0 {
		return vec
	}

	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// cosine expects normalised vectors. The sum runs in vocabulary order so
// cosine(a, b) == cosine(b, a) exactly.
func cosine(a, b []float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}

	switch {
	case dot <= 0:
		return 0
	case dot >= 1 || 1-dot < 1e-9:
		return 1
	}
	return dot
}

func tokenizeTerms(text string) []string {
	matches := termPattern.FindAllString(strings.ToLower(text), -1)

	terms := matches[:0]
	for _, m := range matches {
		if _, stop := englishStopWords[m]; !stop {
			terms = append(terms, m)
		}
	}
	return terms
}
