package ml

import (
	"errors"
	"math"
	"sort"
)

// ErrEmptyVocabulary is returned when no document yields a single term
var ErrEmptyVocabulary = errors.New("empty vocabulary: documents may only contain stop words")

// feature is a single non-zero entry of a sparse document vector
type feature struct {
	index int
	value float64
}

// sparseVector is a document vector sorted by feature index
type sparseVector []feature

func (v sparseVector) dot(dense []float64) float64 {
	sum := 0.0
	for _, f := range v {
		sum += f.value * dense[f.index]
	}
	return sum
}

// tfidfVectorizer maps documents to L2-normalized TF-IDF vectors.
// It is immutable after fit.
type tfidfVectorizer struct {
	analyzer   *analyzer
	vocabulary map[string]int
	idf        []float64
}

// fitTfidf learns the vocabulary and smoothed IDF weights from docs and
// returns their vectors.
func fitTfidf(a *analyzer, docs []string) (*tfidfVectorizer, []sparseVector, error) {
	analyzed := make([][]string, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		terms := a.analyze(doc)
		analyzed[i] = terms
		seen := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	if len(df) == 0 {
		return nil, nil, ErrEmptyVocabulary
	}

	// Feature indices follow the sorted term order.
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v := &tfidfVectorizer{
		analyzer:   a,
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
	}
	n := float64(len(docs))
	for i, term := range terms {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make([]sparseVector, len(docs))
	for i, doc := range analyzed {
		vectors[i] = v.vectorize(doc)
	}
	return v, vectors, nil
}

// transform vectorizes a single document. Unknown terms are ignored.
func (v *tfidfVectorizer) transform(doc string) sparseVector {
	return v.vectorize(v.analyzer.analyze(doc))
}

func (v *tfidfVectorizer) vectorize(terms []string) sparseVector {
	counts := make(map[int]float64, len(terms))
	for _, term := range terms {
		if idx, ok := v.vocabulary[term]; ok {
			counts[idx]++
		}
	}

	vec := make(sparseVector, 0, len(counts))
	norm := 0.0
	for idx, tf := range counts {
		w := tf * v.idf[idx]
		vec = append(vec, feature{index: idx, value: w})
		norm += w * w
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].index < vec[j].index })

	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i].value /= norm
		}
	}
	return vec
}

func (v *tfidfVectorizer) size() int {
	return len(v.idf)
}
