package ml

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"sort"

	"github.com/vijayakumarsahana16-san/phishproof/internal/domain/entity"
	"github.com/vijayakumarsahana16-san/phishproof/internal/domain/service"
)

// Options configures the TF-IDF + logistic regression pipeline
type Options struct {
	NGramMin        int
	NGramMax        int
	RemoveStopWords bool
	C               float64
	MaxIterations   int
	BalanceClasses  bool
}

// DefaultOptions returns English stop words, unigrams and bigrams, C=1 and
// balanced class weights with up to 1000 L-BFGS iterations.
func DefaultOptions() Options {
	return Options{
		NGramMin:        1,
		NGramMax:        2,
		RemoveStopWords: true,
		C:               1.0,
		MaxIterations:   1000,
		BalanceClasses:  true,
	}
}

// Trainer fits TF-IDF + logistic regression pipelines
type Trainer struct {
	opts Options
}

// NewTrainer creates a new pipeline trainer
func NewTrainer(opts Options) service.Trainer {
	if opts.NGramMin < 1 {
		opts.NGramMin = 1
	}
	if opts.NGramMax < opts.NGramMin {
		opts.NGramMax = opts.NGramMin
	}
	if opts.C <= 0 {
		opts.C = 1.0
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 1000
	}
	return &Trainer{opts: opts}
}

// Fit learns the vocabulary and classifier weights from samples
func (t *Trainer) Fit(samples []entity.Sample) (service.Pipeline, error) {
	classes := distinctLabels(samples)
	if len(classes) < 2 {
		return nil, fmt.Errorf("%d distinct class(es): %w", len(classes), ErrSingleClass)
	}
	classIndex := make(map[entity.Label]int, len(classes))
	for i, c := range classes {
		classIndex[c] = i
	}

	docs := make([]string, len(samples))
	y := make([]int, len(samples))
	for i, s := range samples {
		docs[i] = s.Text
		y[i] = classIndex[s.Label]
	}

	a := newAnalyzer(t.opts.NGramMin, t.opts.NGramMax, t.opts.RemoveStopWords)
	vectorizer, x, err := fitTfidf(a, docs)
	if err != nil {
		return nil, err
	}

	model, err := fitLogisticRegression(x, y, len(classes), vectorizer.size(), logRegOptions{
		C:             t.opts.C,
		MaxIterations: t.opts.MaxIterations,
		BalanceWeight: t.opts.BalanceClasses,
	})
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		vectorizer: vectorizer,
		model:      model,
		classes:    classes,
	}
	p.fingerprint = p.digest()
	return p, nil
}

// Pipeline is a fitted vectorizer + classifier pair
type Pipeline struct {
	vectorizer  *tfidfVectorizer
	model       *logisticRegression
	classes     []entity.Label
	fingerprint string
}

// Predict classifies a single text
func (p *Pipeline) Predict(text string) *service.Prediction {
	proba := p.model.predictProba(p.vectorizer.transform(text))
	best := 0
	for k := 1; k < len(proba); k++ {
		if proba[k] > proba[best] {
			best = k
		}
	}
	return &service.Prediction{
		Class:         p.classes[best],
		Probabilities: proba,
	}
}

// Classes returns the sorted class labels seen during fit
func (p *Pipeline) Classes() []entity.Label {
	out := make([]entity.Label, len(p.classes))
	copy(out, p.classes)
	return out
}

// Fingerprint identifies the fitted parameters. Pipelines fitted on the
// same data share a fingerprint.
func (p *Pipeline) Fingerprint() string {
	return p.fingerprint
}

// digest hashes the classes, vocabulary, IDF weights and coefficients
func (p *Pipeline) digest() string {
	h := sha256.New()
	buf := make([]byte, 8)
	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf, math.Float64bits(f))
		h.Write(buf)
	}

	for _, c := range p.classes {
		binary.LittleEndian.PutUint64(buf, uint64(int64(c)))
		h.Write(buf)
	}
	terms := make([]string, len(p.vectorizer.idf))
	for term, idx := range p.vectorizer.vocabulary {
		terms[idx] = term
	}
	for i, term := range terms {
		h.Write([]byte(term))
		h.Write([]byte{0})
		writeFloat(p.vectorizer.idf[i])
	}
	for _, w := range p.model.coef {
		writeFloat(w)
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}

// VocabularySize returns the number of learned terms
func (p *Pipeline) VocabularySize() int {
	return p.vectorizer.size()
}

func distinctLabels(samples []entity.Sample) []entity.Label {
	seen := make(map[entity.Label]struct{})
	var labels []entity.Label
	for _, s := range samples {
		if _, ok := seen[s.Label]; ok {
			continue
		}
		seen[s.Label] = struct{}{}
		labels = append(labels, s.Label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}
