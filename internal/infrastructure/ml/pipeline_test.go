package ml

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijayakumarsahana16-san/phishproof/internal/domain/entity"
)

func corpus() []entity.Sample {
	var samples []entity.Sample
	for i := 0; i < 10; i++ {
		samples = append(samples,
			entity.Sample{Text: "lottery winner claim prize", Label: entity.LabelSpam},
			entity.Sample{Text: "verify your bank account password login", Label: entity.LabelPhishing},
			entity.Sample{Text: "see you at dinner tonight mom", Label: entity.LabelHam},
		)
	}
	return samples
}

func TestAnalyzer(t *testing.T) {
	t.Run("lowercases and drops short tokens", func(t *testing.T) {
		a := newAnalyzer(1, 1, false)
		assert.Equal(t, []string{"hello", "world", "42"}, a.tokenize("Hello, WORLD! a 42"))
	})

	t.Run("removes stop words before building bigrams", func(t *testing.T) {
		a := newAnalyzer(1, 2, true)
		terms := a.analyze("click here now to claim")
		assert.Equal(t, []string{"click", "claim", "click claim"}, terms)
	})

	t.Run("keeps unicode letters", func(t *testing.T) {
		a := newAnalyzer(1, 1, false)
		assert.Equal(t, []string{"café", "naïve"}, a.tokenize("Café naïve"))
	})

	t.Run("empty text yields no terms", func(t *testing.T) {
		a := newAnalyzer(1, 2, true)
		assert.Empty(t, a.analyze(""))
	})
}

func TestFitTfidf(t *testing.T) {
	t.Run("vectors are l2 normalized", func(t *testing.T) {
		v, vectors, err := fitTfidf(newAnalyzer(1, 1, false), []string{"spam spam eggs", "eggs ham"})
		require.NoError(t, err)
		assert.Equal(t, 3, v.size())

		for _, vec := range vectors {
			sum := 0.0
			for _, f := range vec {
				sum += f.value * f.value
			}
			assert.InDelta(t, 1.0, sum, 1e-9)
		}
	})

	t.Run("smoothed idf", func(t *testing.T) {
		v, _, err := fitTfidf(newAnalyzer(1, 1, false), []string{"spam eggs", "eggs ham"})
		require.NoError(t, err)

		// eggs appears in both documents, spam in one
		assert.InDelta(t, 1.0, v.idf[v.vocabulary["eggs"]], 1e-9)
		assert.InDelta(t, math.Log(3.0/2.0)+1, v.idf[v.vocabulary["spam"]], 1e-9)
	})

	t.Run("only stop words", func(t *testing.T) {
		_, _, err := fitTfidf(newAnalyzer(1, 2, true), []string{"the and", "of it"})
		assert.ErrorIs(t, err, ErrEmptyVocabulary)
	})

	t.Run("unknown terms are ignored", func(t *testing.T) {
		v, _, err := fitTfidf(newAnalyzer(1, 1, false), []string{"spam eggs"})
		require.NoError(t, err)
		assert.Empty(t, v.transform("completely unseen words"))
	})
}

func TestClassWeights(t *testing.T) {
	weights := classWeights([]int{0, 0, 0, 1}, 2, true)
	assert.InDeltaSlice(t, []float64{4.0 / 6, 4.0 / 6, 4.0 / 6, 2}, weights, 1e-9)

	uniform := classWeights([]int{0, 1}, 2, false)
	assert.Equal(t, []float64{1, 1}, uniform)
}

func TestTrainer_Fit(t *testing.T) {
	t.Run("predicts the class of a memorized phrase", func(t *testing.T) {
		pipeline, err := NewTrainer(DefaultOptions()).Fit(corpus())
		require.NoError(t, err)

		pred := pipeline.Predict("lottery winner claim prize")
		assert.Equal(t, entity.LabelSpam, pred.Class)
		assert.Greater(t, pred.MaxProbability(), 0.5)

		pred = pipeline.Predict("please verify your bank password")
		assert.Equal(t, entity.LabelPhishing, pred.Class)
	})

	t.Run("probabilities sum to one", func(t *testing.T) {
		pipeline, err := NewTrainer(DefaultOptions()).Fit(corpus())
		require.NoError(t, err)

		for _, text := range []string{"", "dinner", "zzz unseen", "lottery"} {
			pred := pipeline.Predict(text)
			require.Len(t, pred.Probabilities, 3)
			sum := 0.0
			for _, p := range pred.Probabilities {
				assert.GreaterOrEqual(t, p, 0.0)
				assert.LessOrEqual(t, p, 1.0)
				sum += p
			}
			assert.InDelta(t, 1.0, sum, 1e-9)
		}
	})

	t.Run("classes are sorted", func(t *testing.T) {
		pipeline, err := NewTrainer(DefaultOptions()).Fit(corpus())
		require.NoError(t, err)
		assert.Equal(t, []entity.Label{0, 1, 2}, pipeline.Classes())
	})

	t.Run("keeps labels outside the known set", func(t *testing.T) {
		samples := []entity.Sample{
			{Text: "alpha beta", Label: 0},
			{Text: "gamma delta", Label: 7},
		}
		pipeline, err := NewTrainer(DefaultOptions()).Fit(samples)
		require.NoError(t, err)
		assert.Equal(t, entity.Label(7), pipeline.Predict("gamma delta").Class)
	})

	t.Run("single class fails", func(t *testing.T) {
		samples := []entity.Sample{{Text: "hello there", Label: 0}, {Text: "good morning", Label: 0}}
		_, err := NewTrainer(DefaultOptions()).Fit(samples)
		assert.ErrorIs(t, err, ErrSingleClass)
	})

	t.Run("repeated fits are identical", func(t *testing.T) {
		a, err := NewTrainer(DefaultOptions()).Fit(corpus())
		require.NoError(t, err)
		b, err := NewTrainer(DefaultOptions()).Fit(corpus())
		require.NoError(t, err)

		assert.Equal(t, a.Predict("claim prize").Probabilities, b.Predict("claim prize").Probabilities)
		assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	})

	t.Run("different labels change the fingerprint", func(t *testing.T) {
		relabeled := corpus()
		for i := range relabeled {
			if relabeled[i].Label == entity.LabelSpam {
				relabeled[i].Label = entity.LabelPhishing
			} else if relabeled[i].Label == entity.LabelPhishing {
				relabeled[i].Label = entity.LabelSpam
			}
		}

		a, err := NewTrainer(DefaultOptions()).Fit(corpus())
		require.NoError(t, err)
		b, err := NewTrainer(DefaultOptions()).Fit(relabeled)
		require.NoError(t, err)

		assert.Len(t, a.Fingerprint(), 32)
		assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	})
}

func TestPipeline_ConcurrentPredict(t *testing.T) {
	pipeline, err := NewTrainer(DefaultOptions()).Fit(corpus())
	require.NoError(t, err)
	want := pipeline.Predict("lottery winner")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := pipeline.Predict("lottery winner")
			assert.Equal(t, want.Class, got.Class)
		}()
	}
	wg.Wait()
}
