package ml

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// ErrSingleClass is returned when the training labels hold fewer than two classes
var ErrSingleClass = errors.New("training data needs samples of at least two classes")

// logisticRegression is a multinomial logistic regression with an L2
// penalty on the weights and unpenalized intercepts.
type logisticRegression struct {
	nClasses  int
	nFeatures int
	// coef holds nClasses rows of nFeatures weights followed by one intercept
	coef []float64
}

type logRegOptions struct {
	C             float64
	MaxIterations int
	BalanceWeight bool
}

// fitLogisticRegression minimizes the weighted cross-entropy of the softmax
// model with L-BFGS. y holds class indices in [0, nClasses).
func fitLogisticRegression(x []sparseVector, y []int, nClasses, nFeatures int, opts logRegOptions) (*logisticRegression, error) {
	if nClasses < 2 {
		return nil, ErrSingleClass
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("feature rows (%d) and labels (%d) differ", len(x), len(y))
	}

	sampleWeight := classWeights(y, nClasses, opts.BalanceWeight)
	stride := nFeatures + 1
	alpha := 1 / opts.C

	// objective computes the loss and, when grad is non-nil, its gradient.
	objective := func(grad, params []float64) float64 {
		if grad != nil {
			for i := range grad {
				grad[i] = 0
			}
		}
		scores := make([]float64, nClasses)
		loss := 0.0
		for i, row := range x {
			for k := 0; k < nClasses; k++ {
				w := params[k*stride : k*stride+nFeatures]
				scores[k] = row.dot(w) + params[k*stride+nFeatures]
			}
			lse := floats.LogSumExp(scores)
			sw := sampleWeight[i]
			loss += sw * (lse - scores[y[i]])
			if grad == nil {
				continue
			}
			for k := 0; k < nClasses; k++ {
				diff := math.Exp(scores[k] - lse)
				if k == y[i] {
					diff--
				}
				diff *= sw
				base := k * stride
				for _, f := range row {
					grad[base+f.index] += diff * f.value
				}
				grad[base+nFeatures] += diff
			}
		}
		for k := 0; k < nClasses; k++ {
			w := params[k*stride : k*stride+nFeatures]
			loss += 0.5 * alpha * floats.Dot(w, w)
			if grad != nil {
				floats.AddScaled(grad[k*stride:k*stride+nFeatures], alpha, w)
			}
		}
		return loss
	}

	problem := optimize.Problem{
		Func: func(params []float64) float64 {
			return objective(nil, params)
		},
		Grad: func(grad, params []float64) {
			objective(grad, params)
		},
	}
	settings := &optimize.Settings{
		MajorIterations:   opts.MaxIterations,
		GradientThreshold: 1e-4,
	}

	x0 := make([]float64, nClasses*stride)
	result, err := optimize.Minimize(problem, x0, settings, &optimize.LBFGS{})
	if result == nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}
	// A stalled line search or the iteration limit still leaves a usable,
	// if unconverged, model.
	if err != nil && floats.HasNaN(result.X) {
		return nil, fmt.Errorf("optimize (%s): %w", result.Status, err)
	}

	return &logisticRegression{
		nClasses:  nClasses,
		nFeatures: nFeatures,
		coef:      result.X,
	}, nil
}

// predictProba returns the softmax probabilities of every class
func (m *logisticRegression) predictProba(x sparseVector) []float64 {
	stride := m.nFeatures + 1
	scores := make([]float64, m.nClasses)
	for k := range scores {
		w := m.coef[k*stride : k*stride+m.nFeatures]
		scores[k] = x.dot(w) + m.coef[k*stride+m.nFeatures]
	}
	lse := floats.LogSumExp(scores)
	for k := range scores {
		scores[k] = math.Exp(scores[k] - lse)
	}
	return scores
}

// classWeights returns per-sample weights. Balanced weighting gives each
// class n_samples / (n_classes * count(class)).
func classWeights(y []int, nClasses int, balanced bool) []float64 {
	weights := make([]float64, len(y))
	if !balanced {
		for i := range weights {
			weights[i] = 1
		}
		return weights
	}

	counts := make([]int, nClasses)
	for _, c := range y {
		counts[c]++
	}
	n := float64(len(y))
	for i, c := range y {
		weights[i] = n / (float64(nClasses) * float64(counts[c]))
	}
	return weights
}
