package service

import "github.com/vijayakumarsahana16-san/phishproof/internal/domain/entity"

// Prediction represents the raw output of a fitted pipeline for one text
type Prediction struct {
	Class         entity.Label `json:"class"`
	Probabilities []float64    `json:"probabilities"`
}

// MaxProbability returns the highest class probability
func (p *Prediction) MaxProbability() float64 {
	best := 0.0
	for _, v := range p.Probabilities {
		if v > best {
			best = v
		}
	}
	return best
}

// Pipeline is a fitted text classifier. Implementations are immutable after
// fitting and safe for concurrent use.
type Pipeline interface {
	// Predict classifies a single text
	Predict(text string) *Prediction

	// Classes returns the class labels in probability order
	Classes() []entity.Label

	// Fingerprint identifies the fitted parameters
	Fingerprint() string
}

// Trainer fits a new Pipeline from normalized samples
type Trainer interface {
	Fit(samples []entity.Sample) (Pipeline, error)
}
