package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vijayakumarsahana16-san/phishproof/internal/domain/entity"
	"github.com/vijayakumarsahana16-san/phishproof/internal/domain/repository"
	"github.com/vijayakumarsahana16-san/phishproof/internal/infrastructure/metrics"
)

// AnalyzeInput represents the input for classifying a text. Text is a
// pointer so that an empty string is accepted while a missing field is not.
type AnalyzeInput struct {
	Text *string `json:"text" binding:"required"`
}

// DetectorUsecase defines the interface for scam detection
type DetectorUsecase interface {
	// Predict classifies text. It always returns a verdict; without a
	// model it returns the "Model Not Trained" sentinel.
	Predict(ctx context.Context, text string) *entity.Verdict

	// Status returns the report of the startup training run
	Status() entity.TrainingReport
}

type detectorUsecase struct {
	outcome *TrainingOutcome
	cache   repository.VerdictCache
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewDetectorUsecase creates a detector around a training outcome. cache and
// m may be nil.
func NewDetectorUsecase(outcome *TrainingOutcome, cache repository.VerdictCache, m *metrics.Metrics, logger *zap.Logger) DetectorUsecase {
	if outcome == nil {
		outcome = Untrained("no training run", entity.TrainingReport{})
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if m != nil {
		trained := 0.0
		if outcome.Pipeline != nil {
			trained = 1
		}
		m.ModelTrained.Set(trained)
		m.TrainingSamples.Set(float64(outcome.Report.Samples))
		m.TrainingDuration.Set(outcome.Report.Duration.Seconds())
	}

	return &detectorUsecase{
		outcome: outcome,
		cache:   cache,
		metrics: m,
		logger:  logger.Named("detector"),
	}
}

func (u *detectorUsecase) Predict(ctx context.Context, text string) *entity.Verdict {
	if u.outcome.Pipeline == nil {
		return u.record(entity.NotTrainedVerdict())
	}

	if cached := u.lookup(ctx, text); cached != nil {
		return u.record(cached)
	}

	start := time.Now()
	prediction := u.outcome.Pipeline.Predict(text)
	if u.metrics != nil {
		u.metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	}

	verdict := entity.NewVerdict(prediction.Class, entity.ConfidencePercent(prediction.MaxProbability()))
	u.store(ctx, text, verdict)
	return u.record(verdict)
}

func (u *detectorUsecase) Status() entity.TrainingReport {
	return u.outcome.Report
}

func (u *detectorUsecase) lookup(ctx context.Context, text string) *entity.Verdict {
	if u.cache == nil {
		return nil
	}
	verdict, err := u.cache.Get(ctx, text)
	result := "hit"
	switch {
	case err != nil:
		result = "error"
		u.logger.Warn("Verdict cache lookup failed", zap.Error(err))
		verdict = nil
	case verdict == nil:
		result = "miss"
	}
	if u.metrics != nil {
		u.metrics.CacheLookups.WithLabelValues(result).Inc()
	}
	return verdict
}

func (u *detectorUsecase) store(ctx context.Context, text string, verdict *entity.Verdict) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Set(ctx, text, verdict); err != nil {
		u.logger.Warn("Failed to cache verdict", zap.Error(err))
	}
}

func (u *detectorUsecase) record(verdict *entity.Verdict) *entity.Verdict {
	if u.metrics != nil {
		u.metrics.Predictions.WithLabelValues(string(verdict.Type)).Inc()
	}
	return verdict
}
