package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vijayakumarsahana16-san/phishproof/internal/domain/entity"
	"github.com/vijayakumarsahana16-san/phishproof/internal/domain/repository"
	"github.com/vijayakumarsahana16-san/phishproof/internal/domain/service"
)

// ErrNoTrainableData is reported when no row survives normalization
var ErrNoTrainableData = errors.New("no valid training samples")

// TrainingOutcome is either a fitted pipeline (Trained) or a reason
// (Untrained). Pipeline is nil exactly when the report is untrained.
type TrainingOutcome struct {
	Pipeline service.Pipeline
	Report   entity.TrainingReport
}

// Trained returns an outcome holding a fitted pipeline
func Trained(p service.Pipeline, report entity.TrainingReport) *TrainingOutcome {
	report.Status = entity.ModelStatusTrained
	report.Reason = ""
	return &TrainingOutcome{Pipeline: p, Report: report}
}

// Untrained returns an outcome without a model
func Untrained(reason string, report entity.TrainingReport) *TrainingOutcome {
	report.Status = entity.ModelStatusUntrained
	report.Reason = reason
	return &TrainingOutcome{Report: report}
}

// TrainerUsecase loads the corpus and fits the classification pipeline
type TrainerUsecase interface {
	// Train never fails; every error is folded into an Untrained outcome.
	Train(ctx context.Context) *TrainingOutcome
}

type trainerUsecase struct {
	source  repository.SampleSource
	trainer service.Trainer
	logger  *zap.Logger
}

// NewTrainerUsecase creates a new trainer usecase
func NewTrainerUsecase(source repository.SampleSource, trainer service.Trainer, logger *zap.Logger) TrainerUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &trainerUsecase{
		source:  source,
		trainer: trainer,
		logger:  logger.Named("trainer"),
	}
}

func (u *trainerUsecase) Train(ctx context.Context) (outcome *TrainingOutcome) {
	start := time.Now()
	report := entity.TrainingReport{Source: u.source.Name()}
	log := u.logger.With(zap.String("source", report.Source))

	defer func() {
		if r := recover(); r != nil {
			report.Duration = time.Since(start)
			outcome = Untrained(fmt.Sprintf("training panicked: %v", r), report)
			log.Error("Training panicked", zap.Any("panic", r))
		}
	}()

	raw, skipped, err := u.source.Load(ctx)
	if err != nil {
		report.Duration = time.Since(start)
		log.Error("Failed to load training data", zap.Error(err))
		return Untrained(err.Error(), report)
	}

	normalized := NormalizeSamples(raw)
	report.RowsRead = len(raw) + skipped
	report.Dropped = normalized.DroppedTotal() + skipped
	report.Samples = len(normalized.Samples)

	log.Debug("Normalized training data",
		zap.Int("rows", report.RowsRead),
		zap.Int("unparseable", skipped),
		zap.Int("missing_column", normalized.Dropped[DropMissingColumn]),
		zap.Int("invalid_label", normalized.Dropped[DropInvalidLabel]),
	)

	if len(normalized.Samples) == 0 {
		report.Duration = time.Since(start)
		log.Warn("No trainable data", zap.Int("rows", report.RowsRead))
		return Untrained(ErrNoTrainableData.Error(), report)
	}

	log.Info("Training model", zap.Int("samples", report.Samples))
	pipeline, err := u.trainer.Fit(normalized.Samples)
	report.Duration = time.Since(start)
	if err != nil {
		log.Error("Failed to fit model", zap.Error(err))
		return Untrained(err.Error(), report)
	}

	report.Classes = pipeline.Classes()
	report.Model = pipeline.Fingerprint()
	log.Info("Model training complete",
		zap.Int("samples", report.Samples),
		zap.Int("dropped", report.Dropped),
		zap.String("model", report.Model),
		zap.Duration("duration", report.Duration),
	)
	return Trained(pipeline, report)
}
