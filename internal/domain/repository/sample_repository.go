package repository

import (
	"context"

	"github.com/vijayakumarsahana16-san/phishproof/internal/domain/entity"
)

// SampleSource defines the interface for reading a labeled corpus
type SampleSource interface {
	// Load reads every raw sample. Rows that cannot be parsed are skipped
	// and counted in the second return value.
	Load(ctx context.Context) ([]entity.RawSample, int, error)

	// Name identifies the source in logs
	Name() string
}

// VerdictCache defines the interface for caching verdicts by input text
type VerdictCache interface {
	// Get returns the cached verdict, or nil when absent
	Get(ctx context.Context, text string) (*entity.Verdict, error)

	// Set stores a verdict for the text
	Set(ctx context.Context, text string, verdict *entity.Verdict) error
}
