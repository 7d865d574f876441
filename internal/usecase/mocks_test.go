package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vijayakumarsahana16-san/phishproof/internal/domain/entity"
	"github.com/vijayakumarsahana16-san/phishproof/internal/domain/service"
)

// MockSampleSource is a mock implementation of SampleSource
type MockSampleSource struct {
	mock.Mock
}

func (m *MockSampleSource) Load(ctx context.Context) ([]entity.RawSample, int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]entity.RawSample), args.Int(1), args.Error(2)
}

func (m *MockSampleSource) Name() string {
	return "mock.csv"
}

// MockTrainer is a mock implementation of Trainer
type MockTrainer struct {
	mock.Mock
}

func (m *MockTrainer) Fit(samples []entity.Sample) (service.Pipeline, error) {
	args := m.Called(samples)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(service.Pipeline), args.Error(1)
}

// MockPipeline is a mock implementation of Pipeline
type MockPipeline struct {
	mock.Mock
}

func (m *MockPipeline) Predict(text string) *service.Prediction {
	args := m.Called(text)
	return args.Get(0).(*service.Prediction)
}

func (m *MockPipeline) Classes() []entity.Label {
	return []entity.Label{entity.LabelHam, entity.LabelPhishing, entity.LabelSpam}
}

func (m *MockPipeline) Fingerprint() string {
	return "mock-model"
}

// MockVerdictCache is a mock implementation of VerdictCache
type MockVerdictCache struct {
	mock.Mock
}

func (m *MockVerdictCache) Get(ctx context.Context, text string) (*entity.Verdict, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Verdict), args.Error(1)
}

func (m *MockVerdictCache) Set(ctx context.Context, text string, verdict *entity.Verdict) error {
	args := m.Called(ctx, text, verdict)
	return args.Error(0)
}

func rawSample(text string, label entity.RawLabel) entity.RawSample {
	return entity.RawSample{Text: text, Label: label}
}
