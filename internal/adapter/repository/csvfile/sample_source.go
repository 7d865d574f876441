package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"

	"github.com/vijayakumarsahana16-san/phishproof/internal/domain/entity"
	"github.com/vijayakumarsahana16-san/phishproof/internal/domain/repository"
)

// ErrSourceNotFound is returned when the corpus file does not exist
var ErrSourceNotFound = errors.New("training data file not found")

type sampleSource struct {
	path string
}

// NewSampleSource creates a sample source reading a headerless two-column
// (text, label) CSV file. Bytes are decoded as ISO-8859-1 so that no input
// fails to decode.
func NewSampleSource(path string) repository.SampleSource {
	return &sampleSource{path: path}
}

func (s *sampleSource) Name() string {
	return s.path
}

func (s *sampleSource) Load(ctx context.Context) ([]entity.RawSample, int, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, fmt.Errorf("%s: %w", s.path, ErrSourceNotFound)
		}
		return nil, 0, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	return readSamples(ctx, f)
}

func readSamples(ctx context.Context, r io.Reader) ([]entity.RawSample, int, error) {
	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var samples []entity.RawSample
	skipped := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, skipped, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				continue
			}
			return nil, skipped, fmt.Errorf("failed to read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		sample := entity.RawSample{Text: record[0], Line: line}
		if len(record) >= 2 {
			sample.Label = entity.ParseRawLabel(record[1])
		}
		samples = append(samples, sample)
	}

	return samples, skipped, nil
}
