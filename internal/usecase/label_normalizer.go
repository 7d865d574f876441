package usecase

import (
	"math"
	"strconv"
	"strings"

	"github.com/vijayakumarsahana16-san/phishproof/internal/domain/entity"
)

// labelTags maps the string tags used in the corpus to class labels
var labelTags = map[string]entity.Label{
	"ham":      entity.LabelHam,
	"phishing": entity.LabelPhishing,
	"spam":     entity.LabelSpam,
}

// DropReason says why a raw sample was excluded from training
type DropReason string

const (
	DropMissingColumn DropReason = "missing_column"
	DropInvalidLabel  DropReason = "invalid_label"
)

// NormalizationResult holds the surviving samples and drop counts
type NormalizationResult struct {
	Samples []entity.Sample
	Dropped map[DropReason]int
}

// DroppedTotal returns the number of excluded rows
func (r *NormalizationResult) DroppedTotal() int {
	total := 0
	for _, n := range r.Dropped {
		total += n
	}
	return total
}

// labelStage rewrites a raw label. Stages never fail; a label a stage
// cannot handle passes through unchanged.
type labelStage func(entity.RawLabel) entity.RawLabel

// NormalizeSamples runs the ordered normalization pipeline:
//  1. drop rows missing text or label
//  2. if any label is a string, trim every label and map known tags
//  3. coerce labels to integers, dropping rows that cannot be coerced
func NormalizeSamples(raw []entity.RawSample) *NormalizationResult {
	result := &NormalizationResult{Dropped: make(map[DropReason]int)}

	present := make([]entity.RawSample, 0, len(raw))
	for _, s := range raw {
		if s.Text == "" || s.Label.IsBlank() {
			result.Dropped[DropMissingColumn]++
			continue
		}
		present = append(present, s)
	}

	var stages []labelStage
	if hasStringLabel(present) {
		stages = append(stages, asString, trimLabel, mapLabelTag)
	}

	for _, s := range present {
		label := s.Label
		for _, stage := range stages {
			label = stage(label)
		}
		class, ok := coerceLabel(label)
		if !ok {
			result.Dropped[DropInvalidLabel]++
			continue
		}
		result.Samples = append(result.Samples, entity.Sample{Text: s.Text, Label: class})
	}

	return result
}

func hasStringLabel(samples []entity.RawSample) bool {
	for _, s := range samples {
		if s.Label.Kind == entity.RawLabelString {
			return true
		}
	}
	return false
}

func asString(l entity.RawLabel) entity.RawLabel {
	if l.Kind == entity.RawLabelInt {
		return entity.StringLabel(strconv.Itoa(l.Int))
	}
	return l
}

func trimLabel(l entity.RawLabel) entity.RawLabel {
	if l.Kind != entity.RawLabelString {
		return l
	}
	return entity.StringLabel(strings.TrimSpace(l.Str))
}

func mapLabelTag(l entity.RawLabel) entity.RawLabel {
	if l.Kind != entity.RawLabelString {
		return l
	}
	if class, ok := labelTags[l.Str]; ok {
		return entity.IntLabel(int(class))
	}
	return l
}

// coerceLabel is the final stage: integers pass, numeric strings are
// parsed, anything else is rejected. Integral floats such as "1.0" count
// as integers.
func coerceLabel(l entity.RawLabel) (entity.Label, bool) {
	if l.Kind == entity.RawLabelInt {
		return entity.Label(l.Int), true
	}
	s := strings.TrimSpace(l.Str)
	if n, err := strconv.Atoi(s); err == nil {
		return entity.Label(n), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return entity.Label(int(f)), true
}
