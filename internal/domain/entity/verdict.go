package entity

import "math"

// VerdictType is the human readable threat category returned to clients
type VerdictType string

const (
	VerdictTypeNone            VerdictType = "None"
	VerdictTypePhishing        VerdictType = "Phishing"
	VerdictTypeSpamFraud       VerdictType = "Spam / Fraud"
	VerdictTypeUnknown         VerdictType = "Unknown"
	VerdictTypeModelNotTrained VerdictType = "Model Not Trained"
)

// Verdict is the classification result for a single text
type Verdict struct {
	IsScam     bool        `json:"isScam"`
	Type       VerdictType `json:"type"`
	Confidence float64     `json:"confidence"`
}

type labelVerdict struct {
	isScam bool
	kind   VerdictType
}

// labelVerdicts must stay in sync with the labels used in the training corpus
var labelVerdicts = map[Label]labelVerdict{
	LabelHam:      {isScam: false, kind: VerdictTypeNone},
	LabelPhishing: {isScam: true, kind: VerdictTypePhishing},
	LabelSpam:     {isScam: true, kind: VerdictTypeSpamFraud},
}

// NewVerdict maps a predicted class to a verdict. Classes outside the known
// label set yield an "Unknown", non-scam verdict with the same confidence.
func NewVerdict(class Label, confidence float64) *Verdict {
	lv, ok := labelVerdicts[class]
	if !ok {
		lv = labelVerdict{isScam: false, kind: VerdictTypeUnknown}
	}
	return &Verdict{
		IsScam:     lv.isScam,
		Type:       lv.kind,
		Confidence: confidence,
	}
}

// NotTrainedVerdict is returned whenever no model is available
func NotTrainedVerdict() *Verdict {
	return &Verdict{
		IsScam:     false,
		Type:       VerdictTypeModelNotTrained,
		Confidence: 0,
	}
}

// IsSentinel returns true if the verdict signals a missing model
func (v *Verdict) IsSentinel() bool {
	return v.Type == VerdictTypeModelNotTrained
}

// ConfidencePercent converts a probability to a percentage rounded to two decimals
func ConfidencePercent(p float64) float64 {
	return math.Round(p*100*100) / 100
}
