package entity

import "time"

// ModelStatus represents whether a model is available for inference
type ModelStatus string

const (
	ModelStatusTrained   ModelStatus = "trained"
	ModelStatusUntrained ModelStatus = "untrained"
)

// TrainingReport describes the result of a training run
type TrainingReport struct {
	Status   ModelStatus   `json:"status"`
	Source   string        `json:"source"`
	RowsRead int           `json:"rows_read"`
	Dropped  int           `json:"dropped"`
	Samples  int           `json:"samples"`
	Classes  []Label       `json:"classes,omitempty"`
	Model    string        `json:"model,omitempty"`
	Duration time.Duration `json:"duration"`
	Reason   string        `json:"reason,omitempty"`
}

// IsTrained returns true if the run produced a model
func (r TrainingReport) IsTrained() bool {
	return r.Status == ModelStatusTrained
}
