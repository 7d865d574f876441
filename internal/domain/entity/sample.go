package entity

import (
	"strconv"
	"strings"
)

// Label is the integer class of a training sample or prediction
type Label int

const (
	LabelHam      Label = 0
	LabelPhishing Label = 1
	LabelSpam     Label = 2
)

// RawLabelKind tells which representation a raw label was read in
type RawLabelKind int

const (
	RawLabelString RawLabelKind = iota
	RawLabelInt
)

// RawLabel is a label value before normalization. It is either a string
// tag (e.g. "spam") or an integer read directly from the corpus.
type RawLabel struct {
	Kind RawLabelKind
	Str  string
	Int  int
}

// StringLabel creates a raw string label
func StringLabel(s string) RawLabel {
	return RawLabel{Kind: RawLabelString, Str: s}
}

// IntLabel creates a raw integer label
func IntLabel(n int) RawLabel {
	return RawLabel{Kind: RawLabelInt, Int: n}
}

// ParseRawLabel classifies a label field as it appears in the file
func ParseRawLabel(field string) RawLabel {
	if n, err := strconv.Atoi(field); err == nil {
		return IntLabel(n)
	}
	return StringLabel(field)
}

// IsBlank reports whether the label carries no value at all
func (l RawLabel) IsBlank() bool {
	return l.Kind == RawLabelString && strings.TrimSpace(l.Str) == ""
}

func (l RawLabel) String() string {
	if l.Kind == RawLabelInt {
		return strconv.Itoa(l.Int)
	}
	return l.Str
}

// RawSample is a row of the corpus before label normalization
type RawSample struct {
	Text  string
	Label RawLabel
	Line  int
}

// Sample is a row that survived normalization and can be used for fitting
type Sample struct {
	Text  string
	Label Label
}
