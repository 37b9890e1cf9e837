// Package model defines the contract with the trained churn classifier and
// the loaders that produce a ready-to-use handle at startup.
package model

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// ErrSchemaMismatch is returned when a frame's columns differ from the
// feature order the model was trained on.
var ErrSchemaMismatch = errors.New("frame columns do not match model features")

// Model is a loaded classifier. Implementations are immutable after loading
// and safe for concurrent use.
type Model interface {
	// Predict returns one class label per row
	Predict(ctx context.Context, frame Frame) ([]int, error)

	// PredictProba returns [P(class 0), P(class 1)] per row
	PredictProba(ctx context.Context, frame Frame) ([][]float64, error)
}

// Describer is implemented by models that can report their identity
type Describer interface {
	Info() Info
}

// Info identifies a loaded model
type Info struct {
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	Source   string   `json:"source"`
	Features []string `json:"features"`
}

// Frame is a small tabular input: named columns and positional rows
type Frame struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// NewFrame builds a frame and checks every row has one value per column
func NewFrame(columns []string, rows ...[]any) (Frame, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return Frame{}, fmt.Errorf("row %d has %d values, want %d", i, len(row), len(columns))
		}
	}
	return Frame{Columns: slices.Clone(columns), Rows: rows}, nil
}

// Len returns the number of rows
func (f Frame) Len() int {
	return len(f.Rows)
}

// CheckColumns verifies the frame matches features exactly, order included
func (f Frame) CheckColumns(features []string) error {
	if !slices.Equal(f.Columns, features) {
		return fmt.Errorf("%w: got %v, want %v", ErrSchemaMismatch, f.Columns, features)
	}
	return nil
}
