// Package prediction turns a validated record into a churn verdict by calling
// the model collaborator.
package prediction

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/liamcoop/churn/model"
	"github.com/liamcoop/churn/validation"
)

// ErrInference marks failures of the model collaborator
var ErrInference = errors.New("inference failed")

// RiskLevel is the coarse risk tier shown to users
type RiskLevel string

const (
	RiskLow  RiskLevel = "Low"
	RiskHigh RiskLevel = "High"
)

// Result is the outcome for one record
type Result struct {
	IsChurner        bool      `json:"is_churner"`
	ChurnProbability float64   `json:"churn_probability"`
	RiskLevel        RiskLevel `json:"risk_level"`
}

// Predictor invokes a model on single records. The model and column order are
// fixed at construction.
type Predictor struct {
	model   model.Model
	columns []string
}

// NewPredictor binds a model to the feature order it was trained on
func NewPredictor(m model.Model, columns []string) (*Predictor, error) {
	if m == nil {
		return nil, fmt.Errorf("model is required")
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("feature columns are required")
	}
	return &Predictor{model: m, columns: append([]string(nil), columns...)}, nil
}

// Model returns the bound model
func (p *Predictor) Model() model.Model {
	return p.model
}

// Predict scores rec. Every model failure is wrapped with ErrInference and
// returned as is; nothing is retried.
func (p *Predictor) Predict(ctx context.Context, rec validation.Record) (Result, error) {
	frame, err := model.NewFrame(p.columns, rec.Row(p.columns))
	if err != nil {
		return Result{}, inferenceError("build frame", err)
	}

	labels, err := p.model.Predict(ctx, frame)
	if err != nil {
		return Result{}, inferenceError("predict", err)
	}
	if len(labels) != 1 {
		return Result{}, inferenceError("predict", fmt.Errorf("model returned %d labels for 1 row", len(labels)))
	}

	probs, err := p.model.PredictProba(ctx, frame)
	if err != nil {
		return Result{}, inferenceError("predict_proba", err)
	}
	if len(probs) != 1 || len(probs[0]) < 2 {
		return Result{}, inferenceError("predict_proba", fmt.Errorf("model returned malformed probabilities %v", probs))
	}

	prob := probs[0][1]
	if math.IsNaN(prob) || prob < 0 || prob > 1 {
		return Result{}, inferenceError("predict_proba", fmt.Errorf("probability %v outside [0, 1]", prob))
	}

	isChurner := labels[0] != 0
	risk := RiskLow
	if isChurner {
		risk = RiskHigh
	}

	return Result{
		IsChurner:        isChurner,
		ChurnProbability: prob,
		RiskLevel:        risk,
	}, nil
}

func inferenceError(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInference, step, err)
}
