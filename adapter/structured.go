// Package adapter formats prediction results for the two entry points: the
// structured JSON endpoint and the interactive form.
package adapter

import (
	"context"

	"github.com/liamcoop/churn/prediction"
	"github.com/liamcoop/churn/validation"
)

// Response is the body returned by the structured endpoint
type Response struct {
	IsChurner        bool    `json:"is_churner" example:"true"`
	ChurnProbability float64 `json:"churn_probability" example:"0.83"`
	RiskLevel        string  `json:"risk_level" example:"High" enums:"High,Low"`
} // @name PredictResponse

// Structured serves callers that already hold a validated record. Decoding and
// validation are the transport's job.
type Structured struct {
	predictor *prediction.Predictor
}

// NewStructured creates a structured adapter over p
func NewStructured(p *prediction.Predictor) *Structured {
	return &Structured{predictor: p}
}

// Predict runs the orchestrator and shapes its result. Inference failures are
// returned unchanged so the transport can map them to a 5xx.
func (s *Structured) Predict(ctx context.Context, rec validation.Record) (Response, error) {
	res, err := s.predictor.Predict(ctx, rec)
	if err != nil {
		return Response{}, err
	}
	return Response{
		IsChurner:        res.IsChurner,
		ChurnProbability: res.ChurnProbability,
		RiskLevel:        string(res.RiskLevel),
	}, nil
}
