package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/liamcoop/churn/internal/logger"
	"github.com/liamcoop/churn/prediction"
	"github.com/liamcoop/churn/validation"
)

// WarningMarker prefixes every failure shown on the form
const WarningMarker = "⚠️"

// Analysis is one run of the form action
type Analysis struct {
	ID     string
	Text   string
	Result *prediction.Result // nil on failure
	Err    error
}

// Failed reports whether the run produced a warning instead of a prediction
func (a Analysis) Failed() bool {
	return a.Err != nil
}

// Form backs the "run analysis" action. Values arrive positionally in catalog
// order and the outcome is always a display string.
type Form struct {
	validator *validation.Validator
	predictor *prediction.Predictor
}

// NewForm creates a form adapter sharing the validator and predictor with the
// structured endpoint
func NewForm(v *validation.Validator, p *prediction.Predictor) *Form {
	return &Form{validator: v, predictor: p}
}

// Analyze returns the prediction summary or a warning-prefixed error message.
// It never panics and never returns an error.
func (f *Form) Analyze(ctx context.Context, values ...any) string {
	return f.Run(ctx, values...).Text
}

// Run is Analyze with the structured outcome kept alongside the text
func (f *Form) Run(ctx context.Context, values ...any) (a Analysis) {
	a.ID = uuid.New().String()

	defer func() {
		if r := recover(); r != nil {
			a.Result = nil
			a.Err = fmt.Errorf("unexpected failure: %v", r)
			a.Text = inputError(a.Err)
			logger.Error("Form analysis panicked", "analysis_id", a.ID, "panic", r)
		}
	}()

	raw, err := f.validator.Catalog().Zip(values)
	if err != nil {
		return f.fail(a, err)
	}

	rec, err := f.validator.Validate(raw)
	if err != nil {
		return f.fail(a, err)
	}

	res, err := f.predictor.Predict(ctx, rec)
	if err != nil {
		return f.fail(a, err)
	}

	a.Result = &res
	a.Text = Summary(res)
	logger.Debug("Form analysis completed",
		"analysis_id", a.ID,
		"is_churner", res.IsChurner,
		"churn_probability", res.ChurnProbability,
	)
	return a
}

func (f *Form) fail(a Analysis, err error) Analysis {
	a.Err = err
	if errors.Is(err, prediction.ErrInference) {
		a.Text = fmt.Sprintf("%s Inference Error: %s", WarningMarker, err)
		logger.Error("Form analysis inference failed", "analysis_id", a.ID, "error", err)
		return a
	}
	a.Text = inputError(err)
	logger.Debug("Form analysis rejected input", "analysis_id", a.ID, "error", err)
	return a
}

func inputError(err error) string {
	return fmt.Sprintf("%s Input Error: %s", WarningMarker, err)
}

// Summary formats a result the way the form displays it
func Summary(res prediction.Result) string {
	verdict := "Stay"
	if res.IsChurner {
		verdict = "Churn"
	}
	return fmt.Sprintf("Prediction: %s (Churning Probability: %.2f%%)", verdict, res.ChurnProbability*100)
}
