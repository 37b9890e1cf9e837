package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"
)

// ErrUnknownCategory is returned when a categorical value has no weight
var ErrUnknownCategory = errors.New("unknown category")

// Artifact is the on-disk form of a logistic churn model: standardized
// numeric terms plus one-hot categorical weights.
type Artifact struct {
	Name        string                        `json:"name"`
	Version     string                        `json:"version"`
	Features    []string                      `json:"features"`
	Intercept   float64                       `json:"intercept"`
	Threshold   float64                       `json:"threshold"`
	Numeric     map[string]NumericTerm        `json:"numeric"`
	Categorical map[string]map[string]float64 `json:"categorical"`
}

// NumericTerm contributes Weight * (x - Center) / Scale
type NumericTerm struct {
	Weight float64 `json:"weight"`
	Center float64 `json:"center"`
	Scale  float64 `json:"scale"`
}

// LogisticModel scores rows with a loaded Artifact
type LogisticModel struct {
	art    Artifact
	source string
}

// LoadArtifact reads and checks a JSON artifact from path
func LoadArtifact(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var art Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact %s: %w", path, err)
	}

	m, err := NewLogisticModel(art)
	if err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", path, err)
	}
	m.source = path
	return m, nil
}

// NewLogisticModel checks an artifact and wraps it
func NewLogisticModel(art Artifact) (*LogisticModel, error) {
	if len(art.Features) == 0 {
		return nil, fmt.Errorf("artifact declares no features")
	}
	if art.Threshold == 0 {
		art.Threshold = 0.5
	}
	if art.Threshold <= 0 || art.Threshold >= 1 {
		return nil, fmt.Errorf("threshold %g must be in (0, 1)", art.Threshold)
	}

	for _, name := range art.Features {
		term, isNum := art.Numeric[name]
		_, isCat := art.Categorical[name]
		switch {
		case isNum && isCat:
			return nil, fmt.Errorf("feature %q is both numeric and categorical", name)
		case !isNum && !isCat:
			return nil, fmt.Errorf("feature %q has no weights", name)
		case isNum && term.Scale == 0:
			return nil, fmt.Errorf("feature %q has zero scale", name)
		}
	}
	for name := range art.Numeric {
		if !slices.Contains(art.Features, name) {
			return nil, fmt.Errorf("numeric weights for undeclared feature %q", name)
		}
	}
	for name := range art.Categorical {
		if !slices.Contains(art.Features, name) {
			return nil, fmt.Errorf("categorical weights for undeclared feature %q", name)
		}
	}

	art.Features = slices.Clone(art.Features)
	return &LogisticModel{art: art}, nil
}

// Info describes the artifact
func (m *LogisticModel) Info() Info {
	return Info{
		Name:     m.art.Name,
		Version:  m.art.Version,
		Source:   m.source,
		Features: slices.Clone(m.art.Features),
	}
}

// Predict labels a row 1 when its churn probability exceeds the threshold
func (m *LogisticModel) Predict(ctx context.Context, frame Frame) ([]int, error) {
	probs, err := m.score(ctx, frame)
	if err != nil {
		return nil, err
	}

	labels := make([]int, len(probs))
	for i, p := range probs {
		if p > m.art.Threshold {
			labels[i] = 1
		}
	}
	return labels, nil
}

// PredictProba returns [1-p, p] for every row
func (m *LogisticModel) PredictProba(ctx context.Context, frame Frame) ([][]float64, error) {
	probs, err := m.score(ctx, frame)
	if err != nil {
		return nil, err
	}

	out := make([][]float64, len(probs))
	for i, p := range probs {
		out[i] = []float64{1 - p, p}
	}
	return out, nil
}

func (m *LogisticModel) score(ctx context.Context, frame Frame) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := frame.CheckColumns(m.art.Features); err != nil {
		return nil, err
	}

	probs := make([]float64, len(frame.Rows))
	for i, row := range frame.Rows {
		if len(row) != len(frame.Columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(row), len(frame.Columns))
		}

		z := m.art.Intercept
		for j, name := range frame.Columns {
			if term, ok := m.art.Numeric[name]; ok {
				x, err := toFloat(row[j])
				if err != nil {
					return nil, fmt.Errorf("row %d column %s: %w", i, name, err)
				}
				z += term.Weight * (x - term.Center) / term.Scale
				continue
			}

			s, ok := row[j].(string)
			if !ok {
				return nil, fmt.Errorf("row %d column %s: expected string, got %T", i, name, row[j])
			}
			w, ok := m.art.Categorical[name][s]
			if !ok {
				return nil, fmt.Errorf("row %d column %s: %w %q", i, name, ErrUnknownCategory, s)
			}
			z += w
		}
		probs[i] = sigmoid(z)
	}
	return probs, nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}
