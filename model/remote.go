package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RemoteModel calls an inference sidecar that hosts the trained pipeline.
// The sidecar exposes POST /predict and POST /predict_proba, each taking a
// Frame as JSON.
type RemoteModel struct {
	baseURL string
	client  *http.Client
}

type predictResponse struct {
	Labels []int `json:"labels"`
}

type probaResponse struct {
	Probabilities [][]float64 `json:"probabilities"`
}

// NewRemoteModel creates a client for the sidecar at baseURL
func NewRemoteModel(baseURL string, timeout time.Duration) *RemoteModel {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteModel{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Info describes the remote endpoint
func (m *RemoteModel) Info() Info {
	return Info{Name: "remote", Source: m.baseURL}
}

// Predict asks the sidecar for class labels
func (m *RemoteModel) Predict(ctx context.Context, frame Frame) ([]int, error) {
	var resp predictResponse
	if err := m.post(ctx, "/predict", frame, &resp); err != nil {
		return nil, err
	}
	if len(resp.Labels) != frame.Len() {
		return nil, fmt.Errorf("sidecar returned %d labels for %d rows", len(resp.Labels), frame.Len())
	}
	return resp.Labels, nil
}

// PredictProba asks the sidecar for class probabilities
func (m *RemoteModel) PredictProba(ctx context.Context, frame Frame) ([][]float64, error) {
	var resp probaResponse
	if err := m.post(ctx, "/predict_proba", frame, &resp); err != nil {
		return nil, err
	}
	if len(resp.Probabilities) != frame.Len() {
		return nil, fmt.Errorf("sidecar returned %d probability rows for %d rows", len(resp.Probabilities), frame.Len())
	}
	return resp.Probabilities, nil
}

func (m *RemoteModel) post(ctx context.Context, path string, frame Frame, out any) error {
	body, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("failed to marshal frame: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("sidecar request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("sidecar %s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode sidecar response: %w", err)
	}
	return nil
}
