package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Prediction is the model's output for a batch of rows: one probability
// distribution over Classes per input row, in input order.
type Prediction struct {
	Classes       []string    `json:"classes"`
	Probabilities [][]float64 `json:"probabilities"`
}

// Predictor is the boundary to the pre-trained model artifact. Rows must
// already be ordinal-encoded.
type Predictor interface {
	PredictProbabilities(ctx context.Context, rows []map[string]interface{}) (*Prediction, error)
}

// HTTPModel calls an external model-serving endpoint.
type HTTPModel struct {
	url    string
	client *http.Client
}

// NewHTTPModel creates a client for the model service at url.
func NewHTTPModel(url string, timeout time.Duration) *HTTPModel {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPModel{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	Rows []map[string]interface{} `json:"rows"`
}

// PredictProbabilities POSTs the encoded rows and decodes the per-row class
// probabilities.
func (m *HTTPModel) PredictProbabilities(ctx context.Context, rows []map[string]interface{}) (*Prediction, error) {
	body, err := json.Marshal(predictRequest{Rows: rows})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model service returned status %d", resp.StatusCode)
	}

	var pred Prediction
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return nil, fmt.Errorf("failed to decode model response: %w", err)
	}
	if len(pred.Probabilities) != len(rows) {
		return nil, fmt.Errorf("model returned %d rows for %d inputs", len(pred.Probabilities), len(rows))
	}
	return &pred, nil
}

// StubModel returns a uniform distribution over its classes. Used in tests
// and local development when no model service is configured.
type StubModel struct {
	Classes []string
}

// NewStubModel creates a stub over the default on-time/delayed classes.
func NewStubModel() *StubModel {
	return &StubModel{Classes: []string{"on_time", "minor_delay", "major_delay"}}
}

// PredictProbabilities returns the same uniform distribution for every row.
func (m *StubModel) PredictProbabilities(_ context.Context, rows []map[string]interface{}) (*Prediction, error) {
	if len(m.Classes) == 0 {
		return nil, fmt.Errorf("stub model has no classes")
	}
	p := 1.0 / float64(len(m.Classes))
	probs := make([][]float64, len(rows))
	for i := range rows {
		row := make([]float64, len(m.Classes))
		for j := range row {
			row[j] = p
		}
		probs[i] = row
	}
	return &Prediction{Classes: m.Classes, Probabilities: probs}, nil
}
