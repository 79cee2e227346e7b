package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"
)

// FeatureSet is the named output of one model inference.
type FeatureSet map[string]float64

// Names returns the feature names in sorted order.
func (f FeatureSet) Names() []string {
	names := make([]string, 0, len(f))
	for k := range f {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Model is an opaque trained risk model.
type Model interface {
	// Predict runs one inference and returns the raw output features.
	Predict(ctx context.Context, in Input) (FeatureSet, error)
}

// HTTPModel calls a model served over HTTP.
type HTTPModel struct {
	endpoint string
	http     *http.Client
}

// NewHTTPModel creates a Model that POSTs inputs to {endpoint}/predict.
func NewHTTPModel(endpoint string, timeout time.Duration) *HTTPModel {
	return &HTTPModel{
		endpoint: strings.TrimRight(endpoint, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

type predictResponse struct {
	Features FeatureSet `json:"features"`
}

func (m *HTTPModel) Predict(ctx context.Context, in Input) (FeatureSet, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshaling input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint+"/predict", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out predictResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if out.Features == nil {
		out.Features = FeatureSet{}
	}
	return out.Features, nil
}

// Health checks whether the model server answers GET /health with 200.
func (m *HTTPModel) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.endpoint+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := m.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health returned status %d", resp.StatusCode)
	}
	return nil
}

// Load connects to the configured model and verifies it is serving.
func Load(ctx context.Context, cfg Config) (Model, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: no model endpoint configured", ErrModelUnavailable)
	}
	m := NewHTTPModel(cfg.Endpoint, cfg.Timeout())
	if err := m.Health(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	return m, nil
}

// isConnectionError reports dial failures and transport timeouts.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
