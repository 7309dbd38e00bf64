package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client talks to the external classifier service. The service owns the
// trained model and its persistence; this side only sends reconciled feature
// mappings and reads back state verdicts.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
	features   *FeatureList
	maxRetries int
	retryDelay time.Duration
}

type ClientConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Prediction is the classifier's verdict for one window.
type Prediction struct {
	StateID            int    `json:"state_id"`
	Label              string `json:"state"`
	InterventionNeeded bool   `json:"intervention_needed"`
}

type predictRequest struct {
	Features map[string]float64 `json:"features"`
}

type predictResponse struct {
	StateID int `json:"state_id"`
}

func NewClient(cfg ClientConfig, features *FeatureList, log *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		log:        log,
		features:   features,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Predict reconciles the feature mapping against the persisted feature list
// and asks the classifier service for a state. Transient failures are retried
// a bounded number of times.
func (c *Client) Predict(ctx context.Context, features map[string]float64) (*Prediction, error) {
	payload := predictRequest{Features: c.features.Reconcile(features)}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.log.Warn("Retrying classifier request",
				zap.Int("attempt", attempt),
				zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay * time.Duration(attempt)):
			}
		}

		prediction, err := c.predictOnce(ctx, payload)
		if err == nil {
			return prediction, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("classifier request failed after %d attempts: %w",
		c.maxRetries+1, lastErr)
}

func (c *Client) predictOnce(ctx context.Context, payload predictRequest) (*Prediction, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("classifier error (status %d): %s", resp.StatusCode, string(raw))
	}

	var decoded predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode classifier response: %w", err)
	}

	return &Prediction{
		StateID:            decoded.StateID,
		Label:              LabelFor(decoded.StateID),
		InterventionNeeded: InterventionNeeded(decoded.StateID),
	}, nil
}

// Health checks whether the classifier service is reachable.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("classifier health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("classifier unhealthy (status %d)", resp.StatusCode)
	}
	return nil
}
