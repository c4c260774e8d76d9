// Package sentiment provides the client for the external text classification
// service. The client is fail-open: classification failures are absorbed and
// a neutral fallback is substituted, so callers never receive an error.
package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Jins0l/ai-board-project/internal/middleware"
	"github.com/Jins0l/ai-board-project/internal/models"
)

const classifyTimeout = 5 * time.Second

// Result is a classification outcome. It is always valid: when the service
// is unreachable or answers garbage, Classify substitutes the neutral
// fallback instead of failing.
type Result struct {
	Label      string
	Confidence float64
}

// Client calls the external sentiment classification service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the classifier at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: classifyTimeout},
	}
}

type predictRequest struct {
	Text string `json:"text"`
}

type predictResponse struct {
	Prediction    string             `json:"prediction"`
	Confidence    float64            `json:"confidence"`
	Probabilities map[string]float64 `json:"probabilities"`
}

// fallback is the neutral result used whenever classification fails.
func fallback() Result {
	return Result{
		Label:      models.SentimentNeutral,
		Confidence: models.SentimentDefaultConfidence,
	}
}

// Classify asks the external service for the sentiment of text. Any failure
// (timeout, network error, non-2xx status, malformed body) yields the neutral
// fallback; the underlying cause is logged for operators.
func (c *Client) Classify(ctx context.Context, text string) Result {
	body, err := json.Marshal(predictRequest{Text: text})
	if err != nil {
		c.warn(ctx, "encode classify request", err)
		return fallback()
	}

	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		c.warn(ctx, "build classify request", err)
		return fallback()
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.warn(ctx, "call sentiment service", err)
		return fallback()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		middleware.Logger.WarnContext(ctx, "sentiment service returned non-2xx, using neutral fallback",
			slog.Int("status", resp.StatusCode))
		return fallback()
	}

	var pr predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		c.warn(ctx, "decode classify response", err)
		return fallback()
	}
	if pr.Prediction == "" || pr.Confidence < 0 || pr.Confidence > 1 {
		middleware.Logger.WarnContext(ctx, "sentiment service returned malformed result, using neutral fallback",
			slog.String("prediction", pr.Prediction),
			slog.Float64("confidence", pr.Confidence))
		return fallback()
	}

	return Result{Label: pr.Prediction, Confidence: pr.Confidence}
}

// Healthy probes the service's root health endpoint.
func (c *Client) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) warn(ctx context.Context, op string, err error) {
	middleware.Logger.WarnContext(ctx, "sentiment classification failed, using neutral fallback",
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
}
