package sentiment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jins0l/ai-board-project/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Success(t *testing.T) {
	var gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/predict", r.URL.Path)

		var req struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotText = req.Text

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"prediction": "긍정적",
			"confidence": 0.8123,
			"probabilities": map[string]float64{
				"부정적": 0.05,
				"중성":  0.1377,
				"긍정적": 0.8123,
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	result := c.Classify(context.Background(), "오늘 기분이 최고")

	assert.Equal(t, "오늘 기분이 최고", gotText)
	assert.Equal(t, "긍정적", result.Label)
	assert.Equal(t, 0.8123, result.Confidence)
}

func TestClassify_FallsBackToNeutral(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "Service error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model not loaded", http.StatusServiceUnavailable)
			},
		},
		{
			name: "Malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
		{
			name: "Empty prediction",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]any{
					"prediction": "",
					"confidence": 0.9,
				})
			},
		},
		{
			name: "Confidence out of range",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]any{
					"prediction": "긍정적",
					"confidence": 7.5,
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(srv.URL)
			result := c.Classify(context.Background(), "아무 내용")

			assert.Equal(t, models.SentimentNeutral, result.Label)
			assert.Equal(t, models.SentimentDefaultConfidence, result.Confidence)
		})
	}
}

func TestClassify_ServiceUnreachable(t *testing.T) {
	// Nothing listens on this port; the call fails fast with a connection error.
	c := NewClient("http://127.0.0.1:1")
	result := c.Classify(context.Background(), "아무 내용")

	assert.Equal(t, models.SentimentNeutral, result.Label)
	assert.Equal(t, models.SentimentDefaultConfidence, result.Confidence)
}

func TestClassify_RespectsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL)
	result := c.Classify(ctx, "아무 내용")

	assert.Equal(t, models.SentimentNeutral, result.Label)
	assert.Equal(t, models.SentimentDefaultConfidence, result.Confidence)
}

func TestHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "running", "model_loaded": true})
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	assert.True(t, c.Healthy(context.Background()))

	down := NewClient("http://127.0.0.1:1")
	assert.False(t, down.Healthy(context.Background()))
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/predict", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"prediction": "중성", "confidence": 0.5})
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	result := c.Classify(context.Background(), "text")
	assert.Equal(t, "중성", result.Label)
}
