package scoring

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenaware/screenaware/internal/core/domain"
)

var sampleInput = domain.HabitInput{
	DailyScreenTimeHours: 8,
	SleepDurationHours:   6,
	StressLevel:          4,
	SleepQuality:         2,
	SocialMediaHours:     3,
}

func TestHTTPScorer_Score(t *testing.T) {
	t.Run("Success: Should post the input and decode mixed-type fields", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/predict_report", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var got domain.HabitInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			assert.Equal(t, sampleInput, got)

			_, _ = w.Write([]byte(`{"risk_level":"High","mood_rating":2.5,"cluster_label":3}`))
		}))
		defer srv.Close()

		scorer := NewHTTPScorer(Config{BaseURL: srv.URL + "/"}, nil)
		resp, err := scorer.Score(context.Background(), sampleInput)

		require.NoError(t, err)
		assert.Equal(t, "High", resp.RiskLevel.String())
		mood, ok := resp.MoodRating.Float()
		assert.True(t, ok)
		assert.Equal(t, 2.5, mood)
		assert.Equal(t, domain.Label("3"), resp.ClusterLabel)
		assert.Empty(t, resp.DominantCategory)
	})

	t.Run("Fail: Should reject non-2xx responses", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not loaded", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewHTTPScorer(Config{BaseURL: srv.URL}, nil).Score(context.Background(), sampleInput)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("Fail: Should reject malformed bodies", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"risk_level": [1]}`))
		}))
		defer srv.Close()

		_, err := NewHTTPScorer(Config{BaseURL: srv.URL}, nil).Score(context.Background(), sampleInput)

		assert.Error(t, err)
	})

	t.Run("Fail: Should honour the timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(time.Second):
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()

		_, err := NewHTTPScorer(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, nil).Score(context.Background(), sampleInput)

		assert.Error(t, err)
	})
}

func TestHTTPScorer_Breaker(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	scorer := NewHTTPScorer(Config{BaseURL: srv.URL, MaxFailures: 2, ResetTimeout: time.Minute}, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := scorer.Score(ctx, sampleInput)
		require.Error(t, err)
	}

	_, err := scorer.Score(ctx, sampleInput)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "marked unavailable")
	assert.Equal(t, int32(2), calls.Load(), "an open breaker must fast-fail")
}

func TestHTTPScorer_BreakerIgnoresCancellation(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"risk_level":25}`))
	}))
	defer srv.Close()

	scorer := NewHTTPScorer(Config{BaseURL: srv.URL, MaxFailures: 2, ResetTimeout: time.Minute}, nil)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 3; i++ {
		_, err := scorer.Score(cancelled, sampleInput)
		require.ErrorIs(t, err, context.Canceled)
	}

	resp, err := scorer.Score(context.Background(), sampleInput)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, int32(1), calls.Load())
}
