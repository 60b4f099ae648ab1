package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/screenaware/screenaware/internal/adapters/observability"
	"github.com/screenaware/screenaware/internal/core/domain"
	"github.com/screenaware/screenaware/internal/core/services"
)

const (
	reportPath     = "/predict_report"
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

var _ services.RemoteScorer = (*HTTPScorer)(nil)

type Config struct {
	BaseURL string
	Timeout time.Duration
	// MaxFailures consecutive failures open the breaker; 0 disables it.
	MaxFailures  uint32
	ResetTimeout time.Duration
}

// HTTPScorer calls the scoring endpoint: POST {base}/predict_report with the
// habit input as JSON.
type HTTPScorer struct {
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
	metrics  *observability.Metrics
}

func NewHTTPScorer(cfg Config, metrics *observability.Metrics) *HTTPScorer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	s := &HTTPScorer{
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + reportPath,
		client:   &http.Client{Timeout: timeout},
		metrics:  metrics,
	}

	if cfg.MaxFailures > 0 {
		s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "scorer",
			MaxRequests: 1,
			Timeout:     cfg.ResetTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.MaxFailures
			},
			// A caller giving up says nothing about the backend.
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Printf("[SCORER] Breaker %s: %s -> %s", name, from, to)
				metrics.SetCircuitBreakerState(name, breakerGauge(to))
			},
		})
		metrics.SetCircuitBreakerState("scorer", 0)
	}

	return s
}

func (s *HTTPScorer) Score(ctx context.Context, input domain.HabitInput) (*domain.ScoreResponse, error) {
	start := time.Now()

	var (
		resp *domain.ScoreResponse
		err  error
	)
	if s.breaker == nil {
		resp, err = s.do(ctx, input)
	} else {
		var out interface{}
		out, err = s.breaker.Execute(func() (interface{}, error) {
			return s.do(ctx, input)
		})
		if err == nil {
			resp = out.(*domain.ScoreResponse)
		}
	}

	s.metrics.ScorerRequest(time.Since(start), err == nil)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("scorer: backend marked unavailable: %w", err)
		}
		return nil, err
	}
	return resp, nil
}

func (s *HTTPScorer) do(ctx context.Context, input domain.HabitInput) (*domain.ScoreResponse, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("scorer: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("scorer: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scorer: request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 256))
		return nil, fmt.Errorf("scorer: unexpected status %d: %s", res.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out domain.ScoreResponse
	if err := json.NewDecoder(io.LimitReader(res.Body, maxBodyBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("scorer: decode response: %w", err)
	}
	return &out, nil
}

func breakerGauge(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
