package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/screenaware/screenaware/internal/core/domain"
)

// RemoteScorer computes report scores for a habit input, typically over HTTP.
type RemoteScorer interface {
	Score(ctx context.Context, input domain.HabitInput) (*domain.ScoreResponse, error)
}

// FailurePolicy decides what happens when the remote scorer cannot be reached.
type FailurePolicy string

const (
	// PolicySurface aborts generation and reports the failure to the user.
	PolicySurface FailurePolicy = "surface"
	// PolicyLocalFallback substitutes the rule-based local scores.
	PolicyLocalFallback FailurePolicy = "local_fallback"
)

func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicySurface:
		return PolicySurface, nil
	case PolicyLocalFallback, "fallback":
		return PolicyLocalFallback, nil
	default:
		return "", fmt.Errorf("unknown scoring failure policy %q", s)
	}
}

type ReportGenerator struct {
	scorer RemoteScorer
	store  domain.KeyValueStore
	nav    Navigator
	policy FailurePolicy
	now    func() time.Time
}

func NewReportGenerator(scorer RemoteScorer, store domain.KeyValueStore, nav Navigator, policy FailurePolicy) *ReportGenerator {
	if policy == "" {
		policy = PolicySurface
	}
	return &ReportGenerator{
		scorer: scorer,
		store:  store,
		nav:    nav,
		policy: policy,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Generate validates the form, scores it, persists the report under
// domain.ReportStorageKey and navigates to the report view carrying it.
// Nothing is written and no navigation happens when validation or scoring fails.
func (g *ReportGenerator) Generate(ctx context.Context, form domain.HabitForm) (*domain.ReportResult, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	input := form.Parse()

	scores, source, err := g.score(ctx, input)
	if err != nil {
		return nil, err
	}

	// the caller went away while we were waiting on the scorer
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dominant := string(scores.DominantCategory)
	if dominant == "" {
		dominant = domain.DominantCategory(input)
	}

	report := &domain.ReportResult{
		RiskLevel:        scores.RiskLevel,
		MoodRating:       scores.MoodRating,
		DominantCategory: dominant,
		ClusterLabel:     scores.ClusterLabel.OrUnknown(),
		Raw:              input,
		Source:           source,
		GeneratedAt:      g.now(),
	}

	if err := g.persist(ctx, report); err != nil {
		log.Printf("[REPORT] Failed to persist report, history payload only: %v", err)
	}

	g.nav.Navigate(domain.ViewReport, WithReport(report))

	return report, nil
}

func (g *ReportGenerator) score(ctx context.Context, input domain.HabitInput) (*domain.ScoreResponse, domain.ReportSource, error) {
	scores, err := g.scorer.Score(ctx, input)
	if err == nil {
		if scores == nil {
			scores = &domain.ScoreResponse{}
		}
		return scores, domain.SourceRemote, nil
	}

	if g.policy != PolicyLocalFallback || ctx.Err() != nil {
		return nil, "", fmt.Errorf("report generator: %w: %w", domain.ErrScoringUnavailable, err)
	}

	log.Printf("[REPORT] Scoring backend unavailable, using local rules: %v", err)
	local := domain.ScoreLocally(input)
	local.DominantCategory = ""
	return &local, domain.SourceLocalFallback, nil
}

func (g *ReportGenerator) persist(ctx context.Context, report *domain.ReportResult) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return g.store.Set(ctx, domain.ReportStorageKey, data)
}
