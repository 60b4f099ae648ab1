package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/screenaware/screenaware/internal/core/domain"
)

// ReportViewer resolves the report to display on the report view.
type ReportViewer struct {
	history domain.NavigationStore
	store   domain.KeyValueStore
}

func NewReportViewer(history domain.NavigationStore, store domain.KeyValueStore) *ReportViewer {
	return &ReportViewer{history: history, store: store}
}

// Load prefers the payload attached to the current history entry and falls
// back to the last persisted report. ok is false when neither exists, in
// which case the caller shows the empty state.
func (v *ReportViewer) Load(ctx context.Context) (*domain.ReportResult, bool) {
	if entry, err := v.history.Current(); err == nil && entry.State != nil && entry.State.Report != nil {
		report := entry.State.Report
		// keep the durable copy in step with what is on screen
		if data, err := json.Marshal(report); err == nil {
			if err := v.store.Set(ctx, domain.ReportStorageKey, data); err != nil {
				log.Printf("[REPORT] Failed to refresh stored report: %v", err)
			}
		}
		return report, true
	}

	data, err := v.store.Get(ctx, domain.ReportStorageKey)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			log.Printf("[REPORT] Failed to read stored report: %v", err)
		}
		return nil, false
	}

	var report domain.ReportResult
	if err := json.Unmarshal(data, &report); err != nil {
		log.Printf("[REPORT] Discarding unreadable stored report: %v", err)
		return nil, false
	}
	return &report, true
}

// EmptyStateActions are the views offered when there is no report to show.
func EmptyStateActions() []domain.View {
	return []domain.View{domain.ViewDataForm, domain.ViewDashboard}
}
