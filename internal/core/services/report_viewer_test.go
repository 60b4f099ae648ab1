package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/screenaware/screenaware/internal/adapters/history"
	"github.com/screenaware/screenaware/internal/core/domain"
	"github.com/screenaware/screenaware/internal/core/services"
)

func TestReportViewer_Load(t *testing.T) {
	ctx := context.Background()

	stale, err := json.Marshal(domain.ReportResult{ClusterLabel: domain.ClusterModerateUsage})
	require.NoError(t, err)

	t.Run("Should prefer the history payload over the stored report", func(t *testing.T) {
		h := history.NewMemoryHistory("/dataform")
		fresh := &domain.ReportResult{ClusterLabel: domain.ClusterGamingFocused}
		require.NoError(t, h.Push(domain.NavigationEntry{
			Path:  "/report",
			State: &domain.HistoryState{View: domain.ViewReport, Report: fresh},
		}))

		store := new(MockKeyValueStore)
		store.On("Set", ctx, domain.ReportStorageKey, mock.Anything).Return(nil)

		report, ok := services.NewReportViewer(h, store).Load(ctx)

		require.True(t, ok)
		assert.Equal(t, domain.ClusterGamingFocused, report.ClusterLabel)
		store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("Should fall back to the stored report", func(t *testing.T) {
		h := history.NewMemoryHistory("/report")
		store := new(MockKeyValueStore)
		store.On("Get", ctx, domain.ReportStorageKey).Return(stale, nil)

		report, ok := services.NewReportViewer(h, store).Load(ctx)

		require.True(t, ok)
		assert.Equal(t, domain.ClusterModerateUsage, report.ClusterLabel)
	})

	t.Run("Should report the empty state when nothing is stored", func(t *testing.T) {
		store := new(MockKeyValueStore)
		store.On("Get", ctx, domain.ReportStorageKey).Return(nil, domain.ErrKeyNotFound)

		report, ok := services.NewReportViewer(history.Unavailable{}, store).Load(ctx)

		assert.False(t, ok)
		assert.Nil(t, report)
	})

	t.Run("Should treat storage failures and corrupt data as empty", func(t *testing.T) {
		h := history.NewMemoryHistory("/report")

		failing := new(MockKeyValueStore)
		failing.On("Get", ctx, domain.ReportStorageKey).Return(nil, errors.New("disk gone"))
		_, ok := services.NewReportViewer(h, failing).Load(ctx)
		assert.False(t, ok)

		corrupt := new(MockKeyValueStore)
		corrupt.On("Get", ctx, domain.ReportStorageKey).Return([]byte("{not json"), nil)
		_, ok = services.NewReportViewer(h, corrupt).Load(ctx)
		assert.False(t, ok)
	})
}

func TestEmptyStateActions(t *testing.T) {
	assert.Equal(t, []domain.View{domain.ViewDataForm, domain.ViewDashboard}, services.EmptyStateActions())
}
