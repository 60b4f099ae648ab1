package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenaware/screenaware/internal/core/domain"
)

func scoringServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict_report", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("KV_ENGINE", "sqlite")
	var out bytes.Buffer
	err := run(context.Background(), args, &out)
	return out.String(), err
}

func TestCLI_ReportThenShow(t *testing.T) {
	srv := scoringServer(t, http.StatusOK, `{"risk_level": 85, "mood_rating": 2.5, "cluster_label": "Social Media Heavy"}`)
	store := filepath.Join(t.TempDir(), "client.db")

	out, err := runCLI(t, "report", "--scorer", srv.URL, "--store", store,
		"--screen", "9", "--sleep", "5", "--stress", "4", "--quality", "2", "--social", "6")

	require.NoError(t, err)
	assert.Contains(t, out, "view: report")
	assert.Contains(t, out, "Risk Level:        High (85)")
	assert.Contains(t, out, "Mood Rating:       2.5 / 5")
	assert.Contains(t, out, "Dominant Category: Social Media")
	assert.Contains(t, out, "Usage Pattern:     Social Media Heavy")

	out, err = runCLI(t, "show", "--store", store)

	require.NoError(t, err)
	assert.Contains(t, out, "Risk Level:        High (85)")
}

func TestCLI_ShowEmptyState(t *testing.T) {
	out, err := runCLI(t, "show", "--store", filepath.Join(t.TempDir(), "empty.db"))

	require.NoError(t, err)
	assert.Contains(t, out, "No report available yet.")
	assert.Contains(t, out, "dataform (/dataform)")
	assert.Contains(t, out, "dashboard (/dashboard)")
}

func TestCLI_ScoringFailure(t *testing.T) {
	srv := scoringServer(t, http.StatusInternalServerError, `{"detail": "boom"}`)

	t.Run("surface policy reports the failure", func(t *testing.T) {
		store := filepath.Join(t.TempDir(), "client.db")

		out, err := runCLI(t, "report", "--scorer", srv.URL, "--store", store, "--policy", "surface",
			"--screen", "3", "--sleep", "8")

		assert.ErrorIs(t, err, domain.ErrScoringUnavailable)
		assert.Contains(t, out, "Failed to generate report")

		shown, err := runCLI(t, "show", "--store", store)
		require.NoError(t, err)
		assert.Contains(t, shown, "No report available yet.", "nothing persisted on failure")
	})

	t.Run("local fallback still produces a report", func(t *testing.T) {
		store := filepath.Join(t.TempDir(), "client.db")

		out, err := runCLI(t, "report", "--scorer", srv.URL, "--store", store, "--policy", "local_fallback",
			"--screen", "3", "--sleep", "8", "--activity", "6")

		require.NoError(t, err)
		assert.Contains(t, out, "Risk Level:        Low (25)")
		assert.Contains(t, out, "Usage Pattern:     Balanced Lifestyle")
		assert.Contains(t, out, "scored locally")
	})
}

func TestCLI_Validation(t *testing.T) {
	out, err := runCLI(t, "report", "--store", filepath.Join(t.TempDir(), "client.db"), "--screen", "4")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, out, "required fields")
}

func TestCLI_UnknownCommand(t *testing.T) {
	out, err := runCLI(t, "dance")

	assert.Error(t, err)
	assert.Contains(t, out, "usage: screenaware")
}
