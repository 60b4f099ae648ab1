package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreResponse_DecodeBoundary(t *testing.T) {
	t.Run("Numeric fields from the rule-based backend", func(t *testing.T) {
		var resp ScoreResponse
		err := json.Unmarshal([]byte(`{"risk_level":55,"mood_rating":3.5,"cluster_label":"Gaming Focused"}`), &resp)
		require.NoError(t, err)

		risk, ok := resp.RiskLevel.Float()
		assert.True(t, ok)
		assert.Equal(t, 55.0, risk)
		assert.Equal(t, "Gaming Focused", resp.ClusterLabel.OrUnknown())
		assert.Equal(t, Unknown, resp.DominantCategory.OrUnknown())
	})

	t.Run("Categorical risk and numeric cluster from the ML backend", func(t *testing.T) {
		var resp ScoreResponse
		err := json.Unmarshal([]byte(`{"risk_level":"High","cluster_label":2}`), &resp)
		require.NoError(t, err)

		assert.False(t, resp.RiskLevel.IsNumeric())
		assert.Equal(t, "High", resp.RiskLevel.String())
		assert.True(t, resp.MoodRating.IsUnknown())
		assert.Equal(t, "2", resp.ClusterLabel.OrUnknown())
	})

	t.Run("Null and empty values become Unknown", func(t *testing.T) {
		var resp ScoreResponse
		err := json.Unmarshal([]byte(`{"risk_level":null,"mood_rating":"","cluster_label":null}`), &resp)
		require.NoError(t, err)

		assert.True(t, resp.RiskLevel.IsUnknown())
		assert.True(t, resp.MoodRating.IsUnknown())
		assert.Equal(t, Unknown, resp.ClusterLabel.OrUnknown())
	})

	t.Run("Objects are rejected", func(t *testing.T) {
		var resp ScoreResponse
		err := json.Unmarshal([]byte(`{"risk_level":{"score":1}}`), &resp)
		assert.Error(t, err)
	})
}

func TestMeasure_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		A Measure `json:"a"`
		B Measure `json:"b"`
		C Measure `json:"c"`
	}{NumericMeasure(85), LabelMeasure("Low"), Measure{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":85,"b":"Low","c":"Unknown"}`, string(b))

	var m Measure
	require.NoError(t, json.Unmarshal([]byte(`"Unknown"`), &m))
	assert.True(t, m.IsUnknown())
}

func TestReportResult_RiskText(t *testing.T) {
	tests := []struct {
		risk Measure
		want string
	}{
		{NumericMeasure(85), "High"},
		{NumericMeasure(70), "Moderate"},
		{NumericMeasure(55), "Moderate"},
		{NumericMeasure(40), "Low"},
		{NumericMeasure(25), "Low"},
		{LabelMeasure("Medium"), "Medium"},
		{Measure{}, Unknown},
	}

	for _, tt := range tests {
		r := ReportResult{RiskLevel: tt.risk}
		assert.Equal(t, tt.want, r.RiskText(), "risk=%s", tt.risk)
	}
}
