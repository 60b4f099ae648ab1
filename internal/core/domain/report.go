package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

var ErrScoringUnavailable = errors.New("report service unavailable")

// Unknown replaces any report field the scoring endpoint did not return.
const Unknown = "Unknown"

// ReportStorageKey is the durable key holding the last generated report.
const ReportStorageKey = "screenaware_report"

type ReportSource string

const (
	SourceRemote        ReportSource = "remote"
	SourceLocalFallback ReportSource = "local_fallback"
)

// Measure is a score that is either numeric, categorical or unknown.
// The zero value is unknown.
type Measure struct {
	value   float64
	label   string
	numeric bool
}

func NumericMeasure(v float64) Measure {
	return Measure{value: v, numeric: true}
}

// LabelMeasure builds a categorical measure; an empty label or the Unknown
// sentinel yields the unknown measure.
func LabelMeasure(label string) Measure {
	if label == "" || label == Unknown {
		return Measure{}
	}
	return Measure{label: label}
}

func (m Measure) IsUnknown() bool {
	return !m.numeric && m.label == ""
}

func (m Measure) IsNumeric() bool {
	return m.numeric
}

// Float returns the numeric value; ok is false for categorical or unknown measures.
func (m Measure) Float() (float64, bool) {
	return m.value, m.numeric
}

func (m Measure) String() string {
	switch {
	case m.numeric:
		return strconv.FormatFloat(m.value, 'f', -1, 64)
	case m.label != "":
		return m.label
	default:
		return Unknown
	}
}

func (m Measure) MarshalJSON() ([]byte, error) {
	if m.numeric {
		return json.Marshal(m.value)
	}
	return json.Marshal(m.String())
}

func (m *Measure) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = Measure{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = LabelMeasure(s)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("measure: expected number or string, got %s", string(data))
	}
	*m = NumericMeasure(v)
	return nil
}

// Label is a categorical field that upstream models may encode as a number
// (e.g. a cluster index) or as a string.
type Label string

func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Label(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("label: expected number or string, got %s", string(data))
	}
	*l = Label(n.String())
	return nil
}

// OrUnknown returns the label, or the Unknown sentinel when it is empty.
func (l Label) OrUnknown() string {
	if l == "" {
		return Unknown
	}
	return string(l)
}

// ScoreResponse is the body returned by the scoring endpoint. Every field is optional.
type ScoreResponse struct {
	RiskLevel        Measure `json:"risk_level"`
	MoodRating       Measure `json:"mood_rating"`
	DominantCategory Label   `json:"dominant_category,omitempty"`
	ClusterLabel     Label   `json:"cluster_label,omitempty"`
}

type ReportResult struct {
	RiskLevel        Measure      `json:"risk_level"`
	MoodRating       Measure      `json:"mood_rating"`
	DominantCategory string       `json:"dominant_category"`
	ClusterLabel     string       `json:"cluster_label"`
	Raw              HabitInput   `json:"raw"`
	Source           ReportSource `json:"source"`
	GeneratedAt      time.Time    `json:"generated_at"`
}

// RiskText turns the risk level into the band shown to the user.
func (r ReportResult) RiskText() string {
	score, ok := r.RiskLevel.Float()
	if !ok {
		return r.RiskLevel.String()
	}
	switch {
	case score > 70:
		return "High"
	case score > 40:
		return "Moderate"
	default:
		return "Low"
	}
}
