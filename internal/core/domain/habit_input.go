package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrValidation = errors.New("validation failed")
)

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3
)

// ValidationError reports a single rejected form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// HabitForm is the habit-tracking form exactly as typed by the user.
type HabitForm struct {
	DailyScreenTimeHours         string `json:"daily_screen_time_hours"`
	SleepDurationHours           string `json:"sleep_duration_hours"`
	StressLevel                  string `json:"stress_level"`
	SleepQuality                 string `json:"sleep_quality"`
	PhysicalActivityHoursPerWeek string `json:"physical_activity_hours_per_week"`
	SocialMediaHours             string `json:"social_media_hours"`
	GamingHours                  string `json:"gaming_hours"`
	EntertainmentHours           string `json:"entertainment_hours"`
	WorkRelatedHours             string `json:"work_related_hours"`
}

// HabitInput is the numeric record sent to the scoring endpoint.
type HabitInput struct {
	DailyScreenTimeHours         float64 `json:"daily_screen_time_hours" db:"daily_screen_time_hours"`
	SleepDurationHours           float64 `json:"sleep_duration_hours" db:"sleep_duration_hours"`
	StressLevel                  float64 `json:"stress_level" db:"stress_level"`
	SleepQuality                 float64 `json:"sleep_quality" db:"sleep_quality"`
	PhysicalActivityHoursPerWeek float64 `json:"physical_activity_hours_per_week" db:"physical_activity_hours_per_week"`
	SocialMediaHours             float64 `json:"social_media_hours" db:"social_media_hours"`
	GamingHours                  float64 `json:"gaming_hours" db:"gaming_hours"`
	EntertainmentHours           float64 `json:"entertainment_hours" db:"entertainment_hours"`
	WorkRelatedHours             float64 `json:"work_related_hours" db:"work_related_hours"`
}

// Validate only checks the two required fields; everything else is defaulted by Parse.
func (f HabitForm) Validate() error {
	if strings.TrimSpace(f.DailyScreenTimeHours) == "" {
		return &ValidationError{Field: "daily_screen_time_hours", Message: "is required"}
	}
	if strings.TrimSpace(f.SleepDurationHours) == "" {
		return &ValidationError{Field: "sleep_duration_hours", Message: "is required"}
	}
	return nil
}

// Parse coerces the raw form. Blank or non-numeric hours become 0; blank,
// non-numeric or zero ratings become DefaultRating.
func (f HabitForm) Parse() HabitInput {
	return HabitInput{
		DailyScreenTimeHours:         parseHours(f.DailyScreenTimeHours),
		SleepDurationHours:           parseHours(f.SleepDurationHours),
		StressLevel:                  parseRating(f.StressLevel),
		SleepQuality:                 parseRating(f.SleepQuality),
		PhysicalActivityHoursPerWeek: parseHours(f.PhysicalActivityHoursPerWeek),
		SocialMediaHours:             parseHours(f.SocialMediaHours),
		GamingHours:                  parseHours(f.GamingHours),
		EntertainmentHours:           parseHours(f.EntertainmentHours),
		WorkRelatedHours:             parseHours(f.WorkRelatedHours),
	}
}

// Validate checks a numeric input received directly over the API.
func (in HabitInput) Validate() error {
	hours := []struct {
		name  string
		value float64
	}{
		{"daily_screen_time_hours", in.DailyScreenTimeHours},
		{"sleep_duration_hours", in.SleepDurationHours},
		{"physical_activity_hours_per_week", in.PhysicalActivityHoursPerWeek},
		{"social_media_hours", in.SocialMediaHours},
		{"gaming_hours", in.GamingHours},
		{"entertainment_hours", in.EntertainmentHours},
		{"work_related_hours", in.WorkRelatedHours},
	}
	for _, h := range hours {
		if h.value < 0 {
			return &ValidationError{Field: h.name, Message: "cannot be negative"}
		}
	}
	if in.StressLevel < MinRating || in.StressLevel > MaxRating {
		return &ValidationError{Field: "stress_level", Message: "must be between 1 and 5"}
	}
	if in.SleepQuality < MinRating || in.SleepQuality > MaxRating {
		return &ValidationError{Field: "sleep_quality", Message: "must be between 1 and 5"}
	}
	return nil
}

func parseNumber(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseHours(raw string) float64 {
	v, ok := parseNumber(raw)
	if !ok {
		return 0
	}
	return v
}

func parseRating(raw string) float64 {
	v, ok := parseNumber(raw)
	if !ok || v == 0 {
		return DefaultRating
	}
	return clamp(v, MinRating, MaxRating)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
