package domain

import "math"

const (
	ClusterHighUsageHighStress = "High Usage + High Stress"
	ClusterBalancedLifestyle   = "Balanced Lifestyle"
	ClusterSocialMediaHeavy    = "Social Media Heavy"
	ClusterGamingFocused       = "Gaming Focused"
	ClusterModerateUsage       = "Moderate Usage"

	CategorySocialMedia   = "Social Media"
	CategoryGaming        = "Gaming"
	CategoryEntertainment = "Entertainment"
	CategoryWorkRelated   = "Work Related"
	CategoryOther         = "Other"
)

// RiskScore maps daily screen time onto the 0-100 risk scale.
func RiskScore(screenTimeHours float64) float64 {
	switch {
	case screenTimeHours >= 7:
		return 85
	case screenTimeHours >= 4:
		return 55
	default:
		return 25
	}
}

// MoodRating estimates mood on the 1-5 scale, rounded to one decimal.
func MoodRating(stressLevel, sleepQuality float64) float64 {
	mood := clamp(((6-stressLevel)+sleepQuality)/2, MinRating, MaxRating)
	return math.Round(mood*10) / 10
}

// ClusterLabel applies the usage rules in priority order; the first match wins.
func ClusterLabel(in HabitInput) string {
	screen := in.DailyScreenTimeHours
	switch {
	case screen > 8 && in.StressLevel > 3:
		return ClusterHighUsageHighStress
	case screen < 4 && in.PhysicalActivityHoursPerWeek > 5:
		return ClusterBalancedLifestyle
	case in.SocialMediaHours > 0.5*screen:
		return ClusterSocialMediaHeavy
	case in.GamingHours > 0.5*screen:
		return ClusterGamingFocused
	default:
		return ClusterModerateUsage
	}
}

// DominantCategory returns the category with strictly the most hours. Ties go
// to the earlier category; all-zero input yields CategoryOther.
func DominantCategory(in HabitInput) string {
	categories := []struct {
		label string
		hours float64
	}{
		{CategorySocialMedia, in.SocialMediaHours},
		{CategoryGaming, in.GamingHours},
		{CategoryEntertainment, in.EntertainmentHours},
		{CategoryWorkRelated, in.WorkRelatedHours},
	}

	dominant := CategoryOther
	best := 0.0
	for _, c := range categories {
		if c.hours > best {
			best = c.hours
			dominant = c.label
		}
	}
	return dominant
}

// ScoreLocally is the deterministic rule-based scorer used by the public
// scoring endpoint and, when enabled, as the client fallback.
func ScoreLocally(in HabitInput) ScoreResponse {
	return ScoreResponse{
		RiskLevel:        NumericMeasure(RiskScore(in.DailyScreenTimeHours)),
		MoodRating:       NumericMeasure(MoodRating(in.StressLevel, in.SleepQuality)),
		DominantCategory: Label(DominantCategory(in)),
		ClusterLabel:     Label(ClusterLabel(in)),
	}
}
