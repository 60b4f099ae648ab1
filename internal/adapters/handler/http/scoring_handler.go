package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/screenaware/screenaware/internal/adapters/observability"
	"github.com/screenaware/screenaware/internal/core/domain"
)

// ScoringHandler serves the rule-based scoring endpoints the client calls
// before any account exists.
type ScoringHandler struct {
	metrics *observability.Metrics
}

func NewScoringHandler(metrics *observability.Metrics) *ScoringHandler {
	return &ScoringHandler{metrics: metrics}
}

func (h *ScoringHandler) RegisterRoutes(router gin.IRoutes) {
	router.POST("/predict_report", h.PredictReport)
	router.POST("/predict_risk", h.PredictRisk)
	router.POST("/predict_mood", h.PredictMood)
	router.POST("/predict_cluster", h.PredictCluster)
}

// bindInput decodes and validates the nine habit fields. It writes the error
// response itself and reports whether the handler should continue.
func (h *ScoringHandler) bindInput(c *gin.Context) (domain.HabitInput, bool) {
	var in domain.HabitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return in, false
	}
	if err := in.Validate(); err != nil {
		handleError(c, err)
		return in, false
	}
	return in, true
}

// PredictReport godoc
// @Summary  Score a day of habits
// @Tags     scoring
// @Accept   json
// @Produce  json
// @Param    input body domain.HabitInput true "Habit input"
// @Success  200 {object} domain.ScoreResponse
// @Failure  400 {object} map[string]string
// @Router   /predict_report [post]
func (h *ScoringHandler) PredictReport(c *gin.Context) {
	in, ok := h.bindInput(c)
	if !ok {
		return
	}
	h.metrics.Prediction("report")
	c.JSON(http.StatusOK, domain.ScoreLocally(in))
}

func (h *ScoringHandler) PredictRisk(c *gin.Context) {
	in, ok := h.bindInput(c)
	if !ok {
		return
	}
	h.metrics.Prediction("risk")
	c.JSON(http.StatusOK, gin.H{"risk_level": domain.RiskScore(in.DailyScreenTimeHours)})
}

func (h *ScoringHandler) PredictMood(c *gin.Context) {
	in, ok := h.bindInput(c)
	if !ok {
		return
	}
	h.metrics.Prediction("mood")
	c.JSON(http.StatusOK, gin.H{"mood_rating": domain.MoodRating(in.StressLevel, in.SleepQuality)})
}

func (h *ScoringHandler) PredictCluster(c *gin.Context) {
	in, ok := h.bindInput(c)
	if !ok {
		return
	}
	h.metrics.Prediction("cluster")
	c.JSON(http.StatusOK, gin.H{"cluster_label": domain.ClusterLabel(in)})
}
