package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/screenaware/screenaware/internal/adapters/handler/http/middleware"
	"github.com/screenaware/screenaware/internal/core/domain"
	"github.com/screenaware/screenaware/internal/core/services"
)

type AnalyticsHandler struct {
	svc *services.AnalyticsService
}

func NewAnalyticsHandler(svc *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		svc: svc,
	}
}

// userDataRequest is one logged day as the dashboard posts it after scoring.
// The owner always comes from the token, never from the body.
type userDataRequest struct {
	domain.HabitInput
	RiskLevel    string  `json:"risk_level"`
	MoodRating   float64 `json:"mood_rating" binding:"required"`
	ClusterLabel string  `json:"cluster_label"`
}

func (h *AnalyticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	userData := router.Group("/user-data")
	{
		userData.POST("", h.Record)
		userData.GET("/latest", h.Latest)
	}

	analytics := router.Group("/analytics")
	{
		analytics.GET("/overview", h.Overview)
		analytics.GET("/detailed", h.Detailed)
	}
}

// Record godoc
// @Summary   Store a scored day of habits
// @Tags      analytics
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     input body userDataRequest true "Habits and scores"
// @Success   201 {object} domain.DataPoint
// @Failure   400 {object} map[string]string
// @Router    /api/v1/user-data [post]
func (h *AnalyticsHandler) Record(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req userDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	point, err := h.svc.Record(c.Request.Context(), userID, services.RecordInput{
		HabitInput:   req.HabitInput,
		RiskLevel:    req.RiskLevel,
		MoodRating:   req.MoodRating,
		ClusterLabel: req.ClusterLabel,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, point)
}

func (h *AnalyticsHandler) Latest(c *gin.Context) {
	h.serve(c, func(userID string) (any, error) {
		return h.svc.Latest(c.Request.Context(), userID)
	})
}

// Overview godoc
// @Summary   30-day analytics summary
// @Tags      analytics
// @Produce   json
// @Security  BearerAuth
// @Success   200 {object} domain.AnalyticsOverview
// @Failure   404 {object} map[string]string
// @Router    /api/v1/analytics/overview [get]
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	h.serve(c, func(userID string) (any, error) {
		return h.svc.Overview(c.Request.Context(), userID)
	})
}

func (h *AnalyticsHandler) Detailed(c *gin.Context) {
	h.serve(c, func(userID string) (any, error) {
		return h.svc.Detailed(c.Request.Context(), userID)
	})
}

func (h *AnalyticsHandler) serve(c *gin.Context, load func(userID string) (any, error)) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	result, err := load(userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
