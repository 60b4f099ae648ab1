package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/screenaware/screenaware/internal/core/domain"
	"github.com/screenaware/screenaware/internal/core/services"
)

// handleError maps domain errors onto status codes. Anything unrecognised is
// logged and reported as a 500 without details.
func handleError(c *gin.Context, err error) {
	var validation *domain.ValidationError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error(), "field": validation.Field})
	case errors.Is(err, domain.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email format"})
	case errors.Is(err, domain.ErrPasswordTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"error": "password too short"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, services.ErrFederatedTokenInvalid),
		errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, domain.ErrNoData):
		c.JSON(http.StatusNotFound, gin.H{"error": "no data found for user"})
	default:
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.FullPath(), err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
