package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/commentboard/backend/internal/service"
)

// writeServiceError maps domain errors to stable responses. Unexpected
// failures are logged with detail server-side and returned as a
// generic 500; internals never reach the caller.
func writeServiceError(c *gin.Context, log *logrus.Logger, err error) {
	switch err {
	case service.ErrInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	case service.ErrDuplicateEmail:
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists with this email"})
	case service.ErrInvalidCredentials:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case service.ErrInvalidRefreshToken:
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid or expired refresh token"})
	case service.ErrInvalidResetToken:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset token"})
	case service.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
