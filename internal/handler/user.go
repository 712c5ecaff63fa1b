package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/commentboard/backend/internal/model"
	"github.com/commentboard/backend/internal/service"
)

type UserHandler struct {
	svc *service.UserService
	log *logrus.Logger
}

func NewUserHandler(svc *service.UserService, log *logrus.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// Profile godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Router /api/users/profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	authUser := GetAuthUser(c)
	if authUser == nil {
		abortUnauthenticated(c)
		return
	}

	user, err := h.svc.Profile(c.Request.Context(), authUser.ID)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetAllUsers godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Router /api/users/all [get]
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdatePermissions godoc
// @Summary Update a user's permission flags
// @Description Requires authentication only; any signed-in user may
// @Description change any user's flags.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /api/users/{userId}/permissions [put]
func (h *UserHandler) UpdatePermissions(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var update model.PermissionUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid permissions payload"})
		return
	}

	user, err := h.svc.UpdatePermissions(c.Request.Context(), userID, update)
	if err != nil {
		if err == service.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User permissions updated successfully",
		"user":    user,
	})
}
