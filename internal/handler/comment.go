package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/commentboard/backend/internal/service"
)

type CommentHandler struct {
	svc *service.CommentService
	log *logrus.Logger
}

func NewCommentHandler(svc *service.CommentService, log *logrus.Logger) *CommentHandler {
	return &CommentHandler{svc: svc, log: log}
}

type commentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// GetAllComments godoc
// @Summary List comments, newest first
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Router /api/comments [get]
func (h *CommentHandler) GetAllComments(c *gin.Context) {
	comments, err := h.svc.ListComments(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// CreateComment godoc
// @Summary Create a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /api/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	authUser := GetAuthUser(c)
	if authUser == nil {
		abortUnauthenticated(c)
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment payload"})
		return
	}

	comment, err := h.svc.CreateComment(c.Request.Context(), authUser.ID, req.Content)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment created successfully",
		"comment": comment,
	})
}

// UpdateComment godoc
// @Summary Update one of your own comments
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /api/comments/{commentId} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	authUser := GetAuthUser(c)
	if authUser == nil {
		abortUnauthenticated(c)
		return
	}

	commentID, err := strconv.ParseInt(c.Param("commentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment payload"})
		return
	}

	comment, err := h.svc.UpdateComment(c.Request.Context(), commentID, authUser.ID, req.Content)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		case service.ErrNotOwner:
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own comments"})
		default:
			writeServiceError(c, h.log, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment updated successfully",
		"comment": comment,
	})
}

// DeleteComment godoc
// @Summary Delete any comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Router /api/comments/{commentId} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("commentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	if err := h.svc.DeleteComment(c.Request.Context(), commentID); err != nil {
		if err == service.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
