package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/commentboard/backend/internal/service"
	"github.com/commentboard/backend/internal/token"
)

type Services struct {
	Auth     *service.AuthService
	Reset    *service.ResetService
	Users    *service.UserService
	Comments *service.CommentService
}

// NewRouter wires every route. Gated groups always run AuthMiddleware
// before any RequirePermission stage.
func NewRouter(codec *token.Codec, users UserLoader, svcs Services, log *logrus.Logger) *gin.Engine {
	r := gin.Default()

	authHandler := NewAuthHandler(svcs.Auth, svcs.Reset, log)
	userHandler := NewUserHandler(svcs.Users, log)
	commentHandler := NewCommentHandler(svcs.Comments, log)

	authRequired := AuthMiddleware(codec, users)

	r.GET("/health", Health)

	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh-token", authHandler.RefreshToken)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	usersGroup := r.Group("/api/users", authRequired)
	{
		usersGroup.GET("/profile", userHandler.Profile)
		usersGroup.GET("/all", userHandler.GetAllUsers)
		usersGroup.PUT("/:userId/permissions", userHandler.UpdatePermissions)
	}

	comments := r.Group("/api/comments", authRequired)
	{
		comments.GET("", RequirePermission(PermissionRead), commentHandler.GetAllComments)
		comments.POST("", RequirePermission(PermissionWrite), commentHandler.CreateComment)
		comments.PUT("/:commentId", RequirePermission(PermissionWrite), commentHandler.UpdateComment)
		comments.DELETE("/:commentId", RequirePermission(PermissionDelete), commentHandler.DeleteComment)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return r
}
