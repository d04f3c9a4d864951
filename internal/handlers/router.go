package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/todo-api/internal/auth"
	"github.com/yukikurage/todo-api/internal/middleware"
)

// RouterDeps are the collaborators the HTTP layer is built from.
type RouterDeps struct {
	AuthHandler    *AuthHandler
	TaskHandler    *TaskHandler
	TokenValidator auth.TokenValidator
	Logger         zerolog.Logger
}

// NewRouter wires every route of the API.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Recovery(deps.Logger))

	requireAuth := middleware.RequireAuth(deps.TokenValidator, deps.Logger)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Todo API is running",
		})
	})

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", deps.AuthHandler.Register)
		authGroup.POST("/login", deps.AuthHandler.Login)
		authGroup.GET("/me", requireAuth, deps.AuthHandler.GetCurrentUser)
	}

	tasks := r.Group("/tasks")
	tasks.Use(requireAuth)
	{
		tasks.GET("", deps.TaskHandler.ListTasks)
		tasks.POST("", deps.TaskHandler.CreateTask)
		tasks.GET("/:id", deps.TaskHandler.GetTask)
		tasks.PUT("/:id", deps.TaskHandler.UpdateTask)
		tasks.PATCH("/:id", deps.TaskHandler.UpdateTask)
		tasks.DELETE("/:id", deps.TaskHandler.DeleteTask)
	}

	return r
}
