package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prepwise/prepwise-backend/internal/api/handlers"
	"github.com/prepwise/prepwise-backend/internal/api/middleware"
)

type Deps struct {
	Auth      *handlers.AuthHandler
	Resume    *handlers.ResumeHandler
	Session   *handlers.SessionHandler
	Interview *handlers.InterviewHandler
	Search    *handlers.SearchHandler
	WS        *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Public
	r.POST("/auth/signup", d.Auth.Signup)
	r.POST("/auth/login", d.Auth.Login)

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.POST("/resume/upload", d.Resume.Upload)
	auth.GET("/resume/:resume_id/download", d.Resume.Download)
	auth.GET("/search/resume", d.Search.SearchResume)

	auth.POST("/interview-session/start", d.Session.Start)
	auth.GET("/interview-session/:session_id", d.Session.Get)

	auth.POST("/interview/question", d.Interview.NextQuestion)
	auth.POST("/interview/answer", d.Interview.SubmitAnswer)
	auth.POST("/interview/feedback", d.Interview.Feedback)

	// WebSocket
	auth.GET("/ws/interview/:session_id", d.WS.InterviewWS)
}
