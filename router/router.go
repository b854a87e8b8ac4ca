package router

import (
	"net/http"

	"annotator/config"
	"annotator/controllers"
	"annotator/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 10 << 20 // 10MB, matches the frontend upload cap

// Initialize wires all routes and middlewares: CORS -> body limit -> auth ->
// binding -> controller. cfg is the only configuration source; nothing here
// reads the environment.
func Initialize(r *gin.Engine, cfg config.Configuration) {
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		controllers.RespondError(c, "Internal server error", http.StatusInternalServerError)
	}))
	r.Use(middleware.CORS([]string{cfg.FrontendURL, "http://localhost:5173"}))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Extraction Annotation API is running",
		})
	})

	api := r.Group("/api")

	// Public (no auth)
	api.POST("/auth/signup", Logger(), controllers.Signup(cfg))
	api.POST("/auth/login", Logger(), controllers.Login(cfg))

	// Authenticated routes (token required)
	auth := api.Group("")
	auth.Use(controllers.AuthRequired(cfg.JWTSecret))

	auth.GET("/auth/me", Logger(), controllers.Me)

	auth.POST("/extractions", Logger(), controllers.CreateExtraction)
	auth.POST("/extractions/submit", Logger(), controllers.SubmitExtraction)
	auth.GET("/extractions", Logger(), controllers.GetExtractions)
	auth.GET("/extractions/:id", Logger(), controllers.GetExtraction)
	auth.PUT("/extractions/:id", Logger(), controllers.UpdateExtraction)
	auth.DELETE("/extractions/:id", Logger(), controllers.DeleteExtraction)

	auth.POST("/annotations", Logger(), controllers.CreateAnnotation)
	auth.GET("/annotations", Logger(), controllers.GetAnnotations)
	auth.PUT("/annotations/:id", Logger(), controllers.UpdateAnnotation)
	auth.DELETE("/annotations/:id", Logger(), controllers.DeleteAnnotation)

	r.NoRoute(func(c *gin.Context) {
		controllers.RespondError(c, "Route not found", http.StatusNotFound)
	})

	logrus.Info("routes initialized")
}
