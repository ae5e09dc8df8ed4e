package app

import (
	"practicetime_backend/internal/config"
	"practicetime_backend/internal/middleware"
	"practicetime_backend/internal/model"
	"practicetime_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// Legacy uploader tool endpoint: root-level path, no auth, its own
	// response shape.
	router.POST("/upload-question", c.upload.UploadQuestion)

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/login", c.auth.Login)
	}

	admin := router.Group("/api")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		questions := admin.Group("/questions")
		{
			questions.POST("", c.question.Create)
			questions.GET("", c.question.List)
			questions.DELETE("/:id", c.question.Delete)
			questions.POST("/bulk", c.question.BulkImport)
			questions.POST("/image", c.question.UploadImage)
		}

		sets := admin.Group("/sets")
		{
			sets.GET("", c.set.List)
			sets.GET("/:name/questions", c.set.Questions)
			sets.POST("/:name/questions", c.set.AddQuestion)
			sets.DELETE("/:name/questions/:questionId", c.set.RemoveQuestion)
			sets.DELETE("/:name", c.set.Delete)
			sets.POST("/:name/attach", c.set.Attach)
		}

		users := admin.Group("/users")
		{
			users.GET("", c.user.List)
			users.GET("/:id", c.user.Get)
			users.GET("/:id/results/:quizId", c.user.GetQuizResult)
			users.DELETE("/:id/assignedSets/:setName", c.user.DetachSet)
		}

		syllabus := admin.Group("/syllabus")
		{
			syllabus.GET("", c.syllabus.List)
			syllabus.POST("", c.syllabus.Create)
			syllabus.GET("/search", c.syllabus.Search)
			syllabus.PUT("/:id", c.syllabus.Update)
			syllabus.DELETE("/:id", c.syllabus.Delete)
		}

		admin.GET("/stats/questions", c.stats.Questions)
	}
}
