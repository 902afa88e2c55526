package app

import (
	"edunova_backend/docs"
	"edunova_backend/internal/config"
	"edunova_backend/internal/middleware"
	"edunova_backend/internal/model"
	"edunova_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		progress := authGroup.Group("/progress")
		{
			progress.GET("/user/:userId", c.progress.GetUserProgress)
			progress.GET("/resource/:userId/:resourceId", c.progress.GetResourceProgress)
			progress.POST("/start", c.progress.StartLearning)
			progress.PATCH("/:userId/:resourceId", c.progress.UpdateProgress)
			progress.POST("/:userId/:resourceId/complete", c.progress.CompleteResource)
			progress.POST("/:userId/:resourceId/assessment", c.progress.SubmitAssessment)

			progress.GET("/stats/:userId", c.analytics.GetLearningStats)
			progress.GET("/analytics/:userId", c.analytics.GetProgressAnalytics)
			progress.GET("/achievements/:userId", c.analytics.GetAchievements)

			// 教师相关接口
			progress.GET("/teacher/:teacherId",
				middleware.RoleMiddleware(model.Teacher),
				c.report.GetTeacherReport)
		}
	}
}
