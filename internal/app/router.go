package app

import (
	"pattern_master_backend/docs"
	"pattern_master_backend/internal/middleware"
	"pattern_master_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(a.ConfigStore))
	{
		a.registerUserRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/", c.health.Root)
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 图案目录是只读的公共数据
		public.GET("/patterns", c.pattern.ListPatterns)
		public.GET("/patterns/:id", c.pattern.GetPattern)
		public.GET("/patterns/:id/statistics", c.pattern.GetStatistics)

		public.GET("/leaderboard", middleware.TryAuthMiddleware(a.ConfigStore), c.progress.GetLeaderboard)

		// 分析与生成接口对游客开放，增强分析除外
		public.POST("/ai/analyze", c.ai.Analyze)
		public.POST("/ai/code-feedback", c.ai.CodeFeedback)
		public.POST("/ai/generate-code", c.ai.GenerateCode)
		public.POST("/ai/generate-detailed-code", c.ai.GenerateDetailedCode)
		public.POST("/ai/code-explanation", c.ai.CodeExplanation)
		public.POST("/ai/chat", c.ai.Chat)

		public.POST("/execute-code", c.execution.ExecuteCode)
	}
}

func (a *App) registerUserRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/profile", c.auth.GetProfile)
	group.PUT("/user/profile", c.user.UpdateProfile)

	group.POST("/user/progress", c.progress.SubmitProgress)
	group.GET("/user/progress", c.progress.GetMyProgress)
	group.GET("/user/progress/:userId", c.progress.GetUserProgress)

	group.POST("/ai/enhanced-analysis", c.ai.EnhancedAnalysis)
	group.GET("/ai/analysis-history", c.ai.AnalysisHistory)
}
