package app

import (
	"schoolnet_backend/docs"
	"schoolnet_backend/internal/config"
	"schoolnet_backend/internal/middleware"

	"schoolnet_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 登录后可用的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerAuthRoutes(authGroup, c)

		// 3. 审核通过后才可用的路由
		approved := authGroup.Group("")
		approved.Use(middleware.RequireApproved(repos.user))
		{
			a.registerApprovedRoutes(approved, c)
		}

		// 4. 管理员路由
		admin := authGroup.Group("/admin")
		admin.Use(middleware.RequireAdmin(repos.user))
		{
			a.registerAdminRoutes(admin, c)
		}
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Check)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/logout", c.auth.Logout)

		// 列表类：可选认证，允许游客浏览
		public.GET("/posts", middleware.TryAuthMiddleware(a.Config), c.post.GetPosts)
		public.GET("/posts/:id", middleware.TryAuthMiddleware(a.Config), c.post.GetPost)
		public.GET("/users/:id", c.user.GetUser)
	}
}

func (a *App) registerAuthRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PATCH("/users/:id", c.user.UpdateProfile)

	rg.POST("/posts", c.post.CreatePost)
	rg.PATCH("/posts/:id", c.post.UpdatePost)
	rg.DELETE("/posts/:id", c.post.DeletePost)
	rg.POST("/posts/:id/like", c.post.ToggleLike)
	rg.POST("/posts/:id/comments", c.post.CreateComment)
}

func (a *App) registerApprovedRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/users/search", c.user.Search)

	rg.GET("/friendships", c.friendship.GetFriends)
	rg.POST("/friendships", c.friendship.SendRequest)
	rg.GET("/friendships/requests", c.friendship.GetPendingRequests)
	rg.POST("/friendships/:id/accept", c.friendship.AcceptRequest)

	rg.GET("/messages", c.message.GetMessages)
	rg.POST("/messages", c.message.SendMessage)
	rg.GET("/messages/unread-count", c.message.GetUnreadCount)

	rg.POST("/upload", c.upload.Upload)
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/users", c.admin.GetUsers)
	rg.PATCH("/users/:id", c.admin.UpdateUser)
	rg.POST("/users/:id/approve", c.admin.ApproveUser)
	rg.POST("/users/:id/reject", c.admin.RejectUser)
	rg.POST("/fix-user", c.admin.FixFirstUser)
}
