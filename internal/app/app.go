package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"schoolnet_backend/internal/config"
	"schoolnet_backend/internal/controller"
	"schoolnet_backend/internal/repository"
	"schoolnet_backend/internal/service"
	"schoolnet_backend/pkg/logger"
	"schoolnet_backend/pkg/monitoring"
	"schoolnet_backend/pkg/security"
	"schoolnet_backend/pkg/store"
	"schoolnet_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	Store           *store.Store
	Origins         *security.DynamicOrigins
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	post       *repository.PostRepository
	friendship *repository.FriendshipRepository
	message    *repository.MessageRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	post       *service.PostService
	friendship *service.FriendshipService
	message    *service.MessageService
	storage    *service.StorageService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	post       *controller.PostController
	friendship *controller.FriendshipController
	message    *controller.MessageController
	upload     *controller.UploadController
	admin      *controller.AdminController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// OnConfigReload 配置热更新入口，按注册顺序执行回调
func (a *App) OnConfigReload(cfg *config.Config) {
	a.Origins.Update(cfg.CORS.AllowedOrigins)
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
	logger.Log.Info("Config reloaded")
}

func (a *App) initRepositories(s *store.Store) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(s),
		post:       repository.NewPostRepository(s),
		friendship: repository.NewFriendshipRepository(s),
		message:    repository.NewMessageRepository(s),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) (*services, error) {
	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	return &services{
		auth:       service.NewAuthService(repos.user, cfg),
		user:       service.NewUserService(repos.user),
		post:       service.NewPostService(repos.post),
		friendship: service.NewFriendshipService(repos.friendship, repos.user),
		message:    service.NewMessageService(repos.message, repos.user),
		storage:    storage,
	}, nil
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, a.Config.IsRelease()),
		user:       controller.NewUserController(s.user, s.auth),
		post:       controller.NewPostController(s.post, s.auth),
		friendship: controller.NewFriendshipController(s.friendship, s.auth),
		message:    controller.NewMessageController(s.message, s.auth),
		upload:     controller.NewUploadController(s.storage),
		admin:      controller.NewAdminController(s.user),
		health:     controller.NewHealthController(a.Store),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(a.Origins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode, cfg.Log.Dir)
	logger.Log.Info("Logger initialized successfully")

	st, err := store.Open(cfg.Store.DataDir)
	if err != nil {
		logger.Log.Fatal("Failed to open data store", zap.Error(err))
		log.Fatalf("Failed to open data store: %v", err)
	}

	app := &App{
		Config:  cfg,
		Store:   st,
		Origins: security.NewDynamicOrigins(cfg.CORS.AllowedOrigins),
	}

	repos := app.initRepositories(st)
	services, err := app.initServices(repos, cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
		log.Fatalf("Failed to initialize services: %v", err)
	}
	app.services = services
	controllers := app.initControllers(services)

	// 监控初始化
	monitoring.Init()

	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("schoolnet", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
