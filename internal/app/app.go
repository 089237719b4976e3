package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"pattern_master_backend/internal/config"
	"pattern_master_backend/internal/controller"
	"pattern_master_backend/internal/repository"
	"pattern_master_backend/internal/service"
	"pattern_master_backend/pkg/database"
	"pattern_master_backend/pkg/logger"
	"pattern_master_backend/pkg/monitoring"
	"pattern_master_backend/pkg/security"
	"pattern_master_backend/pkg/tracing"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config      *config.Config
	ConfigStore *config.Store
	Router      *gin.Engine
	DB          *gorm.DB
	Redis       *redis.Client

	configMu        sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	pattern  *repository.PatternRepository
	progress *repository.ProgressRepository
	analysis *repository.AnalysisRepository
}

type services struct {
	auth      *service.AuthService
	user      *service.UserService
	pattern   *service.PatternService
	progress  *service.ProgressService
	ai        *service.AIService
	analysis  *service.AnalysisService
	chat      *service.ChatService
	execution *service.ExecutionService
}

type controllers struct {
	auth      *controller.AuthController
	user      *controller.UserController
	pattern   *controller.PatternController
	progress  *controller.ProgressController
	ai        *controller.AIController
	execution *controller.ExecutionController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configMu.Lock()
	defer a.configMu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 应用热更新后的配置：先替换只读快照（请求路径上的JWT
// 校验等都经过ConfigStore读取），再通知各订阅方。
func (a *App) ApplyConfig(newCfg *config.Config) {
	a.ConfigStore.Swap(newCfg)

	a.configMu.Lock()
	callbacks := make([]func(*config.Config), len(a.configCallbacks))
	copy(callbacks, a.configCallbacks)
	a.configMu.Unlock()

	for _, callback := range callbacks {
		callback(newCfg)
	}
	logger.Log.Info("Configuration reloaded", zap.Int("subscribers", len(callbacks)))
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		pattern:  repository.NewPatternRepository(db),
		progress: repository.NewProgressRepository(db),
		analysis: repository.NewAnalysisRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, a.ConfigStore)
	s.user = service.NewUserService(repos.user)
	s.pattern = service.NewPatternService(repos.pattern)
	s.progress = service.NewProgressService(repos.progress, repos.pattern, db, rdb)
	s.ai = service.NewAIService(cfg.AI, rdb)
	s.analysis = service.NewAnalysisService(s.ai, s.pattern, repos.analysis)
	s.chat = service.NewChatService(s.ai)
	s.execution = service.NewExecutionService()

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth, s.user),
		user:      controller.NewUserController(s.user),
		pattern:   controller.NewPatternController(s.pattern, s.progress),
		progress:  controller.NewProgressController(s.progress),
		ai:        controller.NewAIController(s.pattern, s.analysis, s.chat),
		execution: controller.NewExecutionController(s.execution),
		health:    controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// redis只承载缓存，连不上时降级运行而不是拒绝启动
		logger.Log.Warn("Redis unavailable, caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config:      cfg,
		ConfigStore: config.NewStore(cfg),
		DB:          db,
		Redis:       rdb,
	}

	// 热更新后按新的server.mode重建日志器（调整日志级别无需重启）
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.InitLogger(newCfg)
	})

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("pattern-master", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers)

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

	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Error("Failed to close redis client", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
