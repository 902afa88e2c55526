package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edunova_backend/internal/config"
	"edunova_backend/internal/controller"
	"edunova_backend/internal/repository"
	"edunova_backend/internal/service"
	"edunova_backend/pkg/database"
	"edunova_backend/pkg/logger"
	"edunova_backend/pkg/monitoring"
	"edunova_backend/pkg/security"
	"edunova_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user       *repository.UserRepository
	lesson     *repository.LessonRepository
	assessment *repository.AssessmentRepository
	progress   *repository.ProgressRepository
}

type services struct {
	auth        *service.AuthService
	progress    *service.ProgressService
	grading     *service.GradingService
	analytics   *service.AnalyticsService
	achievement *service.AchievementService
	report      *service.ReportService
}

type controllers struct {
	auth      *controller.AuthController
	progress  *controller.ProgressController
	analytics *controller.AnalyticsController
	report    *controller.ReportController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		lesson:     repository.NewLessonRepository(db),
		assessment: repository.NewAssessmentRepository(db),
		progress:   repository.NewProgressRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	cache := service.NewViewCache(rdb, cfg.Cache.TTLSeconds)

	s := &services{}
	s.auth = service.NewAuthService(repos.user, cfg)
	s.progress = service.NewProgressService(repos.progress, repos.lesson, cache)
	s.grading = service.NewGradingService(repos.assessment, repos.progress, cache)
	s.analytics = service.NewAnalyticsService(repos.progress, repos.lesson, cache)
	s.achievement = service.NewAchievementService(repos.progress, cache)
	s.report = service.NewReportService(repos.user, repos.progress, repos.lesson, cache)
	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		progress:  controller.NewProgressController(s.progress, s.grading),
		analytics: controller.NewAnalyticsController(s.analytics, s.achievement),
		report:    controller.NewReportController(s.report),
		health:    controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// redis 可选，缓存缺席时分析视图直接查库
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("edunova-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

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
