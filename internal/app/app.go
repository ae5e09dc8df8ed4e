package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"practicetime_backend/internal/config"
	"practicetime_backend/internal/controller"
	"practicetime_backend/internal/repository"
	"practicetime_backend/internal/service"
	"practicetime_backend/internal/util"
	"practicetime_backend/pkg/database"
	"practicetime_backend/pkg/logger"
	"practicetime_backend/pkg/monitoring"
	"practicetime_backend/pkg/security"
	"practicetime_backend/pkg/store"
	"practicetime_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	Store  store.Store

	tracerProvider *sdktrace.TracerProvider
}

type repositories struct {
	question *repository.QuestionRepository
	set      *repository.SetRepository
	ledger   *repository.LedgerRepository
	user     *repository.UserRepository
	syllabus *repository.SyllabusRepository
	uploads  *repository.UploadedQuestionRepository
}

type services struct {
	auth      *service.AuthService
	storage   *service.StorageService
	ordering  *service.OrderingService
	allocator *service.AllocatorService
	question  *service.QuestionService
	set       *service.SetService
	user      *service.UserService
	stats     *service.StatsService
	syllabus  *service.SyllabusService
	upload    *service.UploadService
}

type controllers struct {
	auth     *controller.AuthController
	question *controller.QuestionController
	set      *controller.SetController
	user     *controller.UserController
	stats    *controller.StatsController
	syllabus *controller.SyllabusController
	upload   *controller.UploadController
	health   *controller.HealthController
}

func (a *App) initRepositories(st store.Store, db *gorm.DB) *repositories {
	return &repositories{
		question: repository.NewQuestionRepository(st),
		set:      repository.NewSetRepository(st),
		ledger:   repository.NewLedgerRepository(st),
		user:     repository.NewUserRepository(st),
		syllabus: repository.NewSyllabusRepository(st),
		uploads:  repository.NewUploadedQuestionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.ordering = service.NewOrderingService(repos.set)
	s.allocator = service.NewAllocatorService(repos.ledger)
	s.question = service.NewQuestionService(repos.question, s.allocator)
	s.set = service.NewSetService(repos.set, repos.question, repos.user, s.ordering, cfg.Provisioning)
	s.user = service.NewUserService(repos.user)
	s.stats = service.NewStatsService(repos.question)
	s.syllabus = service.NewSyllabusService(repos.syllabus)
	s.upload = service.NewUploadService(repos.uploads)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, st store.Store) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		question: controller.NewQuestionController(s.question, s.storage),
		set:      controller.NewSetController(s.set),
		user:     controller.NewUserController(s.user),
		stats:    controller.NewStatsController(s.stats),
		syllabus: controller.NewSyllabusController(s.syllabus),
		upload:   controller.NewUploadController(s.upload),
		health:   controller.NewHealthController(db, st),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// newStore picks the document store backend. Redis is the production path;
// the in-process store serves local development without external services.
func newStore(cfg *config.Config) (store.Store, *redis.Client, error) {
	if cfg.Store.Type == "memory" {
		return store.NewMemoryStore(), nil, nil
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	return store.NewRedisStore(rdb), rdb, nil
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	st, rdb, err := newStore(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize document store", zap.Error(err))
		log.Fatalf("Failed to initialize document store: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Store:  st,
	}

	repos := app.initRepositories(st, db)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db, st)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("practicetime-admin", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

// ReloadConfig applies a hot-reloaded configuration. Only settings read per
// request (provisioning defaults via the existing pointer) take effect
// without a restart; connection settings need one.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config = cfg
	logger.Log.Info("configuration reloaded")
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	if err := a.Store.Close(); err != nil {
		logger.Log.Error("Failed to close document store", zap.Error(err))
	}

	log.Println("Server exiting")
}
