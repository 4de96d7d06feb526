package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"atlas3-backend/docs"
	"atlas3-backend/internal/common/config"
	"atlas3-backend/internal/common/logger"
	"atlas3-backend/internal/common/middleware"
	giveawayhttp "atlas3-backend/internal/features/giveaway/delivery/http"
	giveawaymodels "atlas3-backend/internal/features/giveaway/models"
	giveawayrepo "atlas3-backend/internal/features/giveaway/repository/gormrepo"
	giveawayservice "atlas3-backend/internal/features/giveaway/service"
	projectmodels "atlas3-backend/internal/features/project/models"
	projectrepo "atlas3-backend/internal/features/project/repository/gormrepo"
	usermodels "atlas3-backend/internal/features/user/models"
	userrepo "atlas3-backend/internal/features/user/repository/gormrepo"
	userservice "atlas3-backend/internal/features/user/service"
	"atlas3-backend/internal/platform/database"
	"atlas3-backend/internal/platform/discordbot"
	"atlas3-backend/internal/platform/redis"
	"atlas3-backend/internal/service/notifications"
	"atlas3-backend/internal/workers"
)

const serviceName = "atlas3-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(serviceName, cfg.Debug)
	logger.Info().Bool("debug", cfg.Debug).Msg("Starting Atlas3 backend")

	db, err := database.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		err := db.Migrate(
			&projectmodels.Project{},
			&projectmodels.Allowlist{},
			&projectmodels.DiscordGuild{},
			&giveawaymodels.Giveaway{},
			&usermodels.User{},
		)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to migrate database")
		}
		logger.Info().Msg("Database migrated")
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err = redis.Open(ctx, cfg)
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	notifier, stopNotifier := setupNotifications(workerCtx, cfg, rdb)

	projectRepository := projectrepo.NewProjectRepository(db.GetDB())
	giveawayRepository := giveawayrepo.NewGiveawayRepository(db.GetDB())
	userRepository := userrepo.NewUserRepository(db.GetDB())

	userSvc := userservice.NewUserService(userRepository)
	giveawaySvc := giveawayservice.NewGiveawayService(giveawayRepository, projectRepository, notifier)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(middleware.MethodNotAllowed())
	router.NoRoute(middleware.RouteNotFound())

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.ErrorResponder())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	giveawayhttp.NewGiveawayHandler(giveawaySvc).RegisterRoutes(v1,
		middleware.RequireSession(cfg.Auth.SessionSecret),
		middleware.SyncUser(userSvc),
	)

	docs.SwaggerInfo.BasePath = "/api/v1"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	setupProbes(router, db, rdb)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Requests are done; let queued notifications drain before exiting.
	stopWorkers()
	stopNotifier()

	logger.Info().Msg("Server exited")
}

// setupNotifications picks the dispatcher for bot notifications. The
// returned stop func waits for in-flight deliveries.
func setupNotifications(ctx context.Context, cfg *config.Config, rdb *redis.Client) (notifications.Dispatcher, func()) {
	if cfg.Bot.APIURL == "" {
		logger.Warn().Msg("DISCORD_BOT_API_URL is not set, bot notifications are disabled")
		return notifications.Noop{}, func() {}
	}

	bot := discordbot.NewClient(cfg.Bot.APIURL, cfg.Bot.APIKey, cfg.Bot.Timeout)
	sender := notifications.NewBotSender(bot)

	switch cfg.Notifications.Backend {
	case "redis":
		hostname, _ := os.Hostname()
		worker := workers.NewStreamWorker(rdb, sender, cfg.Notifications.StreamKey, serviceName+"-"+hostname, cfg.Bot.Timeout)
		done := make(chan struct{})
		go func() {
			defer close(done)
			worker.Start(ctx)
		}()
		return notifications.NewStreamDispatcher(rdb, cfg.Notifications.StreamKey), func() { <-done }
	default:
		dispatcher := notifications.NewMemoryDispatcher(sender, cfg.Notifications.Workers, cfg.Notifications.QueueSize, cfg.Bot.Timeout)
		dispatcher.Start()
		return dispatcher, dispatcher.Stop
	}
}

func setupProbes(router *gin.Engine, db *database.Client, rdb *redis.Client) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   serviceName,
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unready",
				"error":   "database unavailable",
				"details": err.Error(),
			})
			return
		}

		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unready",
					"error":   "redis unavailable",
					"details": err.Error(),
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
}
