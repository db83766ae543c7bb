package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campusweb/mediagate/audit"
	"github.com/campusweb/mediagate/config"
	"github.com/campusweb/mediagate/controller"
	"github.com/campusweb/mediagate/dao"
	"github.com/campusweb/mediagate/db"
	logger "github.com/campusweb/mediagate/logging"
	"github.com/campusweb/mediagate/middleware"
	"github.com/campusweb/mediagate/pdp/engine"
	"github.com/campusweb/mediagate/service"
	"github.com/campusweb/mediagate/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Initialize Redis (rule store)
	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	// Initialize object storage
	if err := db.InitMinio(); err != nil {
		logger.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Initialize audit trail
	auditRepository, err := audit.NewElasticsearchRepository(config.GetString("elasticsearch.url"))
	if err != nil {
		logger.Fatal("Failed to initialize audit repository", zap.Error(err))
	}
	auditService := audit.NewService(auditRepository)
	registerAuditSubscribers(eventBus, auditService)

	// Initialize DAOs
	ruleDAO := dao.NewRuleDAO(db.RedisClient)
	objectDAO := dao.NewObjectDAO(db.MinioClient, config.GetString("minio.bucket"))

	// Initialize the access controller with its process-wide caches
	accessController := engine.NewAccessController(
		ruleDAO,
		config.GetDuration("cache.siteIndexTTL"),
		config.GetDuration("cache.networkRangesTTL"),
		config.GetString("auth.communityGroup"),
	)

	// Initialize services
	accessService := service.NewAccessService(accessController, eventBus)
	assetService := service.NewAssetService(
		objectDAO,
		ruleDAO,
		eventBus,
		config.GetString("media.originalRoot"),
		config.GetString("media.renderRoot"),
	)

	// Initialize controllers
	mediaController := controller.NewMediaController(accessService, assetService, config.GetString("auth.shibLoginURL"))

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(100, time.Minute)) // 100 requests per minute
	router.Use(middleware.RequestContext())

	// Register routes
	mediaController.RegisterRoutes(router)

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}

// registerAuditSubscribers maps bus events onto the audit trail.
func registerAuditSubscribers(eventBus *util.EventBus, auditService audit.Service) {
	eventBus.Subscribe(service.TopicAccessDecision, func(ctx context.Context, event util.Event) error {
		payload, ok := event.Payload.(service.AccessDecisionEvent)
		if !ok {
			return nil
		}
		return auditService.LogAccess(ctx, audit.AuditLog{
			Timestamp: time.Now(),
			Action:    event.Topic,
			Principal: payload.Principal,
			ClientIP:  payload.ClientIP,
			Domain:    payload.Decision.Site.Domain,
			Site:      payload.Decision.Site.SiteName,
			Group:     payload.Decision.Site.Group(),
			Path:      payload.Path,
			Allowed:   payload.Decision.Allowed,
			Public:    payload.Decision.Public,
			Reason:    payload.Decision.Reason,
		})
	})

	eventBus.Subscribe(service.TopicAssetDerived, func(ctx context.Context, event util.Event) error {
		payload, ok := event.Payload.(service.AssetDerivedEvent)
		if !ok {
			return nil
		}
		return auditService.LogAccess(ctx, audit.AuditLog{
			Timestamp:   time.Now(),
			Action:      event.Topic,
			Domain:      payload.Domain,
			Path:        payload.Path,
			Allowed:     true,
			DerivedKey:  payload.DerivedKey,
			OriginalKey: payload.OriginalKey,
		})
	})
}
