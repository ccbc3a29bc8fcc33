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

	"github.com/oddsview/matchgate/audit"
	"github.com/oddsview/matchgate/cache"
	"github.com/oddsview/matchgate/config"
	"github.com/oddsview/matchgate/controller"
	"github.com/oddsview/matchgate/dao"
	"github.com/oddsview/matchgate/db"
	logger "github.com/oddsview/matchgate/logging"
	"github.com/oddsview/matchgate/router"
	"github.com/oddsview/matchgate/service"
	"github.com/oddsview/matchgate/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the primary record store
	mongoClient, err := db.ConnectMongo(ctx)
	if err != nil {
		logger.Fatal("Failed to initialize MongoDB", zap.Error(err))
	}
	defer db.CloseMongo(mongoClient)

	primaryDAO := dao.NewMongoDAO(mongoClient, config.GetString("mongo.database"))

	// Initialize the legacy record store when configured; reads fall back to
	// it while the data migration is in flight.
	var legacyDAO dao.EntitlementDAO
	if config.GetBool("neo4j.enabled") {
		neo4jDriver, err := db.ConnectNeo4j()
		if err != nil {
			logger.Fatal("Failed to initialize Neo4j", zap.Error(err))
		}
		defer db.CloseNeo4j(neo4jDriver)
		legacyDAO = dao.NewNeo4jDAO(neo4jDriver)
	}

	entitlementDAO := dao.NewFallbackDAO(primaryDAO, legacyDAO)

	// Initialize Redis
	redisClient, err := db.ConnectRedis(ctx)
	if err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis(redisClient)

	statusCache := cache.NewStatusCache(
		redisClient,
		config.GetString("cache.prefix"),
		config.GetDuration("cache.ttl"),
	)
	limiter := cache.NewRateLimiter(redisClient)

	// Initialize the audit trail when configured
	var auditService audit.Service
	if config.GetBool("audit.enabled") {
		auditRepository, err := audit.NewElasticsearchRepository(config.GetString("elasticsearch.url"))
		if err != nil {
			logger.Fatal("Failed to initialize audit repository", zap.Error(err))
		}
		auditService = audit.NewService(auditRepository)
	}

	// Initialize EventBus
	eventBus := util.NewEventBus()
	eventBus.Start(ctx)

	// Initialize services
	entitlementService := service.NewEntitlementService(entitlementDAO, statusCache, auditService, eventBus)

	// Initialize controllers
	entitlementController := controller.NewEntitlementController(entitlementService)

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(
		entitlementController,
		limiter,
		config.GetInt("server.ratelimit.requests"),
		config.GetDuration("server.ratelimit.window"),
	)

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engine,
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
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
