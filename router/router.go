// router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oddsview/matchgate/cache"
	"github.com/oddsview/matchgate/controller"
	"github.com/oddsview/matchgate/middleware"
)

func SetupRouter(
	entitlementController *controller.EntitlementController,
	limiter *cache.RateLimiter,
	rateLimitRequests int,
	rateLimitWindow time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(limiter, rateLimitRequests, rateLimitWindow))

	api := router.Group("/")

	entitlementController.RegisterRoutes(api)

	return router
}
