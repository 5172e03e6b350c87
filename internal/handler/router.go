package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"scheduling/internal/middleware"
	"scheduling/internal/service"
	"scheduling/internal/websocket"
)

// TokenVerifier is satisfied by token.Service.
type TokenVerifier interface {
	middleware.Verifier
	websocket.Verifier
}

// RouterDeps is everything NewRouter mounts.
type RouterDeps struct {
	Services     *service.Services
	Verifier     TokenVerifier
	Hub          *websocket.Hub
	Metrics      *middleware.Metrics
	Gatherer     prometheus.Gatherer
	Log          *zap.Logger
	CORSOrigins  []string
	PublicIntake bool
	Cookie       CookiePolicy
}

// NewRouter builds the gin engine with every API route registered.
func NewRouter(d RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(d.Log))
	if d.Metrics != nil {
		router.Use(d.Metrics.Handler())
	}

	// CORS configuration
	if len(d.CORSOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = d.CORSOrigins
		corsConfig.AllowCredentials = true
		corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
		router.Use(cors.New(corsConfig))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	if d.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	if d.Hub != nil {
		router.GET("/ws", func(c *gin.Context) {
			websocket.ServeWs(d.Hub, c, d.Verifier)
		})
	}

	guards := NewGuards(d.Verifier, d.PublicIntake)
	api := router.Group("/api")

	NewAuthHandler(d.Services.Users, d.Verifier, d.Cookie, d.Log).RegisterRoutes(api.Group("/auth"))
	NewUserHandler(d.Services.Users, guards, d.Log).RegisterRoutes(api.Group("/user"))
	NewAddressHandler(d.Services.Addresses, guards, d.Log).RegisterRoutes(api.Group("/address"))
	NewBusinessHandler(d.Services.Businesses, guards, d.Log).RegisterRoutes(api.Group("/business"))
	NewTravelFeeHandler(d.Services.TravelFees, guards, d.Log).RegisterRoutes(api.Group("/travelFee"))
	NewUserServiceHandler(d.Services.Catalog, guards, d.Log).RegisterRoutes(api.Group("/userService"))
	NewBookingHandler(d.Services.Bookings, guards, d.Log).RegisterRoutes(api.Group("/customerBooking"))
	NewLeadHandler(d.Services.Leads, guards, d.Log).RegisterRoutes(api.Group("/lead"))

	return router
}
