package handlers

import (
	"thermostat_controller/internal/logger"
	"thermostat_controller/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// NormalRoutes builds the router served in normal operation. The
// provisioning routes are deliberately absent; the two sets are never
// registered on the same engine.
func (h *Handler) NormalRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	api := router.Group("/api/v1")
	{
		api.GET("/status", h.getStatus)
		api.PUT("/config", h.putConfig)
		api.GET("/history", h.getHistory)
		api.GET("/logs", h.getLogs)
	}

	// Live state stream over the same port.
	router.GET("/ws", h.wsConnect)

	return router
}

// ProvisioningRoutes builds the captive-portal router served while the
// device runs its setup access point.
func (h *Handler) ProvisioningRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", h.health)
	router.GET("/", h.provisionForm)
	router.POST("/provision", h.provision)

	return router
}
