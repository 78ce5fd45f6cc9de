package handlers

import (
	"embed"
	"html/template"

	"pumpversuch/internal/logger"
	"pumpversuch/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	// The page shares the session cookie with the API.
	router.GET("/", h.sessionMiddleware, h.page)

	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.sessionMiddleware)
	{
		h.registerSessionRoutes(api)
		h.registerLogRoutes(api)
		api.GET("/ws", h.wsConnect)
	}
}

func (h *Handler) registerSessionRoutes(api *gin.RouterGroup) {
	session := api.Group("/session")
	{
		session.GET("", h.getSession)
		session.DELETE("", h.deleteSession)
		// Body example: {"project_name":"Brunnen 2","static_water_level":2.1,"target_flow_rate":5,"pump_duration_hours":8,"total_duration_hours":9}
		session.PUT("/parameters", h.setParameters)
		session.POST("/reset", h.resetSession)

		session.PUT("/samples", h.replaceSamples)
		session.POST("/samples", h.addSample)
		session.POST("/samples/import", h.importCSV)
		session.PATCH("/samples/:index", h.updateSample)
		session.DELETE("/samples/:index", h.removeSample)

		session.GET("/analysis", h.getAnalysis)
		session.GET("/charts/:kind", h.getChart)
		session.GET("/export.csv", h.exportCSV)
		session.GET("/export.xlsx", h.exportXLSX)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("", h.getLogs)
	}
}
