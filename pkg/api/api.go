// Package api exposes the dispatch layer as JSON over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taxidispatch/pkg/logger"
	"taxidispatch/pkg/metrics"
	"taxidispatch/pkg/models"
	"taxidispatch/service"
)

type Handler struct {
	svc     service.IServiceManager
	log     logger.ILogger
	metrics *metrics.Metrics

	// history views keyed by the console's X-View-Id header
	views *viewRegistry
}

type Options struct {
	Gatherer       prometheus.Gatherer
	Metrics        *metrics.Metrics
	RequestTimeout time.Duration
}

func NewRouter(svc service.IServiceManager, log logger.ILogger, opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors())
	r.Use(requestContext(log, opts.RequestTimeout))

	h := newHandler(svc, log, opts.Metrics)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	{
		drivers := api.Group("/conductor")
		{
			drivers.GET("", h.ListDrivers)
			drivers.GET("/deudas", h.DriversWithDebt)
			drivers.GET("/sin-deuda", h.DriversWithoutDebt)
			drivers.GET("/:id", h.GetDriver)
			drivers.POST("", h.CreateDriver)
			drivers.PUT("/:id", h.UpdateDriver)
			drivers.PATCH("/:id", h.UpdateDriver)
			drivers.DELETE("/:id", h.DeleteDriver)
			drivers.POST("/:id/saldar", h.SettleDebt)
		}

		clients := api.Group("/clientes")
		{
			clients.GET("", h.ListClients)
			clients.GET("/:id", h.GetClient)
			clients.POST("", h.CreateClient)
			clients.PUT("/:id", h.UpdateClient)
			clients.PATCH("/:id", h.UpdateClient)
			clients.DELETE("/:id", h.DeleteClient)
		}

		h.recordRoutes(api.Group("/servicios"), models.KindService)
		h.recordRoutes(api.Group("/reservas"), models.KindReservation)

		api.GET("/historial", h.History)
		api.GET("/historial/:driverId", h.DriverHistory)
	}

	return r
}

func newHandler(svc service.IServiceManager, log logger.ILogger, m *metrics.Metrics) *Handler {
	return &Handler{
		svc:     svc,
		log:     log,
		metrics: m,
		views: newViewRegistry(func() *historyView {
			return service.NewHistoryView(svc.History(), m)
		}),
	}
}

func (h *Handler) recordRoutes(g *gin.RouterGroup, kind models.Kind) {
	g.GET("", h.ListRecords(kind))
	g.GET("/:id", h.GetRecord(kind))
	g.GET("/conductor/:driverId", h.ListRecordsByDriver(kind))
	g.POST("", h.CreateRecord(kind))
	g.PUT("/:id", h.UpdateRecord(kind))
	g.PATCH("/:id", h.UpdateRecord(kind))
	g.DELETE("/:id", h.DeleteRecord(kind))
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID, X-View-Id")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
