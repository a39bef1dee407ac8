package api

import (
	"net/http"

	"ticketdesk-service/internal/infrastructure/config"
	"ticketdesk-service/internal/usecase"
	"ticketdesk-service/pkg/logger"
	"ticketdesk-service/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the gin engine with the full HTTP surface. The token
// check runs before exhibition validation on every gated route, so an
// unauthenticated caller cannot probe valid exhibition names through
// the not-found response.
func NewRouter(cfg *config.Config, service usecase.TicketService, log logger.Logger, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CORS(cfg.CORSOrigin))
	router.Use(RequestDuration(m))

	handler := NewTicketHandler(service, cfg, log, m)

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "Healthy")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/auth", handler.Auth)

	gated := router.Group("/", TokenAuth(cfg.AuthToken, log, m))
	{
		gated.POST("/ticket", handler.CreateTicket)
		gated.POST("/tickets", handler.CreateTickets)
		gated.GET("/tickets", handler.ListTickets)
		gated.PATCH("/ticket/status", handler.UpdateStatus)
		gated.DELETE("/ticket", handler.DeleteTicket)
		gated.DELETE("/tickets", handler.DeleteTickets)
	}

	return router
}
