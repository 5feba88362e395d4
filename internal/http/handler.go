package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/devsdeimpacto/coleta-service/internal/service"
)

type Handler struct {
	orders   *service.OrderService
	registry *service.RegistryService
	members  *service.MembershipService
	log      zerolog.Logger
}

func NewHandler(
	orders *service.OrderService,
	registry *service.RegistryService,
	members *service.MembershipService,
	log zerolog.Logger,
) *Handler {
	return &Handler{orders: orders, registry: registry, members: members, log: log}
}

func (h *Handler) Register(router *gin.Engine) {
	requests := router.Group("/solicitacoes")
	requests.POST("", h.createRequest)
	requests.GET("", h.listRequests)
	requests.GET("/:id", h.getRequest)
	requests.PATCH("/:id", h.updateRequest)
	requests.DELETE("/:id", h.deleteRequest)

	orders := router.Group("/ordens-servico")
	orders.GET("", h.listOrders)
	orders.GET("/export", h.exportOrders)
	orders.GET("/:id", h.getOrder)
	orders.GET("/:id/pdf", h.orderPDF)
	orders.PATCH("/:id/status", h.transitionStatus)
	orders.PATCH("/:id/atribuir", h.assignResources)
	orders.DELETE("/:id", h.deleteOrder)

	companies := router.Group("/empresas")
	companies.POST("", h.createCompany)
	companies.GET("", h.listCompanies)
	companies.GET("/:id", h.getCompany)
	companies.PATCH("/:id", h.updateCompany)
	companies.DELETE("/:id", h.deleteCompany)
	companies.GET("/:id/catadores", h.listCompanyCollectors)
	companies.POST("/:id/catadores/:catadorId", h.linkFromCompany)
	companies.DELETE("/:id/catadores/:catadorId", h.unlinkFromCompany)

	points := router.Group("/pontos-coleta")
	points.POST("", h.createPoint)
	points.GET("", h.listPoints)
	points.GET("/empresa/:empresaId", h.listPointsByCompany)
	points.GET("/:id", h.getPoint)
	points.PATCH("/:id", h.updatePoint)
	points.DELETE("/:id", h.deletePoint)

	collectors := router.Group("/catadores")
	collectors.POST("", h.createCollector)
	collectors.GET("", h.listCollectors)
	collectors.GET("/:id", h.getCollector)
	collectors.PATCH("/:id", h.updateCollector)
	collectors.DELETE("/:id", h.deleteCollector)
	collectors.GET("/:id/empresas", h.listCollectorCompanies)
	collectors.POST("/:id/empresas/:empresaId", h.linkFromCollector)
	collectors.DELETE("/:id/empresas/:empresaId", h.unlinkFromCollector)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrLinkNotFound):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func parseUint(raw string) (uint, error) {
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(value), nil
}

// parsePage reads limit/offset query parameters, leaving zero values for the
// repository defaults.
func parsePage(c *gin.Context) (limit, offset int) {
	if raw := c.Query("limit"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			limit = value
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			offset = value
		}
	}
	return limit, offset
}

func listResponse(c *gin.Context, items interface{}, total int64) {
	c.JSON(http.StatusOK, gin.H{"total": total, "items": items})
}
