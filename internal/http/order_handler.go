package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devsdeimpacto/coleta-service/internal/model"
	"github.com/devsdeimpacto/coleta-service/internal/service"
)

func (h *Handler) orderFilter(c *gin.Context) (model.OrderFilter, bool) {
	filter := model.OrderFilter{}
	filter.Limit, filter.Offset = parsePage(c)

	if raw := c.Query("status"); raw != "" {
		status, err := model.ParseOrderStatus(raw)
		if err != nil {
			h.handleError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
			return filter, false
		}
		filter.Status = &status
	}
	if raw := c.Query("ano"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1000 || year > 9999 {
			h.handleError(c, fmt.Errorf("%w: invalid ano %q", service.ErrInvalidInput, raw))
			return filter, false
		}
		filter.Year = &year
	}
	return filter, true
}

func (h *Handler) listOrders(c *gin.Context) {
	filter, ok := h.orderFilter(c)
	if !ok {
		return
	}

	orders, total, err := h.orders.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	listResponse(c, orders, total)
}

func (h *Handler) getOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type transitionStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) transitionStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload transitionStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := model.ParseOrderStatus(payload.Status)
	if err != nil {
		h.handleError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
		return
	}

	order, err := h.orders.TransitionStatus(c.Request.Context(), id, status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type assignResourcesPayload struct {
	CompanyID   *uint `json:"empresa_id"`
	PointID     *uint `json:"ponto_coleta_id"`
	CollectorID *uint `json:"catador_id"`
}

func (h *Handler) assignResources(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload assignResourcesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.AssignResources(c.Request.Context(), id, model.OrderAssignment{
		CompanyID:   payload.CompanyID,
		PointID:     payload.PointID,
		CollectorID: payload.CollectorID,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) deleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orders.DeleteOrder(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) exportOrders(c *gin.Context) {
	filter, ok := h.orderFilter(c)
	if !ok {
		return
	}

	result, err := h.orders.ExportOrders(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, xlsxContentType, result.Content)
}

func (h *Handler) orderPDF(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.orders.OrderDocument(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}
