package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devsdeimpacto/coleta-service/internal/model"
	"github.com/devsdeimpacto/coleta-service/internal/service"
)

type createPointPayload struct {
	CompanyID    uint   `json:"empresa_id" binding:"required"`
	Name         string `json:"nome" binding:"required"`
	Address      string `json:"endereco" binding:"required"`
	OpeningHours string `json:"horario_funcionamento" binding:"required"`
	Phone        string `json:"telefone" binding:"required"`
	Status       string `json:"status"`
}

func (h *Handler) createPoint(c *gin.Context) {
	var payload createPointPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.CreatePointInput{
		CompanyID:    payload.CompanyID,
		Name:         payload.Name,
		Address:      payload.Address,
		OpeningHours: payload.OpeningHours,
		Phone:        payload.Phone,
	}
	if payload.Status != "" {
		status, err := model.ParsePointStatus(payload.Status)
		if err != nil {
			h.handleError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
			return
		}
		input.Status = status
	}

	point, err := h.registry.CreatePoint(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, point)
}

func (h *Handler) listPoints(c *gin.Context) {
	filter := model.PointFilter{}
	filter.Limit, filter.Offset = parsePage(c)

	if raw := c.Query("status"); raw != "" {
		status, err := model.ParsePointStatus(raw)
		if err != nil {
			h.handleError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
			return
		}
		filter.Status = &status
	}

	points, total, err := h.registry.ListPoints(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	listResponse(c, points, total)
}

func (h *Handler) listPointsByCompany(c *gin.Context) {
	companyID, ok := parseIDParam(c, "empresaId")
	if !ok {
		return
	}

	points, total, err := h.registry.ListPointsByCompany(c.Request.Context(), companyID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	listResponse(c, points, total)
}

func (h *Handler) getPoint(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	point, err := h.registry.GetPoint(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, point)
}

type updatePointPayload struct {
	Name         *string `json:"nome"`
	Address      *string `json:"endereco"`
	OpeningHours *string `json:"horario_funcionamento"`
	Phone        *string `json:"telefone"`
	Status       *string `json:"status"`
}

func (h *Handler) updatePoint(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload updatePointPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.UpdatePointInput{
		Name:         payload.Name,
		Address:      payload.Address,
		OpeningHours: payload.OpeningHours,
		Phone:        payload.Phone,
	}
	if payload.Status != nil {
		status, err := model.ParsePointStatus(*payload.Status)
		if err != nil {
			h.handleError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
			return
		}
		input.Status = &status
	}

	point, err := h.registry.UpdatePoint(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, point)
}

func (h *Handler) deletePoint(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.registry.DeletePoint(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
