package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devsdeimpacto/coleta-service/internal/model"
	"github.com/devsdeimpacto/coleta-service/internal/service"
)

type createCollectorPayload struct {
	Name       string  `json:"nome" binding:"required"`
	CPF        string  `json:"cpf" binding:"required"`
	Phone      string  `json:"telefone" binding:"required"`
	Email      *string `json:"email"`
	Status     string  `json:"status"`
	CompanyIDs []uint  `json:"empresa_ids"`
}

func (h *Handler) createCollector(c *gin.Context) {
	var payload createCollectorPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.CreateCollectorInput{
		Name:       payload.Name,
		CPF:        payload.CPF,
		Phone:      payload.Phone,
		Email:      payload.Email,
		CompanyIDs: payload.CompanyIDs,
	}
	if payload.Status != "" {
		status, err := model.ParseCollectorStatus(payload.Status)
		if err != nil {
			h.handleError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
			return
		}
		input.Status = status
	}

	collector, err := h.registry.CreateCollector(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, collector)
}

func (h *Handler) listCollectors(c *gin.Context) {
	filter := model.CollectorFilter{}
	filter.Limit, filter.Offset = parsePage(c)

	if raw := c.Query("status"); raw != "" {
		status, err := model.ParseCollectorStatus(raw)
		if err != nil {
			h.handleError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("empresa_id"); raw != "" {
		companyID, err := parseUint(raw)
		if err != nil {
			h.handleError(c, fmt.Errorf("%w: empresa_id %q", service.ErrInvalidInput, raw))
			return
		}
		filter.CompanyID = &companyID
	}

	collectors, total, err := h.registry.ListCollectors(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	listResponse(c, collectors, total)
}

func (h *Handler) getCollector(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	collector, err := h.registry.GetCollector(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, collector)
}

type updateCollectorPayload struct {
	Name   *string `json:"nome"`
	Phone  *string `json:"telefone"`
	Email  *string `json:"email"`
	Status *string `json:"status"`
}

func (h *Handler) updateCollector(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload updateCollectorPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.UpdateCollectorInput{
		Name:  payload.Name,
		Phone: payload.Phone,
		Email: payload.Email,
	}
	if payload.Status != nil {
		status, err := model.ParseCollectorStatus(*payload.Status)
		if err != nil {
			h.handleError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
			return
		}
		input.Status = &status
	}

	collector, err := h.registry.UpdateCollector(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, collector)
}

func (h *Handler) deleteCollector(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.registry.DeleteCollector(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listCollectorCompanies(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	companies, err := h.members.CompaniesForCollector(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

func (h *Handler) linkFromCollector(c *gin.Context) {
	collectorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	companyID, ok := parseIDParam(c, "empresaId")
	if !ok {
		return
	}

	if err := h.members.Link(c.Request.Context(), collectorID, companyID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) unlinkFromCollector(c *gin.Context) {
	collectorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	companyID, ok := parseIDParam(c, "empresaId")
	if !ok {
		return
	}

	if err := h.members.Unlink(c.Request.Context(), collectorID, companyID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
