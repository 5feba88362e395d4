package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devsdeimpacto/coleta-service/internal/model"
	"github.com/devsdeimpacto/coleta-service/internal/service"
)

type createCompanyPayload struct {
	Name    string `json:"nome" binding:"required"`
	CNPJ    string `json:"cnpj" binding:"required"`
	Address string `json:"endereco" binding:"required"`
	Phone   string `json:"telefone" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Status  string `json:"status"`
}

func (h *Handler) createCompany(c *gin.Context) {
	var payload createCompanyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.CreateCompanyInput{
		Name:    payload.Name,
		CNPJ:    payload.CNPJ,
		Address: payload.Address,
		Phone:   payload.Phone,
		Email:   payload.Email,
	}
	if payload.Status != "" {
		status, err := model.ParseCompanyStatus(payload.Status)
		if err != nil {
			h.handleError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
			return
		}
		input.Status = status
	}

	company, err := h.registry.CreateCompany(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (h *Handler) listCompanies(c *gin.Context) {
	filter := model.CompanyFilter{}
	filter.Limit, filter.Offset = parsePage(c)

	if raw := c.Query("status"); raw != "" {
		status, err := model.ParseCompanyStatus(raw)
		if err != nil {
			h.handleError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
			return
		}
		filter.Status = &status
	}

	companies, total, err := h.registry.ListCompanies(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	listResponse(c, companies, total)
}

func (h *Handler) getCompany(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	company, err := h.registry.GetCompany(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

type updateCompanyPayload struct {
	Name    *string `json:"nome"`
	Address *string `json:"endereco"`
	Phone   *string `json:"telefone"`
	Email   *string `json:"email"`
	Status  *string `json:"status"`
}

func (h *Handler) updateCompany(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload updateCompanyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.UpdateCompanyInput{
		Name:    payload.Name,
		Address: payload.Address,
		Phone:   payload.Phone,
		Email:   payload.Email,
	}
	if payload.Status != nil {
		status, err := model.ParseCompanyStatus(*payload.Status)
		if err != nil {
			h.handleError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
			return
		}
		input.Status = &status
	}

	company, err := h.registry.UpdateCompany(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *Handler) deleteCompany(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.registry.DeleteCompany(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listCompanyCollectors(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	collectors, err := h.members.CollectorsForCompany(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, collectors)
}

func (h *Handler) linkFromCompany(c *gin.Context) {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	collectorID, ok := parseIDParam(c, "catadorId")
	if !ok {
		return
	}

	if err := h.members.Link(c.Request.Context(), collectorID, companyID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) unlinkFromCompany(c *gin.Context) {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	collectorID, ok := parseIDParam(c, "catadorId")
	if !ok {
		return
	}

	if err := h.members.Unlink(c.Request.Context(), collectorID, companyID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
