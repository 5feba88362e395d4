package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devsdeimpacto/coleta-service/internal/model"
	"github.com/devsdeimpacto/coleta-service/internal/service"
)

type createRequestPayload struct {
	RequesterName string  `json:"nome_solicitante" binding:"required"`
	PersonType    string  `json:"tipo_pessoa" binding:"required"`
	Document      string  `json:"documento" binding:"required"`
	Email         string  `json:"email" binding:"required"`
	WhatsApp      string  `json:"whatsapp" binding:"required"`
	ItemCount     int     `json:"quantidade_itens" binding:"required"`
	MaterialType  string  `json:"tipo_material" binding:"required"`
	Address       string  `json:"endereco" binding:"required"`
	PhotoURL      *string `json:"foto_url"`
}

type requestWithOrderResponse struct {
	model.CollectionRequest
	OrderID     uint              `json:"ordem_servico_id"`
	OrderNumber string            `json:"numero_os"`
	OrderStatus model.OrderStatus `json:"status_os"`
}

func (h *Handler) createRequest(c *gin.Context) {
	var payload createRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	personType, err := model.ParsePersonType(payload.PersonType)
	if err != nil {
		h.handleError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
		return
	}

	request, order, err := h.orders.CreateRequest(c.Request.Context(), service.CreateRequestInput{
		RequesterName: payload.RequesterName,
		PersonType:    personType,
		Document:      payload.Document,
		Email:         payload.Email,
		WhatsApp:      payload.WhatsApp,
		ItemCount:     payload.ItemCount,
		MaterialType:  payload.MaterialType,
		Address:       payload.Address,
		PhotoURL:      payload.PhotoURL,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, requestWithOrderResponse{
		CollectionRequest: *request,
		OrderID:           order.ID,
		OrderNumber:       order.Number,
		OrderStatus:       order.Status,
	})
}

func (h *Handler) listRequests(c *gin.Context) {
	filter := model.RequestFilter{}
	filter.Limit, filter.Offset = parsePage(c)

	if raw := c.Query("tipo_pessoa"); raw != "" {
		personType, err := model.ParsePersonType(raw)
		if err != nil {
			h.handleError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
			return
		}
		filter.PersonType = &personType
	}
	if raw := c.Query("tipo_material"); raw != "" {
		filter.MaterialType = &raw
	}

	requests, total, err := h.orders.ListRequests(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	listResponse(c, requests, total)
}

func (h *Handler) getRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	request, err := h.orders.GetRequest(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	order, err := h.orders.GetRequestOrder(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, requestWithOrderResponse{
		CollectionRequest: *request,
		OrderID:           order.ID,
		OrderNumber:       order.Number,
		OrderStatus:       order.Status,
	})
}

type updateRequestPayload struct {
	RequesterName *string `json:"nome_solicitante"`
	Email         *string `json:"email"`
	WhatsApp      *string `json:"whatsapp"`
	ItemCount     *int    `json:"quantidade_itens"`
	MaterialType  *string `json:"tipo_material"`
	Address       *string `json:"endereco"`
	PhotoURL      *string `json:"foto_url"`
}

func (h *Handler) updateRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload updateRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.orders.UpdateRequest(c.Request.Context(), id, service.UpdateRequestInput{
		RequesterName: payload.RequesterName,
		Email:         payload.Email,
		WhatsApp:      payload.WhatsApp,
		ItemCount:     payload.ItemCount,
		MaterialType:  payload.MaterialType,
		Address:       payload.Address,
		PhotoURL:      payload.PhotoURL,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *Handler) deleteRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orders.DeleteRequest(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
