package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/polkiloo/courierdesk/internal/domain/model"
	"github.com/polkiloo/courierdesk/internal/server/http/dto"
	"github.com/polkiloo/courierdesk/internal/server/http/validation"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade   OrderFacade
	validate *validatorv10.Validate
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, validate *validatorv10.Validate) *OrderHandler {
	return &OrderHandler{facade: facade, validate: validate}
}

// Create handles POST /order/create.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), toDraft(req))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /order/all.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentCaller(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// Track handles GET /order/track/:orderId.
func (h *OrderHandler) Track(c *gin.Context) {
	order, err := h.facade.TrackOrder(c.Request.Context(), strings.TrimSpace(c.Param("orderId")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// UpdateStatus handles PATCH /order/:orderId.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), CurrentCaller(c), strings.TrimSpace(c.Param("orderId")), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Stats handles GET /order/stats.
func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.facade.OrderStats(c.Request.Context(), CurrentCaller(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatsResponse{
		New:       stats.ByStatus[model.OrderStatusNew],
		Accepted:  stats.ByStatus[model.OrderStatusAccepted],
		InTransit: stats.ByStatus[model.OrderStatusInTransit],
		Delivered: stats.ByStatus[model.OrderStatusDelivered],
		Active:    stats.Active(),
		Total:     stats.Total,
	})
}

func toDraft(req dto.CreateOrderRequest) model.OrderDraft {
	draft := model.OrderDraft{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		PhoneNumber:     req.PhoneNumber,
		PackageName:     req.PackageName,
		PackageCode:     req.PackageCode,
		PackageSize:     req.PackageSize,
		PickupAddress:   req.PickupAddress,
		DeliveryAddress: req.DeliveryAddress,
		IsUrgent:        req.IsUrgent,
		DeliveryTime:    req.DeliveryTime,
		Notes:           req.Notes,
	}
	if req.Distance != nil {
		draft.Distance = *req.Distance
	}
	return draft
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:              order.ID,
		OrderID:         order.OrderID,
		FirstName:       order.FirstName,
		LastName:        order.LastName,
		PhoneNumber:     order.PhoneNumber,
		PackageName:     order.PackageName,
		PackageCode:     order.PackageCode,
		PackageSize:     order.PackageSize,
		PickupAddress:   order.PickupAddress,
		DeliveryAddress: order.DeliveryAddress,
		Distance:        order.Distance,
		IsUrgent:        order.IsUrgent,
		DeliveryTime:    order.DeliveryTime,
		Notes:           order.Notes,
		Price:           order.Price,
		Status:          string(order.Status),
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}
