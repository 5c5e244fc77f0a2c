package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/enershare/ewhflex/internal/domain/errors"
	"github.com/enershare/ewhflex/internal/domain/model"
	"github.com/enershare/ewhflex/internal/server/http/dto"
)

// OrderHandler manages EWH optimization order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Submit handles POST /api/ewh/request.
func (h *OrderHandler) Submit(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{ErrorMessage: "malformed request body"})
		return
	}

	period := model.Period{Start: req.DatetimeStart, End: req.DatetimeEnd}
	order, err := h.facade.SubmitOrder(c.Request.Context(), req.User, period, req.EWHSpecs.ToModel())
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrDataUnavailable):
			// Synchronous failure outcome, not a transport error: no order
			// was created and no identifier is handed out.
			c.JSON(http.StatusOK, dto.CreateOrderResponse{
				OrderStatus: string(model.OrderStatusFailed),
				Message:     "Failed to fetch user metadata/data (unavailable).",
			})
		case errors.Is(err, domainErrors.ErrInvalidUser), errors.Is(err, domainErrors.ErrInvalidPeriod):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{ErrorMessage: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{ErrorMessage: "failed to create order"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.CreateOrderResponse{
		OrderID:     order.ID,
		OrderStatus: string(order.Status),
	})
}

// Result handles GET /api/ewh/result.
func (h *OrderHandler) Result(c *gin.Context) {
	orderID := c.Query("order_id")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{ErrorMessage: "order_id is required"})
		return
	}

	order, err := h.facade.Order(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{ErrorMessage: "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{ErrorMessage: "failed to fetch order"})
		return
	}

	response := dto.GetOrderResponse{
		OrderID:     order.ID,
		OrderStatus: string(order.Status),
	}
	switch order.Status {
	case model.OrderStatusComplete:
		response.Result = order.Result
	case model.OrderStatusFailed:
		response.Message = order.ErrorInfo
	}

	c.JSON(http.StatusOK, response)
}
