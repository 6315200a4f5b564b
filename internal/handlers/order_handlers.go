package handlers

import (
	"net/http"

	"github.com/mandic19/Shop/internal/models"
	"github.com/mandic19/Shop/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles HTTP requests for orders
type OrderHandlers struct {
	orderService services.OrderService
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(orderService services.OrderService) *OrderHandlers {
	return &OrderHandlers{
		orderService: orderService,
	}
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	Items []models.OrderItemInput `json:"items"`
}

// CreateOrder handles POST /orders
//
//	@Summary	Create an order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		order	body		CreateOrderRequest	true	"Order items"
//	@Success	201		{object}	Message
//	@Failure	404		{object}	common.ErrorResponse
//	@Failure	422		{object}	common.ErrorResponse
//	@Failure	500		{object}	common.ErrorResponse
//	@Router		/orders [post]
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}

	order, err := h.orderService.CreateOrder(c.Request().Context(), req.Items)
	if err != nil {
		return respondError(c, err, "Failed to create order")
	}

	return c.JSON(http.StatusCreated, Message{
		Message: "Order created successfully",
		Data:    order,
	})
}

// GetOrder handles GET /orders/:id
//
//	@Summary	Show an order with its items
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	Data
//	@Failure	404	{object}	common.ErrorResponse
//	@Router		/orders/{id} [get]
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	order, err := h.orderService.GetOrder(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Failed to retrieve order")
	}
	return c.JSON(http.StatusOK, Data{Data: order})
}
