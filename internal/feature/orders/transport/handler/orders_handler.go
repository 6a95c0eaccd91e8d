package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"kanairy_backend/internal/api"
	"kanairy_backend/internal/feature/orders/domain/entity"
	"kanairy_backend/internal/feature/orders/transport/http/dto"
	jwtmw "kanairy_backend/internal/platform/jwt"
)

// OrdersUsecase is the order history interface the handler depends on.
type OrdersUsecase interface {
	ListOrders(ctx context.Context, userID, status string) ([]entity.Order, error)
}

// OrdersHandler serves the order history endpoint.
type OrdersHandler struct {
	uc OrdersUsecase
}

// NewOrdersHandler creates a new OrdersHandler.
func NewOrdersHandler(uc OrdersUsecase) *OrdersHandler {
	return &OrdersHandler{uc: uc}
}

// List handles GET /api/users/:id/orders.
func (h *OrdersHandler) List(c *gin.Context) {
	userID := c.Param("id")
	if !jwtmw.AuthorizedFor(c, userID) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "token does not match the requested user"})
		return
	}
	status := c.Query("status")

	orders, err := h.uc.ListOrders(c.Request.Context(), userID, status)
	if err != nil {
		slog.Error("failed to list orders", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, dto.FromEntities(orders))
}
