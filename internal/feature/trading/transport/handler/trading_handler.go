package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kanairy_backend/internal/api"
	"kanairy_backend/internal/feature/trading/domain/entity"
	"kanairy_backend/internal/feature/trading/transport/http/dto"
	"kanairy_backend/internal/feature/trading/usecase"
	jwtmw "kanairy_backend/internal/platform/jwt"
)

// TradingUsecase is the trading interface the handler depends on.
type TradingUsecase interface {
	PlaceTrade(ctx context.Context, p usecase.PlaceParams) (*entity.Position, entity.BrokerExecution, error)
	ListPositions(ctx context.Context, userID, status string) ([]entity.Position, error)
	ClosePosition(ctx context.Context, userID, positionID string) (*entity.Position, error)
}

// TradingHandler serves the trade execution and position endpoints.
type TradingHandler struct {
	uc TradingUsecase
}

// NewTradingHandler creates a new TradingHandler.
func NewTradingHandler(uc TradingUsecase) *TradingHandler {
	return &TradingHandler{uc: uc}
}

// Trade handles POST /api/trade.
func (h *TradingHandler) Trade(c *gin.Context) {
	var req dto.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}
	if !jwtmw.AuthorizedFor(c, req.UserID) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "token does not match the requested user"})
		return
	}

	pos, exec, err := h.uc.PlaceTrade(c.Request.Context(), usecase.PlaceParams{
		UserID:     req.UserID,
		Symbol:     req.Symbol,
		Volume:     req.Volume,
		Side:       req.Type,
		StopLoss:   req.StopLoss,
		TakeProfit: req.TakeProfit,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidSide), errors.Is(err, usecase.ErrInvalidVolume):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
		case errors.Is(err, usecase.ErrBrokerNotConfigured):
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "trading service is not configured"})
		default:
			slog.Error("trade execution failed", "user_id", req.UserID, "symbol", req.Symbol, "error", err)
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "trade execution failed", Details: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.TradeResponse{
		Success:          true,
		PositionID:       pos.ID,
		BrokerOrderID:    exec.OrderID,
		BrokerPositionID: exec.PositionID,
		Symbol:           pos.Symbol,
		Volume:           pos.Volume,
		Price:            pos.OpenPrice,
		Message:          fmt.Sprintf("%s order executed successfully", strings.ToUpper(req.Type)),
	})
}

// Positions handles GET /api/users/:id/positions.
func (h *TradingHandler) Positions(c *gin.Context) {
	userID := c.Param("id")
	if !jwtmw.AuthorizedFor(c, userID) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "token does not match the requested user"})
		return
	}
	status := c.DefaultQuery("status", entity.StatusOpen)

	positions, err := h.uc.ListPositions(c.Request.Context(), userID, status)
	if err != nil {
		slog.Error("failed to list positions", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch positions"})
		return
	}

	c.JSON(http.StatusOK, dto.PositionsFromEntities(positions))
}

// Close handles POST /api/positions/close.
func (h *TradingHandler) Close(c *gin.Context) {
	var req dto.CloseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}
	if !jwtmw.AuthorizedFor(c, req.UserID) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "token does not match the requested user"})
		return
	}

	pos, err := h.uc.ClosePosition(c.Request.Context(), req.UserID, req.PositionID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPositionNotFound), errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, usecase.ErrPositionAlreadyClosed):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "position is already closed"})
		case errors.Is(err, usecase.ErrBrokerNotConfigured):
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "trading service is not configured"})
		default:
			slog.Error("close position failed", "position_id", req.PositionID, "error", err)
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to close position", Details: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.CloseResponse{
		Success:    true,
		Message:    "Position closed successfully",
		PositionID: pos.ID,
		Profit:     pos.Profit,
	})
}
