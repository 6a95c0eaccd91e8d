// Package handler provides the HTTP handlers for the accounts feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"kanairy_backend/internal/api"
	"kanairy_backend/internal/feature/accounts/domain/entity"
	"kanairy_backend/internal/feature/accounts/transport/http/dto"
	"kanairy_backend/internal/feature/accounts/usecase"
	jwtmw "kanairy_backend/internal/platform/jwt"
)

// AccountsUsecase defines the accounts operations needed by the transport
// layer. Following Go convention, the interface is defined by the consumer
// (handler), not the provider (usecase).
type AccountsUsecase interface {
	ConnectBroker(ctx context.Context, p usecase.ConnectParams) (*usecase.ConnectResult, error)
	GetUser(ctx context.Context, id string) (*entity.User, error)
	GetAccountInfo(ctx context.Context, userID string) (*entity.User, entity.AccountInfo, error)
}

// AccountsHandler handles the user/account HTTP endpoints.
type AccountsHandler struct {
	accounts AccountsUsecase
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(accounts AccountsUsecase) *AccountsHandler {
	return &AccountsHandler{accounts: accounts}
}

// Connect handles POST /api/users/connect.
// - binds the broker credentials from the request body
// - 400 on validation failure, 503 when MetaAPI is not configured
// - 500 when the broker connection fails
// - 200 with account info and an API token on success
func (h *AccountsHandler) Connect(c *gin.Context) {
	var req dto.ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("connect validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	slog.Info("broker connection request", "login", req.Login, "server", req.Server, "platform", req.Platform)

	result, err := h.accounts.ConnectBroker(c.Request.Context(), usecase.ConnectParams{
		Login:       req.Login,
		Password:    req.Password,
		Server:      req.Server,
		Broker:      req.Broker,
		AccountType: req.AccountType,
		Platform:    req.Platform,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrBrokerNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{
				Error: "MetaAPI not configured. Set METAAPI_TOKEN environment variable.",
			})
			return
		}
		slog.Error("broker connection failed", "login", req.Login, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "connection failed", Details: err.Error()})
		return
	}

	slog.Info("broker connection successful",
		"user_id", result.User.ID,
		"balance", result.Info.Balance,
		"equity", result.Info.Equity,
		"currency", result.Info.Currency)

	c.JSON(http.StatusOK, dto.AccountInfoResponse{
		UserID:        result.User.ID,
		BrokerAccount: result.User.BrokerAccount,
		Server:        result.User.Server,
		Balance:       result.Info.Balance,
		Equity:        result.Info.Equity,
		Margin:        result.Info.Margin,
		FreeMargin:    result.Info.FreeMargin,
		Currency:      result.Info.Currency,
		Token:         result.Token,
	})
}

// GetUser handles GET /api/users/:id.
func (h *AccountsHandler) GetUser(c *gin.Context) {
	if !jwtmw.AuthorizedFor(c, c.Param("id")) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "token does not match the requested user"})
		return
	}
	user, err := h.accounts.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
			return
		}
		slog.Error("get user failed", "user_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{
		ID:            user.ID,
		BrokerAccount: user.BrokerAccount,
		Server:        user.Server,
		Broker:        user.Broker,
		AccountType:   user.AccountType,
		Balance:       user.Balance,
		Equity:        user.Equity,
		Currency:      user.Currency,
		LastLogin:     user.LastLogin,
	})
}

// GetAccount handles GET /api/users/:id/account. Broker errors fall back to
// the stored snapshot inside the usecase, so a 200 here may carry cached
// data.
func (h *AccountsHandler) GetAccount(c *gin.Context) {
	if !jwtmw.AuthorizedFor(c, c.Param("id")) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "token does not match the requested user"})
		return
	}
	user, info, err := h.accounts.GetAccountInfo(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
		case errors.Is(err, usecase.ErrBrokerNotConfigured):
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "MetaAPI not configured"})
		default:
			slog.Error("get account failed", "user_id", c.Param("id"), "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.AccountInfoResponse{
		UserID:        user.ID,
		BrokerAccount: user.BrokerAccount,
		Server:        user.Server,
		Balance:       info.Balance,
		Equity:        info.Equity,
		Margin:        info.Margin,
		FreeMargin:    info.FreeMargin,
		Currency:      info.Currency,
	})
}
