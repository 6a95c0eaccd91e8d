package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"kanairy_backend/internal/feature/accounts/domain/entity"
	"kanairy_backend/internal/feature/accounts/usecase"
	jwtmw "kanairy_backend/internal/platform/jwt"
)

type stubAccounts struct {
	connectResult *usecase.ConnectResult
	connectErr    error
	user          *entity.User
	userErr       error
	info          entity.AccountInfo
	infoErr       error
}

func (s *stubAccounts) ConnectBroker(ctx context.Context, p usecase.ConnectParams) (*usecase.ConnectResult, error) {
	return s.connectResult, s.connectErr
}

func (s *stubAccounts) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return s.user, s.userErr
}

func (s *stubAccounts) GetAccountInfo(ctx context.Context, userID string) (*entity.User, entity.AccountInfo, error) {
	if s.infoErr != nil {
		return nil, entity.AccountInfo{}, s.infoErr
	}
	return s.user, s.info, nil
}

// setupAccountsRouter mounts the handler with the token subject already in
// the request context, the way AuthRequired leaves it. Connect is public and
// ignores it.
func setupAccountsRouter(s *stubAccounts, tokenSubject string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if tokenSubject != "" {
			c.Set(jwtmw.ContextUserID, tokenSubject)
		}
	})
	h := NewAccountsHandler(s)
	r.POST("/api/users/connect", h.Connect)
	r.GET("/api/users/:id", h.GetUser)
	r.GET("/api/users/:id/account", h.GetAccount)
	return r
}

func TestConnect_InvalidBody(t *testing.T) {
	r := setupAccountsRouter(&stubAccounts{}, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users/connect", bytes.NewBufferString(`{"login":"1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConnect_BrokerNotConfigured(t *testing.T) {
	r := setupAccountsRouter(&stubAccounts{connectErr: usecase.ErrBrokerNotConfigured}, "")

	w := httptest.NewRecorder()
	body := `{"login":"50012345","password":"p","server":"Demo"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/connect", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "METAAPI_TOKEN")
}

func TestConnect_Success(t *testing.T) {
	user := &entity.User{ID: "user-1", BrokerAccount: "50012345", Server: "Demo", Balance: 1000, Equity: 990, Currency: "USD"}
	s := &stubAccounts{connectResult: &usecase.ConnectResult{
		User:  user,
		Info:  entity.AccountInfo{Balance: 1000, Equity: 990, Currency: "USD"},
		Token: "jwt-token",
	}}
	r := setupAccountsRouter(s, "")

	w := httptest.NewRecorder()
	body := `{"login":"50012345","password":"p","server":"Demo"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/connect", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"user-1"`)
	assert.Contains(t, w.Body.String(), "jwt-token")
}

func TestConnect_BrokerFailure(t *testing.T) {
	r := setupAccountsRouter(&stubAccounts{connectErr: errors.New("deploy timeout")}, "")

	w := httptest.NewRecorder()
	body := `{"login":"50012345","password":"p","server":"Demo"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/connect", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetUser_NotFound(t *testing.T) {
	r := setupAccountsRouter(&stubAccounts{userErr: usecase.ErrUserNotFound}, "missing")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users/missing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetUser_Success(t *testing.T) {
	r := setupAccountsRouter(&stubAccounts{user: &entity.User{ID: "user-1", BrokerAccount: "50012345", Currency: "USD"}}, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users/user-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "50012345")
}

func TestGetUser_TokenMismatch(t *testing.T) {
	r := setupAccountsRouter(&stubAccounts{user: &entity.User{ID: "user-1"}}, "user-2")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users/user-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetAccount_Success(t *testing.T) {
	s := &stubAccounts{
		user: &entity.User{ID: "user-1"},
		info: entity.AccountInfo{Balance: 1500, Equity: 1480, Currency: "USD", Leverage: 100},
	}
	r := setupAccountsRouter(s, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users/user-1/account", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1500")
}

func TestGetAccount_BrokerNotConfigured(t *testing.T) {
	r := setupAccountsRouter(&stubAccounts{infoErr: usecase.ErrBrokerNotConfigured}, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users/user-1/account", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
