package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeStore struct {
	err error
}

func (f *fakeStore) Ping(ctx context.Context) error { return f.err }

func setupSystemRouter(h *SystemHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", h.Root)
	r.GET("/api/health", h.Health)
	r.HEAD("/api/health", h.Health)
	r.GET("/api/status", h.Status)
	return r
}

func TestSystemHandler_Health(t *testing.T) {
	h := NewSystemHandler(&fakeStore{}, "local", false, 32)
	r := setupSystemRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestSystemHandler_HealthHead(t *testing.T) {
	h := NewSystemHandler(&fakeStore{}, "local", false, 32)
	r := setupSystemRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodHead, "/api/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestSystemHandler_Root(t *testing.T) {
	h := NewSystemHandler(&fakeStore{}, "local", false, 32)
	r := setupSystemRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "KanAIRY Trading Platform")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestSystemHandler_StatusReachable(t *testing.T) {
	h := NewSystemHandler(&fakeStore{}, "appwrite", true, 32)
	r := setupSystemRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reachable":true`)
	assert.Contains(t, w.Body.String(), `"broker_enabled":true`)
}

func TestSystemHandler_StatusUnreachable(t *testing.T) {
	h := NewSystemHandler(&fakeStore{err: errors.New("connection refused")}, "appwrite", false, 32)
	r := setupSystemRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reachable":false`)
	assert.Contains(t, w.Body.String(), "connection refused")
}
