// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "KanAIRY Trading API"
	serviceVersion = "2.0.0"
)

// StorePinger reports whether the backing document store is reachable.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves the root, health and status endpoints.
type SystemHandler struct {
	store         StorePinger
	storageMode   string
	brokerEnabled bool
	keyLength     int
	startedAt     time.Time
}

// NewSystemHandler creates a SystemHandler. storageMode names the active
// store ("appwrite" or "local"); store may be nil when no ping is possible.
func NewSystemHandler(store StorePinger, storageMode string, brokerEnabled bool, keyLength int) *SystemHandler {
	return &SystemHandler{
		store:         store,
		storageMode:   storageMode,
		brokerEnabled: brokerEnabled,
		keyLength:     keyLength,
		startedAt:     time.Now().UTC(),
	}
}

// fallbackPage is served when no built frontend is present.
const fallbackPage = `<html>
<head><title>KanAIRY Trading Platform</title></head>
<body style="background: #000; color: #fff; font-family: Arial; text-align: center; padding: 50px;">
<h1>KanAIRY Trading Platform</h1>
<p>Backend API is running successfully!</p>
<p><a href="/api/health" style="color: #2979ff;">Health</a> &middot; <a href="/api/status" style="color: #2979ff;">Status</a></p>
</body>
</html>`

// Root handles GET /. It serves the built frontend when present and a
// small embedded landing page otherwise.
func (h *SystemHandler) Root(c *gin.Context) {
	if page, err := os.ReadFile("static/index.html"); err == nil {
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fallbackPage))
}

// Health handles GET /api/health. It always answers quickly and prevents
// caching so container healthchecks see live state.
func (h *SystemHandler) Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   serviceName,
			"version":   serviceVersion,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// Status handles GET /api/status with a deeper diagnostic view.
func (h *SystemHandler) Status(c *gin.Context) {
	storage := gin.H{
		"mode":      h.storageMode,
		"reachable": false,
	}
	if h.store != nil {
		if err := h.store.Ping(c.Request.Context()); err != nil {
			storage["error"] = err.Error()
		} else {
			storage["reachable"] = true
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"service":            serviceName,
		"version":            serviceVersion,
		"uptime":             time.Since(h.startedAt).Round(time.Second).String(),
		"storage":            storage,
		"broker_enabled":     h.brokerEnabled,
		"encryption_key_len": h.keyLength,
	})
}
