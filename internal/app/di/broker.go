package di

import (
	"time"

	"kanairy_backend/internal/platform/config"
	infrahttp "kanairy_backend/internal/platform/http"
	"kanairy_backend/internal/platform/metaapi"
)

// NewBroker creates a fully configured MetaAPI client with HTTP client.
// Returns nil when no MetaAPI token is configured; trading operations then
// report the broker as unavailable instead of failing on startup.
func NewBroker(cfg *config.Config) *metaapi.Client {
	if !cfg.MetaAPIConfigured() {
		return nil
	}
	maCfg := metaapi.LoadConfig(cfg.MetaAPIToken)
	return metaapi.NewClient(maCfg, infrahttp.NewHTTPClient(30*time.Second))
}
