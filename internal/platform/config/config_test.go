package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "https://cloud.appwrite.io/v1", cfg.AppwriteEndpoint)
	assert.Equal(t, "kanairy_db", cfg.AppwriteDatabaseID)
	assert.Equal(t, "sqlite", cfg.LocalDBDriver)
	assert.NotEmpty(t, cfg.EncryptionKey)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("APPWRITE_PROJECT_ID", "proj-123")
	t.Setenv("DEBUG", "true")

	cfg := Load()

	assert.Equal(t, "9001", cfg.Port)
	assert.Equal(t, "proj-123", cfg.AppwriteProjectID)
	assert.True(t, cfg.Debug)
}

func TestAppwriteConfigured(t *testing.T) {
	tests := []struct {
		name      string
		projectID string
		apiKey    string
		want      bool
	}{
		{"real credentials", "proj-123", "key-456", true},
		{"empty", "", "", false},
		{"placeholder project", "your-appwrite-project-id", "key-456", false},
		{"placeholder key", "proj-123", "your-appwrite-api-key", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{AppwriteProjectID: tt.projectID, AppwriteAPIKey: tt.apiKey}
			assert.Equal(t, tt.want, cfg.AppwriteConfigured())
		})
	}
}

func TestMetaAPIConfigured(t *testing.T) {
	assert.False(t, (&Config{}).MetaAPIConfigured())
	assert.False(t, (&Config{MetaAPIToken: "your-metaapi-token"}).MetaAPIConfigured())
	assert.True(t, (&Config{MetaAPIToken: "eyJhbGciOi"}).MetaAPIConfigured())
}

func TestRedisConfigured(t *testing.T) {
	assert.False(t, (&Config{}).RedisConfigured())
	assert.True(t, (&Config{RedisHost: "localhost"}).RedisConfigured())
}
