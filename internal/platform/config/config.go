// Package config loads application configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every setting the server reads at startup. Values come from
// the process environment, optionally seeded from a .env file.
type Config struct {
	// Appwrite document store.
	AppwriteEndpoint      string
	AppwriteProjectID     string
	AppwriteAPIKey        string
	AppwriteDatabaseID    string
	UsersCollectionID     string
	PositionsCollectionID string
	OrdersCollectionID    string
	NewsCollectionID      string

	// MetaAPI broker gateway.
	MetaAPIToken string

	// Credential encryption and API tokens.
	EncryptionKey string
	JWTSecret     string

	// Local fallback store (used when Appwrite credentials are placeholders).
	LocalDBDriver string
	LocalDBDSN    string

	// Redis cache.
	RedisHost     string
	RedisPort     string
	RedisPassword string

	Port  string
	Debug bool
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading from environment directly")
	}

	return &Config{
		AppwriteEndpoint:      getEnv("APPWRITE_ENDPOINT", "https://cloud.appwrite.io/v1"),
		AppwriteProjectID:     getEnv("APPWRITE_PROJECT_ID", ""),
		AppwriteAPIKey:        getEnv("APPWRITE_API_KEY", ""),
		AppwriteDatabaseID:    getEnv("APPWRITE_DATABASE_ID", "kanairy_db"),
		UsersCollectionID:     getEnv("APPWRITE_USERS_COLLECTION_ID", "users"),
		PositionsCollectionID: getEnv("APPWRITE_POSITIONS_COLLECTION_ID", "positions"),
		OrdersCollectionID:    getEnv("APPWRITE_ORDERS_COLLECTION_ID", "orders"),
		NewsCollectionID:      getEnv("APPWRITE_NEWS_COLLECTION_ID", "news"),
		MetaAPIToken:          getEnv("METAAPI_TOKEN", ""),
		EncryptionKey:         getEnv("ENCRYPTION_KEY", "kanairy-secret-key-32-characters-long!"),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		LocalDBDriver:         getEnv("LOCAL_DB_DRIVER", "sqlite"),
		LocalDBDSN:            getEnv("LOCAL_DB_DSN", "kanairy.db"),
		RedisHost:             getEnv("REDIS_HOST", ""),
		RedisPort:             getEnv("REDIS_PORT", "6379"),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		Port:                  getEnv("PORT", "8000"),
		Debug:                 getEnv("DEBUG", "false") == "true",
	}
}

// AppwriteConfigured reports whether real Appwrite credentials are present.
// The local deploy path synthesizes a .env with "your-..." placeholder values,
// which must not be treated as a usable remote store.
func (c *Config) AppwriteConfigured() bool {
	return c.AppwriteProjectID != "" &&
		c.AppwriteAPIKey != "" &&
		!isPlaceholder(c.AppwriteProjectID) &&
		!isPlaceholder(c.AppwriteAPIKey)
}

// MetaAPIConfigured reports whether a MetaAPI token is present.
func (c *Config) MetaAPIConfigured() bool {
	return c.MetaAPIToken != "" && !isPlaceholder(c.MetaAPIToken)
}

// RedisConfigured reports whether a Redis host was supplied.
func (c *Config) RedisConfigured() bool {
	return c.RedisHost != ""
}

func isPlaceholder(v string) bool {
	return strings.HasPrefix(v, "your-")
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
