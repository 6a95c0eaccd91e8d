// Package envfile manages the .env configuration file the deploy CLI and
// the server share.
package envfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Name is the configuration file name at the project root.
const Name = ".env"

// RequiredKeys lists every key the server reads, in the order they are
// written to a synthesized file.
var RequiredKeys = []string{
	"APPWRITE_ENDPOINT",
	"APPWRITE_PROJECT_ID",
	"APPWRITE_API_KEY",
	"APPWRITE_DATABASE_ID",
	"APPWRITE_USERS_COLLECTION_ID",
	"APPWRITE_POSITIONS_COLLECTION_ID",
	"APPWRITE_ORDERS_COLLECTION_ID",
	"APPWRITE_NEWS_COLLECTION_ID",
	"METAAPI_TOKEN",
	"ENCRYPTION_KEY",
	"PORT",
	"DEBUG",
}

// placeholders holds the synthesized default for each key. Operators must
// replace the "your-" values before the hosted services are reachable; the
// server treats them as absent and falls back to local storage.
var placeholders = map[string]string{
	"APPWRITE_ENDPOINT":                "https://cloud.appwrite.io/v1",
	"APPWRITE_PROJECT_ID":              "your-appwrite-project-id",
	"APPWRITE_API_KEY":                 "your-appwrite-api-key",
	"APPWRITE_DATABASE_ID":             "kanairy_db",
	"APPWRITE_USERS_COLLECTION_ID":     "users",
	"APPWRITE_POSITIONS_COLLECTION_ID": "positions",
	"APPWRITE_ORDERS_COLLECTION_ID":    "orders",
	"APPWRITE_NEWS_COLLECTION_ID":      "news",
	"METAAPI_TOKEN":                    "your-metaapi-token",
	"ENCRYPTION_KEY":                   "kanairy-secret-key-32-characters-long!",
	"PORT":                             "8000",
	"DEBUG":                            "true",
}

// Exists reports whether the env file is present in dir.
func Exists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, Name))
	return err == nil && !info.IsDir()
}

// Synthesize writes a placeholder env file in dir. An existing file is
// never overwritten; the call is then a no-op.
func Synthesize(dir string) error {
	path := filepath.Join(dir, Name)
	if Exists(dir) {
		return nil
	}

	var b strings.Builder
	b.WriteString("# KanAIRY configuration. Replace the your-* values before connecting\n")
	b.WriteString("# to hosted services.\n")
	for _, key := range RequiredKeys {
		fmt.Fprintf(&b, "%s=%s\n", key, placeholders[key])
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", Name, err)
	}
	return nil
}
