package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanairy_backend/internal/feature/news/domain/entity"
	"kanairy_backend/internal/platform/appwrite"
)

// The news document keys are the collection schema; articles written by other
// services must round-trip with their body and image intact.
func TestNewsAppwrite_DocumentFieldNames(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			DocumentID string         `json:"documentId"`
			Data       map[string]any `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		captured = body.Data

		_, _ = w.Write([]byte(`{"$id": "art-1"}`))
	}))
	defer srv.Close()

	client := appwrite.NewClient(appwrite.Config{
		Endpoint:   srv.URL,
		ProjectID:  "proj",
		APIKey:     "key",
		DatabaseID: "db",
	}, http.DefaultClient)

	repo := NewNewsAppwrite(client, "news")
	err := repo.Create(context.Background(), &entity.Article{
		Title:       "Platform Update",
		Content:     "Scheduled maintenance completed without downtime.",
		Category:    entity.CategoryMarket,
		Source:      "KanAIRY",
		ImageURL:    "https://example.com/update.png",
		PublishedAt: time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "Scheduled maintenance completed without downtime.", captured["content"])
	assert.Equal(t, "https://example.com/update.png", captured["image_url"])
	assert.NotContains(t, captured, "summary")
	assert.NotContains(t, captured, "url")
}

func TestNewsAppwrite_ListDecodesDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total": 1, "documents": [
			{"$id": "art-1", "title": "Forex Market Analysis", "content": "EUR/USD shows strong bullish momentum.",
			 "category": "forex", "source": "Market Watch", "image_url": "https://example.com/chart.png",
			 "published_at": "2026-02-10T12:00:00Z"}
		]}`))
	}))
	defer srv.Close()

	client := appwrite.NewClient(appwrite.Config{
		Endpoint:   srv.URL,
		ProjectID:  "proj",
		APIKey:     "key",
		DatabaseID: "db",
	}, http.DefaultClient)

	repo := NewNewsAppwrite(client, "news")
	articles, err := repo.List(context.Background(), "forex", 10)
	require.NoError(t, err)
	require.Len(t, articles, 1)

	assert.Equal(t, "EUR/USD shows strong bullish momentum.", articles[0].Content)
	assert.Equal(t, "https://example.com/chart.png", articles[0].ImageURL)
}
