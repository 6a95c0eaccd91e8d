package adapters

import (
	"context"
	"time"

	"github.com/google/uuid"

	"kanairy_backend/internal/feature/news/domain/entity"
	"kanairy_backend/internal/feature/news/usecase"
	"kanairy_backend/internal/platform/appwrite"
)

// articleDoc is the Appwrite document shape for the news collection.
type articleDoc struct {
	ID          string `json:"$id,omitempty"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	Source      string `json:"source"`
	ImageURL    string `json:"image_url,omitempty"`
	PublishedAt string `json:"published_at"`
}

func (d *articleDoc) toEntity() entity.Article {
	a := entity.Article{
		ID:       d.ID,
		Title:    d.Title,
		Content:  d.Content,
		Category: d.Category,
		Source:   d.Source,
		ImageURL: d.ImageURL,
	}
	if t, err := time.Parse(time.RFC3339, d.PublishedAt); err == nil {
		a.PublishedAt = t
	}
	return a
}

// newsAppwrite implements ArticleRepository on Appwrite.
type newsAppwrite struct {
	client     *appwrite.Client
	collection string
}

var _ usecase.ArticleRepository = (*newsAppwrite)(nil)

// NewNewsAppwrite creates an ArticleRepository backed by Appwrite.
func NewNewsAppwrite(client *appwrite.Client, collection string) *newsAppwrite {
	return &newsAppwrite{client: client, collection: collection}
}

func (r *newsAppwrite) Create(ctx context.Context, a *entity.Article) error {
	id := a.ID
	if id == "" {
		id = uuid.NewString()
	}

	doc := articleDoc{
		Title:       a.Title,
		Content:     a.Content,
		Category:    a.Category,
		Source:      a.Source,
		ImageURL:    a.ImageURL,
		PublishedAt: a.PublishedAt.UTC().Format(time.RFC3339),
	}

	var created articleDoc
	if err := r.client.CreateDocument(ctx, r.collection, id, doc, &created); err != nil {
		return err
	}
	a.ID = created.ID
	return nil
}

func (r *newsAppwrite) List(ctx context.Context, category string, limit int) ([]entity.Article, error) {
	opts := appwrite.ListOptions{
		OrderField: "published_at",
		OrderType:  "DESC",
		Limit:      limit,
	}
	if category != "" {
		opts.Queries = append(opts.Queries, appwrite.Equal("category", category))
	}

	var docs []articleDoc
	if err := r.client.ListDocuments(ctx, r.collection, opts, &docs); err != nil {
		return nil, err
	}

	out := make([]entity.Article, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}
