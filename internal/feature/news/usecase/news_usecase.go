package usecase

import (
	"context"
	"log/slog"
	"time"

	"kanairy_backend/internal/feature/news/domain/entity"
)

// ArticleRepository abstracts the news store.
type ArticleRepository interface {
	Create(ctx context.Context, a *entity.Article) error
	List(ctx context.Context, category string, limit int) ([]entity.Article, error)
}

const defaultLimit = 20

// NewsUsecase provides the market news feed.
type NewsUsecase struct {
	articles ArticleRepository
}

// NewNewsUsecase creates a new NewsUsecase.
func NewNewsUsecase(articles ArticleRepository) *NewsUsecase {
	return &NewsUsecase{articles: articles}
}

// List returns news articles, newest first, optionally filtered by
// category. An empty store is seeded with sample articles so the
// dashboard feed is never blank on a fresh install.
func (u *NewsUsecase) List(ctx context.Context, category string, limit int) ([]entity.Article, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultLimit
	}

	articles, err := u.articles.List(ctx, category, limit)
	if err != nil {
		return nil, err
	}
	if len(articles) > 0 {
		return articles, nil
	}

	if err := u.seed(ctx); err != nil {
		slog.Warn("failed to seed sample news", "error", err)
		return []entity.Article{}, nil
	}
	return u.articles.List(ctx, category, limit)
}

// Create stores a new article.
func (u *NewsUsecase) Create(ctx context.Context, a *entity.Article) error {
	if a.PublishedAt.IsZero() {
		a.PublishedAt = time.Now().UTC()
	}
	if a.Category == "" {
		a.Category = entity.CategoryMarket
	}
	return u.articles.Create(ctx, a)
}

func (u *NewsUsecase) seed(ctx context.Context) error {
	now := time.Now().UTC()
	samples := []entity.Article{
		{
			Title:       "Fed Holds Rates Steady as Inflation Cools",
			Content:     "The Federal Reserve kept its benchmark rate unchanged, citing continued progress toward its inflation target.",
			Category:    entity.CategoryEconomic,
			Source:      "KanAIRY Desk",
			PublishedAt: now.Add(-2 * time.Hour),
		},
		{
			Title:       "EUR/USD Tests Resistance Ahead of ECB Minutes",
			Content:     "The pair climbed toward 1.10 as traders positioned for the release of the latest ECB meeting minutes.",
			Category:    entity.CategoryForex,
			Source:      "KanAIRY Desk",
			PublishedAt: now.Add(-5 * time.Hour),
		},
		{
			Title:       "Gold Extends Rally on Safe-Haven Demand",
			Content:     "Spot gold rose for a fourth straight session as geopolitical tensions pushed investors into safe-haven assets.",
			Category:    entity.CategoryMarket,
			Source:      "KanAIRY Desk",
			PublishedAt: now.Add(-8 * time.Hour),
		},
		{
			Title:       "Bitcoin Reclaims Key Level After ETF Inflows",
			Content:     "BTC recovered above its 50-day moving average as spot ETF products recorded their strongest weekly inflows of the quarter.",
			Category:    entity.CategoryCrypto,
			Source:      "KanAIRY Desk",
			PublishedAt: now.Add(-12 * time.Hour),
		},
	}

	for i := range samples {
		if err := u.articles.Create(ctx, &samples[i]); err != nil {
			return err
		}
	}
	return nil
}
