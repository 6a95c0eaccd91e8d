package adapters

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanairy_backend/internal/feature/news/domain/entity"
	"kanairy_backend/internal/feature/news/usecase"
)

// ArticleModel is the GORM model for the news table of the local store.
type ArticleModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	Title       string `gorm:"size:255;not null"`
	Content     string `gorm:"type:text"`
	Category    string `gorm:"index;size:20"`
	Source      string `gorm:"size:100"`
	ImageURL    string `gorm:"size:500"`
	PublishedAt time.Time
}

// TableName returns the table name for GORM.
func (ArticleModel) TableName() string {
	return "news"
}

// ToEntity converts the GORM model to a domain entity.
func (m *ArticleModel) ToEntity() entity.Article {
	return entity.Article{
		ID:          m.ID,
		Title:       m.Title,
		Content:     m.Content,
		Category:    m.Category,
		Source:      m.Source,
		ImageURL:    m.ImageURL,
		PublishedAt: m.PublishedAt,
	}
}

// newsGorm implements ArticleRepository on the local GORM store.
type newsGorm struct {
	db *gorm.DB
}

var _ usecase.ArticleRepository = (*newsGorm)(nil)

// NewNewsGorm creates an ArticleRepository backed by the local database.
func NewNewsGorm(db *gorm.DB) *newsGorm {
	return &newsGorm{db: db}
}

func (r *newsGorm) Create(ctx context.Context, a *entity.Article) error {
	m := &ArticleModel{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		Category:    a.Category,
		Source:      a.Source,
		ImageURL:    a.ImageURL,
		PublishedAt: a.PublishedAt,
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	a.ID = m.ID
	return nil
}

func (r *newsGorm) List(ctx context.Context, category string, limit int) ([]entity.Article, error) {
	q := r.db.WithContext(ctx).Order("published_at DESC").Limit(limit)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var rows []ArticleModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.Article, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToEntity())
	}
	return out, nil
}
