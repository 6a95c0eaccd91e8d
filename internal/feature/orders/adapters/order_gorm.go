package adapters

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanairy_backend/internal/feature/orders/domain/entity"
	"kanairy_backend/internal/feature/orders/usecase"
)

// OrderModel is the GORM model for the orders table of the local store.
type OrderModel struct {
	ID         string `gorm:"primaryKey;size:36"`
	UserID     string `gorm:"index;size:36;not null"`
	Symbol     string `gorm:"size:20;not null"`
	Type       string `gorm:"size:10;not null"`
	Volume     float64
	Price      float64
	Status     string `gorm:"index;size:20;not null"`
	CreatedAt  time.Time
	ExecutedAt *time.Time
}

// TableName returns the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// ToEntity converts the GORM model to a domain entity.
func (m *OrderModel) ToEntity() entity.Order {
	return entity.Order{
		ID:         m.ID,
		UserID:     m.UserID,
		Symbol:     m.Symbol,
		Type:       m.Type,
		Volume:     m.Volume,
		Price:      m.Price,
		Status:     m.Status,
		CreatedAt:  m.CreatedAt,
		ExecutedAt: m.ExecutedAt,
	}
}

// orderGorm implements OrderRepository on the local GORM store.
type orderGorm struct {
	db *gorm.DB
}

var _ usecase.OrderRepository = (*orderGorm)(nil)

// NewOrderGorm creates an OrderRepository backed by the local database.
func NewOrderGorm(db *gorm.DB) *orderGorm {
	return &orderGorm{db: db}
}

func (r *orderGorm) Create(ctx context.Context, o *entity.Order) error {
	m := &OrderModel{
		ID:         o.ID,
		UserID:     o.UserID,
		Symbol:     o.Symbol,
		Type:       o.Type,
		Volume:     o.Volume,
		Price:      o.Price,
		Status:     o.Status,
		CreatedAt:  o.CreatedAt,
		ExecutedAt: o.ExecutedAt,
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	o.ID = m.ID
	return nil
}

func (r *orderGorm) ListByUser(ctx context.Context, userID, status string) ([]entity.Order, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var rows []OrderModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.Order, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToEntity())
	}
	return out, nil
}
