package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanairy_backend/internal/feature/trading/domain/entity"
	"kanairy_backend/internal/feature/trading/usecase"
)

// PositionModel is the GORM model for the positions table of the local
// store.
type PositionModel struct {
	ID               string `gorm:"primaryKey;size:36"`
	UserID           string `gorm:"index;size:36;not null"`
	Symbol           string `gorm:"size:20;not null"`
	Type             string `gorm:"size:10;not null"`
	Volume           float64
	OpenPrice        float64
	CurrentPrice     float64
	StopLoss         *float64
	TakeProfit       *float64
	Profit           float64
	Status           string `gorm:"index;size:20;not null"`
	BrokerPositionID string `gorm:"size:100"`
	OpenedAt         time.Time
	ClosedAt         *time.Time
}

// TableName returns the table name for GORM.
func (PositionModel) TableName() string {
	return "positions"
}

// ToEntity converts the GORM model to a domain entity.
func (m *PositionModel) ToEntity() entity.Position {
	return entity.Position{
		ID:               m.ID,
		UserID:           m.UserID,
		Symbol:           m.Symbol,
		Type:             m.Type,
		Volume:           m.Volume,
		OpenPrice:        m.OpenPrice,
		CurrentPrice:     m.CurrentPrice,
		StopLoss:         m.StopLoss,
		TakeProfit:       m.TakeProfit,
		Profit:           m.Profit,
		Status:           m.Status,
		BrokerPositionID: m.BrokerPositionID,
		OpenedAt:         m.OpenedAt,
		ClosedAt:         m.ClosedAt,
	}
}

func positionModelFromEntity(p *entity.Position) *PositionModel {
	return &PositionModel{
		ID:               p.ID,
		UserID:           p.UserID,
		Symbol:           p.Symbol,
		Type:             p.Type,
		Volume:           p.Volume,
		OpenPrice:        p.OpenPrice,
		CurrentPrice:     p.CurrentPrice,
		StopLoss:         p.StopLoss,
		TakeProfit:       p.TakeProfit,
		Profit:           p.Profit,
		Status:           p.Status,
		BrokerPositionID: p.BrokerPositionID,
		OpenedAt:         p.OpenedAt,
		ClosedAt:         p.ClosedAt,
	}
}

// positionGorm implements PositionRepository on the local GORM store.
type positionGorm struct {
	db *gorm.DB
}

var _ usecase.PositionRepository = (*positionGorm)(nil)

// NewPositionGorm creates a PositionRepository backed by the local database.
func NewPositionGorm(db *gorm.DB) *positionGorm {
	return &positionGorm{db: db}
}

func (r *positionGorm) Create(ctx context.Context, p *entity.Position) error {
	m := positionModelFromEntity(p)
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	p.ID = m.ID
	return nil
}

func (r *positionGorm) FindByID(ctx context.Context, id string) (*entity.Position, error) {
	var m PositionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPositionNotFound
		}
		return nil, err
	}
	p := m.ToEntity()
	return &p, nil
}

func (r *positionGorm) ListByUser(ctx context.Context, userID, status string) ([]entity.Position, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("opened_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var rows []PositionModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.Position, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToEntity())
	}
	return out, nil
}

func (r *positionGorm) MarkClosed(ctx context.Context, id string, closePrice, profit float64, closedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&PositionModel{}).Where("id = ?", id).Updates(map[string]any{
		"current_price": closePrice,
		"profit":        profit,
		"status":        entity.StatusClosed,
		"closed_at":     closedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrPositionNotFound
	}
	return nil
}

func (r *positionGorm) UpdateQuote(ctx context.Context, id string, currentPrice, profit float64) error {
	res := r.db.WithContext(ctx).Model(&PositionModel{}).Where("id = ?", id).Updates(map[string]any{
		"current_price": currentPrice,
		"profit":        profit,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrPositionNotFound
	}
	return nil
}
