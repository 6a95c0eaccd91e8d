// Package adapters provides the repository implementations for the trading
// feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"kanairy_backend/internal/feature/trading/domain/entity"
	"kanairy_backend/internal/feature/trading/usecase"
	"kanairy_backend/internal/platform/appwrite"
)

// positionDoc is the Appwrite document shape of a position. Field names
// must stay stable across releases.
type positionDoc struct {
	ID               string   `json:"$id,omitempty"`
	UserID           string   `json:"user_id"`
	Symbol           string   `json:"symbol"`
	Type             string   `json:"type"`
	Volume           float64  `json:"volume"`
	OpenPrice        float64  `json:"open_price"`
	CurrentPrice     float64  `json:"current_price"`
	StopLoss         *float64 `json:"stop_loss,omitempty"`
	TakeProfit       *float64 `json:"take_profit,omitempty"`
	Profit           float64  `json:"profit"`
	Status           string   `json:"status"`
	BrokerPositionID string   `json:"broker_position_id,omitempty"`
	OpenedAt         string   `json:"opened_at"`
	ClosedAt         string   `json:"closed_at,omitempty"`
}

func (d positionDoc) toEntity() entity.Position {
	p := entity.Position{
		ID:               d.ID,
		UserID:           d.UserID,
		Symbol:           d.Symbol,
		Type:             d.Type,
		Volume:           d.Volume,
		OpenPrice:        d.OpenPrice,
		CurrentPrice:     d.CurrentPrice,
		StopLoss:         d.StopLoss,
		TakeProfit:       d.TakeProfit,
		Profit:           d.Profit,
		Status:           d.Status,
		BrokerPositionID: d.BrokerPositionID,
	}
	if t, err := time.Parse(time.RFC3339, d.OpenedAt); err == nil {
		p.OpenedAt = t
	}
	if d.ClosedAt != "" {
		if t, err := time.Parse(time.RFC3339, d.ClosedAt); err == nil {
			p.ClosedAt = &t
		}
	}
	return p
}

func positionDocFromEntity(p *entity.Position) positionDoc {
	d := positionDoc{
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
		OpenedAt:         p.OpenedAt.UTC().Format(time.RFC3339),
	}
	if p.ClosedAt != nil {
		d.ClosedAt = p.ClosedAt.UTC().Format(time.RFC3339)
	}
	return d
}

// positionAppwrite implements PositionRepository on the Appwrite store.
type positionAppwrite struct {
	client     *appwrite.Client
	collection string
}

var _ usecase.PositionRepository = (*positionAppwrite)(nil)

// NewPositionAppwrite creates a PositionRepository backed by the given
// collection.
func NewPositionAppwrite(client *appwrite.Client, collection string) *positionAppwrite {
	return &positionAppwrite{client: client, collection: collection}
}

func (r *positionAppwrite) Create(ctx context.Context, p *entity.Position) error {
	doc := positionDocFromEntity(p)
	var created positionDoc
	if err := r.client.CreateDocument(ctx, r.collection, uuid.NewString(), doc, &created); err != nil {
		return err
	}
	p.ID = created.ID
	return nil
}

func (r *positionAppwrite) FindByID(ctx context.Context, id string) (*entity.Position, error) {
	var doc positionDoc
	if err := r.client.GetDocument(ctx, r.collection, id, &doc); err != nil {
		if errors.Is(err, appwrite.ErrNotFound) {
			return nil, usecase.ErrPositionNotFound
		}
		return nil, err
	}
	p := doc.toEntity()
	return &p, nil
}

func (r *positionAppwrite) ListByUser(ctx context.Context, userID, status string) ([]entity.Position, error) {
	queries := []string{appwrite.Equal("user_id", userID)}
	if status != "" {
		queries = append(queries, appwrite.Equal("status", status))
	}

	var docs []positionDoc
	err := r.client.ListDocuments(ctx, r.collection, appwrite.ListOptions{
		Queries:    queries,
		OrderField: "opened_at",
		OrderType:  "DESC",
	}, &docs)
	if err != nil {
		return nil, err
	}

	out := make([]entity.Position, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toEntity())
	}
	return out, nil
}

func (r *positionAppwrite) MarkClosed(ctx context.Context, id string, closePrice, profit float64, closedAt time.Time) error {
	data := map[string]any{
		"current_price": closePrice,
		"profit":        profit,
		"status":        entity.StatusClosed,
		"closed_at":     closedAt.UTC().Format(time.RFC3339),
	}
	if err := r.client.UpdateDocument(ctx, r.collection, id, data, nil); err != nil {
		if errors.Is(err, appwrite.ErrNotFound) {
			return usecase.ErrPositionNotFound
		}
		return err
	}
	return nil
}

func (r *positionAppwrite) UpdateQuote(ctx context.Context, id string, currentPrice, profit float64) error {
	data := map[string]any{
		"current_price": currentPrice,
		"profit":        profit,
	}
	if err := r.client.UpdateDocument(ctx, r.collection, id, data, nil); err != nil {
		if errors.Is(err, appwrite.ErrNotFound) {
			return usecase.ErrPositionNotFound
		}
		return err
	}
	return nil
}
