package adapters

import (
	"context"
	"time"

	"github.com/google/uuid"

	"kanairy_backend/internal/feature/orders/domain/entity"
	"kanairy_backend/internal/feature/orders/usecase"
	"kanairy_backend/internal/platform/appwrite"
)

// orderDoc is the Appwrite document shape for the orders collection.
type orderDoc struct {
	ID         string  `json:"$id,omitempty"`
	UserID     string  `json:"user_id"`
	Symbol     string  `json:"symbol"`
	Type       string  `json:"type"`
	Volume     float64 `json:"volume"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
	ExecutedAt string  `json:"executed_at,omitempty"`
}

func (d *orderDoc) toEntity() entity.Order {
	o := entity.Order{
		ID:     d.ID,
		UserID: d.UserID,
		Symbol: d.Symbol,
		Type:   d.Type,
		Volume: d.Volume,
		Price:  d.Price,
		Status: d.Status,
	}
	if t, err := time.Parse(time.RFC3339, d.CreatedAt); err == nil {
		o.CreatedAt = t
	}
	if d.ExecutedAt != "" {
		if t, err := time.Parse(time.RFC3339, d.ExecutedAt); err == nil {
			o.ExecutedAt = &t
		}
	}
	return o
}

// orderAppwrite implements OrderRepository on Appwrite.
type orderAppwrite struct {
	client     *appwrite.Client
	collection string
}

var _ usecase.OrderRepository = (*orderAppwrite)(nil)

// NewOrderAppwrite creates an OrderRepository backed by Appwrite.
func NewOrderAppwrite(client *appwrite.Client, collection string) *orderAppwrite {
	return &orderAppwrite{client: client, collection: collection}
}

func (r *orderAppwrite) Create(ctx context.Context, o *entity.Order) error {
	id := o.ID
	if id == "" {
		id = uuid.NewString()
	}

	doc := orderDoc{
		UserID:    o.UserID,
		Symbol:    o.Symbol,
		Type:      o.Type,
		Volume:    o.Volume,
		Price:     o.Price,
		Status:    o.Status,
		CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339),
	}
	if o.ExecutedAt != nil {
		doc.ExecutedAt = o.ExecutedAt.UTC().Format(time.RFC3339)
	}

	var created orderDoc
	if err := r.client.CreateDocument(ctx, r.collection, id, doc, &created); err != nil {
		return err
	}
	o.ID = created.ID
	return nil
}

func (r *orderAppwrite) ListByUser(ctx context.Context, userID, status string) ([]entity.Order, error) {
	opts := appwrite.ListOptions{
		Queries:    []string{appwrite.Equal("user_id", userID)},
		OrderField: "created_at",
		OrderType:  "DESC",
	}
	if status != "" {
		opts.Queries = append(opts.Queries, appwrite.Equal("status", status))
	}

	var docs []orderDoc
	if err := r.client.ListDocuments(ctx, r.collection, opts, &docs); err != nil {
		return nil, err
	}

	out := make([]entity.Order, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}
