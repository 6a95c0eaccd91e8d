package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"kanairy_backend/internal/feature/trading/domain/entity"
)

// PositionRepository abstracts the persistence layer for positions.
// Following Go convention, the interface is defined by the consumer
// (usecase), not the provider (adapters).
type PositionRepository interface {
	// Create persists a new position and fills in its ID.
	Create(ctx context.Context, p *entity.Position) error

	// FindByID retrieves a position by its document ID.
	// Returns ErrPositionNotFound when no such position exists.
	FindByID(ctx context.Context, id string) (*entity.Position, error)

	// ListByUser retrieves the positions of a user, newest first,
	// optionally filtered by status.
	ListByUser(ctx context.Context, userID, status string) ([]entity.Position, error)

	// MarkClosed transitions a position to closed with its final numbers.
	MarkClosed(ctx context.Context, id string, closePrice, profit float64, closedAt time.Time) error

	// UpdateQuote refreshes the current price and running profit.
	UpdateQuote(ctx context.Context, id string, currentPrice, profit float64) error
}

// UserDirectory resolves a platform user to its broker login.
type UserDirectory interface {
	// BrokerLogin returns the MT5 login of the user.
	// Returns ErrUserNotFound when no such user exists.
	BrokerLogin(ctx context.Context, userID string) (string, error)
}

// BrokerExecutor abstracts order execution on the broker.
type BrokerExecutor interface {
	PlaceOrder(ctx context.Context, login string, order entity.OrderRequest) (entity.BrokerExecution, error)
	ClosePosition(ctx context.Context, login, brokerPositionID string) (entity.BrokerClose, error)
	Positions(ctx context.Context, login string) ([]entity.BrokerPosition, error)
}

// OrderLog records executed orders for the order history endpoint.
type OrderLog interface {
	RecordExecution(ctx context.Context, userID, symbol, side string, volume, price float64, executedAt time.Time) error
}

// PlaceParams describes a trade request from the API.
type PlaceParams struct {
	UserID     string
	Symbol     string
	Volume     float64
	Side       string
	StopLoss   *float64
	TakeProfit *float64
}

type tradingUsecase struct {
	positions PositionRepository
	users     UserDirectory
	broker    BrokerExecutor
	orders    OrderLog
}

// NewTradingUsecase creates a new trading usecase. broker may be nil when no
// MetaAPI token is configured; trade operations then fail with
// ErrBrokerNotConfigured.
func NewTradingUsecase(positions PositionRepository, users UserDirectory, broker BrokerExecutor, orders OrderLog) *tradingUsecase {
	return &tradingUsecase{
		positions: positions,
		users:     users,
		broker:    broker,
		orders:    orders,
	}
}

// PlaceTrade executes a market order on the broker and persists the
// resulting position.
func (u *tradingUsecase) PlaceTrade(ctx context.Context, p PlaceParams) (*entity.Position, entity.BrokerExecution, error) {
	if u.broker == nil {
		return nil, entity.BrokerExecution{}, ErrBrokerNotConfigured
	}

	side := strings.ToLower(p.Side)
	if side != entity.SideBuy && side != entity.SideSell {
		return nil, entity.BrokerExecution{}, ErrInvalidSide
	}
	if p.Volume <= 0 {
		return nil, entity.BrokerExecution{}, ErrInvalidVolume
	}

	login, err := u.users.BrokerLogin(ctx, p.UserID)
	if err != nil {
		return nil, entity.BrokerExecution{}, err
	}

	slog.Info("trade request", "user_id", p.UserID, "symbol", p.Symbol, "side", side, "volume", p.Volume)

	exec, err := u.broker.PlaceOrder(ctx, login, entity.OrderRequest{
		Symbol:     p.Symbol,
		Volume:     p.Volume,
		Side:       side,
		StopLoss:   p.StopLoss,
		TakeProfit: p.TakeProfit,
	})
	if err != nil {
		return nil, entity.BrokerExecution{}, fmt.Errorf("execute order: %w", err)
	}

	brokerPositionID := exec.PositionID
	if brokerPositionID == "" {
		brokerPositionID = exec.OrderID
	}

	now := time.Now().UTC()
	position := &entity.Position{
		UserID:           p.UserID,
		Symbol:           p.Symbol,
		Type:             capitalize(side),
		Volume:           p.Volume,
		OpenPrice:        exec.OpenPrice,
		CurrentPrice:     exec.OpenPrice,
		StopLoss:         p.StopLoss,
		TakeProfit:       p.TakeProfit,
		Status:           entity.StatusOpen,
		BrokerPositionID: brokerPositionID,
		OpenedAt:         now,
	}
	if err := u.positions.Create(ctx, position); err != nil {
		return nil, entity.BrokerExecution{}, fmt.Errorf("persist position: %w", err)
	}

	// Order history is best effort: a logging failure must not fail a trade
	// that already executed on the broker.
	if err := u.orders.RecordExecution(ctx, p.UserID, p.Symbol, side, p.Volume, exec.OpenPrice, now); err != nil {
		slog.Warn("failed to record order execution", "user_id", p.UserID, "error", err)
	}

	slog.Info("trade executed", "user_id", p.UserID, "position_id", position.ID, "broker_order_id", exec.OrderID)
	return position, exec, nil
}

// ListPositions returns the stored positions of a user. For open positions
// the broker is queried best-effort to refresh price and running profit.
func (u *tradingUsecase) ListPositions(ctx context.Context, userID, status string) ([]entity.Position, error) {
	positions, err := u.positions.ListByUser(ctx, userID, status)
	if err != nil {
		return nil, err
	}

	if u.broker != nil && status == entity.StatusOpen && len(positions) > 0 {
		u.syncOpenPositions(ctx, userID, positions)
	}
	return positions, nil
}

// syncOpenPositions refreshes stored open positions from the broker's live
// view. Any failure is logged and ignored.
func (u *tradingUsecase) syncOpenPositions(ctx context.Context, userID string, positions []entity.Position) {
	login, err := u.users.BrokerLogin(ctx, userID)
	if err != nil {
		slog.Warn("could not resolve broker login for position sync", "user_id", userID, "error", err)
		return
	}
	live, err := u.broker.Positions(ctx, login)
	if err != nil {
		slog.Warn("could not sync positions with broker", "user_id", userID, "error", err)
		return
	}

	byBrokerID := make(map[string]entity.BrokerPosition, len(live))
	for _, lp := range live {
		byBrokerID[lp.ID] = lp
	}

	for i := range positions {
		lp, ok := byBrokerID[positions[i].BrokerPositionID]
		if !ok {
			continue
		}
		positions[i].CurrentPrice = lp.CurrentPrice
		positions[i].Profit = lp.Profit
		if err := u.positions.UpdateQuote(ctx, positions[i].ID, lp.CurrentPrice, lp.Profit); err != nil {
			slog.Warn("failed to store position quote", "position_id", positions[i].ID, "error", err)
		}
	}
}

// ClosePosition closes a position on the broker and records the outcome.
func (u *tradingUsecase) ClosePosition(ctx context.Context, userID, positionID string) (*entity.Position, error) {
	if u.broker == nil {
		return nil, ErrBrokerNotConfigured
	}

	position, err := u.positions.FindByID(ctx, positionID)
	if err != nil {
		return nil, err
	}
	if position.UserID != userID {
		// Do not reveal that the position exists for another user.
		return nil, ErrPositionNotFound
	}
	if position.Status == entity.StatusClosed {
		return nil, ErrPositionAlreadyClosed
	}

	login, err := u.users.BrokerLogin(ctx, userID)
	if err != nil {
		return nil, err
	}

	slog.Info("closing position", "position_id", positionID, "symbol", position.Symbol)

	res, err := u.broker.ClosePosition(ctx, login, position.BrokerPositionID)
	if err != nil {
		return nil, fmt.Errorf("close position: %w", err)
	}

	closePrice := res.ClosePrice
	if closePrice == 0 {
		closePrice = position.CurrentPrice
	}

	now := time.Now().UTC()
	if err := u.positions.MarkClosed(ctx, positionID, closePrice, res.Profit, now); err != nil {
		return nil, fmt.Errorf("record close: %w", err)
	}

	position.Status = entity.StatusClosed
	position.CurrentPrice = closePrice
	position.Profit = res.Profit
	position.ClosedAt = &now

	slog.Info("position closed", "position_id", positionID, "profit", res.Profit)
	return position, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
