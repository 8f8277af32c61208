package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/izzydoesit/gemini-api/db/postgres/providers"
	"github.com/izzydoesit/gemini-api/models"
)

type OrderRepository struct {
	DBHelper *providers.DBHelper
}

func NewOrderRepository(db *providers.DBHelper) *OrderRepository {
	return &OrderRepository{DBHelper: db}
}

// SaveAccepted journals an admitted order's intake snapshot. Execution state
// belongs to the matching engine and is never written here.
func (r *OrderRepository) SaveAccepted(ctx context.Context, order *models.AcceptedOrder) error {
	options, err := json.Marshal(order.Options)
	if err != nil {
		return fmt.Errorf("failed to encode order options: %w", err)
	}

	query := `
		INSERT INTO orders (order_id, api_key, client_order_id, symbol, side, type, price, amount, options, accepted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.DBHelper.PostgresClient.ExecContext(ctx, query,
		order.OrderID, order.APIKey, order.ClientOrderID, order.Symbol,
		order.Side, order.Type, order.Price, order.Amount, options, order.AcceptedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to journal order %d: %w", order.OrderID, err)
	}
	return nil
}
