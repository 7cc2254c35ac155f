package postgres

import (
	"context"
	"fmt"

	"github.com/ngandu/barresto-api/internal/domain/entity"
	"github.com/ngandu/barresto-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implémentation du port OrderRepository sur PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construit l'adaptateur. Accepte pool ou tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create insère un bon de préparation.
func (r *OrderRepo) Create(order *entity.PreparationOrder) error {
	query := `
		INSERT INTO preparation_orders (id, sale_id, status, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.SaleID, order.Status, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert preparation order: %w", err)
	}
	return nil
}

// ListBySale retourne les bons liés à une vente.
func (r *OrderRepo) ListBySale(saleID string) ([]*entity.PreparationOrder, error) {
	query := `
		SELECT id, sale_id, status, created_at
		FROM preparation_orders WHERE sale_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list preparation orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PreparationOrder
	for rows.Next() {
		var o entity.PreparationOrder
		if err := rows.Scan(&o.ID, &o.SaleID, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan preparation order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
