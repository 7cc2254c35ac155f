package postgres

import (
	"context"
	"fmt"

	"github.com/ngandu/barresto-api/internal/domain/entity"
	"github.com/ngandu/barresto-api/internal/domain/repository"
)

var _ repository.LoyaltyRepository = (*LoyaltyRepo)(nil)

// LoyaltyRepo implémentation du port LoyaltyRepository sur PostgreSQL
// (grand livre de points, append-only).
type LoyaltyRepo struct {
	q Querier
}

// NewLoyaltyRepository construit l'adaptateur. Accepte pool ou tx (Querier).
func NewLoyaltyRepository(q Querier) *LoyaltyRepo {
	return &LoyaltyRepo{q: q}
}

// Create insère une écriture de points.
func (r *LoyaltyRepo) Create(tx *entity.LoyaltyTransaction) error {
	query := `
		INSERT INTO loyalty_transactions (id, client_id, sale_id, amount, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.ClientID, tx.SaleID, tx.Amount, tx.Reason, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert loyalty transaction: %w", err)
	}
	return nil
}

// ListByClient retourne les écritures d'un client, plus récentes d'abord.
func (r *LoyaltyRepo) ListByClient(clientID string) ([]*entity.LoyaltyTransaction, error) {
	query := `
		SELECT id, client_id, sale_id, amount, reason, created_at
		FROM loyalty_transactions WHERE client_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(context.Background(), query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list loyalty transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.LoyaltyTransaction
	for rows.Next() {
		var t entity.LoyaltyTransaction
		if err := rows.Scan(&t.ID, &t.ClientID, &t.SaleID, &t.Amount, &t.Reason, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan loyalty transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// SumByClient retourne la somme des écritures d'un client.
func (r *LoyaltyRepo) SumByClient(clientID string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(amount), 0) FROM loyalty_transactions WHERE client_id = $1`,
		clientID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum loyalty transactions: %w", err)
	}
	return sum, nil
}
