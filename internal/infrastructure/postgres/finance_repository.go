package postgres

import (
	"context"
	"fmt"

	"github.com/ngandu/barresto-api/internal/domain/entity"
	"github.com/ngandu/barresto-api/internal/domain/repository"
)

var _ repository.FinanceRepository = (*FinanceRepo)(nil)

// FinanceRepo implémentation du port FinanceRepository sur PostgreSQL.
type FinanceRepo struct {
	q Querier
}

// NewFinanceRepository construit l'adaptateur. Accepte pool ou tx (Querier).
func NewFinanceRepository(q Querier) *FinanceRepo {
	return &FinanceRepo{q: q}
}

// Create insère une entrée de caisse.
func (r *FinanceRepo) Create(tx *entity.FinancialTransaction) error {
	query := `
		INSERT INTO financial_transactions (id, sale_id, amount_cdf, amount_usd, method, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.SaleID, tx.AmountCDF, tx.AmountUSD, tx.Method, tx.Reference, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert financial transaction: %w", err)
	}
	return nil
}

// ListBySale retourne les entrées de caisse liées à une vente.
func (r *FinanceRepo) ListBySale(saleID string) ([]*entity.FinancialTransaction, error) {
	query := `
		SELECT id, sale_id, amount_cdf, amount_usd, method, reference, created_at
		FROM financial_transactions WHERE sale_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list financial transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.FinancialTransaction
	for rows.Next() {
		var t entity.FinancialTransaction
		if err := rows.Scan(&t.ID, &t.SaleID, &t.AmountCDF, &t.AmountUSD, &t.Method, &t.Reference, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan financial transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
