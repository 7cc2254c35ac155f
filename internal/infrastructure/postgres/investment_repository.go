package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ngandu/barresto-api/internal/domain/entity"
	"github.com/ngandu/barresto-api/internal/domain/repository"
)

var _ repository.InvestmentRepository = (*InvestmentRepo)(nil)

// InvestmentRepo implémentation du port InvestmentRepository sur PostgreSQL.
type InvestmentRepo struct {
	q Querier
}

// NewInvestmentRepository construit l'adaptateur. Accepte pool ou tx (Querier).
func NewInvestmentRepository(q Querier) *InvestmentRepo {
	return &InvestmentRepo{q: q}
}

const investmentColumns = `id, label, date, total_cdf, total_usd, transport_fee_cdf,
	vendable_cost_cdf, non_vendable_cost_cdf,
	expected_revenue_cdf, expected_revenue_vip_cdf,
	expected_profit_cdf, expected_profit_vip_cdf,
	source, rate, created_by, created_at, updated_at`

// Create persiste un achat groupé.
func (r *InvestmentRepo) Create(inv *entity.Investment) error {
	query := `
		INSERT INTO investments (` + investmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.Label, inv.Date, inv.TotalCDF, inv.TotalUSD, inv.TransportFeeCDF,
		inv.VendableCostCDF, inv.NonVendableCostCDF,
		inv.ExpectedRevenueCDF, inv.ExpectedRevenueVIPCDF,
		inv.ExpectedProfitCDF, inv.ExpectedProfitVIPCDF,
		inv.Source, inv.Rate, inv.CreatedBy, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert investment: %w", err)
	}
	return nil
}

// GetByID retourne un achat par ID, nil s'il n'existe pas.
func (r *InvestmentRepo) GetByID(id string) (*entity.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE id = $1`
	var inv entity.Investment
	err := scanInvestment(r.q.QueryRow(context.Background(), query, id), &inv)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get investment: %w", err)
	}
	return &inv, nil
}

// Update réécrit l'en-tête d'un achat (après inversion/réapplication des
// mouvements par le cas d'usage).
func (r *InvestmentRepo) Update(inv *entity.Investment) error {
	query := `
		UPDATE investments SET label = $2, date = $3, total_cdf = $4, total_usd = $5,
			transport_fee_cdf = $6, vendable_cost_cdf = $7, non_vendable_cost_cdf = $8,
			expected_revenue_cdf = $9, expected_revenue_vip_cdf = $10,
			expected_profit_cdf = $11, expected_profit_vip_cdf = $12,
			source = $13, rate = $14, updated_at = $15
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.Label, inv.Date, inv.TotalCDF, inv.TotalUSD,
		inv.TransportFeeCDF, inv.VendableCostCDF, inv.NonVendableCostCDF,
		inv.ExpectedRevenueCDF, inv.ExpectedRevenueVIPCDF,
		inv.ExpectedProfitCDF, inv.ExpectedProfitVIPCDF,
		inv.Source, inv.Rate, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update investment: %w", err)
	}
	return nil
}

// Delete efface l'en-tête (les mouvements liés sont inversés avant par le
// cas d'usage).
func (r *InvestmentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM investments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete investment: %w", err)
	}
	return nil
}

// List liste les achats avec pagination, plus récents d'abord.
func (r *InvestmentRepo) List(limit, offset int) ([]*entity.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments ORDER BY date DESC, created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Investment
	for rows.Next() {
		var inv entity.Investment
		if err := scanInvestment(rows, &inv); err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

func scanInvestment(row pgx.Row, inv *entity.Investment) error {
	return row.Scan(
		&inv.ID, &inv.Label, &inv.Date, &inv.TotalCDF, &inv.TotalUSD, &inv.TransportFeeCDF,
		&inv.VendableCostCDF, &inv.NonVendableCostCDF,
		&inv.ExpectedRevenueCDF, &inv.ExpectedRevenueVIPCDF,
		&inv.ExpectedProfitCDF, &inv.ExpectedProfitVIPCDF,
		&inv.Source, &inv.Rate, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt,
	)
}
