package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ngandu/barresto-api/internal/domain/entity"
	"github.com/ngandu/barresto-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implémentation du port SaleRepository sur PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construit l'adaptateur. Accepte pool ou tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, status, total_cdf, total_usd, rate, points_earned, points_used,
	client_id, order_type, payment_method, created_by, created_at, updated_at`

// Create persiste une vente (en-tête seulement).
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Status, sale.TotalCDF, sale.TotalUSD, sale.Rate,
		sale.PointsEarned, sale.PointsUsed, sale.ClientID, sale.OrderType,
		sale.PaymentMethod, sale.CreatedBy, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID retourne une vente par ID, nil si elle n'existe pas.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get sale")
}

// GetForUpdate bloque l'en-tête (SELECT FOR UPDATE) pour sérialiser les
// finalisations/annulations concurrentes sur la même vente.
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get sale for update")
}

// Update réécrit l'en-tête.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `
		UPDATE sales SET status = $2, total_cdf = $3, total_usd = $4, rate = $5,
			points_earned = $6, points_used = $7, client_id = $8, order_type = $9,
			payment_method = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Status, sale.TotalCDF, sale.TotalUSD, sale.Rate,
		sale.PointsEarned, sale.PointsUsed, sale.ClientID, sale.OrderType,
		sale.PaymentMethod, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// CreateItem insère une ligne de vente.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price_cdf, unit_price_usd, total_cdf)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity,
		item.UnitPriceCDF, item.UnitPriceUSD, item.TotalCDF,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// UpdateItem réécrit une ligne de vente.
func (r *SaleRepo) UpdateItem(item *entity.SaleItem) error {
	query := `
		UPDATE sale_items SET quantity = $2, unit_price_cdf = $3, unit_price_usd = $4, total_cdf = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Quantity, item.UnitPriceCDF, item.UnitPriceUSD, item.TotalCDF,
	)
	if err != nil {
		return fmt.Errorf("update sale item: %w", err)
	}
	return nil
}

// DeleteItem efface une ligne de vente.
func (r *SaleRepo) DeleteItem(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sale_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale item: %w", err)
	}
	return nil
}

// ListItems retourne les lignes d'une vente dans l'ordre d'insertion.
func (r *SaleRepo) ListItems(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price_cdf, unit_price_usd, total_cdf
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var item entity.SaleItem
		if err := rows.Scan(
			&item.ID, &item.SaleID, &item.ProductID, &item.Quantity,
			&item.UnitPriceCDF, &item.UnitPriceUSD, &item.TotalCDF,
		); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// List liste les ventes avec pagination, plus récentes d'abord.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := scanSale(rows, &s); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SaleRepo) scanOne(row pgx.Row, op string) (*entity.Sale, error) {
	var s entity.Sale
	if err := scanSale(row, &s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}

func scanSale(row pgx.Row, s *entity.Sale) error {
	return row.Scan(
		&s.ID, &s.Status, &s.TotalCDF, &s.TotalUSD, &s.Rate,
		&s.PointsEarned, &s.PointsUsed, &s.ClientID, &s.OrderType,
		&s.PaymentMethod, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
}
