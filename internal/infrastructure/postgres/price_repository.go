package postgres

import (
	"context"
	"fmt"

	"github.com/ngandu/barresto-api/internal/domain/entity"
	"github.com/ngandu/barresto-api/internal/domain/repository"
)

var _ repository.PriceRepository = (*PriceRepo)(nil)

// PriceRepo implémentation du port PriceRepository sur PostgreSQL.
type PriceRepo struct {
	q Querier
}

// NewPriceRepository construit l'adaptateur. Accepte pool ou tx (Querier).
func NewPriceRepository(q Querier) *PriceRepo {
	return &PriceRepo{q: q}
}

// Create persiste un prix par espace. Un nouveau prix pour le même
// (produit, espace) remplace l'ancien.
func (r *PriceRepo) Create(price *entity.SalePrice) error {
	query := `
		INSERT INTO sale_prices (id, product_id, space, price_cdf, price_usd, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id, space)
		DO UPDATE SET price_cdf = EXCLUDED.price_cdf, price_usd = EXCLUDED.price_usd, created_at = EXCLUDED.created_at`
	_, err := r.q.Exec(context.Background(), query,
		price.ID, price.ProductID, price.Space, price.PriceCDF, price.PriceUSD, price.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale price: %w", err)
	}
	return nil
}

// ListByProduct retourne les prix d'un produit, tous espaces.
func (r *PriceRepo) ListByProduct(productID string) ([]*entity.SalePrice, error) {
	query := `
		SELECT id, product_id, space, price_cdf, price_usd, created_at
		FROM sale_prices WHERE product_id = $1 ORDER BY space`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list sale prices: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalePrice
	for rows.Next() {
		var p entity.SalePrice
		if err := rows.Scan(&p.ID, &p.ProductID, &p.Space, &p.PriceCDF, &p.PriceUSD, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale price: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// DeleteByProduct efface tous les prix d'un produit.
func (r *PriceRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sale_prices WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete sale prices: %w", err)
	}
	return nil
}
