package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ngandu/barresto-api/internal/domain/entity"
	"github.com/ngandu/barresto-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implémentation du port StockRepository sur PostgreSQL.
// La table stock est une vue matérialisée sur le journal des mouvements,
// créée paresseusement ligne par ligne au premier mouvement.
type StockRepo struct {
	q Querier
}

// NewStockRepository construit l'adaptateur. Accepte pool ou tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get retourne la ligne (produit, emplacement), nil si elle n'existe pas.
func (r *StockRepo) Get(productID string, location entity.Location) (*entity.StockItem, error) {
	query := `
		SELECT product_id, location, quantity, updated_at
		FROM stock WHERE product_id = $1 AND location = $2`
	var item entity.StockItem
	err := r.q.QueryRow(context.Background(), query, productID, string(location)).Scan(
		&item.ProductID, &item.Location, &item.Quantity, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &item, nil
}

// GetForUpdate bloque la ligne (SELECT FOR UPDATE) pour la durée de la
// transaction. Une ligne absente est retournée à quantité zéro: l'absence
// de ligne équivaut à un stock nul et la première écriture la créera.
func (r *StockRepo) GetForUpdate(productID string, location entity.Location) (*entity.StockItem, error) {
	query := `
		SELECT product_id, location, quantity, updated_at
		FROM stock WHERE product_id = $1 AND location = $2
		FOR UPDATE`
	var item entity.StockItem
	err := r.q.QueryRow(context.Background(), query, productID, string(location)).Scan(
		&item.ProductID, &item.Location, &item.Quantity, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockItem{
				ProductID: productID,
				Location:  location,
				Quantity:  decimal.Zero,
				UpdatedAt: time.Now(),
			}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &item, nil
}

// Upsert écrit la quantité de la ligne (créée si absente).
func (r *StockRepo) Upsert(item *entity.StockItem) error {
	query := `
		INSERT INTO stock (product_id, location, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, location)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		item.ProductID, string(item.Location), item.Quantity, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
