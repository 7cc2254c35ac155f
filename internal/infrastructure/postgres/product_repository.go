package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ngandu/barresto-api/internal/domain"
	"github.com/ngandu/barresto-api/internal/domain/entity"
	"github.com/ngandu/barresto-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implémentation du port ProductRepository sur PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construit l'adaptateur. Accepte pool ou tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, name_key, vendable, category, sale_unit, pack_unit, pack_size, cost_cdf, created_at, updated_at`

// Create persiste un nouveau produit. La contrainte unique (name_key, vendable)
// porte la déduplication par clé naturelle.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.NameKey, product.Vendable, product.Category,
		product.SaleUnit, product.PackUnit, product.PackSize, product.CostCDF,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID retourne un produit par ID, nil s'il n'existe pas.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetByNameKey retourne un produit par clé naturelle normalisée et type.
func (r *ProductRepo) GetByNameKey(nameKey string, vendable bool) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name_key = $1 AND vendable = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, nameKey, vendable), "get product by name key")
}

// Update met à jour un produit. Ne touche pas CostCDF (géré via UpdateCost).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, name_key = $3, category = $4, sale_unit = $5,
			pack_unit = $6, pack_size = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.NameKey, product.Category, product.SaleUnit,
		product.PackUnit, product.PackSize, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateCost met à jour le coût moyen pondéré (réservé au moteur d'achats).
func (r *ProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET cost_cdf = $2, updated_at = now() WHERE id = $1`,
		productID, cost,
	)
	if err != nil {
		return fmt.Errorf("update product cost: %w", err)
	}
	return nil
}

// List liste les produits avec pagination.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	if err := scanProduct(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func scanProduct(row pgx.Row, p *entity.Product) error {
	return row.Scan(
		&p.ID, &p.Name, &p.NameKey, &p.Vendable, &p.Category, &p.SaleUnit,
		&p.PackUnit, &p.PackSize, &p.CostCDF, &p.CreatedAt, &p.UpdatedAt,
	)
}
