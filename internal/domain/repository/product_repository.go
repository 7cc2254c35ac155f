package repository

import (
	"github.com/shopspring/decimal"

	"github.com/ngandu/barresto-api/internal/domain/entity"
)

// ProductRepository port de persistance du catalogue.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByNameKey cherche par clé naturelle normalisée et type (vendable ou non).
	// Utilisé par la déduplication "find-or-create" des achats.
	GetByNameKey(nameKey string, vendable bool) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateCost met à jour le coût moyen pondéré (réservé au moteur de stock).
	UpdateCost(productID string, cost decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
}
