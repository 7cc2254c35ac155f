package repository

import "github.com/ngandu/barresto-api/internal/domain/entity"

// SaleRepository port des ventes et de leurs lignes.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	// GetForUpdate bloque l'en-tête pour sérialiser finalisation/annulation
	// concurrentes sur la même vente.
	GetForUpdate(id string) (*entity.Sale, error)
	Update(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	UpdateItem(item *entity.SaleItem) error
	DeleteItem(id string) error
	ListItems(saleID string) ([]*entity.SaleItem, error)
	List(limit, offset int) ([]*entity.Sale, error)
}
