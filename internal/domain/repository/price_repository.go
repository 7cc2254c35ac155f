package repository

import "github.com/ngandu/barresto-api/internal/domain/entity"

// PriceRepository port des prix de vente par espace.
type PriceRepository interface {
	Create(price *entity.SalePrice) error
	ListByProduct(productID string) ([]*entity.SalePrice, error)
	DeleteByProduct(productID string) error
}
