package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body pour POST /api/products.
type CreateProductRequest struct {
	Name     string           `json:"name"`
	Vendable bool             `json:"vendable"`
	Category string           `json:"category"`
	SaleUnit string           `json:"sale_unit"`
	PackUnit *string          `json:"pack_unit,omitempty"`
	PackSize *decimal.Decimal `json:"pack_size,omitempty"`
}

// ProductResponse représentation d'un produit.
type ProductResponse struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Vendable bool             `json:"vendable"`
	Category string           `json:"category"`
	SaleUnit string           `json:"sale_unit"`
	PackUnit *string          `json:"pack_unit,omitempty"`
	PackSize *decimal.Decimal `json:"pack_size,omitempty"`
	CostCDF  decimal.Decimal  `json:"cost_cdf"`
}

// CreatePriceRequest body pour POST /api/products/:id/prices.
// Le prix en francs est canonique; le prix en dollars est figé au taux fourni.
type CreatePriceRequest struct {
	Space    string          `json:"space"`
	PriceCDF decimal.Decimal `json:"price_cdf"`
	Rate     decimal.Decimal `json:"rate"`
}

// PriceResponse prix par espace.
type PriceResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Space     string          `json:"space"`
	PriceCDF  decimal.Decimal `json:"price_cdf"`
	PriceUSD  decimal.Decimal `json:"price_usd"`
	CreatedAt time.Time       `json:"created_at"`
}
