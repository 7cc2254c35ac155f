package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest ligne de vente entrante.
type SaleItemRequest struct {
	ProductID    string          `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPriceCDF decimal.Decimal `json:"unit_price_cdf"`
}

// CreateSaleRequest body pour POST /api/sales. Status DRAFT ou COMPLETED.
type CreateSaleRequest struct {
	Items         []SaleItemRequest `json:"items"`
	ClientID      *string           `json:"client_id,omitempty"`
	OrderType     string            `json:"order_type"`
	Status        string            `json:"status"`
	PaymentMethod string            `json:"payment_method"`
	Rate          decimal.Decimal   `json:"rate"`
	PointsUsed    int64             `json:"points_used"`
}

// UpdateSaleRequest body pour PUT /api/sales/:id.
type UpdateSaleRequest struct {
	Items         []SaleItemRequest `json:"items"`
	Status        string            `json:"status,omitempty"`
	PaymentMethod string            `json:"payment_method,omitempty"`
}

// FinalizeSaleRequest body pour POST /api/sales/:id/finalize.
type FinalizeSaleRequest struct {
	PaymentMethod string `json:"payment_method,omitempty"`
}

// SaleItemResponse ligne de vente.
type SaleItemResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPriceCDF decimal.Decimal `json:"unit_price_cdf"`
	UnitPriceUSD decimal.Decimal `json:"unit_price_usd"`
	TotalCDF     decimal.Decimal `json:"total_cdf"`
}

// SaleResponse vente avec lignes.
type SaleResponse struct {
	ID            string             `json:"id"`
	Status        string             `json:"status"`
	TotalCDF      decimal.Decimal    `json:"total_cdf"`
	TotalUSD      decimal.Decimal    `json:"total_usd"`
	Rate          decimal.Decimal    `json:"rate"`
	PointsEarned  int64              `json:"points_earned"`
	PointsUsed    int64              `json:"points_used"`
	ClientID      *string            `json:"client_id,omitempty"`
	OrderType     string             `json:"order_type"`
	PaymentMethod string             `json:"payment_method"`
	CreatedAt     time.Time          `json:"created_at"`
	Items         []SaleItemResponse `json:"items,omitempty"`
}
