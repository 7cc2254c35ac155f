package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLineRequest ligne d'achat: produit existant ou nouveau produit non
// vendable. Quantity en unités d'achat (casiers si le produit en a);
// batch_price_cdf est le prix d'une unité d'achat, en francs.
type PurchaseLineRequest struct {
	ProductID     string          `json:"product_id,omitempty"`
	NewName       string          `json:"new_name,omitempty"`
	NewUnit       string          `json:"new_unit,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	BatchPriceCDF decimal.Decimal `json:"batch_price_cdf"`
	Destination   string          `json:"destination"`
}

// CreatePurchaseRequest body pour POST /api/investments.
type CreatePurchaseRequest struct {
	Label           string                `json:"label"`
	Items           []PurchaseLineRequest `json:"items"`
	TotalCDF        decimal.Decimal       `json:"total_cdf"`
	TransportFeeCDF decimal.Decimal       `json:"transport_fee_cdf"`
	Source          string                `json:"source"`
	Rate            decimal.Decimal       `json:"rate"`
	Date            *time.Time            `json:"date,omitempty"`
}

// PurchaseResponse en-tête d'achat avec projections.
type PurchaseResponse struct {
	ID                    string          `json:"id"`
	Label                 string          `json:"label"`
	Date                  time.Time       `json:"date"`
	TotalCDF              decimal.Decimal `json:"total_cdf"`
	TotalUSD              decimal.Decimal `json:"total_usd"`
	TransportFeeCDF       decimal.Decimal `json:"transport_fee_cdf"`
	VendableCostCDF       decimal.Decimal `json:"vendable_cost_cdf"`
	NonVendableCostCDF    decimal.Decimal `json:"non_vendable_cost_cdf"`
	ExpectedRevenueCDF    decimal.Decimal `json:"expected_revenue_cdf"`
	ExpectedRevenueVIPCDF decimal.Decimal `json:"expected_revenue_vip_cdf"`
	ExpectedProfitCDF     decimal.Decimal `json:"expected_profit_cdf"`
	ExpectedProfitVIPCDF  decimal.Decimal `json:"expected_profit_vip_cdf"`
	Source                string          `json:"source"`
	Rate                  decimal.Decimal `json:"rate"`
}
