package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body pour POST /api/stock/movements.
// IN: to obligatoire. OUT: from obligatoire. ADJUSTMENT: exactement un côté.
type RecordMovementRequest struct {
	Type      string          `json:"type"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	From      string          `json:"from,omitempty"`
	To        string          `json:"to,omitempty"`
	CostCDF   decimal.Decimal `json:"cost_cdf"`
	Reason    string          `json:"reason"`
}

// StockResponse quantité en cache pour (produit, emplacement).
type StockResponse struct {
	ProductID string          `json:"product_id"`
	Location  string          `json:"location"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// MovementResponse ligne du journal des mouvements.
type MovementResponse struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	ProductID    string          `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	From         *string         `json:"from,omitempty"`
	To           *string         `json:"to,omitempty"`
	CostCDF      decimal.Decimal `json:"cost_cdf"`
	InvestmentID *string         `json:"investment_id,omitempty"`
	SaleID       *string         `json:"sale_id,omitempty"`
	Actor        string          `json:"actor"`
	Reason       string          `json:"reason"`
	CreatedAt    time.Time       `json:"created_at"`
}
