package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sources de financement d'un achat (ensemble fermé).
const (
	FundSourceCaisse       = "CAISSE"
	FundSourceFondsPropres = "FONDS_PROPRES"
	FundSourceCredit       = "CREDIT"
)

// ValidFundSource indique si la source fait partie de l'ensemble fermé.
func ValidFundSource(s string) bool {
	switch s {
	case FundSourceCaisse, FundSourceFondsPropres, FundSourceCredit:
		return true
	}
	return false
}

// Investment représente un achat groupé (investissement). Possède ses
// mouvements IN via StockMovement.InvestmentID: toute édition ou suppression
// doit d'abord inverser exactement ces mouvements.
// TotalCDF est la valeur convenue; TotalUSD = TotalCDF / Rate, figé.
type Investment struct {
	ID                    string
	Label                 string
	Date                  time.Time
	TotalCDF              decimal.Decimal
	TotalUSD              decimal.Decimal
	TransportFeeCDF       decimal.Decimal
	VendableCostCDF       decimal.Decimal
	NonVendableCostCDF    decimal.Decimal // reste: total - vendable - transport
	ExpectedRevenueCDF    decimal.Decimal // projection de revente, prix standard
	ExpectedRevenueVIPCDF decimal.Decimal // projection, prix espace VIP
	ExpectedProfitCDF     decimal.Decimal // ExpectedRevenue - VendableCost
	ExpectedProfitVIPCDF  decimal.Decimal
	Source                string
	Rate                  decimal.Decimal // taux CDF/USD figé pour cet achat
	CreatedBy             string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
