package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuts d'une vente (ensemble fermé).
const (
	SaleStatusDraft     = "DRAFT"     // aucune incidence sur le stock
	SaleStatusCompleted = "COMPLETED" // stock décompté, points et caisse appliqués
	SaleStatusCancelled = "CANCELLED" // terminal, effets inversés
)

// Types de commande.
const (
	OrderTypeSurPlace  = "sur_place"
	OrderTypeEmporter  = "emporter"
	OrderTypeLivraison = "livraison"
)

// ValidSaleStatus indique si le statut fait partie de l'ensemble fermé.
func ValidSaleStatus(s string) bool {
	switch s {
	case SaleStatusDraft, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}

// CanTransition valide une transition de statut: DRAFT -> COMPLETED,
// DRAFT -> CANCELLED, COMPLETED -> CANCELLED. Rien ne sort de CANCELLED
// et une vente ne se finalise qu'une seule fois.
func CanTransition(from, to string) bool {
	switch from {
	case SaleStatusDraft:
		return to == SaleStatusCompleted || to == SaleStatusCancelled
	case SaleStatusCompleted:
		return to == SaleStatusCancelled
	}
	return false
}

// Sale représente une vente. Les totaux sont recalculés depuis les lignes;
// TotalCDF est canonique, TotalUSD figé au taux Rate.
type Sale struct {
	ID            string
	Status        string
	TotalCDF      decimal.Decimal
	TotalUSD      decimal.Decimal
	Rate          decimal.Decimal
	PointsEarned  int64
	PointsUsed    int64
	ClientID      *string
	OrderType     string
	PaymentMethod string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SaleItem ligne de vente. N'affecte le stock que lorsque la vente parente
// est COMPLETED.
type SaleItem struct {
	ID           string
	SaleID       string
	ProductID    string
	Quantity     decimal.Decimal
	UnitPriceCDF decimal.Decimal
	UnitPriceUSD decimal.Decimal
	TotalCDF     decimal.Decimal
}
