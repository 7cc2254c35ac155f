package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Méthodes de paiement.
const (
	PaymentCash        = "cash"
	PaymentMobileMoney = "mobile_money"
	PaymentCarte       = "carte"
)

// FinancialTransaction entrée de caisse, une par paiement de vente finalisée.
// AmountCDF canonique; AmountUSD dérivé une seule fois au taux de la vente.
type FinancialTransaction struct {
	ID        string
	SaleID    string
	AmountCDF decimal.Decimal
	AmountUSD decimal.Decimal
	Method    string
	Reference string
	CreatedAt time.Time
}

// Statuts d'un bon de préparation.
const (
	OrderPending = "en_attente"
	OrderServed  = "servie"
)

// PreparationOrder bon de préparation cuisine/bar émis à la finalisation
// d'une vente (consommé par l'affichage cuisine, hors du moteur).
type PreparationOrder struct {
	ID        string
	SaleID    string
	Status    string
	CreatedAt time.Time
}
