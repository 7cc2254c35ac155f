package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalePrice prix de vente d'un produit pour un espace de service
// (terrasse, salle, VIP...). Le montant en francs est canonique; le montant
// en dollars est une dérivation figée au taux du moment de la saisie.
type SalePrice struct {
	ID        string
	ProductID string
	Space     string // libellé libre de l'espace
	PriceCDF  decimal.Decimal
	PriceUSD  decimal.Decimal
	CreatedAt time.Time
}
