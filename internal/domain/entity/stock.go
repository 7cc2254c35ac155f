package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem représente la quantité actuelle d'un produit à un emplacement
// (vue matérialisée sur le journal des mouvements). Créé paresseusement au
// premier mouvement; doit toujours valoir la somme nette des mouvements
// pour la clé (produit, emplacement).
type StockItem struct {
	ProductID string
	Location  Location
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}
