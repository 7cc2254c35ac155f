package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Types de mouvement de stock (ensemble fermé).
const (
	MovementTypeIN         = "IN"         // entrée (To obligatoire)
	MovementTypeOUT        = "OUT"        // sortie (From obligatoire)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // correction/retour, un seul côté renseigné
)

// ValidMovementType indique si le type fait partie de l'ensemble fermé.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT:
		return true
	}
	return false
}

// StockMovement représente un mouvement de stock immuable (journal en append-only).
// Quantity est toujours positive, au niveau de l'unité de vente (jamais en casiers);
// le signe est porté par le type et le côté renseigné (From décrémente, To incrémente).
// StockItem est une vue matérialisée sur ce journal.
type StockMovement struct {
	ID           string
	Type         string
	ProductID    string
	Quantity     decimal.Decimal
	From         *Location
	To           *Location
	CostCDF      decimal.Decimal // valeur unitaire en francs au moment du mouvement
	InvestmentID *string         // lien vers l'achat d'origine
	SaleID       *string         // lien vers la vente d'origine
	Actor        string          // UserID
	Reason       string
	CreatedAt    time.Time
}
