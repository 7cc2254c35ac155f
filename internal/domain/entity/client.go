package entity

import "time"

// Client représente un client fidélité. Points n'est jamais modifié
// directement: chaque variation passe par le moteur de points et s'accompagne
// d'une LoyaltyTransaction (invariant: Points == somme des écritures).
type Client struct {
	ID        string
	Name      string
	Phone     string
	Points    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LoyaltyTransaction écriture signée et immuable du grand livre de points,
// rattachée à une vente.
type LoyaltyTransaction struct {
	ID        string
	ClientID  string
	SaleID    string
	Amount    int64 // positif à la finalisation, négatif à l'annulation
	Reason    string
	CreatedAt time.Time
}
