package entity

import "time"

// Rôles utilisateur.
const (
	RoleGerant     = "gerant"
	RoleCaissier   = "caissier"
	RoleMagasinier = "magasinier"
)

// User représente un utilisateur de l'application (gérant, caissier, magasinier).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
