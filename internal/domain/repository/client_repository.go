package repository

import "github.com/ngandu/barresto-api/internal/domain/entity"

// ClientRepository port des clients fidélité. UpdatePoints n'est appelé que
// par le moteur de points, toujours accompagné d'une écriture de grand livre
// dans la même transaction.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	GetForUpdate(id string) (*entity.Client, error)
	UpdatePoints(clientID string, points int64) error
	List(limit, offset int) ([]*entity.Client, error)
}

// LoyaltyRepository port du grand livre de points (append-only).
type LoyaltyRepository interface {
	Create(tx *entity.LoyaltyTransaction) error
	ListByClient(clientID string) ([]*entity.LoyaltyTransaction, error)
	// SumByClient retourne la somme des écritures; doit toujours égaler
	// Client.Points (vérifié par les tests, pas seulement par le cache).
	SumByClient(clientID string) (int64, error)
}
