package repository

import "github.com/ngandu/barresto-api/internal/domain/entity"

// UserRepository port des utilisateurs.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
