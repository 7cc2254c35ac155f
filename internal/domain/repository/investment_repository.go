package repository

import "github.com/ngandu/barresto-api/internal/domain/entity"

// InvestmentRepository port des achats groupés.
type InvestmentRepository interface {
	Create(inv *entity.Investment) error
	GetByID(id string) (*entity.Investment, error)
	Update(inv *entity.Investment) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Investment, error)
}
