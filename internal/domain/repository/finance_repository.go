package repository

import "github.com/ngandu/barresto-api/internal/domain/entity"

// FinanceRepository port des entrées de caisse.
type FinanceRepository interface {
	Create(tx *entity.FinancialTransaction) error
	ListBySale(saleID string) ([]*entity.FinancialTransaction, error)
}

// OrderRepository port des bons de préparation.
type OrderRepository interface {
	Create(order *entity.PreparationOrder) error
	ListBySale(saleID string) ([]*entity.PreparationOrder, error)
}
