package repository

import (
	"time"

	"github.com/ngandu/barresto-api/internal/domain/entity"
)

// MovementFilter filtres de consultation du journal des mouvements.
type MovementFilter struct {
	ProductID    string
	Location     entity.Location
	InvestmentID string
	SaleID       string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// StockMovementRepository port du journal des mouvements. Les lignes sont
// immuables: pas d'Update; Delete n'existe que par lot, pour l'inversion
// d'un achat (efface exactement les lignes liées à l'investissement).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByInvestment(investmentID string) ([]*entity.StockMovement, error)
	DeleteByInvestment(investmentID string) error
	List(filter MovementFilter) ([]*entity.StockMovement, error)
}
