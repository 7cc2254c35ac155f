package repository

import "context"

// Repos faisceau de dépôts liés à une même transaction.
type Repos struct {
	Products    ProductRepository
	Prices      PriceRepository
	Stock       StockRepository
	Movements   StockMovementRepository
	Investments InvestmentRepository
	Sales       SaleRepository
	Clients     ClientRepository
	Loyalty     LoyaltyRepository
	Finance     FinanceRepository
	Orders      OrderRepository
}

// TxRunner exécute une fonction dans une transaction de BD, avec des dépôts
// attachés à cette tx. Toute erreur retournée provoque un rollback complet:
// aucune écriture partielle n'est observable.
type TxRunner interface {
	Run(ctx context.Context, fn func(r *Repos) error) error
}
