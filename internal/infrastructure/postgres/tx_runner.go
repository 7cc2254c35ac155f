package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ngandu/barresto-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner exécute des callbacks dans une transaction PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construit le runner avec le pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run ouvre une transaction, exécute fn avec le faisceau de dépôts attachés
// à la tx, puis Commit. Toute erreur de fn déclenche le Rollback différé:
// les écritures de fn sont toutes visibles ou aucune.
func (r *TxRunner) Run(ctx context.Context, fn func(repos *repository.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := &repository.Repos{
		Products:    NewProductRepository(tx),
		Prices:      NewPriceRepository(tx),
		Stock:       NewStockRepository(tx),
		Movements:   NewStockMovementRepository(tx),
		Investments: NewInvestmentRepository(tx),
		Sales:       NewSaleRepository(tx),
		Clients:     NewClientRepository(tx),
		Loyalty:     NewLoyaltyRepository(tx),
		Finance:     NewFinanceRepository(tx),
		Orders:      NewOrderRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
