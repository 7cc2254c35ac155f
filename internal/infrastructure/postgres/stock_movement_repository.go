package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/ngandu/barresto-api/internal/domain/entity"
	"github.com/ngandu/barresto-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implémentation du port StockMovementRepository sur
// PostgreSQL. Le journal est en append-only: aucun UPDATE; le seul DELETE
// est par lot, pour l'inversion d'un achat.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construit l'adaptateur. Accepte pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, type, product_id, quantity, from_location, to_location, cost_cdf, investment_id, sale_id, actor, reason, created_at`

// Create insère une ligne de journal.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.Type, movement.ProductID, movement.Quantity,
		locationPtr(movement.From), locationPtr(movement.To), movement.CostCDF,
		movement.InvestmentID, movement.SaleID, movement.Actor, movement.Reason,
		movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByInvestment retourne les mouvements liés à un achat, dans l'ordre
// d'insertion.
func (r *StockMovementRepo) ListByInvestment(investmentID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE investment_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, investmentID)
	if err != nil {
		return nil, fmt.Errorf("list movements by investment: %w", err)
	}
	return collectMovements(rows)
}

// DeleteByInvestment efface exactement les lignes liées à l'achat (inversion).
func (r *StockMovementRepo) DeleteByInvestment(investmentID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_movements WHERE investment_id = $1`, investmentID)
	if err != nil {
		return fmt.Errorf("delete movements by investment: %w", err)
	}
	return nil
}

// List consulte le journal avec filtres optionnels.
func (r *StockMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE 1=1`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.ProductID != "" {
		query += ` AND product_id = ` + arg(filter.ProductID)
	}
	if filter.Location != "" {
		p := arg(string(filter.Location))
		query += ` AND (from_location = ` + p + ` OR to_location = ` + p + `)`
	}
	if filter.InvestmentID != "" {
		query += ` AND investment_id = ` + arg(filter.InvestmentID)
	}
	if filter.SaleID != "" {
		query += ` AND sale_id = ` + arg(filter.SaleID)
	}
	if filter.From != nil {
		query += ` AND created_at >= ` + arg(*filter.From)
	}
	if filter.To != nil {
		query += ` AND created_at < ` + arg(*filter.To)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ` + arg(filter.Limit) + ` OFFSET ` + arg(filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var from, to *string
		if err := rows.Scan(
			&m.ID, &m.Type, &m.ProductID, &m.Quantity, &from, &to, &m.CostCDF,
			&m.InvestmentID, &m.SaleID, &m.Actor, &m.Reason, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.From = toLocation(from)
		m.To = toLocation(to)
		list = append(list, &m)
	}
	return list, rows.Err()
}

func locationPtr(l *entity.Location) *string {
	if l == nil {
		return nil
	}
	s := string(*l)
	return &s
}

func toLocation(s *string) *entity.Location {
	if s == nil {
		return nil
	}
	l := entity.Location(*s)
	return &l
}
