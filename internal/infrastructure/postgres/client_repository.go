package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ngandu/barresto-api/internal/domain"
	"github.com/ngandu/barresto-api/internal/domain/entity"
	"github.com/ngandu/barresto-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implémentation du port ClientRepository sur PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construit l'adaptateur. Accepte pool ou tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un client.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, phone, points, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.Phone, client.Points, client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID retourne un client par ID, nil s'il n'existe pas.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `SELECT id, name, phone, points, created_at, updated_at FROM clients WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get client")
}

// GetForUpdate bloque la ligne client pour sérialiser les variations de
// points concurrentes.
func (r *ClientRepo) GetForUpdate(id string) (*entity.Client, error) {
	query := `SELECT id, name, phone, points, created_at, updated_at FROM clients WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get client for update")
}

// UpdatePoints écrit le solde de points en cache (le grand livre reste la
// vérité).
func (r *ClientRepo) UpdatePoints(clientID string, points int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE clients SET points = $2, updated_at = now() WHERE id = $1`,
		clientID, points,
	)
	if err != nil {
		return fmt.Errorf("update client points: %w", err)
	}
	return nil
}

// List liste les clients avec pagination.
func (r *ClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	query := `SELECT id, name, phone, points, created_at, updated_at FROM clients ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Points, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *ClientRepo) scanOne(row pgx.Row, op string) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Points, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}
