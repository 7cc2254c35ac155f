// Package client gère les clients fidélité (projection en lecture; les
// variations de points passent par le moteur de ventes).
package client

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ngandu/barresto-api/internal/application/dto"
	"github.com/ngandu/barresto-api/internal/domain"
	"github.com/ngandu/barresto-api/internal/domain/entity"
	"github.com/ngandu/barresto-api/internal/domain/repository"
)

// UseCase cas d'usage des clients fidélité.
type UseCase struct {
	clientRepo  repository.ClientRepository
	loyaltyRepo repository.LoyaltyRepository
}

// NewUseCase construit le cas d'usage.
func NewUseCase(clientRepo repository.ClientRepository, loyaltyRepo repository.LoyaltyRepository) *UseCase {
	return &UseCase{clientRepo: clientRepo, loyaltyRepo: loyaltyRepo}
}

// Create enregistre un client avec un solde de points à zéro.
func (uc *UseCase) Create(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if req.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Client{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Phone:     req.Phone,
		Points:    0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.clientRepo.Create(c); err != nil {
		return nil, err
	}
	resp := toClientResponse(c)
	return &resp, nil
}

// Get retourne un client par identifiant.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	resp := toClientResponse(c)
	return &resp, nil
}

// List liste les clients paginés.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ClientResponse, error) {
	page.DefaultPage()
	clients, err := uc.clientRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		resp = append(resp, toClientResponse(c))
	}
	return resp, nil
}

// Balance retourne le solde recalculé depuis le grand livre de points.
// Sert de vérification croisée du cache Client.Points.
func (uc *UseCase) Balance(ctx context.Context, clientID string) (*dto.ClientBalanceResponse, error) {
	c, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	sum, err := uc.loyaltyRepo.SumByClient(clientID)
	if err != nil {
		return nil, err
	}
	return &dto.ClientBalanceResponse{ClientID: clientID, Points: sum}, nil
}

func toClientResponse(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:     c.ID,
		Name:   c.Name,
		Phone:  c.Phone,
		Points: c.Points,
	}
}
