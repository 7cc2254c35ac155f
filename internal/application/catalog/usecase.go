// Package catalog gère les produits et leurs prix de vente par espace.
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ngandu/barresto-api/internal/application/dto"
	"github.com/ngandu/barresto-api/internal/domain"
	"github.com/ngandu/barresto-api/internal/domain/entity"
	"github.com/ngandu/barresto-api/internal/domain/money"
	"github.com/ngandu/barresto-api/internal/domain/repository"
	"github.com/ngandu/barresto-api/internal/infrastructure/cache"
)

// UseCase cas d'usage du catalogue. Les lectures de prix passent par le cache
// Redis (invalidé à chaque écriture); les quantités de stock n'y passent
// jamais.
type UseCase struct {
	productRepo repository.ProductRepository
	priceRepo   repository.PriceRepository
	priceCache  cache.PriceCache
}

// NewUseCase construit le cas d'usage.
func NewUseCase(
	productRepo repository.ProductRepository,
	priceRepo repository.PriceRepository,
	priceCache cache.PriceCache,
) *UseCase {
	return &UseCase{
		productRepo: productRepo,
		priceRepo:   priceRepo,
		priceCache:  priceCache,
	}
}

// CreateProduct crée un produit du catalogue. La clé naturelle normalisée
// est calculée ici; son unicité par (clé, vendable) est garantie par la base.
func (uc *UseCase) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.Name == "" || req.SaleUnit == "" {
		return nil, domain.ErrInvalidInput
	}
	if req.Vendable && req.Category != entity.CategoryBoisson && req.Category != entity.CategoryCuisine {
		return nil, domain.ErrInvalidInput
	}
	if req.PackSize != nil && !req.PackSize.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      req.Name,
		NameKey:   entity.NameKey(req.Name),
		Vendable:  req.Vendable,
		Category:  req.Category,
		SaleUnit:  req.SaleUnit,
		PackUnit:  req.PackUnit,
		PackSize:  req.PackSize,
		CostCDF:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// GetProduct retourne un produit par identifiant.
func (uc *UseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// ListProducts liste le catalogue paginé.
func (uc *UseCase) ListProducts(ctx context.Context, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	return resp, nil
}

// SetPrice enregistre un prix de vente par espace. Le prix en francs est
// canonique; le prix en dollars est figé une seule fois au taux fourni.
func (uc *UseCase) SetPrice(ctx context.Context, productID string, req dto.CreatePriceRequest) (*dto.PriceResponse, error) {
	if req.Space == "" || !req.PriceCDF.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	snap, err := money.NewSnapshot(req.Rate)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.Vendable {
		return nil, domain.ErrInvalidInput
	}

	price := &entity.SalePrice{
		ID:        uuid.New().String(),
		ProductID: productID,
		Space:     req.Space,
		PriceCDF:  req.PriceCDF,
		PriceUSD:  snap.Hard(req.PriceCDF),
		CreatedAt: time.Now(),
	}
	if err := uc.priceRepo.Create(price); err != nil {
		return nil, err
	}
	// Invalidation avant relecture: une erreur de cache ne bloque pas l'écriture.
	_ = uc.priceCache.Invalidate(ctx, productID)

	resp := toPriceResponse(price)
	return &resp, nil
}

// ListPrices retourne les prix d'un produit, via le cache s'il est chaud.
func (uc *UseCase) ListPrices(ctx context.Context, productID string) ([]dto.PriceResponse, error) {
	if cached, found, err := uc.priceCache.Get(ctx, productID); err == nil && found {
		return cached, nil
	}
	prices, err := uc.priceRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PriceResponse, 0, len(prices))
	for _, p := range prices {
		resp = append(resp, toPriceResponse(p))
	}
	_ = uc.priceCache.Set(ctx, productID, resp)
	return resp, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Vendable: p.Vendable,
		Category: p.Category,
		SaleUnit: p.SaleUnit,
		PackUnit: p.PackUnit,
		PackSize: p.PackSize,
		CostCDF:  p.CostCDF,
	}
}

func toPriceResponse(p *entity.SalePrice) dto.PriceResponse {
	return dto.PriceResponse{
		ID:        p.ID,
		ProductID: p.ProductID,
		Space:     p.Space,
		PriceCDF:  p.PriceCDF,
		PriceUSD:  p.PriceUSD,
		CreatedAt: p.CreatedAt,
	}
}
