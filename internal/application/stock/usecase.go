package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ngandu/barresto-api/internal/domain"
	"github.com/ngandu/barresto-api/internal/domain/entity"
	"github.com/ngandu/barresto-api/internal/domain/repository"
)

// LedgerUseCase enregistre les mouvements de stock de façon transactionnelle
// (IN, OUT, ADJUSTMENT) avec blocage de ligne (SELECT FOR UPDATE) et
// Commit/Rollback. Le journal est la vérité d'audit; StockItem n'est qu'un
// cache dérivé mis à jour dans la même étape atomique.
type LedgerUseCase struct {
	txRunner    repository.TxRunner
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	movRepo     repository.StockMovementRepository
}

// NewLedgerUseCase construit le cas d'usage.
func NewLedgerUseCase(
	txRunner repository.TxRunner,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		stockRepo:   stockRepo,
		movRepo:     movRepo,
	}
}

// MovementInput entrée pour enregistrer un mouvement.
// IN: To obligatoire. OUT: From obligatoire. ADJUSTMENT: exactement un côté;
// To incrémente, From décrémente (corrections, transferts, retours).
type MovementInput struct {
	Type         string
	ProductID    string
	Quantity     decimal.Decimal // toujours positive, au niveau unité
	From         *entity.Location
	To           *entity.Location
	CostCDF      decimal.Decimal
	InvestmentID *string
	SaleID       *string
	Actor        string
	Reason       string
}

// validate vérifie type, côtés et quantité sans rien muter.
func (in *MovementInput) validate() error {
	if in.ProductID == "" || !in.Quantity.IsPositive() {
		return domain.ErrInvalidInput
	}
	if in.From != nil && !in.From.Valid() {
		return domain.ErrInvalidInput
	}
	if in.To != nil && !in.To.Valid() {
		return domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.MovementTypeIN:
		if in.To == nil || in.From != nil {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeOUT:
		if in.From == nil || in.To != nil {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeADJUSTMENT:
		if (in.From == nil) == (in.To == nil) {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// RecordMovement valide l'entrée, ouvre une transaction et applique le
// mouvement. Échoue sans rien écrire si le produit n'existe pas ou si un
// décrément rendrait la quantité négative.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var mov *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		mov, err = Apply(r, in, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// Apply applique un mouvement avec les dépôts de la transaction du caller.
// Bloque chaque ligne de stock touchée, vérifie la disponibilité sur le côté
// décrémenté et insère la ligne de journal: vérification, décrément et
// insertion forment une seule étape atomique, sans état intermédiaire
// observable.
func Apply(r *repository.Repos, in MovementInput, now time.Time) (*entity.StockMovement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	if in.From != nil {
		item, err := r.Stock.GetForUpdate(in.ProductID, *in.From)
		if err != nil {
			return nil, err
		}
		if item.Quantity.LessThan(in.Quantity) {
			return nil, fmt.Errorf("%w: produit %s à %s (disponible %s, demandé %s)",
				domain.ErrInsufficientStock, in.ProductID, *in.From, item.Quantity, in.Quantity)
		}
		item.Quantity = item.Quantity.Sub(in.Quantity)
		item.UpdatedAt = now
		if err := r.Stock.Upsert(item); err != nil {
			return nil, err
		}
	}
	if in.To != nil {
		item, err := r.Stock.GetForUpdate(in.ProductID, *in.To)
		if err != nil {
			return nil, err
		}
		item.Quantity = item.Quantity.Add(in.Quantity)
		item.UpdatedAt = now
		if err := r.Stock.Upsert(item); err != nil {
			return nil, err
		}
	}

	mov := &entity.StockMovement{
		ID:           uuid.New().String(),
		Type:         in.Type,
		ProductID:    in.ProductID,
		Quantity:     in.Quantity,
		From:         in.From,
		To:           in.To,
		CostCDF:      in.CostCDF,
		InvestmentID: in.InvestmentID,
		SaleID:       in.SaleID,
		Actor:        in.Actor,
		Reason:       in.Reason,
		CreatedAt:    now,
	}
	if err := r.Movements.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// Reverse annule l'effet d'un mouvement sur le cache de stock, sans toucher
// au journal (le caller efface les lignes par lot). Le côté incrémenté est
// décrémenté avec plancher à zéro: la ligne est créée à 0 si absente et ne
// passe jamais en négatif. Le côté décrémenté est ré-incrémenté.
func Reverse(r *repository.Repos, mov *entity.StockMovement, now time.Time) error {
	if mov.To != nil {
		item, err := r.Stock.GetForUpdate(mov.ProductID, *mov.To)
		if err != nil {
			return err
		}
		item.Quantity = item.Quantity.Sub(mov.Quantity)
		if item.Quantity.IsNegative() {
			item.Quantity = decimal.Zero
		}
		item.UpdatedAt = now
		if err := r.Stock.Upsert(item); err != nil {
			return err
		}
	}
	if mov.From != nil {
		item, err := r.Stock.GetForUpdate(mov.ProductID, *mov.From)
		if err != nil {
			return err
		}
		item.Quantity = item.Quantity.Add(mov.Quantity)
		item.UpdatedAt = now
		if err := r.Stock.Upsert(item); err != nil {
			return err
		}
	}
	return nil
}

// CurrentQuantity retourne la quantité en cache pour (produit, emplacement),
// zéro si la ligne n'existe pas encore.
func (uc *LedgerUseCase) CurrentQuantity(ctx context.Context, productID string, location entity.Location) (decimal.Decimal, error) {
	if !location.Valid() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	item, err := uc.stockRepo.Get(productID, location)
	if err != nil {
		return decimal.Zero, err
	}
	if item == nil {
		return decimal.Zero, nil
	}
	return item.Quantity, nil
}

// ListMovements consulte le journal (projection en lecture seule).
func (uc *LedgerUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return uc.movRepo.List(filter)
}
