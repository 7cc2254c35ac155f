package purchase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ngandu/barresto-api/internal/application/stock"
	"github.com/ngandu/barresto-api/internal/domain"
	"github.com/ngandu/barresto-api/internal/domain/entity"
	"github.com/ngandu/barresto-api/internal/domain/money"
	"github.com/ngandu/barresto-api/internal/domain/repository"
)

// UseCase construit les achats groupés (investissements): mouvements IN par
// ligne, enregistrement éventuel de nouveaux produits non vendables et
// projection de rentabilité à la revente. Création, édition et suppression
// s'exécutent chacune dans une seule transaction.
type UseCase struct {
	txRunner repository.TxRunner
	invRepo  repository.InvestmentRepository
	movRepo  repository.StockMovementRepository
}

// NewUseCase construit le cas d'usage.
func NewUseCase(txRunner repository.TxRunner, invRepo repository.InvestmentRepository, movRepo repository.StockMovementRepository) *UseCase {
	return &UseCase{txRunner: txRunner, invRepo: invRepo, movRepo: movRepo}
}

// LineInput ligne d'achat: produit existant (ProductID) ou nouveau produit
// non vendable (NewName/NewUnit). Quantity est en unités d'achat (casiers si
// le produit a un PackSize); BatchPriceCDF est le prix d'une unité d'achat.
type LineInput struct {
	ProductID     string
	NewName       string
	NewUnit       string
	Quantity      decimal.Decimal
	BatchPriceCDF decimal.Decimal
	Destination   entity.Location
}

// CreateInput entrée de création d'un achat. TotalCDF est le montant convenu
// en francs (canonique); Rate fige le taux CDF/USD de cet achat.
type CreateInput struct {
	Label           string
	Items           []LineInput
	TotalCDF        decimal.Decimal
	TransportFeeCDF decimal.Decimal
	Source          string
	Rate            decimal.Decimal
	Date            time.Time
	Actor           string
}

func (in *CreateInput) validate() error {
	if len(in.Items) == 0 || !in.TotalCDF.IsPositive() {
		return domain.ErrInvalidInput
	}
	if !entity.ValidFundSource(in.Source) {
		return domain.ErrInvalidInput
	}
	if in.TransportFeeCDF.IsNegative() {
		return domain.ErrInvalidInput
	}
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" && item.NewName == "" {
			return domain.ErrInvalidInput
		}
		if !item.Quantity.IsPositive() || item.BatchPriceCDF.IsNegative() {
			return domain.ErrInvalidInput
		}
		if !item.Destination.Valid() {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// Create valide la demande puis exécute tout l'algorithme dans une seule
// transaction: résolution/création des produits, projection ROI, en-tête,
// puis un mouvement IN par ligne. Aucune application partielle n'est
// observable (un produit créé sans son mouvement, par exemple).
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Investment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	snap, err := money.NewSnapshot(in.Rate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var inv *entity.Investment
	err = uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		inv, err = buildInvestment(r, uuid.New().String(), in, snap, now, now, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Update inverse d'abord exactement les mouvements liés à cet achat
// (décrément plafonné à zéro, lignes de journal effacées), puis rejoue
// l'algorithme de création avec les nouvelles lignes sous le même ID,
// le tout dans une seule transaction.
func (uc *UseCase) Update(ctx context.Context, id string, in CreateInput) (*entity.Investment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	snap, err := money.NewSnapshot(in.Rate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var inv *entity.Investment
	err = uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		existing, err := r.Investments.GetByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		if err := reverseMovements(r, id, now); err != nil {
			return err
		}
		inv, err = buildInvestment(r, id, in, snap, existing.CreatedAt, now, true)
		return err
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Delete inverse les mouvements liés puis efface journal lié et en-tête.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		existing, err := r.Investments.GetByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		if err := reverseMovements(r, id, now); err != nil {
			return err
		}
		return r.Investments.Delete(id)
	})
}

// Get retourne un achat avec ses mouvements.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Investment, []*entity.StockMovement, error) {
	inv, err := uc.invRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if inv == nil {
		return nil, nil, domain.ErrNotFound
	}
	movs, err := uc.movRepo.ListByInvestment(id)
	if err != nil {
		return nil, nil, err
	}
	return inv, movs, nil
}

// List retourne les achats paginés.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*entity.Investment, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.invRepo.List(limit, offset)
}

// reverseMovements défait l'effet de stock de chaque mouvement lié à l'achat
// puis efface ces lignes de journal.
func reverseMovements(r *repository.Repos, investmentID string, now time.Time) error {
	movs, err := r.Movements.ListByInvestment(investmentID)
	if err != nil {
		return err
	}
	for _, mov := range movs {
		if err := stock.Reverse(r, mov, now); err != nil {
			return err
		}
	}
	return r.Movements.DeleteByInvestment(investmentID)
}

// resolveProduct retourne le produit d'une ligne. Pour une ligne "nouveau
// produit", cherche d'abord un non-vendable existant par clé de nom
// normalisée (déduplication), sinon le crée non vendable avec l'unité
// fournie. La contrainte d'unicité (name_key, vendable) remonte
// ErrDuplicate en cas de collision concurrente.
func resolveProduct(r *repository.Repos, line *LineInput, now time.Time) (*entity.Product, error) {
	if line.ProductID != "" {
		p, err := r.Products.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		return p, nil
	}

	key := entity.NameKey(line.NewName)
	if key == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := r.Products.GetByNameKey(key, false)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}
	p = &entity.Product{
		ID:        uuid.New().String(),
		Name:      line.NewName,
		NameKey:   key,
		Vendable:  false,
		Category:  entity.CategoryCuisine,
		SaleUnit:  line.NewUnit,
		CostCDF:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.Products.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// resolvedLine ligne résolue: produit, quantités converties en unités et
// coût unitaire en pleine précision.
type resolvedLine struct {
	product  *entity.Product
	units    decimal.Decimal
	unitCost decimal.Decimal
	totalCDF decimal.Decimal
	dest     entity.Location
}

// buildInvestment exécute l'algorithme de création sous l'ID donné:
// première passe de résolution des lignes et des projections, persistance de
// l'en-tête, puis un mouvement IN par ligne avec mise à jour du coût moyen.
// Le coût unitaire vient toujours du prix de casier en francs, jamais d'une
// reconversion depuis le dollar (la perte de précision se cumulerait sur les
// conversions de casier).
func buildInvestment(r *repository.Repos, id string, in CreateInput, snap money.Snapshot, createdAt, now time.Time, update bool) (*entity.Investment, error) {
	var (
		vendableCost    decimal.Decimal
		expectedRevenue decimal.Decimal
		expectedVIP     decimal.Decimal
		lines           = make([]resolvedLine, 0, len(in.Items))
	)

	for i := range in.Items {
		item := &in.Items[i]
		product, err := resolveProduct(r, item, now)
		if err != nil {
			return nil, err
		}
		packSize := product.UnitsPerPack()
		line := resolvedLine{
			product:  product,
			units:    item.Quantity.Mul(packSize),
			unitCost: money.UnitCost(item.BatchPriceCDF, packSize),
			totalCDF: item.Quantity.Mul(item.BatchPriceCDF),
			dest:     item.Destination,
		}
		if product.Vendable {
			prices, err := r.Prices.ListByProduct(product.ID)
			if err != nil {
				return nil, err
			}
			std := StandardPrice(prices)
			vip := VIPPrice(prices)
			expectedRevenue = expectedRevenue.Add(std.Mul(line.units))
			expectedVIP = expectedVIP.Add(vip.Mul(line.units))
			vendableCost = vendableCost.Add(line.totalCDF)
		}
		lines = append(lines, line)
	}

	date := in.Date
	if date.IsZero() {
		date = now
	}
	inv := &entity.Investment{
		ID:                    id,
		Label:                 in.Label,
		Date:                  date,
		TotalCDF:              in.TotalCDF,
		TotalUSD:              snap.Hard(in.TotalCDF),
		TransportFeeCDF:       in.TransportFeeCDF,
		VendableCostCDF:       vendableCost,
		NonVendableCostCDF:    in.TotalCDF.Sub(vendableCost).Sub(in.TransportFeeCDF),
		ExpectedRevenueCDF:    expectedRevenue,
		ExpectedRevenueVIPCDF: expectedVIP,
		ExpectedProfitCDF:     expectedRevenue.Sub(vendableCost),
		ExpectedProfitVIPCDF:  expectedVIP.Sub(vendableCost),
		Source:                in.Source,
		Rate:                  snap.Rate,
		CreatedBy:             in.Actor,
		CreatedAt:             createdAt,
		UpdatedAt:             now,
	}
	if update {
		if err := r.Investments.Update(inv); err != nil {
			return nil, err
		}
	} else {
		if err := r.Investments.Create(inv); err != nil {
			return nil, err
		}
	}

	for _, line := range lines {
		before, err := r.Stock.Get(line.product.ID, line.dest)
		if err != nil {
			return nil, err
		}
		beforeQty := decimal.Zero
		if before != nil {
			beforeQty = before.Quantity
		}
		dest := line.dest
		if _, err := stock.Apply(r, stock.MovementInput{
			Type:         entity.MovementTypeIN,
			ProductID:    line.product.ID,
			Quantity:     line.units,
			To:           &dest,
			CostCDF:      line.unitCost,
			InvestmentID: &inv.ID,
			Actor:        in.Actor,
			Reason:       "achat " + inv.Label,
		}, now); err != nil {
			return nil, err
		}
		newCost := money.AverageCost(beforeQty, line.product.CostCDF, line.units, line.unitCost)
		if err := r.Products.UpdateCost(line.product.ID, newCost); err != nil {
			return nil, err
		}
	}
	return inv, nil
}
