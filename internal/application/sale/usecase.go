package sale

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ngandu/barresto-api/internal/application/stock"
	"github.com/ngandu/barresto-api/internal/domain"
	"github.com/ngandu/barresto-api/internal/domain/entity"
	"github.com/ngandu/barresto-api/internal/domain/loyalty"
	"github.com/ngandu/barresto-api/internal/domain/money"
	"github.com/ngandu/barresto-api/internal/domain/repository"
)

// UseCase pilote le cycle de vie d'une vente: DRAFT -> COMPLETED ou
// CANCELLED, COMPLETED -> CANCELLED, rien ne sort de CANCELLED. Le stock
// n'est décompté qu'à la finalisation et restitué à l'annulation; points de
// fidélité, bon de préparation et entrée de caisse suivent le même cycle,
// chaque opération dans une seule transaction.
type UseCase struct {
	txRunner       repository.TxRunner
	saleRepo       repository.SaleRepository
	productRepo    repository.ProductRepository
	loyaltyDivisor int64
}

// NewUseCase construit le cas d'usage. divisor: francs par point de fidélité
// (loyalty.DefaultDivisor si <= 0).
func NewUseCase(txRunner repository.TxRunner, saleRepo repository.SaleRepository, productRepo repository.ProductRepository, divisor int64) *UseCase {
	if divisor <= 0 {
		divisor = loyalty.DefaultDivisor
	}
	return &UseCase{txRunner: txRunner, saleRepo: saleRepo, productRepo: productRepo, loyaltyDivisor: divisor}
}

// ItemInput ligne de vente entrante. UnitPriceCDF est le prix convenu en
// francs (canonique); le prix en dollars est dérivé au taux de la vente.
type ItemInput struct {
	ProductID    string
	Quantity     decimal.Decimal
	UnitPriceCDF decimal.Decimal
}

// CreateInput entrée de création. Status DRAFT ou COMPLETED (vente directe:
// le stock est décompté immédiatement, dans la même transaction).
type CreateInput struct {
	Items         []ItemInput
	ClientID      *string
	OrderType     string
	Status        string
	PaymentMethod string
	Rate          decimal.Decimal
	PointsUsed    int64
	Actor         string
}

// UpdateInput entrée d'édition: nouvelle liste de lignes, et éventuellement
// un changement de statut (DRAFT -> COMPLETED déclenche la finalisation).
type UpdateInput struct {
	Items         []ItemInput
	Status        string
	PaymentMethod string
	Actor         string
}

func validateItems(items []ItemInput) error {
	if len(items) == 0 {
		return domain.ErrInvalidInput
	}
	for i := range items {
		if items[i].ProductID == "" || !items[i].Quantity.IsPositive() || items[i].UnitPriceCDF.IsNegative() {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// Create crée une vente. En DRAFT rien ne touche le stock; en COMPLETED la
// logique de finalisation s'applique en ligne, dans la même transaction.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Sale, error) {
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}
	if in.Status != entity.SaleStatusDraft && in.Status != entity.SaleStatusCompleted {
		return nil, domain.ErrInvalidInput
	}
	if in.PointsUsed < 0 {
		return nil, domain.ErrInvalidInput
	}
	snap, err := money.NewSnapshot(in.Rate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		Status:        entity.SaleStatusDraft,
		Rate:          snap.Rate,
		ClientID:      in.ClientID,
		OrderType:     in.OrderType,
		PaymentMethod: in.PaymentMethod,
		PointsUsed:    in.PointsUsed,
		CreatedBy:     in.Actor,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		items := make([]*entity.SaleItem, 0, len(in.Items))
		for i := range in.Items {
			it := buildItem(sale, &in.Items[i], snap)
			items = append(items, it)
		}
		applyTotals(sale, items, snap)
		if err := r.Sales.Create(sale); err != nil {
			return err
		}
		for _, it := range items {
			if err := r.Sales.CreateItem(it); err != nil {
				return err
			}
		}
		if in.Status == entity.SaleStatusCompleted {
			return uc.finalizeInTx(r, sale, items, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// Update applique le diff de lignes. Sur une vente non DRAFT, chaque écart de
// quantité passe par un mouvement ADJUSTMENT (diff positif: décrément,
// ErrInsufficientStock si indisponible; diff négatif: restitution); les
// lignes retirées sont restituées en totalité et les nouvelles décomptées.
// Sur une DRAFT, seules les lignes changent. Un Status COMPLETED sur une
// DRAFT enchaîne la finalisation dans la même transaction.
func (uc *UseCase) Update(ctx context.Context, id string, in UpdateInput) (*entity.Sale, error) {
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}
	if in.Status != "" && !entity.ValidSaleStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		var err error
		sale, err = r.Sales.GetForUpdate(id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status == entity.SaleStatusCancelled {
			return domain.ErrInvalidTransition
		}
		snap := money.Snapshot{Rate: sale.Rate}
		applied := sale.Status != entity.SaleStatusDraft

		existing, err := r.Sales.ListItems(id)
		if err != nil {
			return err
		}
		byProduct := make(map[string]*entity.SaleItem, len(existing))
		for _, it := range existing {
			byProduct[it.ProductID] = it
		}

		final := make([]*entity.SaleItem, 0, len(in.Items))
		for i := range in.Items {
			line := &in.Items[i]
			old, ok := byProduct[line.ProductID]
			if !ok {
				// Nouvelle ligne: sur une vente appliquée, vérifier et
				// décompter le stock avant de l'ajouter.
				if applied {
					if err := uc.deductItem(r, sale, line.ProductID, line.Quantity, now); err != nil {
						return err
					}
				}
				it := buildItem(sale, line, snap)
				if err := r.Sales.CreateItem(it); err != nil {
					return err
				}
				final = append(final, it)
				continue
			}
			delete(byProduct, line.ProductID)

			diff := line.Quantity.Sub(old.Quantity)
			if applied && !diff.IsZero() {
				if err := uc.adjustItem(r, sale, line.ProductID, diff, now); err != nil {
					return err
				}
			}
			old.Quantity = line.Quantity
			old.UnitPriceCDF = line.UnitPriceCDF
			old.UnitPriceUSD = snap.Hard(line.UnitPriceCDF)
			old.TotalCDF = line.Quantity.Mul(line.UnitPriceCDF)
			if err := r.Sales.UpdateItem(old); err != nil {
				return err
			}
			final = append(final, old)
		}

		// Lignes absentes de la nouvelle liste: retirées, quantité restituée
		// en totalité si la vente avait déjà décompté le stock.
		for _, removed := range byProduct {
			if applied {
				if err := uc.restoreItem(r, sale, removed.ProductID, removed.Quantity, now); err != nil {
					return err
				}
			}
			if err := r.Sales.DeleteItem(removed.ID); err != nil {
				return err
			}
		}

		applyTotals(sale, final, snap)
		if in.PaymentMethod != "" {
			sale.PaymentMethod = in.PaymentMethod
		}
		sale.UpdatedAt = now

		if in.Status != "" && in.Status != sale.Status {
			if !entity.CanTransition(sale.Status, in.Status) {
				return domain.ErrInvalidTransition
			}
			switch in.Status {
			case entity.SaleStatusCompleted:
				return uc.finalizeInTx(r, sale, final, now)
			case entity.SaleStatusCancelled:
				return uc.cancelInTx(r, sale, final, now)
			}
		}
		return r.Sales.Update(sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// Finalize fait passer une DRAFT en COMPLETED. Re-finaliser une vente déjà
// COMPLETED est refusé sans aucun effet sur stock ou points.
func (uc *UseCase) Finalize(ctx context.Context, id, paymentMethod, actor string) (*entity.Sale, error) {
	now := time.Now()
	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		var err error
		sale, err = r.Sales.GetForUpdate(id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status != entity.SaleStatusDraft {
			return domain.ErrInvalidTransition
		}
		items, err := r.Sales.ListItems(id)
		if err != nil {
			return err
		}
		if paymentMethod != "" {
			sale.PaymentMethod = paymentMethod
		}
		sale.UpdatedAt = now
		return uc.finalizeInTx(r, sale, items, now)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// Cancel fait passer une DRAFT ou une COMPLETED en CANCELLED. Échoue si la
// vente est déjà annulée.
func (uc *UseCase) Cancel(ctx context.Context, id string) (*entity.Sale, error) {
	now := time.Now()
	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		var err error
		sale, err = r.Sales.GetForUpdate(id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status == entity.SaleStatusCancelled {
			return domain.ErrInvalidTransition
		}
		items, err := r.Sales.ListItems(id)
		if err != nil {
			return err
		}
		return uc.cancelInTx(r, sale, items, now)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// Get retourne une vente avec ses lignes.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Sale, []*entity.SaleItem, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if sale == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.ListItems(id)
	if err != nil {
		return nil, nil, err
	}
	return sale, items, nil
}

// List retourne les ventes paginées.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.saleRepo.List(limit, offset)
}

// finalizeInTx applique la finalisation: une sortie de stock par ligne au
// coût du produit, points gagnés, écriture fidélité, bon de préparation,
// entrée de caisse et mise à jour de l'en-tête — une seule unité atomique.
// Toute ligne sans stock suffisant fait échouer la finalisation entière.
func (uc *UseCase) finalizeInTx(r *repository.Repos, sale *entity.Sale, items []*entity.SaleItem, now time.Time) error {
	if sale.Status != entity.SaleStatusDraft {
		return domain.ErrInvalidTransition
	}
	for _, it := range items {
		if err := uc.deductItem(r, sale, it.ProductID, it.Quantity, now); err != nil {
			return err
		}
	}

	sale.PointsEarned = loyalty.PointsFor(sale.TotalCDF, uc.loyaltyDivisor)
	change := sale.PointsEarned - sale.PointsUsed
	if sale.ClientID != nil && change != 0 {
		if err := applyLoyalty(r, *sale.ClientID, sale.ID, change, "vente finalisée", now); err != nil {
			return err
		}
	}

	if err := r.Orders.Create(&entity.PreparationOrder{
		ID:        uuid.New().String(),
		SaleID:    sale.ID,
		Status:    entity.OrderPending,
		CreatedAt: now,
	}); err != nil {
		return err
	}
	if err := r.Finance.Create(&entity.FinancialTransaction{
		ID:        uuid.New().String(),
		SaleID:    sale.ID,
		AmountCDF: sale.TotalCDF,
		AmountUSD: sale.TotalUSD,
		Method:    sale.PaymentMethod,
		Reference: "VENTE-" + sale.ID,
		CreatedAt: now,
	}); err != nil {
		return err
	}

	sale.Status = entity.SaleStatusCompleted
	sale.UpdatedAt = now
	return r.Sales.Update(sale)
}

// cancelInTx applique l'annulation: restitution du stock par ADJUSTMENT
// entrant (uniquement si la vente avait décompté, une DRAFT n'a aucun effet
// net à défaire), inversion symétrique des points et marquage CANCELLED.
func (uc *UseCase) cancelInTx(r *repository.Repos, sale *entity.Sale, items []*entity.SaleItem, now time.Time) error {
	if sale.Status == entity.SaleStatusCancelled {
		return domain.ErrInvalidTransition
	}
	if sale.Status == entity.SaleStatusCompleted {
		for _, it := range items {
			if err := uc.restoreItem(r, sale, it.ProductID, it.Quantity, now); err != nil {
				return err
			}
		}
		change := sale.PointsEarned - sale.PointsUsed
		if sale.ClientID != nil && change != 0 {
			if err := applyLoyalty(r, *sale.ClientID, sale.ID, -change, "vente annulée", now); err != nil {
				return err
			}
		}
	}
	sale.Status = entity.SaleStatusCancelled
	sale.UpdatedAt = now
	return r.Sales.Update(sale)
}

// deductItem décompte le stock d'une ligne (type OUT) à l'emplacement déduit
// de la catégorie du produit, au coût unitaire courant du produit.
func (uc *UseCase) deductItem(r *repository.Repos, sale *entity.Sale, productID string, qty decimal.Decimal, now time.Time) error {
	product, err := r.Products.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	loc := product.SaleLocation()
	_, err = stock.Apply(r, stock.MovementInput{
		Type:      entity.MovementTypeOUT,
		ProductID: productID,
		Quantity:  qty,
		From:      &loc,
		CostCDF:   product.CostCDF,
		SaleID:    &sale.ID,
		Actor:     sale.CreatedBy,
		Reason:    "vente",
	}, now)
	return err
}

// adjustItem applique l'écart de quantité d'une ligne éditée: diff positif =
// davantage vendu, ADJUSTMENT sortant; diff négatif = moins vendu,
// ADJUSTMENT entrant.
func (uc *UseCase) adjustItem(r *repository.Repos, sale *entity.Sale, productID string, diff decimal.Decimal, now time.Time) error {
	product, err := r.Products.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	loc := product.SaleLocation()
	in := stock.MovementInput{
		Type:      entity.MovementTypeADJUSTMENT,
		ProductID: productID,
		CostCDF:   product.CostCDF,
		SaleID:    &sale.ID,
		Actor:     sale.CreatedBy,
		Reason:    "correction vente",
	}
	if diff.IsPositive() {
		in.Quantity = diff
		in.From = &loc
	} else {
		in.Quantity = diff.Neg()
		in.To = &loc
	}
	_, err = stock.Apply(r, in, now)
	return err
}

// restoreItem restitue la quantité entière d'une ligne (ADJUSTMENT entrant).
func (uc *UseCase) restoreItem(r *repository.Repos, sale *entity.Sale, productID string, qty decimal.Decimal, now time.Time) error {
	product, err := r.Products.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	loc := product.SaleLocation()
	_, err = stock.Apply(r, stock.MovementInput{
		Type:      entity.MovementTypeADJUSTMENT,
		ProductID: productID,
		Quantity:  qty,
		To:        &loc,
		CostCDF:   product.CostCDF,
		SaleID:    &sale.ID,
		Actor:     sale.CreatedBy,
		Reason:    "restitution vente",
	}, now)
	return err
}

// applyLoyalty fait varier le solde d'un client et ajoute l'écriture signée
// correspondante: le solde n'est jamais modifié sans écriture miroir.
func applyLoyalty(r *repository.Repos, clientID, saleID string, amount int64, reason string, now time.Time) error {
	client, err := r.Clients.GetForUpdate(clientID)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	if err := r.Clients.UpdatePoints(clientID, client.Points+amount); err != nil {
		return err
	}
	return r.Loyalty.Create(&entity.LoyaltyTransaction{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		SaleID:    saleID,
		Amount:    amount,
		Reason:    reason,
		CreatedAt: now,
	})
}

// buildItem construit une ligne avec totaux et prix dollar dérivés une fois.
func buildItem(sale *entity.Sale, line *ItemInput, snap money.Snapshot) *entity.SaleItem {
	return &entity.SaleItem{
		ID:           uuid.New().String(),
		SaleID:       sale.ID,
		ProductID:    line.ProductID,
		Quantity:     line.Quantity,
		UnitPriceCDF: line.UnitPriceCDF,
		UnitPriceUSD: snap.Hard(line.UnitPriceCDF),
		TotalCDF:     line.Quantity.Mul(line.UnitPriceCDF),
	}
}

// applyTotals recalcule les totaux de l'en-tête depuis les lignes.
func applyTotals(sale *entity.Sale, items []*entity.SaleItem, snap money.Snapshot) {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalCDF)
	}
	sale.TotalCDF = total
	sale.TotalUSD = snap.Hard(total)
}
