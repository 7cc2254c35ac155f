package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngandu/barresto-api/internal/application/stock"
	"github.com/ngandu/barresto-api/internal/domain"
	"github.com/ngandu/barresto-api/internal/domain/entity"
	"github.com/ngandu/barresto-api/internal/domain/repository"
	"github.com/ngandu/barresto-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type env struct {
	store *memory.Store
	repos *repository.Repos
	uc    *stock.LedgerUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	runner := &memory.TxRunner{Store: store}
	uc := stock.NewLedgerUseCase(runner, repos.Products, repos.Stock, repos.Movements)
	return &env{store: store, repos: repos, uc: uc}
}

func (e *env) newProduct(t *testing.T, name string) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		NameKey:   entity.NameKey(name),
		Vendable:  true,
		Category:  entity.CategoryBoisson,
		SaleUnit:  "bouteille",
		CostCDF:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, e.repos.Products.Create(p))
	return p
}

func TestRecordMovement_EntreeAugmenteLeStock(t *testing.T) {
	e := newEnv(t)
	p := e.newProduct(t, "Primus 72cl")

	depot := entity.LocationDepot
	mov, err := e.uc.RecordMovement(context.Background(), stock.MovementInput{
		Type:      entity.MovementTypeIN,
		ProductID: p.ID,
		Quantity:  dec("24"),
		To:        &depot,
		CostCDF:   dec("1458.333333"),
		Actor:     "u1",
		Reason:    "achat initial",
	})
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.Equal(t, entity.MovementTypeIN, mov.Type)

	qty, err := e.uc.CurrentQuantity(context.Background(), p.ID, entity.LocationDepot)
	require.NoError(t, err)
	assert.True(t, dec("24").Equal(qty), "obtenu %s", qty)
}

func TestRecordMovement_SortieRefuseeSansStock(t *testing.T) {
	e := newEnv(t)
	p := e.newProduct(t, "Tembo 72cl")

	frigo := entity.LocationFrigo
	_, err := e.uc.RecordMovement(context.Background(), stock.MovementInput{
		Type:      entity.MovementTypeOUT,
		ProductID: p.ID,
		Quantity:  dec("5"),
		From:      &frigo,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Rien n'est écrit: quantité à zéro, journal vide.
	qty, err := e.uc.CurrentQuantity(context.Background(), p.ID, entity.LocationFrigo)
	require.NoError(t, err)
	assert.True(t, qty.IsZero())

	movs, err := e.repos.Movements.List(repository.MovementFilter{ProductID: p.ID, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestRecordMovement_SortiePartielle(t *testing.T) {
	e := newEnv(t)
	p := e.newProduct(t, "Mutzig 65cl")
	frigo := entity.LocationFrigo

	_, err := e.uc.RecordMovement(context.Background(), stock.MovementInput{
		Type: entity.MovementTypeIN, ProductID: p.ID, Quantity: dec("10"), To: &frigo,
	})
	require.NoError(t, err)

	_, err = e.uc.RecordMovement(context.Background(), stock.MovementInput{
		Type: entity.MovementTypeOUT, ProductID: p.ID, Quantity: dec("4"), From: &frigo,
	})
	require.NoError(t, err)

	qty, _ := e.uc.CurrentQuantity(context.Background(), p.ID, entity.LocationFrigo)
	assert.True(t, dec("6").Equal(qty))

	// Dépasser le disponible restant échoue et ne change rien.
	_, err = e.uc.RecordMovement(context.Background(), stock.MovementInput{
		Type: entity.MovementTypeOUT, ProductID: p.ID, Quantity: dec("7"), From: &frigo,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	qty, _ = e.uc.CurrentQuantity(context.Background(), p.ID, entity.LocationFrigo)
	assert.True(t, dec("6").Equal(qty))
}

func TestRecordMovement_AjustementDeuxSens(t *testing.T) {
	e := newEnv(t)
	p := e.newProduct(t, "Coca 33cl")
	cuisine := entity.LocationCuisine

	// Ajustement entrant: correction d'inventaire à la hausse.
	_, err := e.uc.RecordMovement(context.Background(), stock.MovementInput{
		Type: entity.MovementTypeADJUSTMENT, ProductID: p.ID, Quantity: dec("3"), To: &cuisine,
		Reason: "inventaire",
	})
	require.NoError(t, err)

	// Ajustement sortant: casse.
	_, err = e.uc.RecordMovement(context.Background(), stock.MovementInput{
		Type: entity.MovementTypeADJUSTMENT, ProductID: p.ID, Quantity: dec("1"), From: &cuisine,
		Reason: "casse",
	})
	require.NoError(t, err)

	qty, _ := e.uc.CurrentQuantity(context.Background(), p.ID, entity.LocationCuisine)
	assert.True(t, dec("2").Equal(qty))
}

func TestRecordMovement_ValidationDesCotes(t *testing.T) {
	e := newEnv(t)
	p := e.newProduct(t, "Fanta 33cl")
	depot := entity.LocationDepot
	frigo := entity.LocationFrigo

	cases := []stock.MovementInput{
		// IN sans destination.
		{Type: entity.MovementTypeIN, ProductID: p.ID, Quantity: dec("1")},
		// IN avec origine.
		{Type: entity.MovementTypeIN, ProductID: p.ID, Quantity: dec("1"), From: &depot, To: &frigo},
		// OUT sans origine.
		{Type: entity.MovementTypeOUT, ProductID: p.ID, Quantity: dec("1")},
		// ADJUSTMENT avec les deux côtés.
		{Type: entity.MovementTypeADJUSTMENT, ProductID: p.ID, Quantity: dec("1"), From: &depot, To: &frigo},
		// ADJUSTMENT sans aucun côté.
		{Type: entity.MovementTypeADJUSTMENT, ProductID: p.ID, Quantity: dec("1")},
		// Quantité non positive.
		{Type: entity.MovementTypeIN, ProductID: p.ID, Quantity: decimal.Zero, To: &depot},
		{Type: entity.MovementTypeIN, ProductID: p.ID, Quantity: dec("-2"), To: &depot},
		// Type inconnu.
		{Type: "TRANSFER", ProductID: p.ID, Quantity: dec("1"), To: &depot},
	}
	for i, in := range cases {
		_, err := e.uc.RecordMovement(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cas %d", i)
	}
}

func TestRecordMovement_ProduitInconnu(t *testing.T) {
	e := newEnv(t)
	depot := entity.LocationDepot
	_, err := e.uc.RecordMovement(context.Background(), stock.MovementInput{
		Type: entity.MovementTypeIN, ProductID: uuid.New().String(), Quantity: dec("1"), To: &depot,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Le cache par (produit, emplacement) doit toujours égaler la somme nette du
// journal pour cette clé, quelle que soit la séquence de mouvements.
func TestConservation_CacheEgaleSommeDuJournal(t *testing.T) {
	e := newEnv(t)
	p := e.newProduct(t, "Skol 65cl")
	depot := entity.LocationDepot
	frigo := entity.LocationFrigo

	seq := []stock.MovementInput{
		{Type: entity.MovementTypeIN, ProductID: p.ID, Quantity: dec("48"), To: &depot},
		{Type: entity.MovementTypeADJUSTMENT, ProductID: p.ID, Quantity: dec("12"), From: &depot},
		{Type: entity.MovementTypeADJUSTMENT, ProductID: p.ID, Quantity: dec("12"), To: &frigo},
		{Type: entity.MovementTypeOUT, ProductID: p.ID, Quantity: dec("5"), From: &frigo},
		{Type: entity.MovementTypeOUT, ProductID: p.ID, Quantity: dec("10"), From: &depot},
	}
	for i, in := range seq {
		_, err := e.uc.RecordMovement(context.Background(), in)
		require.NoError(t, err, "mouvement %d", i)
	}

	for _, loc := range []entity.Location{entity.LocationDepot, entity.LocationFrigo} {
		movs, err := e.repos.Movements.List(repository.MovementFilter{ProductID: p.ID, Location: loc, Limit: 100})
		require.NoError(t, err)
		net := decimal.Zero
		for _, m := range movs {
			if m.To != nil && *m.To == loc {
				net = net.Add(m.Quantity)
			}
			if m.From != nil && *m.From == loc {
				net = net.Sub(m.Quantity)
			}
		}
		qty, err := e.uc.CurrentQuantity(context.Background(), p.ID, loc)
		require.NoError(t, err)
		assert.True(t, net.Equal(qty), "emplacement %s: journal %s, cache %s", loc, net, qty)
	}
}
