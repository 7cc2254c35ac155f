package sale_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngandu/barresto-api/internal/application/sale"
	"github.com/ngandu/barresto-api/internal/domain"
	"github.com/ngandu/barresto-api/internal/domain/entity"
	"github.com/ngandu/barresto-api/internal/domain/repository"
	"github.com/ngandu/barresto-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type env struct {
	store *memory.Store
	repos *repository.Repos
	uc    *sale.UseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	uc := sale.NewUseCase(&memory.TxRunner{Store: store}, repos.Sales, repos.Products, 0)
	return &env{store: store, repos: repos, uc: uc}
}

// newBeer crée une boisson vendable (décomptée du frigo) avec un stock initial.
func (e *env) newBeer(t *testing.T, name string, stock string) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		NameKey:   entity.NameKey(name),
		Vendable:  true,
		Category:  entity.CategoryBoisson,
		SaleUnit:  "bouteille",
		CostCDF:   dec("1458.333333"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, e.repos.Products.Create(p))
	require.NoError(t, e.repos.Stock.Upsert(&entity.StockItem{
		ProductID: p.ID, Location: entity.LocationFrigo,
		Quantity: dec(stock), UpdatedAt: now,
	}))
	return p
}

func (e *env) newClient(t *testing.T, name string) *entity.Client {
	t.Helper()
	now := time.Now()
	c := &entity.Client{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, e.repos.Clients.Create(c))
	return c
}

func (e *env) frigoQty(t *testing.T, productID string) decimal.Decimal {
	t.Helper()
	item, err := e.repos.Stock.Get(productID, entity.LocationFrigo)
	require.NoError(t, err)
	if item == nil {
		return decimal.Zero
	}
	return item.Quantity
}

// Le solde en cache et la somme du grand livre doivent toujours coïncider.
func (e *env) assertPoints(t *testing.T, clientID string, want int64) {
	t.Helper()
	c, err := e.repos.Clients.GetByID(clientID)
	require.NoError(t, err)
	assert.Equal(t, want, c.Points, "solde en cache")
	sum, err := e.repos.Loyalty.SumByClient(clientID)
	require.NoError(t, err)
	assert.Equal(t, want, sum, "somme du grand livre")
}

func TestCreate_BrouillonNeToucheRien(t *testing.T) {
	e := newEnv(t)
	beer := e.newBeer(t, "Primus 72cl", "10")
	client := e.newClient(t, "Mwamba")

	s, err := e.uc.Create(context.Background(), sale.CreateInput{
		Items:     []sale.ItemInput{{ProductID: beer.ID, Quantity: dec("2"), UnitPriceCDF: dec("14000")}},
		ClientID:  &client.ID,
		OrderType: "sur_place",
		Status:    entity.SaleStatusDraft,
		Rate:      dec("2800"),
		Actor:     "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusDraft, s.Status)
	assert.True(t, dec("28000").Equal(s.TotalCDF))
	assert.True(t, dec("10").Equal(s.TotalUSD), "28000/2800")
	assert.Zero(t, s.PointsEarned)

	// Rien n'est décompté ni crédité tant que la vente est en brouillon.
	assert.True(t, dec("10").Equal(e.frigoQty(t, beer.ID)))
	e.assertPoints(t, client.ID, 0)
	orders, err := e.repos.Orders.ListBySale(s.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestFinalize_DecompteCrediteEtEmet(t *testing.T) {
	e := newEnv(t)
	beer := e.newBeer(t, "Tembo 72cl", "10")
	client := e.newClient(t, "Kalala")

	s, err := e.uc.Create(context.Background(), sale.CreateInput{
		Items:    []sale.ItemInput{{ProductID: beer.ID, Quantity: dec("2"), UnitPriceCDF: dec("14000")}},
		ClientID: &client.ID,
		Status:   entity.SaleStatusDraft,
		Rate:     dec("2800"),
		Actor:    "u1",
	})
	require.NoError(t, err)

	s, err = e.uc.Finalize(context.Background(), s.ID, "cash", "u1")
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusCompleted, s.Status)
	assert.True(t, dec("8").Equal(e.frigoQty(t, beer.ID)))

	// 28000 francs -> 1 point (palier de 20000).
	assert.Equal(t, int64(1), s.PointsEarned)
	e.assertPoints(t, client.ID, 1)

	// Entrée de caisse et bon de préparation émis avec la vente.
	fins, err := e.repos.Finance.ListBySale(s.ID)
	require.NoError(t, err)
	require.Len(t, fins, 1)
	assert.True(t, dec("28000").Equal(fins[0].AmountCDF))
	assert.True(t, dec("10").Equal(fins[0].AmountUSD))
	assert.Equal(t, "cash", fins[0].Method)

	orders, err := e.repos.Orders.ListBySale(s.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, entity.OrderPending, orders[0].Status)
}

func TestFinalize_DoubleFinalisationRefusee(t *testing.T) {
	e := newEnv(t)
	beer := e.newBeer(t, "Skol 65cl", "10")

	s, err := e.uc.Create(context.Background(), sale.CreateInput{
		Items:  []sale.ItemInput{{ProductID: beer.ID, Quantity: dec("2"), UnitPriceCDF: dec("3000")}},
		Status: entity.SaleStatusDraft,
		Rate:   dec("2800"),
		Actor:  "u1",
	})
	require.NoError(t, err)
	_, err = e.uc.Finalize(context.Background(), s.ID, "cash", "u1")
	require.NoError(t, err)

	// Seconde finalisation: refusée, aucun second décompte.
	_, err = e.uc.Finalize(context.Background(), s.ID, "cash", "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.True(t, dec("8").Equal(e.frigoQty(t, beer.ID)))
}

func TestCreate_VenteDirecteDecompteImmediatement(t *testing.T) {
	e := newEnv(t)
	beer := e.newBeer(t, "Mutzig 65cl", "10")

	s, err := e.uc.Create(context.Background(), sale.CreateInput{
		Items:         []sale.ItemInput{{ProductID: beer.ID, Quantity: dec("3"), UnitPriceCDF: dec("3000")}},
		Status:        entity.SaleStatusCompleted,
		PaymentMethod: "cash",
		Rate:          dec("2800"),
		Actor:         "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCompleted, s.Status)
	assert.True(t, dec("7").Equal(e.frigoQty(t, beer.ID)))
}

func TestFinalize_StockInsuffisant(t *testing.T) {
	e := newEnv(t)
	beer := e.newBeer(t, "Fanta 33cl", "1")

	s, err := e.uc.Create(context.Background(), sale.CreateInput{
		Items:  []sale.ItemInput{{ProductID: beer.ID, Quantity: dec("2"), UnitPriceCDF: dec("2000")}},
		Status: entity.SaleStatusDraft,
		Rate:   dec("2800"),
		Actor:  "u1",
	})
	require.NoError(t, err)

	_, err = e.uc.Finalize(context.Background(), s.ID, "cash", "u1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Le stock n'a pas bougé et la vente reste en brouillon.
	assert.True(t, dec("1").Equal(e.frigoQty(t, beer.ID)))
	got, err := e.repos.Sales.GetByID(s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusDraft, got.Status)
}

func TestCancel_VenteFinaliseeRestitueTout(t *testing.T) {
	e := newEnv(t)
	beer := e.newBeer(t, "Primus 72cl", "10")
	client := e.newClient(t, "Ilunga")

	s, err := e.uc.Create(context.Background(), sale.CreateInput{
		Items:         []sale.ItemInput{{ProductID: beer.ID, Quantity: dec("2"), UnitPriceCDF: dec("14000")}},
		ClientID:      &client.ID,
		Status:        entity.SaleStatusCompleted,
		PaymentMethod: "cash",
		Rate:          dec("2800"),
		Actor:         "u1",
	})
	require.NoError(t, err)
	e.assertPoints(t, client.ID, 1)

	s, err = e.uc.Cancel(context.Background(), s.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusCancelled, s.Status)
	assert.True(t, dec("10").Equal(e.frigoQty(t, beer.ID)))

	// Points inversés symétriquement: deux écritures (+1 puis -1), solde nul.
	e.assertPoints(t, client.ID, 0)
	txs, err := e.repos.Loyalty.ListByClient(client.ID)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, int64(1), txs[0].Amount)
	assert.Equal(t, int64(-1), txs[1].Amount)
}

func TestCancel_BrouillonSansEffetDeStock(t *testing.T) {
	e := newEnv(t)
	beer := e.newBeer(t, "Tembo 72cl", "10")
	client := e.newClient(t, "Nzuzi")

	s, err := e.uc.Create(context.Background(), sale.CreateInput{
		Items:    []sale.ItemInput{{ProductID: beer.ID, Quantity: dec("2"), UnitPriceCDF: dec("14000")}},
		ClientID: &client.ID,
		Status:   entity.SaleStatusDraft,
		Rate:     dec("2800"),
		Actor:    "u1",
	})
	require.NoError(t, err)

	s, err = e.uc.Cancel(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, s.Status)

	// Une brouillon n'a rien décompté: rien à restituer, aucune écriture.
	assert.True(t, dec("10").Equal(e.frigoQty(t, beer.ID)))
	e.assertPoints(t, client.ID, 0)

	// Et plus rien ne sort de CANCELLED.
	_, err = e.uc.Cancel(context.Background(), s.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = e.uc.Finalize(context.Background(), s.ID, "cash", "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdate_EcartsDeQuantiteSurVenteFinalisee(t *testing.T) {
	e := newEnv(t)
	beer := e.newBeer(t, "Skol 65cl", "10")

	s, err := e.uc.Create(context.Background(), sale.CreateInput{
		Items:         []sale.ItemInput{{ProductID: beer.ID, Quantity: dec("2"), UnitPriceCDF: dec("3000")}},
		Status:        entity.SaleStatusCompleted,
		PaymentMethod: "cash",
		Rate:          dec("2800"),
		Actor:         "u1",
	})
	require.NoError(t, err)
	require.True(t, dec("8").Equal(e.frigoQty(t, beer.ID)))

	// 2 -> 3: un de plus décompté.
	s, err = e.uc.Update(context.Background(), s.ID, sale.UpdateInput{
		Items: []sale.ItemInput{{ProductID: beer.ID, Quantity: dec("3"), UnitPriceCDF: dec("3000")}},
		Actor: "u1",
	})
	require.NoError(t, err)
	assert.True(t, dec("7").Equal(e.frigoQty(t, beer.ID)))
	assert.True(t, dec("9000").Equal(s.TotalCDF))

	// 3 -> 1: deux restitués.
	s, err = e.uc.Update(context.Background(), s.ID, sale.UpdateInput{
		Items: []sale.ItemInput{{ProductID: beer.ID, Quantity: dec("1"), UnitPriceCDF: dec("3000")}},
		Actor: "u1",
	})
	require.NoError(t, err)
	assert.True(t, dec("9").Equal(e.frigoQty(t, beer.ID)))
	assert.True(t, dec("3000").Equal(s.TotalCDF))
}

func TestUpdate_LigneRetireeEtLigneAjoutee(t *testing.T) {
	e := newEnv(t)
	beer := e.newBeer(t, "Primus 72cl", "10")
	soda := e.newBeer(t, "Coca 33cl", "6")

	s, err := e.uc.Create(context.Background(), sale.CreateInput{
		Items:         []sale.ItemInput{{ProductID: beer.ID, Quantity: dec("4"), UnitPriceCDF: dec("3000")}},
		Status:        entity.SaleStatusCompleted,
		PaymentMethod: "cash",
		Rate:          dec("2800"),
		Actor:         "u1",
	})
	require.NoError(t, err)

	// Remplacer la bière par le soda: la bière est restituée en totalité,
	// le soda décompté.
	s, err = e.uc.Update(context.Background(), s.ID, sale.UpdateInput{
		Items: []sale.ItemInput{{ProductID: soda.ID, Quantity: dec("2"), UnitPriceCDF: dec("2000")}},
		Actor: "u1",
	})
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(e.frigoQty(t, beer.ID)))
	assert.True(t, dec("4").Equal(e.frigoQty(t, soda.ID)))
	assert.True(t, dec("4000").Equal(s.TotalCDF))

	items, err := e.repos.Sales.ListItems(s.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, soda.ID, items[0].ProductID)
}

func TestUpdate_AugmentationRefuseeSansStock(t *testing.T) {
	e := newEnv(t)
	beer := e.newBeer(t, "Tembo 72cl", "3")

	s, err := e.uc.Create(context.Background(), sale.CreateInput{
		Items:         []sale.ItemInput{{ProductID: beer.ID, Quantity: dec("3"), UnitPriceCDF: dec("3000")}},
		Status:        entity.SaleStatusCompleted,
		PaymentMethod: "cash",
		Rate:          dec("2800"),
		Actor:         "u1",
	})
	require.NoError(t, err)
	require.True(t, e.frigoQty(t, beer.ID).IsZero())

	_, err = e.uc.Update(context.Background(), s.ID, sale.UpdateInput{
		Items: []sale.ItemInput{{ProductID: beer.ID, Quantity: dec("5"), UnitPriceCDF: dec("3000")}},
		Actor: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestUpdate_BrouillonPuisFinalisationEnchainee(t *testing.T) {
	e := newEnv(t)
	beer := e.newBeer(t, "Mutzig 65cl", "10")

	s, err := e.uc.Create(context.Background(), sale.CreateInput{
		Items:  []sale.ItemInput{{ProductID: beer.ID, Quantity: dec("1"), UnitPriceCDF: dec("3000")}},
		Status: entity.SaleStatusDraft,
		Rate:   dec("2800"),
		Actor:  "u1",
	})
	require.NoError(t, err)

	// Éditer une brouillon ne touche pas le stock.
	s, err = e.uc.Update(context.Background(), s.ID, sale.UpdateInput{
		Items: []sale.ItemInput{{ProductID: beer.ID, Quantity: dec("4"), UnitPriceCDF: dec("3000")}},
		Actor: "u1",
	})
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(e.frigoQty(t, beer.ID)))

	// Passer COMPLETED dans la même édition décompte la version finale.
	s, err = e.uc.Update(context.Background(), s.ID, sale.UpdateInput{
		Items:         []sale.ItemInput{{ProductID: beer.ID, Quantity: dec("4"), UnitPriceCDF: dec("3000")}},
		Status:        entity.SaleStatusCompleted,
		PaymentMethod: "cash",
		Actor:         "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCompleted, s.Status)
	assert.True(t, dec("6").Equal(e.frigoQty(t, beer.ID)))
}

func TestFinalize_PointsUtilisesEnEcritureNette(t *testing.T) {
	e := newEnv(t)
	beer := e.newBeer(t, "Primus 72cl", "10")
	client := e.newClient(t, "Mbuyi")

	// 40000 francs -> 2 points gagnés, 1 utilisé: une seule écriture nette +1.
	s, err := e.uc.Create(context.Background(), sale.CreateInput{
		Items:         []sale.ItemInput{{ProductID: beer.ID, Quantity: dec("2"), UnitPriceCDF: dec("20000")}},
		ClientID:      &client.ID,
		Status:        entity.SaleStatusCompleted,
		PaymentMethod: "cash",
		PointsUsed:    1,
		Rate:          dec("2800"),
		Actor:         "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), s.PointsEarned)
	e.assertPoints(t, client.ID, 1)
	txs, err := e.repos.Loyalty.ListByClient(client.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, int64(1), txs[0].Amount)

	// L'annulation inverse la même écriture nette.
	_, err = e.uc.Cancel(context.Background(), s.ID)
	require.NoError(t, err)
	e.assertPoints(t, client.ID, 0)
}

func TestCreate_Validation(t *testing.T) {
	e := newEnv(t)
	beer := e.newBeer(t, "Fanta 33cl", "10")

	cases := []sale.CreateInput{
		// Aucune ligne.
		{Status: entity.SaleStatusDraft, Rate: dec("2800")},
		// Quantité non positive.
		{Items: []sale.ItemInput{{ProductID: beer.ID, Quantity: decimal.Zero, UnitPriceCDF: dec("1000")}}, Status: entity.SaleStatusDraft, Rate: dec("2800")},
		// Prix négatif.
		{Items: []sale.ItemInput{{ProductID: beer.ID, Quantity: dec("1"), UnitPriceCDF: dec("-1")}}, Status: entity.SaleStatusDraft, Rate: dec("2800")},
		// Statut initial hors DRAFT/COMPLETED.
		{Items: []sale.ItemInput{{ProductID: beer.ID, Quantity: dec("1"), UnitPriceCDF: dec("1000")}}, Status: entity.SaleStatusCancelled, Rate: dec("2800")},
		// Points utilisés négatifs.
		{Items: []sale.ItemInput{{ProductID: beer.ID, Quantity: dec("1"), UnitPriceCDF: dec("1000")}}, Status: entity.SaleStatusDraft, PointsUsed: -1, Rate: dec("2800")},
		// Taux non positif.
		{Items: []sale.ItemInput{{ProductID: beer.ID, Quantity: dec("1"), UnitPriceCDF: dec("1000")}}, Status: entity.SaleStatusDraft, Rate: decimal.Zero},
	}
	for i, in := range cases {
		_, err := e.uc.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cas %d", i)
	}
}

func TestCancel_VenteInconnue(t *testing.T) {
	e := newEnv(t)
	_, err := e.uc.Cancel(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
