package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngandu/barresto-api/internal/application/catalog"
	"github.com/ngandu/barresto-api/internal/application/dto"
	"github.com/ngandu/barresto-api/internal/domain"
	"github.com/ngandu/barresto-api/internal/infrastructure/cache"
	"github.com/ngandu/barresto-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newUseCase() *catalog.UseCase {
	repos := memory.NewStore().Repos()
	return catalog.NewUseCase(repos.Products, repos.Prices, cache.NoopPriceCache{})
}

func TestCreateProduct_Vendable(t *testing.T) {
	uc := newUseCase()
	unit := "casier"
	size := dec("24")

	p, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:     "Primus 72cl",
		Vendable: true,
		Category: "boisson",
		SaleUnit: "bouteille",
		PackUnit: &unit,
		PackSize: &size,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.True(t, p.CostCDF.IsZero(), "le coût moyen part de zéro")

	got, err := uc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Primus 72cl", got.Name)
}

func TestCreateProduct_Validation(t *testing.T) {
	uc := newUseCase()
	zero := decimal.Zero

	cases := []dto.CreateProductRequest{
		// Nom vide.
		{SaleUnit: "bouteille", Category: "boisson", Vendable: true},
		// Unité de vente vide.
		{Name: "Primus", Category: "boisson", Vendable: true},
		// Vendable hors boisson/cuisine.
		{Name: "Primus", SaleUnit: "bouteille", Category: "divers", Vendable: true},
		// Casier de taille nulle.
		{Name: "Primus", SaleUnit: "bouteille", Category: "boisson", Vendable: true, PackSize: &zero},
	}
	for i, req := range cases {
		_, err := uc.CreateProduct(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cas %d", i)
	}
}

func TestCreateProduct_DoublonRefuse(t *testing.T) {
	uc := newUseCase()
	req := dto.CreateProductRequest{Name: "Café  Noir", Vendable: true, Category: "cuisine", SaleUnit: "tasse"}

	_, err := uc.CreateProduct(context.Background(), req)
	require.NoError(t, err)

	// Même clé normalisée, même type: refusé.
	req.Name = "cafe noir"
	_, err = uc.CreateProduct(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSetPrice_FigeLeDollarAuTaux(t *testing.T) {
	uc := newUseCase()
	p, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name: "Tembo 72cl", Vendable: true, Category: "boisson", SaleUnit: "bouteille",
	})
	require.NoError(t, err)

	price, err := uc.SetPrice(context.Background(), p.ID, dto.CreatePriceRequest{
		Space: "terrasse", PriceCDF: dec("5600"), Rate: dec("2800"),
	})
	require.NoError(t, err)
	assert.True(t, dec("2").Equal(price.PriceUSD), "5600/2800")

	prices, err := uc.ListPrices(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.True(t, dec("5600").Equal(prices[0].PriceCDF))
}

func TestSetPrice_NonVendableRefuse(t *testing.T) {
	uc := newUseCase()
	p, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name: "Charbon", Vendable: false, SaleUnit: "sac",
	})
	require.NoError(t, err)

	_, err = uc.SetPrice(context.Background(), p.ID, dto.CreatePriceRequest{
		Space: "terrasse", PriceCDF: dec("1000"), Rate: dec("2800"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetPrice_ProduitInconnu(t *testing.T) {
	uc := newUseCase()
	_, err := uc.SetPrice(context.Background(), "absent", dto.CreatePriceRequest{
		Space: "terrasse", PriceCDF: dec("1000"), Rate: dec("2800"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
