package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ngandu/barresto-api/internal/domain/entity"
)

func TestNameKey_Normalisation(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Café Noir", "cafe noir"},
		{"  cafe   NOIR  ", "cafe noir"},
		{"Bière Tembo", "biere tembo"},
		{"PRIMUS 72cl", "primus 72cl"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, entity.NameKey(c.in), "entrée %q", c.in)
	}
}

func TestNameKey_ClesIdentiquesPourVariantes(t *testing.T) {
	// La déduplication à l'achat repose sur cette égalité.
	assert.Equal(t, entity.NameKey("Café  Noir"), entity.NameKey("cafe noir"))
}

func TestProduct_UnitsPerPack(t *testing.T) {
	size := decimal.NewFromInt(24)
	p := &entity.Product{PackSize: &size}
	assert.True(t, size.Equal(p.UnitsPerPack()))

	// Sans casier: facteur 1.
	assert.True(t, decimal.NewFromInt(1).Equal((&entity.Product{}).UnitsPerPack()))

	zero := decimal.Zero
	assert.True(t, decimal.NewFromInt(1).Equal((&entity.Product{PackSize: &zero}).UnitsPerPack()))
}

func TestProduct_SaleLocation(t *testing.T) {
	boisson := &entity.Product{Category: entity.CategoryBoisson}
	assert.Equal(t, entity.LocationFrigo, boisson.SaleLocation())

	cuisine := &entity.Product{Category: entity.CategoryCuisine}
	assert.Equal(t, entity.LocationCuisine, cuisine.SaleLocation())
}

func TestCanTransition(t *testing.T) {
	assert.True(t, entity.CanTransition(entity.SaleStatusDraft, entity.SaleStatusCompleted))
	assert.True(t, entity.CanTransition(entity.SaleStatusDraft, entity.SaleStatusCancelled))
	assert.True(t, entity.CanTransition(entity.SaleStatusCompleted, entity.SaleStatusCancelled))

	// CANCELLED est terminal et une vente ne se finalise qu'une fois.
	assert.False(t, entity.CanTransition(entity.SaleStatusCancelled, entity.SaleStatusDraft))
	assert.False(t, entity.CanTransition(entity.SaleStatusCancelled, entity.SaleStatusCompleted))
	assert.False(t, entity.CanTransition(entity.SaleStatusCompleted, entity.SaleStatusDraft))
	assert.False(t, entity.CanTransition(entity.SaleStatusCompleted, entity.SaleStatusCompleted))
}

func TestLocation_Valid(t *testing.T) {
	for _, l := range []entity.Location{entity.LocationDepot, entity.LocationFrigo, entity.LocationCuisine, entity.LocationEconomat} {
		assert.True(t, l.Valid())
	}
	assert.False(t, entity.Location("BAR").Valid())
	assert.False(t, entity.Location("").Valid())
}
