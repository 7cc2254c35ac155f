package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngandu/barresto-api/internal/domain"
	"github.com/ngandu/barresto-api/internal/domain/money"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewSnapshot_TauxInvalide(t *testing.T) {
	_, err := money.NewSnapshot(decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "taux nul refusé")

	_, err = money.NewSnapshot(dec("-2800"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "taux négatif refusé")
}

func TestSnapshot_Hard_ConversionFigee(t *testing.T) {
	snap, err := money.NewSnapshot(dec("2800"))
	require.NoError(t, err)

	// 56000 CDF à 2800 CDF/USD = 20.00 USD exactement.
	assert.True(t, dec("20").Equal(snap.Hard(dec("56000"))))

	// Division non exacte arrondie au centime.
	assert.True(t, dec("10.71").Equal(snap.Hard(dec("30000"))), "30000/2800 = 10.714... -> 10.71")
}

// Le coût unitaire d'un casier doit reproduire le prix du casier à
// l'arrondi près: 35000 / 24 * 24 doit retomber sur 35000 à 0.01 près.
func TestUnitCost_PrecisionCasier(t *testing.T) {
	unit := money.UnitCost(dec("35000"), dec("24"))
	back := money.PackPrice(unit, dec("24"))

	diff := back.Sub(dec("35000")).Abs()
	assert.True(t, diff.LessThanOrEqual(dec("0.01")),
		"reconstruction du prix de casier: écart %s", diff)
}

func TestUnitCost_ProduitALUnite(t *testing.T) {
	// PackSize non positif: le prix d'achat est déjà unitaire.
	assert.True(t, dec("1500").Equal(money.UnitCost(dec("1500"), decimal.Zero)))
}

func TestAverageCost_MoyennePonderee(t *testing.T) {
	// 10 unités à 1000 + 20 unités à 1600 = 30 unités à 1400.
	got := money.AverageCost(dec("10"), dec("1000"), dec("20"), dec("1600"))
	assert.True(t, dec("1400").Equal(got), "obtenu %s", got)
}

func TestAverageCost_StockNul(t *testing.T) {
	// Premier achat: le coût moyen est le coût d'entrée.
	got := money.AverageCost(decimal.Zero, decimal.Zero, dec("24"), dec("1458.333333"))
	assert.True(t, dec("1458.333333").Equal(got))

	// Somme nulle: zéro, jamais de division par zéro.
	assert.True(t, money.AverageCost(decimal.Zero, dec("100"), decimal.Zero, dec("200")).IsZero())
}
