package purchase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ngandu/barresto-api/internal/domain/entity"
)

func price(space, cdf string) *entity.SalePrice {
	return &entity.SalePrice{Space: space, PriceCDF: decimal.RequireFromString(cdf)}
}

func TestStandardPrice_EspaceLitteral(t *testing.T) {
	prices := []*entity.SalePrice{
		price("VIP", "5000"),
		price("Terrasse", "3000"),
	}
	assert.True(t, decimal.RequireFromString("3000").Equal(StandardPrice(prices)))
}

func TestStandardPrice_RetombeSurPremierNonVIP(t *testing.T) {
	prices := []*entity.SalePrice{
		price("Salon VIP", "5000"),
		price("Jardin", "3500"),
	}
	assert.True(t, decimal.RequireFromString("3500").Equal(StandardPrice(prices)))
}

func TestStandardPrice_AucunPrix(t *testing.T) {
	assert.True(t, StandardPrice(nil).IsZero())
	// Uniquement des prix VIP: pas de prix standard.
	assert.True(t, StandardPrice([]*entity.SalePrice{price("VIP", "5000")}).IsZero())
}

func TestVIPPrice_EspaceContenantVIP(t *testing.T) {
	prices := []*entity.SalePrice{
		price("terrasse", "3000"),
		price("Salon VIP", "5000"),
	}
	assert.True(t, decimal.RequireFromString("5000").Equal(VIPPrice(prices)))
}

func TestVIPPrice_RetombeSurStandard(t *testing.T) {
	prices := []*entity.SalePrice{price("salle", "3000")}
	assert.True(t, decimal.RequireFromString("3000").Equal(VIPPrice(prices)))
}
