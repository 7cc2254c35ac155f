package loyalty_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ngandu/barresto-api/internal/domain/loyalty"
)

func TestPointsFor_PlancherEntier(t *testing.T) {
	cases := []struct {
		total string
		want  int64
	}{
		{"0", 0},
		{"19999", 0},
		{"20000", 1},
		{"28000", 1},  // vente de 28000 CDF -> 1 point, le reste ne compte pas
		{"39999", 1},
		{"40000", 2},
		{"100000", 5},
	}
	for _, c := range cases {
		got := loyalty.PointsFor(decimal.RequireFromString(c.total), loyalty.DefaultDivisor)
		assert.Equal(t, c.want, got, "total %s", c.total)
	}
}

func TestPointsFor_DiviseurInvalide(t *testing.T) {
	assert.Zero(t, loyalty.PointsFor(decimal.RequireFromString("50000"), 0))
	assert.Zero(t, loyalty.PointsFor(decimal.RequireFromString("50000"), -1))
}

func TestPointsFor_TotalNegatif(t *testing.T) {
	assert.Zero(t, loyalty.PointsFor(decimal.RequireFromString("-28000"), loyalty.DefaultDivisor))
}
