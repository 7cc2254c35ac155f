package loyalty

import "github.com/shopspring/decimal"

// DefaultDivisor francs par point de fidélité.
const DefaultDivisor int64 = 20000

// PointsFor calcule les points gagnés sur le total en francs d'une vente
// finalisée: floor(totalCDF / divisor). Fonction pure, appliquée exactement
// une fois à la finalisation et inversée exactement une fois à l'annulation.
func PointsFor(totalCDF decimal.Decimal, divisor int64) int64 {
	if divisor <= 0 || !totalCDF.IsPositive() {
		return 0
	}
	return totalCDF.Div(decimal.NewFromInt(divisor)).IntPart()
}
