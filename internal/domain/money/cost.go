package money

import "github.com/shopspring/decimal"

// AverageCost implémente le coût moyen pondéré (service de domaine).
// NouveauCout = ((StockActuel * CoutActuel) + (QteEntree * CoutEntree)) / (StockActuel + QteEntree)
func AverageCost(stockActuel, coutActuel, qteEntree, coutEntree decimal.Decimal) decimal.Decimal {
	sum := stockActuel.Add(qteEntree)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActuel.Mul(coutActuel).Add(qteEntree.Mul(coutEntree))
	return num.DivRound(sum, UnitCostScale)
}
