package money

import (
	"github.com/shopspring/decimal"

	"github.com/ngandu/barresto-api/internal/domain"
)

// Précisions de stockage: les montants en dollars sont arrondis au centime,
// les coûts unitaires issus d'une division par casier gardent 6 décimales
// (l'arrondi final se fait à l'affichage, jamais au stockage intermédiaire).
const (
	HardScale     = 2
	UnitCostScale = 6
)

// Snapshot fige le taux de change CDF/USD d'une transaction. Le montant en
// francs est la vérité comptable; le montant en dollars est calculé une seule
// fois avec ce taux puis stocké, jamais recalculé avec un taux ultérieur.
type Snapshot struct {
	Rate decimal.Decimal // francs pour un dollar
}

// NewSnapshot valide le taux (strictement positif).
func NewSnapshot(rate decimal.Decimal) (Snapshot, error) {
	if !rate.IsPositive() {
		return Snapshot{}, domain.ErrInvalidInput
	}
	return Snapshot{Rate: rate}, nil
}

// Hard convertit un montant en francs vers le dollar au taux figé.
func (s Snapshot) Hard(localCDF decimal.Decimal) decimal.Decimal {
	return localCDF.DivRound(s.Rate, HardScale)
}

// UnitCost calcule le coût unitaire en francs depuis un prix de casier.
// La division est portée en pleine précision: UnitCost * packSize doit
// reproduire le prix du casier à l'arrondi près.
func UnitCost(batchPriceCDF, packSize decimal.Decimal) decimal.Decimal {
	if !packSize.IsPositive() {
		return batchPriceCDF
	}
	return batchPriceCDF.DivRound(packSize, UnitCostScale)
}

// PackPrice reconstitue le prix du casier depuis le coût unitaire stocké
// (affichage en mode édition).
func PackPrice(unitCostCDF, packSize decimal.Decimal) decimal.Decimal {
	return unitCostCDF.Mul(packSize)
}
