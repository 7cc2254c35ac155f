package purchase

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ngandu/barresto-api/internal/domain/entity"
)

// Espaces considérés comme le prix "standard" de référence.
var standardSpaces = map[string]bool{
	"terrasse": true,
	"salle":    true,
	"standard": true,
}

func spaceKey(space string) string {
	return strings.ToLower(strings.TrimSpace(space))
}

// StandardPrice sélectionne le prix standard pour la projection de revente:
// d'abord un espace littéralement nommé terrasse/salle/standard (insensible
// à la casse, espaces ignorés), sinon le premier prix d'un espace dont le nom
// ne contient pas "vip", sinon zéro.
func StandardPrice(prices []*entity.SalePrice) decimal.Decimal {
	for _, p := range prices {
		if standardSpaces[spaceKey(p.Space)] {
			return p.PriceCDF
		}
	}
	for _, p := range prices {
		if !strings.Contains(spaceKey(p.Space), "vip") {
			return p.PriceCDF
		}
	}
	return decimal.Zero
}

// VIPPrice sélectionne le prix d'un espace dont le nom contient "vip";
// à défaut, retombe sur le prix standard.
func VIPPrice(prices []*entity.SalePrice) decimal.Decimal {
	for _, p := range prices {
		if strings.Contains(spaceKey(p.Space), "vip") {
			return p.PriceCDF
		}
	}
	return StandardPrice(prices)
}
