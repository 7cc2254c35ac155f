package entity

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Catégories de produit (détermine l'emplacement de stock par défaut d'une vente).
const (
	CategoryBoisson = "boisson" // décompté du FRIGO
	CategoryCuisine = "cuisine" // décompté de la CUISINE
)

// Product représente un article du catalogue.
// Vendable = destiné à la revente; les achats internes (charges) créent des
// produits non vendables. PackUnit/PackSize décrivent l'unité d'achat en gros
// (ex: casier de 24 bouteilles); SaleUnit est l'unité de vente et de stock.
// CostCDF est le coût unitaire moyen pondéré, mis à jour par les achats.
type Product struct {
	ID        string
	Name      string
	NameKey   string // clé naturelle normalisée, unique par (NameKey, Vendable)
	Vendable  bool
	Category  string
	SaleUnit  string
	PackUnit  *string
	PackSize  *decimal.Decimal // facteur casier -> unité (ex: 24)
	CostCDF   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UnitsPerPack retourne le facteur de conversion casier -> unité (1 si le
// produit s'achète à l'unité).
func (p *Product) UnitsPerPack() decimal.Decimal {
	if p.PackSize == nil || !p.PackSize.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return *p.PackSize
}

// SaleLocation retourne l'emplacement décompté lors d'une vente selon la catégorie.
func (p *Product) SaleLocation() Location {
	if p.Category == CategoryBoisson {
		return LocationFrigo
	}
	return LocationCuisine
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NameKey normalise un nom de produit en clé naturelle: minuscules, accents
// supprimés, espaces internes réduits. "  Café  Noir " et "cafe noir"
// donnent la même clé; la déduplication à l'achat repose dessus.
func NameKey(name string) string {
	s, _, err := transform.String(stripAccents, name)
	if err != nil {
		s = name
	}
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
