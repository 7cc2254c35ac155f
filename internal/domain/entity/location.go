package entity

// Location emplacement physique de stock (ensemble fermé).
type Location string

const (
	LocationDepot    Location = "DEPOT"
	LocationFrigo    Location = "FRIGO"
	LocationCuisine  Location = "CUISINE"
	LocationEconomat Location = "ECONOMAT"
)

// Valid indique si l'emplacement fait partie de l'ensemble fermé.
func (l Location) Valid() bool {
	switch l {
	case LocationDepot, LocationFrigo, LocationCuisine, LocationEconomat:
		return true
	}
	return false
}
