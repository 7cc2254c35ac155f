package repository

import "github.com/ngandu/barresto-api/internal/domain/entity"

// StockRepository port de consultation/mise à jour du stock par (produit, emplacement).
// Utilisé dans des transactions pour garantir la cohérence.
type StockRepository interface {
	Get(productID string, location entity.Location) (*entity.StockItem, error)
	// GetForUpdate bloque la ligne pour la durée de la transaction
	// (SELECT FOR UPDATE): la vérification "assez de stock ?" et le décrément
	// forment une seule étape atomique.
	GetForUpdate(productID string, location entity.Location) (*entity.StockItem, error)
	Upsert(item *entity.StockItem) error
}
