package dto

// CreateClientRequest body pour POST /api/clients.
type CreateClientRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ClientResponse représentation d'un client fidélité.
type ClientResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Points int64  `json:"points"`
}

// ClientBalanceResponse solde de points (projection en lecture seule).
type ClientBalanceResponse struct {
	ClientID string `json:"client_id"`
	Points   int64  `json:"points"`
}
