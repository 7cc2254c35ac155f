package domain

import "errors"

// Erreurs de domaine (sans dépendances externes).
var (
	ErrNotFound           = errors.New("ressource introuvable")
	ErrInvalidInput       = errors.New("entrée invalide")
	ErrDuplicate          = errors.New("ressource dupliquée")
	ErrUnauthorized       = errors.New("non autorisé")
	ErrForbidden          = errors.New("accès refusé")
	ErrInsufficientStock  = errors.New("stock insuffisant")
	ErrInvalidTransition  = errors.New("transition d'état invalide")
	ErrEmailAlreadyExists = errors.New("l'email est déjà enregistré")
)
