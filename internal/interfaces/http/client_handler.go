package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ngandu/barresto-api/internal/application/client"
	"github.com/ngandu/barresto-api/internal/application/dto"
)

// ClientHandler gère les clients fidélité (protégé).
type ClientHandler struct {
	uc *client.UseCase
}

// NewClientHandler construit le handler.
func NewClientHandler(uc *client.UseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create godoc
// @Summary      Créer un client fidélité
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "name, phone"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	resp, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary      Consulter un client
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID client"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Lister les clients
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Taille de page (20 par défaut)"
// @Param        offset  query  int  false  "Décalage"
// @Success      200  {array}  dto.ClientResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pagination invalide"})
	}
	resp, err := h.uc.List(c.Context(), page)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// Balance godoc
// @Summary      Solde de points recalculé depuis le grand livre
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID client"
// @Success      200  {object}  dto.ClientBalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/balance [get]
func (h *ClientHandler) Balance(c *fiber.Ctx) error {
	resp, err := h.uc.Balance(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}
