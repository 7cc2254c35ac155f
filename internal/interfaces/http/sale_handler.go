package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ngandu/barresto-api/internal/application/dto"
	"github.com/ngandu/barresto-api/internal/application/sale"
	"github.com/ngandu/barresto-api/internal/domain/entity"
)

// SaleHandler gère le cycle de vie des ventes (protégé).
type SaleHandler struct {
	uc *sale.UseCase
}

// NewSaleHandler construit le handler.
func NewSaleHandler(uc *sale.UseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

func toSaleItems(items []dto.SaleItemRequest) []sale.ItemInput {
	out := make([]sale.ItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, sale.ItemInput{
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			UnitPriceCDF: it.UnitPriceCDF,
		})
	}
	return out
}

func toSaleResponse(s *entity.Sale, items []*entity.SaleItem) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:            s.ID,
		Status:        s.Status,
		TotalCDF:      s.TotalCDF,
		TotalUSD:      s.TotalUSD,
		Rate:          s.Rate,
		PointsEarned:  s.PointsEarned,
		PointsUsed:    s.PointsUsed,
		ClientID:      s.ClientID,
		OrderType:     s.OrderType,
		PaymentMethod: s.PaymentMethod,
		CreatedAt:     s.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:           it.ID,
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			UnitPriceCDF: it.UnitPriceCDF,
			UnitPriceUSD: it.UnitPriceUSD,
			TotalCDF:     it.TotalCDF,
		})
	}
	return resp
}

// Create godoc
// @Summary      Créer une vente
// @Description  En DRAFT rien ne touche le stock; en COMPLETED le stock est
// @Description  décompté dans la même transaction (vente directe).
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "items, client_id, order_type, status, payment_method, rate, points_used"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	s, err := h.uc.Create(c.Context(), sale.CreateInput{
		Items:         toSaleItems(in.Items),
		ClientID:      in.ClientID,
		OrderType:     in.OrderType,
		Status:        in.Status,
		PaymentMethod: in.PaymentMethod,
		Rate:          in.Rate,
		PointsUsed:    in.PointsUsed,
		Actor:         GetUserID(c),
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(s, nil))
}

// Update godoc
// @Summary      Éditer une vente
// @Description  Applique le diff de lignes (ADJUSTMENT par écart sur une vente
// @Description  finalisée) et peut enchaîner une transition de statut.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID vente"
// @Param        body  body  dto.UpdateSaleRequest  true  "items, status, payment_method"
// @Success      200   {object}  dto.SaleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	s, err := h.uc.Update(c.Context(), c.Params("id"), sale.UpdateInput{
		Items:         toSaleItems(in.Items),
		Status:        in.Status,
		PaymentMethod: in.PaymentMethod,
		Actor:         GetUserID(c),
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(toSaleResponse(s, nil))
}

// Finalize godoc
// @Summary      Finaliser une vente DRAFT
// @Description  Décompte le stock, crédite les points, émet bon de préparation
// @Description  et entrée de caisse. Refusé si la vente n'est pas DRAFT.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID vente"
// @Param        body  body  dto.FinalizeSaleRequest  false  "payment_method"
// @Success      200   {object}  dto.SaleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/finalize [post]
func (h *SaleHandler) Finalize(c *fiber.Ctx) error {
	var in dto.FinalizeSaleRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	s, err := h.uc.Finalize(c.Context(), c.Params("id"), in.PaymentMethod, GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(toSaleResponse(s, nil))
}

// Cancel godoc
// @Summary      Annuler une vente
// @Description  Restitue stock et points si la vente était finalisée. Refusé
// @Description  si la vente est déjà annulée.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID vente"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/cancel [post]
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	s, err := h.uc.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(toSaleResponse(s, nil))
}

// GetByID godoc
// @Summary      Consulter une vente avec ses lignes
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID vente"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	s, items, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(toSaleResponse(s, items))
}

// List godoc
// @Summary      Lister les ventes
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Taille de page (20 par défaut)"
// @Param        offset  query  int  false  "Décalage"
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pagination invalide"})
	}
	page.DefaultPage()
	sales, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return handleError(c, err)
	}
	resp := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		resp = append(resp, toSaleResponse(s, nil))
	}
	return c.JSON(resp)
}
