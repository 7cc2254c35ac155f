package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ngandu/barresto-api/internal/application/dto"
	"github.com/ngandu/barresto-api/internal/application/purchase"
	"github.com/ngandu/barresto-api/internal/domain/entity"
)

// PurchaseHandler gère les achats groupés (protégé).
type PurchaseHandler struct {
	uc *purchase.UseCase
}

// NewPurchaseHandler construit le handler.
func NewPurchaseHandler(uc *purchase.UseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

func toPurchaseInput(in dto.CreatePurchaseRequest, actor string) purchase.CreateInput {
	items := make([]purchase.LineInput, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, purchase.LineInput{
			ProductID:     item.ProductID,
			NewName:       item.NewName,
			NewUnit:       item.NewUnit,
			Quantity:      item.Quantity,
			BatchPriceCDF: item.BatchPriceCDF,
			Destination:   entity.Location(item.Destination),
		})
	}
	var date time.Time
	if in.Date != nil {
		date = *in.Date
	}
	return purchase.CreateInput{
		Label:           in.Label,
		Items:           items,
		TotalCDF:        in.TotalCDF,
		TransportFeeCDF: in.TransportFeeCDF,
		Source:          in.Source,
		Rate:            in.Rate,
		Date:            date,
		Actor:           actor,
	}
}

func toPurchaseResponse(inv *entity.Investment) dto.PurchaseResponse {
	return dto.PurchaseResponse{
		ID:                    inv.ID,
		Label:                 inv.Label,
		Date:                  inv.Date,
		TotalCDF:              inv.TotalCDF,
		TotalUSD:              inv.TotalUSD,
		TransportFeeCDF:       inv.TransportFeeCDF,
		VendableCostCDF:       inv.VendableCostCDF,
		NonVendableCostCDF:    inv.NonVendableCostCDF,
		ExpectedRevenueCDF:    inv.ExpectedRevenueCDF,
		ExpectedRevenueVIPCDF: inv.ExpectedRevenueVIPCDF,
		ExpectedProfitCDF:     inv.ExpectedProfitCDF,
		ExpectedProfitVIPCDF:  inv.ExpectedProfitVIPCDF,
		Source:                inv.Source,
		Rate:                  inv.Rate,
	}
}

// Create godoc
// @Summary      Enregistrer un achat groupé
// @Description  Crée l'en-tête, les éventuels nouveaux produits non vendables,
// @Description  un mouvement IN par ligne et la projection de rentabilité, en une transaction.
// @Tags         investments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "label, items, total_cdf, transport_fee_cdf, source, rate"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/investments [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	inv, err := h.uc.Create(c.Context(), toPurchaseInput(in, GetUserID(c)))
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseResponse(inv))
}

// Update godoc
// @Summary      Éditer un achat groupé
// @Description  Inverse exactement les mouvements liés puis rejoue la création
// @Description  avec les nouvelles lignes sous le même ID, en une transaction.
// @Tags         investments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID achat"
// @Param        body  body  dto.CreatePurchaseRequest  true  "nouvelles lignes et montants"
// @Success      200   {object}  dto.PurchaseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/investments/{id} [put]
func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	inv, err := h.uc.Update(c.Context(), c.Params("id"), toPurchaseInput(in, GetUserID(c)))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(toPurchaseResponse(inv))
}

// Delete godoc
// @Summary      Supprimer un achat groupé
// @Description  Inverse les mouvements liés puis efface journal lié et en-tête.
// @Tags         investments
// @Security     Bearer
// @Param        id  path  string  true  "ID achat"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/investments/{id} [delete]
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Consulter un achat avec ses mouvements
// @Tags         investments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID achat"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/investments/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	inv, movs, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(fiber.Map{
		"investment": toPurchaseResponse(inv),
		"movements":  toMovementResponses(movs),
	})
}

// List godoc
// @Summary      Lister les achats
// @Tags         investments
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Taille de page (20 par défaut)"
// @Param        offset  query  int  false  "Décalage"
// @Success      200  {array}  dto.PurchaseResponse
// @Router       /api/investments [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pagination invalide"})
	}
	page.DefaultPage()
	invs, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return handleError(c, err)
	}
	resp := make([]dto.PurchaseResponse, 0, len(invs))
	for _, inv := range invs {
		resp = append(resp, toPurchaseResponse(inv))
	}
	return c.JSON(resp)
}
