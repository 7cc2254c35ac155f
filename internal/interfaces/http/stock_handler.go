package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ngandu/barresto-api/internal/application/dto"
	"github.com/ngandu/barresto-api/internal/application/stock"
	"github.com/ngandu/barresto-api/internal/domain/entity"
	"github.com/ngandu/barresto-api/internal/domain/repository"
)

// StockHandler gère les requêtes HTTP du stock et du journal (protégé).
type StockHandler struct {
	uc *stock.LedgerUseCase
}

// NewStockHandler construit le handler.
func NewStockHandler(uc *stock.LedgerUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// RecordMovement godoc
// @Summary      Enregistrer un mouvement de stock
// @Description  IN: to obligatoire. OUT: from obligatoire. ADJUSTMENT: exactement un côté.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "type, product_id, quantity, from/to, cost_cdf, reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	input := stock.MovementInput{
		Type:      in.Type,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		CostCDF:   in.CostCDF,
		Actor:     GetUserID(c),
		Reason:    in.Reason,
	}
	if in.From != "" {
		loc := entity.Location(in.From)
		input.From = &loc
	}
	if in.To != "" {
		loc := entity.Location(in.To)
		input.To = &loc
	}
	mov, err := h.uc.RecordMovement(c.Context(), input)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// GetQuantity godoc
// @Summary      Quantité actuelle pour (produit, emplacement)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  path   string  true  "ID produit"
// @Param        location    query  string  true  "DEPOT | FRIGO | CUISINE | ECONOMAT"
// @Success      200  {object}  dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/{product_id} [get]
func (h *StockHandler) GetQuantity(c *fiber.Ctx) error {
	productID := c.Params("product_id")
	location := entity.Location(c.Query("location"))
	qty, err := h.uc.CurrentQuantity(c.Context(), productID, location)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.StockResponse{
		ProductID: productID,
		Location:  string(location),
		Quantity:  qty,
	})
}

// ListMovements godoc
// @Summary      Consulter le journal des mouvements
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id     query  string  false  "Filtrer par produit"
// @Param        location       query  string  false  "Filtrer par emplacement"
// @Param        investment_id  query  string  false  "Filtrer par achat"
// @Param        sale_id        query  string  false  "Filtrer par vente"
// @Param        from           query  string  false  "Date de début (RFC3339)"
// @Param        to             query  string  false  "Date de fin exclusive (RFC3339)"
// @Param        limit          query  int     false  "Taille de page (50 par défaut)"
// @Param        offset         query  int     false  "Décalage"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		ProductID:    c.Query("product_id"),
		Location:     entity.Location(c.Query("location")),
		InvestmentID: c.Query("investment_id"),
		SaleID:       c.Query("sale_id"),
		Limit:        c.QueryInt("limit"),
		Offset:       c.QueryInt("offset"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from invalide (RFC3339 attendu)"})
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to invalide (RFC3339 attendu)"})
		}
		filter.To = &t
	}
	movs, err := h.uc.ListMovements(c.Context(), filter)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(toMovementResponses(movs))
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	resp := dto.MovementResponse{
		ID:           m.ID,
		Type:         m.Type,
		ProductID:    m.ProductID,
		Quantity:     m.Quantity,
		CostCDF:      m.CostCDF,
		InvestmentID: m.InvestmentID,
		SaleID:       m.SaleID,
		Actor:        m.Actor,
		Reason:       m.Reason,
		CreatedAt:    m.CreatedAt,
	}
	if m.From != nil {
		s := string(*m.From)
		resp.From = &s
	}
	if m.To != nil {
		s := string(*m.To)
		resp.To = &s
	}
	return resp
}

func toMovementResponses(movs []*entity.StockMovement) []dto.MovementResponse {
	resp := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		resp = append(resp, toMovementResponse(m))
	}
	return resp
}
