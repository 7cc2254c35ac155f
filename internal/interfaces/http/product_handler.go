package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ngandu/barresto-api/internal/application/catalog"
	"github.com/ngandu/barresto-api/internal/application/dto"
)

// ProductHandler gère les requêtes HTTP du catalogue (protégé).
type ProductHandler struct {
	uc *catalog.UseCase
}

// NewProductHandler construit le handler.
func NewProductHandler(uc *catalog.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Créer un produit
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "name, vendable, category, sale_unit, pack_unit, pack_size"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	product, err := h.uc.CreateProduct(c.Context(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// GetByID godoc
// @Summary      Consulter un produit
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID produit"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(product)
}

// List godoc
// @Summary      Lister les produits
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Taille de page (20 par défaut)"
// @Param        offset  query  int  false  "Décalage"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pagination invalide"})
	}
	products, err := h.uc.ListProducts(c.Context(), page)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(products)
}

// SetPrice godoc
// @Summary      Fixer le prix d'un produit pour un espace
// @Description  Le prix en francs est canonique; le prix en dollars est figé au taux fourni.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID produit"
// @Param        body  body  dto.CreatePriceRequest  true  "space, price_cdf, rate"
// @Success      201   {object}  dto.PriceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/prices [post]
func (h *ProductHandler) SetPrice(c *fiber.Ctx) error {
	var in dto.CreatePriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	price, err := h.uc.SetPrice(c.Context(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(price)
}

// ListPrices godoc
// @Summary      Lister les prix d'un produit par espace
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID produit"
// @Success      200  {array}  dto.PriceResponse
// @Router       /api/products/{id}/prices [get]
func (h *ProductHandler) ListPrices(c *fiber.Ctx) error {
	prices, err := h.uc.ListPrices(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(prices)
}
