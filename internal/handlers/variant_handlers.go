package handlers

import (
	"net/http"

	"github.com/mandic19/Shop/internal/common"
	"github.com/mandic19/Shop/internal/models"
	"github.com/mandic19/Shop/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// VariantHandlers handles HTTP requests for product variants
type VariantHandlers struct {
	variantService services.VariantService
}

func NewVariantHandlers(variantService services.VariantService) *VariantHandlers {
	return &VariantHandlers{variantService: variantService}
}

type createVariantRequest struct {
	ProductID uuid.UUID        `json:"product_id"`
	Handle    string           `json:"handle"`
	Price     *decimal.Decimal `json:"price"`
}

// ListVariants handles GET /variants, optionally filtered by ?product_id=
func (h *VariantHandlers) ListVariants(c echo.Context) error {
	var filter models.VariantListFilter
	if raw := c.QueryParam("product_id"); raw != "" {
		productID, err := common.ValidateUUID(raw, "product_id")
		if err != nil {
			return common.SendValidationError(c, "product_id", err.Error())
		}
		filter.ProductID = &productID
	}

	result, err := h.variantService.List(c.Request().Context(), pageRequest(c, defaultCatalogPerPage), filter)
	if err != nil {
		return respondError(c, err, "Failed to retrieve variants")
	}
	return c.JSON(http.StatusOK, result)
}

// CreateVariant handles POST /variants
func (h *VariantHandlers) CreateVariant(c echo.Context) error {
	var req createVariantRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}
	if req.Price == nil {
		return common.SendValidationError(c, "price", "The price field is required.")
	}

	variant := &models.Variant{
		ProductID: req.ProductID,
		Handle:    req.Handle,
		Price:     *req.Price,
	}
	if err := h.variantService.Create(c.Request().Context(), variant); err != nil {
		return respondError(c, err, "Failed to create variant")
	}

	return c.JSON(http.StatusCreated, Message{
		Message: "Variant created successfully",
		Data:    variant,
	})
}

// GetVariant handles GET /variants/:id and embeds the parent product
func (h *VariantHandlers) GetVariant(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	variant, err := h.variantService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Failed to retrieve variant")
	}
	return c.JSON(http.StatusOK, Data{Data: variant})
}

func (h *VariantHandlers) UpdateVariant(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	var update models.VariantUpdate
	if ok, err := bindJSON(c, &update); !ok {
		return err
	}

	variant, err := h.variantService.Update(c.Request().Context(), id, &update)
	if err != nil {
		return respondError(c, err, "Failed to update variant")
	}
	return c.JSON(http.StatusOK, Data{Data: variant})
}

func (h *VariantHandlers) DeleteVariant(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	if err := h.variantService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Failed to delete variant")
	}
	return c.NoContent(http.StatusNoContent)
}
