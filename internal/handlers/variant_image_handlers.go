package handlers

import (
	"net/http"

	"github.com/mandic19/Shop/internal/common"
	"github.com/mandic19/Shop/internal/models"
	"github.com/mandic19/Shop/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// VariantImageHandlers handles the images attached to variants
type VariantImageHandlers struct {
	variantImageService services.VariantImageService
}

func NewVariantImageHandlers(variantImageService services.VariantImageService) *VariantImageHandlers {
	return &VariantImageHandlers{variantImageService: variantImageService}
}

type createVariantImageRequest struct {
	VariantID uuid.UUID `json:"variant_id"`
	ImageID   uuid.UUID `json:"image_id"`
	Position  *int      `json:"position"`
}

// ListVariantImages handles GET /variant-images?variant_id=
func (h *VariantImageHandlers) ListVariantImages(c echo.Context) error {
	variantID, err := common.ValidateUUID(c.QueryParam("variant_id"), "variant_id")
	if err != nil {
		return common.SendValidationError(c, "variant_id", err.Error())
	}

	items, err := h.variantImageService.ListByVariant(c.Request().Context(), variantID)
	if err != nil {
		return respondError(c, err, "Failed to retrieve variant images")
	}
	return c.JSON(http.StatusOK, Data{Data: items})
}

func (h *VariantImageHandlers) CreateVariantImage(c echo.Context) error {
	var req createVariantImageRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}

	variantImage := &models.VariantImage{
		VariantID: req.VariantID,
		ImageID:   req.ImageID,
	}
	if err := h.variantImageService.Create(c.Request().Context(), variantImage, req.Position); err != nil {
		return respondError(c, err, "Failed to attach image")
	}

	return c.JSON(http.StatusCreated, Message{
		Message: "Variant image created successfully",
		Data:    variantImage,
	})
}

func (h *VariantImageHandlers) GetVariantImage(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	variantImage, err := h.variantImageService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Failed to retrieve variant image")
	}
	return c.JSON(http.StatusOK, Data{Data: variantImage})
}

func (h *VariantImageHandlers) UpdateVariantImage(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	var update models.VariantImageUpdate
	if ok, err := bindJSON(c, &update); !ok {
		return err
	}

	variantImage, err := h.variantImageService.Update(c.Request().Context(), id, &update)
	if err != nil {
		return respondError(c, err, "Failed to update variant image")
	}
	return c.JSON(http.StatusOK, Data{Data: variantImage})
}

func (h *VariantImageHandlers) DeleteVariantImage(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	if err := h.variantImageService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Failed to delete variant image")
	}
	return c.NoContent(http.StatusNoContent)
}
