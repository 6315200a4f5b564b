package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mandic19/Shop/internal/common"
	"github.com/mandic19/Shop/internal/models"
	"github.com/mandic19/Shop/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ProductHandlers handles HTTP requests for products
type ProductHandlers struct {
	productService services.ProductService
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{
		productService: productService,
	}
}

type createProductRequest struct {
	Title   string           `json:"title"`
	Handle  string           `json:"handle"`
	Price   *decimal.Decimal `json:"price"`
	ImageID *uuid.UUID       `json:"image_id"`
}

type updateProductRequest struct {
	Title   *string          `json:"title"`
	Handle  *string          `json:"handle"`
	Price   *decimal.Decimal `json:"price"`
	ImageID nullableUUID     `json:"image_id"`
}

// nullableUUID tells an explicit null apart from an absent field.
type nullableUUID struct {
	Set   bool
	Value *uuid.UUID
}

func (n *nullableUUID) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	n.Value = &id
	return nil
}

// ListProducts handles GET /products
//
//	@Summary	List products
//	@Tags		products
//	@Produce	json
//	@Param		page		query		int		false	"Page"
//	@Param		per_page	query		int		false	"Items per page"
//	@Param		with[]		query		string	false	"Relations to load (image)"
//	@Success	200			{object}	models.ProductPage
//	@Router		/products [get]
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	page := pageRequest(c, defaultCatalogPerPage)
	filter := models.ProductListFilter{WithImage: wantsRelation(c, "image")}

	result, err := h.productService.List(c.Request().Context(), page, filter)
	if err != nil {
		return respondError(c, err, "Failed to retrieve products")
	}
	return c.JSON(http.StatusOK, result)
}

// CreateProduct handles POST /products
//
//	@Summary	Create a product
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		product	body		createProductRequest	true	"Product"
//	@Success	201		{object}	Message
//	@Failure	422		{object}	common.ErrorResponse
//	@Router		/products [post]
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}
	if req.Price == nil {
		return common.SendValidationError(c, "price", "The price field is required.")
	}

	product := &models.Product{
		Title:   req.Title,
		Handle:  req.Handle,
		Price:   *req.Price,
		ImageID: req.ImageID,
	}
	if err := h.productService.Create(c.Request().Context(), product); err != nil {
		return respondError(c, err, "Failed to create product")
	}

	return c.JSON(http.StatusCreated, Message{
		Message: "Product created successfully",
		Data:    product,
	})
}

// GetProduct handles GET /products/:id
//
//	@Summary	Show a product with its image
//	@Tags		products
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"
//	@Success	200	{object}	Data
//	@Failure	404	{object}	common.ErrorResponse
//	@Router		/products/{id} [get]
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	product, err := h.productService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Failed to retrieve product")
	}
	return c.JSON(http.StatusOK, Data{Data: product})
}

// UpdateProduct handles PUT /products/:id
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	var req updateProductRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}

	update := &models.ProductUpdate{
		Title:  req.Title,
		Handle: req.Handle,
		Price:  req.Price,
	}
	if req.ImageID.Set {
		update.ImageID = req.ImageID.Value
		update.ClearImage = req.ImageID.Value == nil
	}

	product, err := h.productService.Update(c.Request().Context(), id, update)
	if err != nil {
		return respondError(c, err, "Failed to update product")
	}
	return c.JSON(http.StatusOK, Data{Data: product})
}

// DeleteProduct handles DELETE /products/:id
//
//	@Summary	Delete a product
//	@Tags		products
//	@Param		id	path	string	true	"Product ID"
//	@Success	204
//	@Failure	404	{object}	common.ErrorResponse
//	@Failure	409	{object}	common.ErrorResponse
//	@Router		/products/{id} [delete]
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Failed to delete product")
	}
	return c.NoContent(http.StatusNoContent)
}
