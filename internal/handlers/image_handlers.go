package handlers

import (
	"net/http"

	"github.com/mandic19/Shop/internal/models"
	"github.com/mandic19/Shop/internal/services"

	"github.com/labstack/echo/v4"
)

// ImageHandlers handles HTTP requests for images and uploads
type ImageHandlers struct {
	imageService services.ImageService
}

func NewImageHandlers(imageService services.ImageService) *ImageHandlers {
	return &ImageHandlers{imageService: imageService}
}

type imageRequest struct {
	URL string `json:"url"`
}

// ListImages handles GET /images
func (h *ImageHandlers) ListImages(c echo.Context) error {
	result, err := h.imageService.List(c.Request().Context(), pageRequest(c, defaultImagePerPage))
	if err != nil {
		return respondError(c, err, "Failed to retrieve images")
	}
	return c.JSON(http.StatusOK, result)
}

// CreateImage handles POST /images for externally hosted images
func (h *ImageHandlers) CreateImage(c echo.Context) error {
	var req imageRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}

	image := &models.Image{URL: req.URL}
	if err := h.imageService.Create(c.Request().Context(), image); err != nil {
		return respondError(c, err, "Failed to create image")
	}

	return c.JSON(http.StatusCreated, Message{
		Message: "Image created successfully",
		Data:    image,
	})
}

// UploadImage handles POST /images/upload
//
//	@Summary	Upload an image binary
//	@Tags		images
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		file	formData	file	true	"Image file"
//	@Success	201		{object}	Message
//	@Failure	422		{object}	common.ErrorResponse
//	@Router		/images/upload [post]
func (h *ImageHandlers) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()

	var upload services.ImageUpload
	if fh, err := c.FormFile("file"); err == nil {
		file, err := fh.Open()
		if err != nil {
			return respondError(c, err, "Failed to upload image")
		}
		defer file.Close()

		upload = services.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Reader:      file,
		}
	}

	image, err := h.imageService.Upload(ctx, upload)
	if err != nil {
		return respondError(c, err, "Failed to upload image")
	}

	return c.JSON(http.StatusCreated, Message{
		Message: "Image uploaded successfully",
		Data:    image,
	})
}

func (h *ImageHandlers) GetImage(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	image, err := h.imageService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Failed to retrieve image")
	}
	return c.JSON(http.StatusOK, Data{Data: image})
}

// GetImageURL handles GET /images/:id/url
func (h *ImageHandlers) GetImageURL(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	url, err := h.imageService.GetURL(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Failed to generate image URL")
	}
	return c.JSON(http.StatusOK, Data{Data: map[string]string{"url": url}})
}

func (h *ImageHandlers) UpdateImage(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	var req imageRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}

	image, err := h.imageService.Update(c.Request().Context(), id, req.URL)
	if err != nil {
		return respondError(c, err, "Failed to update image")
	}
	return c.JSON(http.StatusOK, Data{Data: image})
}

func (h *ImageHandlers) DeleteImage(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	if err := h.imageService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Failed to delete image")
	}
	return c.NoContent(http.StatusNoContent)
}
