package handlers

import (
	"errors"
	"strconv"

	"github.com/mandic19/Shop/internal/common"
	"github.com/mandic19/Shop/internal/logging"
	"github.com/mandic19/Shop/internal/models"
	"github.com/mandic19/Shop/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	defaultCatalogPerPage = 25
	defaultImagePerPage   = 15
)

// notFoundResources names the resource reported for each not-found sentinel.
var notFoundResources = []struct {
	err      error
	resource string
}{
	{services.ErrProductNotFound, "Product"},
	{services.ErrVariantNotFound, "Variant"},
	{services.ErrImageNotFound, "Image"},
	{services.ErrVariantImageNotFound, "Variant image"},
	{services.ErrOrderNotFound, "Order"},
}

// Message is the envelope used for create responses.
type Message struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Data wraps a single resource.
type Data struct {
	Data any `json:"data"`
}

// respondError maps service errors onto the shared error envelope. Anything
// not recognised is logged and reported with failMessage only.
func respondError(c echo.Context, err error, failMessage string) error {
	var verr *common.ValidationError
	if errors.As(err, &verr) {
		return common.SendValidationErrors(c, verr.Fields)
	}
	for _, nf := range notFoundResources {
		if errors.Is(err, nf.err) {
			return common.SendNotFoundError(c, nf.resource)
		}
	}
	if errors.Is(err, services.ErrProductInUse) {
		return common.SendConflictError(c, "The product cannot be deleted while orders reference it.")
	}

	logging.FromContext(c.Request().Context()).Error(failMessage, "error", err)
	return common.SendServerError(c, failMessage)
}

// bindJSON decodes the body and reports malformed payloads as a 422. ok is
// false when the response has already been written.
func bindJSON(c echo.Context, dst any) (bool, error) {
	if err := c.Bind(dst); err != nil {
		return false, common.SendValidationError(c, "body", "The request body must be valid JSON.")
	}
	return true, nil
}

// parseID reads a UUID path parameter. ok is false when a 422 has already
// been written.
func parseID(c echo.Context, name string) (uuid.UUID, bool, error) {
	id, err := common.ValidateUUID(c.Param(name), name)
	if err != nil {
		return uuid.Nil, false, common.SendValidationError(c, name, err.Error())
	}
	return id, true, nil
}

func pageRequest(c echo.Context, defaultPerPage int) models.PageRequest {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))
	page, perPage = common.ValidatePaginationParams(page, perPage, defaultPerPage)
	return models.PageRequest{Page: page, PerPage: perPage}
}

// wantsRelation reports whether ?with[]=name (or ?with=name) was requested.
func wantsRelation(c echo.Context, name string) bool {
	params := c.QueryParams()
	for _, key := range []string{"with[]", "with"} {
		for _, v := range params[key] {
			if v == name {
				return true
			}
		}
	}
	return false
}
