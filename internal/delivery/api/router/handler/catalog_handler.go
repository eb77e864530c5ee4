package handler

import (
	"net/http"

	"fuelflow/internal/delivery/api/middleware"
	"fuelflow/internal/delivery/api/response"
	"fuelflow/internal/domain/entity"
	"fuelflow/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	TagUC     usecase.TagUsecase
}

// CatalogHandler serves products and tags
type CatalogHandler struct {
	productUC usecase.ProductUsecase
	tagUC     usecase.TagUsecase
}

// NewCatalogHandler is the constructor for CatalogHandler
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		productUC: params.ProductUC,
		tagUC:     params.TagUC,
	}
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	products, err := h.productUC.List(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.productUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

func (h *CatalogHandler) SaveProduct(c echo.Context) error {
	var product entity.Product
	if err := c.Bind(&product); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	saved, err := h.productUC.Save(c.Request().Context(), &product, middleware.AdminID(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, saved)
}

func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	if err := h.productUC.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) ListTags(c echo.Context) error {
	tags, err := h.tagUC.List(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, tags)
}

func (h *CatalogHandler) GetTag(c echo.Context) error {
	tag, err := h.tagUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, tag)
}

func (h *CatalogHandler) SaveTag(c echo.Context) error {
	var tag entity.Tag
	if err := c.Bind(&tag); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid tag input")
	}

	saved, err := h.tagUC.Save(c.Request().Context(), &tag, middleware.AdminID(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, saved)
}

func (h *CatalogHandler) DeleteTag(c echo.Context) error {
	if err := h.tagUC.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
