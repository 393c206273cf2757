package handlers

import (
	"net/http"

	"github.com/signworks/go-orderportal/app/helpers"
	"github.com/signworks/go-orderportal/app/services"
	"github.com/unrolled/render"
)

type ProductHandler struct {
	render         *render.Render
	catalogService *services.CatalogService
}

func NewProductHandler(r *render.Render, catalogService *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		render:         r,
		catalogService: catalogService,
	}
}

// ListProductsHandler returns the catalog visible to the actor. Admins see
// everything, company users see only products inside their granted categories
// that are assigned to them or unassigned.
func (h *ProductHandler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)

	products, err := h.catalogService.ProductsForActor(r.Context(), actor)
	if err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) ListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)

	categories, err := h.catalogService.Categories(r.Context(), actor)
	if err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, categories)
}
