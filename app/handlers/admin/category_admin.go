package admin

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/signworks/go-orderportal/app/helpers"
	"github.com/signworks/go-orderportal/app/services"
	"github.com/unrolled/render"
)

type CategoryAdminHandler struct {
	render         *render.Render
	catalogService *services.CatalogService
}

func NewCategoryAdminHandler(r *render.Render, catalogService *services.CatalogService) *CategoryAdminHandler {
	return &CategoryAdminHandler{
		render:         r,
		catalogService: catalogService,
	}
}

func (h *CategoryAdminHandler) CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)

	var input services.CategoryInput
	if err := helpers.DecodeJSON(r, &input); err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}

	category, err := h.catalogService.CreateCategory(r.Context(), actor, input)
	if err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, category)
}

func (h *CategoryAdminHandler) UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)
	categoryID := mux.Vars(r)["id"]

	var input services.UpdateCategoryInput
	if err := helpers.DecodeJSON(r, &input); err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}

	category, err := h.catalogService.UpdateCategory(r.Context(), actor, categoryID, input)
	if err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, category)
}

// DeleteCategoryHandler removes the category along with every product in it.
func (h *CategoryAdminHandler) DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)
	categoryID := mux.Vars(r)["id"]

	if err := h.catalogService.DeleteCategory(r.Context(), actor, categoryID); err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
