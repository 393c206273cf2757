package admin

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/signworks/go-orderportal/app/errs"
	"github.com/signworks/go-orderportal/app/helpers"
	"github.com/signworks/go-orderportal/app/services"
	"github.com/unrolled/render"
)

type ProductAdminHandler struct {
	render         *render.Render
	catalogService *services.CatalogService
}

func NewProductAdminHandler(r *render.Render, catalogService *services.CatalogService) *ProductAdminHandler {
	return &ProductAdminHandler{
		render:         r,
		catalogService: catalogService,
	}
}

func (h *ProductAdminHandler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)

	var input services.ProductInput
	if err := helpers.DecodeJSON(r, &input); err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}

	product, err := h.catalogService.CreateProduct(r.Context(), actor, input)
	if err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, product)
}

func (h *ProductAdminHandler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)
	productID := mux.Vars(r)["id"]

	body, err := io.ReadAll(r.Body)
	if err != nil {
		helpers.RenderError(h.render, w, errs.Validation("invalid JSON payload"))
		return
	}

	var input services.UpdateProductInput
	if err := json.Unmarshal(body, &input); err != nil {
		helpers.RenderError(h.render, w, errs.Validation("invalid JSON payload"))
		return
	}

	// An absent assigned_to_id key means "leave assignment alone", while an
	// explicit null means "unassign". Only the raw payload can tell the two
	// apart.
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&raw); err == nil {
		_, input.AssignedToSet = raw["assigned_to_id"]
	}

	product, err := h.catalogService.UpdateProduct(r.Context(), actor, productID, input)
	if err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, product)
}

func (h *ProductAdminHandler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)
	productID := mux.Vars(r)["id"]

	if err := h.catalogService.DeleteProduct(r.Context(), actor, productID); err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
