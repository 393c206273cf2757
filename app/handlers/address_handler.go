package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/signworks/go-orderportal/app/helpers"
	"github.com/signworks/go-orderportal/app/services"
	"github.com/unrolled/render"
)

type AddressHandler struct {
	render         *render.Render
	addressService *services.AddressService
}

func NewAddressHandler(r *render.Render, addressService *services.AddressService) *AddressHandler {
	return &AddressHandler{
		render:         r,
		addressService: addressService,
	}
}

func (h *AddressHandler) ListAddressesHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)

	addresses, err := h.addressService.List(r.Context(), actor)
	if err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, addresses)
}

func (h *AddressHandler) CreateAddressHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)

	var input services.AddressInput
	if err := helpers.DecodeJSON(r, &input); err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}

	address, err := h.addressService.Create(r.Context(), actor, input)
	if err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, address)
}

func (h *AddressHandler) DeleteAddressHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)
	addressID := mux.Vars(r)["id"]

	if err := h.addressService.Delete(r.Context(), actor, addressID); err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "address deleted"})
}
