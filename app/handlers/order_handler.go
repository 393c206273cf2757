package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/signworks/go-orderportal/app/helpers"
	"github.com/signworks/go-orderportal/app/services"
	"github.com/unrolled/render"
)

type OrderHandler struct {
	render       *render.Render
	orderService *services.OrderService
}

func NewOrderHandler(r *render.Render, orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		render:       r,
		orderService: orderService,
	}
}

func (h *OrderHandler) PlaceOrderPostHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)

	var input services.PlaceOrderInput
	if err := helpers.DecodeJSON(r, &input); err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}

	order, err := h.orderService.Place(r.Context(), actor, input)
	if err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) ListOrdersGetHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)

	orders, err := h.orderService.ListForActor(r.Context(), actor)
	if err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)
	orderID := mux.Vars(r)["id"]

	order, err := h.orderService.Get(r.Context(), actor, orderID)
	if err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}
