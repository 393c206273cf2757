package admin

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/signworks/go-orderportal/app/helpers"
	"github.com/signworks/go-orderportal/app/services"
	"github.com/unrolled/render"
)

type OrderAdminHandler struct {
	render       *render.Render
	orderService *services.OrderService
}

func NewOrderAdminHandler(r *render.Render, orderService *services.OrderService) *OrderAdminHandler {
	return &OrderAdminHandler{
		render:       r,
		orderService: orderService,
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatusHandler overwrites the order status and triggers the status
// email when the order opted in.
func (h *OrderAdminHandler) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)
	orderID := mux.Vars(r)["id"]

	var req updateStatusRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), actor, orderID, req.Status)
	if err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}

// ClearOrdersHandler wipes every order and its items.
func (h *OrderAdminHandler) ClearOrdersHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)

	if err := h.orderService.ClearAll(r.Context(), actor); err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "all orders cleared"})
}
