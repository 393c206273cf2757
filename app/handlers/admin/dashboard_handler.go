package admin

import (
	"net/http"

	"github.com/signworks/go-orderportal/app/helpers"
	"github.com/signworks/go-orderportal/app/services"
	"github.com/unrolled/render"
)

type DashboardHandler struct {
	render           *render.Render
	dashboardService *services.DashboardService
}

func NewDashboardHandler(r *render.Render, dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		render:           r,
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)

	stats, err := h.dashboardService.Stats(r.Context(), actor)
	if err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, stats)
}
