package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/gcharles/autoshop-inventory/internal/application/dto"
	"github.com/gcharles/autoshop-inventory/internal/application/reporting"
	"github.com/gcharles/autoshop-inventory/internal/domain/access"
	"github.com/gcharles/autoshop-inventory/pkg/logger"
)

// DashboardHandler sirve el menú de dashboards y los seis reportes agregados.
type DashboardHandler struct {
	uc  *reporting.UseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler de dashboards.
func NewDashboardHandler(uc *reporting.UseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// ListDashboards godoc
// @Summary      Dashboards permitidos para el rol del usuario
// @Tags         dashboards
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/dashboards [get]
func (h *DashboardHandler) ListDashboards(c *fiber.Ctx) error {
	role := GetRole(c)
	allowed := access.AllowedDashboards(role)

	type entry struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	list := make([]entry, 0, len(allowed))
	for _, id := range allowed {
		list = append(list, entry{ID: id, Name: access.DashboardName(id)})
	}
	return c.JSON(fiber.Map{"role": role, "dashboards": list})
}

// GetDashboard godoc
// @Summary      Reporte de un dashboard (1-6)
// @Description  Los errores del motor de reportes nunca escapan: la respuesta
//
//	es 200 con success=false y forma vacía.
//
// @Tags         dashboards
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "Índice del dashboard (1-6)"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboards/{id} [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id")) // validado por RequireDashboard

	report, err := h.uc.GetDashboard(c.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int("dashboard", id).Str("user_id", GetUserID(c)).
			Msg("generación de reporte fallida")
		return c.JSON(dto.ReportError{
			Success: false,
			Message: "Could not generate report. Please try again later.",
		})
	}
	return c.JSON(report)
}
