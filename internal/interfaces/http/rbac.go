package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/gcharles/autoshop-inventory/internal/application/dto"
	"github.com/gcharles/autoshop-inventory/internal/domain/access"
	"github.com/gcharles/autoshop-inventory/pkg/logger"
)

// RequireDashboard autoriza el acceso al dashboard pedido en el parámetro de
// ruta :id según la política fija rol → dashboards. Las denegaciones se
// loguean con usuario y rol para auditoría.
func RequireDashboard(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no tiene rol asignado"})
		}
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 || id > access.DashboardCount() {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DASHBOARD", Message: "el dashboard debe ser un número entre 1 y 6"})
		}
		if !access.IsAuthorized(role, id) {
			log.Warn().Str("user_id", GetUserID(c)).Str("role", role).Int("dashboard", id).
				Msg("acceso a dashboard denegado")
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "ACCESS_DENIED",
				Message: "Your role does not have access to this dashboard.",
			})
		}
		return c.Next()
	}
}
