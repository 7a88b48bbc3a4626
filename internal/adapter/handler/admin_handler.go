package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/srgjo27/cowork_booking/internal/core/services"
)

type AdminHandler struct {
	sweeper *services.MaintenanceSweeper
	logger  *slog.Logger
}

func NewAdminHandler(sweeper *services.MaintenanceSweeper, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{sweeper: sweeper, logger: logger}
}

// Sweep handles POST /admin/sweep. A sweep with partial failures still
// returns its report, with the joined error alongside.
func (h *AdminHandler) Sweep(c echo.Context) error {
	report, err := h.sweeper.Run(c.Request().Context())
	if report == nil {
		return writeError(c, h.logger, err)
	}
	if err != nil {
		return c.JSON(http.StatusMultiStatus, echo.Map{"report": report, "error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"report": report})
}

// RebuildLedger handles POST /admin/resources/:id/rebuild.
func (h *AdminHandler) RebuildLedger(c echo.Context) error {
	n, err := h.sweeper.RebuildLedger(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"resource_id": c.Param("id"), "entries": n})
}
