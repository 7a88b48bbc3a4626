package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// RegisterRoutes mounts every engine endpoint on e.
func RegisterRoutes(e *echo.Echo, booking *BookingHandler, admin *AdminHandler) {
	e.GET("/healthz", Health)

	e.GET("/resources/:id/availability", booking.CheckAvailability)
	e.GET("/resources/:id/calendar", booking.Calendar)

	e.POST("/holds", booking.AcquireHold)
	e.DELETE("/holds/:token", booking.ReleaseHold)
	e.POST("/holds/:token/verify", booking.VerifyHold)

	e.POST("/reservations/confirm", booking.Confirm)
	e.POST("/reservations/void", booking.Void)

	adminGroup := e.Group("/admin")
	adminGroup.POST("/sweep", admin.Sweep)
	adminGroup.POST("/resources/:id/rebuild", admin.RebuildLedger)
}
