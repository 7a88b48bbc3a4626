package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/srgjo27/cowork_booking/internal/core/domain"
)

// writeError maps engine errors to HTTP responses.
func writeError(c echo.Context, logger *slog.Logger, err error) error {
	var (
		rangeErr    *domain.InvalidRangeError
		leadErr     *domain.LeadTimeError
		capErr      *domain.CapacityExceededError
		notFoundErr *domain.HoldNotFoundError
		persistErr  *domain.PersistenceError
	)

	switch {
	case errors.As(err, &rangeErr),
		errors.Is(err, domain.ErrMissingToken),
		errors.Is(err, domain.ErrMissingExternalRef):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.As(err, &leadErr):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":          err.Error(),
			"earliest_start": domain.FormatDate(leadErr.EarliestStart),
		})
	case errors.As(err, &capErr):
		body := echo.Map{
			"error":              err.Error(),
			"first_blocked_date": domain.FormatDate(capErr.Date),
			"blackout":           capErr.Blackout,
		}
		if capErr.Reason != "" {
			body["reason"] = capErr.Reason
		}
		return c.JSON(http.StatusConflict, body)
	case errors.Is(err, domain.ErrResourceNotFound), errors.As(err, &notFoundErr):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrSweepInProgress):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.As(err, &persistErr):
		logger.Error("storage unavailable", "op", persistErr.Op, "error", persistErr.Err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable, retry later"})
	default:
		logger.Error("request failed", "path", c.Path(), "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}
