package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/srgjo27/cowork_booking/internal/core/domain"
	"github.com/srgjo27/cowork_booking/internal/core/services"
)

type BookingHandler struct {
	svc    *services.BookingService
	logger *slog.Logger
}

func NewBookingHandler(svc *services.BookingService, logger *slog.Logger) *BookingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookingHandler{svc: svc, logger: logger}
}

type availabilityResponse struct {
	ResourceID       string `json:"resource_id"`
	Start            string `json:"start"`
	End              string `json:"end"`
	Quantity         int    `json:"quantity"`
	OK               bool   `json:"ok"`
	FirstBlockedDate string `json:"first_blocked_date,omitempty"`
}

// CheckAvailability handles GET /resources/:id/availability?start=&end=&quantity=.
func (h *BookingHandler) CheckAvailability(c echo.Context) error {
	start, end := c.QueryParam("start"), c.QueryParam("end")
	if start == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start is required"})
	}
	quantity := 1
	if raw := c.QueryParam("quantity"); raw != "" {
		q, err := strconv.Atoi(raw)
		if err != nil || q < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be a positive integer"})
		}
		quantity = q
	}

	result, err := h.svc.CheckRange(c.Request().Context(), c.Param("id"), start, end, quantity)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	if end == "" {
		end = start
	}
	resp := availabilityResponse{
		ResourceID: c.Param("id"),
		Start:      start,
		End:        end,
		Quantity:   quantity,
		OK:         result.OK,
	}
	if result.FirstBlockedDate != nil {
		resp.FirstBlockedDate = domain.FormatDate(*result.FirstBlockedDate)
	}
	return c.JSON(http.StatusOK, resp)
}

type calendarDay struct {
	Date           string `json:"date"`
	RemainingUnits int    `json:"remaining_units"`
	Status         string `json:"status"`
	Reason         string `json:"reason,omitempty"`
}

// Calendar handles GET /resources/:id/calendar?month=YYYY-MM.
func (h *BookingHandler) Calendar(c echo.Context) error {
	month := c.QueryParam("month")
	if month == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "month is required"})
	}

	view, err := h.svc.MonthView(c.Request().Context(), c.Param("id"), month)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	days := make([]calendarDay, 0, len(view.Days))
	for _, d := range view.Days {
		days = append(days, calendarDay{
			Date:           domain.FormatDate(d.Date),
			RemainingUnits: d.RemainingUnits,
			Status:         string(d.Status),
			Reason:         d.Reason,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"resource_id": view.ResourceID,
		"month":       view.Month,
		"days":        days,
	})
}

// AcquireHold handles POST /holds.
func (h *BookingHandler) AcquireHold(c echo.Context) error {
	var req services.AcquireHoldRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json body"})
	}
	if req.ResourceID == "" || req.Start == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "resource_id and start are required"})
	}

	resp, err := h.svc.AcquireHold(c.Request().Context(), req)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// ReleaseHold handles DELETE /holds/:token.
func (h *BookingHandler) ReleaseHold(c echo.Context) error {
	if err := h.svc.ReleaseHold(c.Request().Context(), c.Param("token")); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// VerifyHold handles POST /holds/:token/verify.
func (h *BookingHandler) VerifyHold(c echo.Context) error {
	result, err := h.svc.VerifyHold(c.Request().Context(), c.Param("token"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": result.OK})
}

type confirmRequest struct {
	Token       string `json:"token"`
	ExternalRef string `json:"external_ref"`
}

// Confirm handles POST /reservations/confirm.
func (h *BookingHandler) Confirm(c echo.Context) error {
	var req confirmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json body"})
	}

	result, err := h.svc.ConfirmReservation(c.Request().Context(), req.Token, req.ExternalRef)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	status := http.StatusOK
	if result.Outcome == services.ConfirmCreated {
		status = http.StatusCreated
	}
	return c.JSON(status, result)
}

type voidRequest struct {
	ExternalRef string `json:"external_ref"`
}

// Void handles POST /reservations/void.
func (h *BookingHandler) Void(c echo.Context) error {
	var req voidRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json body"})
	}

	result, err := h.svc.VoidReservation(c.Request().Context(), req.ExternalRef)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, result)
}
