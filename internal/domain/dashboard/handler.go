package dashboard

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard/admin", h.AdminDashboard, auth.RequireRole("admin"))
	api.GET("/dashboard/doctor/:id", h.DoctorDashboard, auth.RequireRole("doctor"))
}

func (h *Handler) AdminDashboard(c echo.Context) error {
	dash, err := h.svc.AdminDashboard(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "dashboard unavailable")
	}
	return c.JSON(http.StatusOK, dash)
}

func (h *Handler) DoctorDashboard(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	dash, err := h.svc.DoctorDashboard(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "dashboard unavailable")
	}
	return c.JSON(http.StatusOK, dash)
}
