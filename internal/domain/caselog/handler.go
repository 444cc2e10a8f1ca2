package caselog

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medresus/medresus/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	role := auth.RequireRole("admin", "physician", "nurse")

	g := api.Group("", role)
	g.POST("/cases", h.StartOrResume)
	g.GET("/cases/active", h.Active)
	g.PATCH("/cases/active", h.UpdateMeta)
	g.POST("/cases/active/events", h.AppendEvent)
	g.POST("/cases/active/undo", h.Undo)
	g.PATCH("/cases/active/events/:id", h.EditEvent)
	g.DELETE("/cases/active/events/:id", h.RemoveEvent)
	g.POST("/cases/active/roles", h.AssignRole)
	g.POST("/cases/active/close", h.Close)
}

func (h *Handler) StartOrResume(c echo.Context) error {
	cs, err := h.svc.StartOrResume(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, cs)
}

func (h *Handler) Active(c echo.Context) error {
	cs, err := h.svc.Active(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, cs)
}

func (h *Handler) AppendEvent(c echo.Context) error {
	var ev Event
	if err := c.Bind(&ev); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	stored, err := h.svc.Append(c.Request().Context(), ev)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, stored)
}

func (h *Handler) Undo(c echo.Context) error {
	h.svc.UndoLast(c.Request().Context())
	cs, err := h.svc.Active(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, cs)
}

type editEventRequest struct {
	Details string `json:"details"`
}

func (h *Handler) EditEvent(c echo.Context) error {
	var req editEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.svc.EditDetails(c.Request().Context(), c.Param("id"), req.Details)
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) RemoveEvent(c echo.Context) error {
	h.svc.Remove(c.Request().Context(), c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) UpdateMeta(c echo.Context) error {
	var upd MetaUpdate
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cs, err := h.svc.UpdateMeta(c.Request().Context(), upd)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, cs)
}

func (h *Handler) AssignRole(c echo.Context) error {
	var ra RoleAssignment
	if err := c.Bind(&ra); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ev, err := h.svc.AssignRole(c.Request().Context(), ra)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, ev)
}

type closeResponse struct {
	ArchivedID string `json:"archived_id,omitempty"`
}

func (h *Handler) Close(c echo.Context) error {
	id, err := h.svc.CloseCase(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, closeResponse{ArchivedID: id})
}
