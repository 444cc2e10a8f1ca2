package report

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medresus/medresus/internal/domain/archive"
	"github.com/medresus/medresus/internal/domain/caselog"
	"github.com/medresus/medresus/internal/domain/quality"
	"github.com/medresus/medresus/internal/platform/auth"
)

type Handler struct {
	svc      *Service
	cases    *caselog.Service
	archived *archive.Service
}

func NewHandler(svc *Service, cases *caselog.Service, archived *archive.Service) *Handler {
	return &Handler{svc: svc, cases: cases, archived: archived}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "physician", "nurse"))

	g.GET("/cases/active/metrics", h.ActiveMetrics)
	g.GET("/cases/active/debrief", h.ActiveDebrief)
	g.GET("/cases/active/export/csv", h.ActiveCSV)
	g.GET("/cases/active/export/summary", h.ActiveSummaryCSV)
	g.GET("/cases/active/export/xlsx", h.ActiveXLSX)
	g.GET("/cases/active/export/pdf", h.ActivePDF)
	g.POST("/cases/active/export/csv", h.SaveActiveCSV)
	g.POST("/cases/active/export/debrief", h.SaveActiveDebrief)

	g.GET("/archive/:id/metrics", h.ArchivedMetrics)
	g.GET("/archive/:id/debrief", h.ArchivedDebrief)
	g.GET("/archive/:id/export/csv", h.ArchivedCSV)
	g.GET("/archive/:id/export/xlsx", h.ArchivedXLSX)
	g.GET("/archive/:id/export/pdf", h.ArchivedPDF)
}

func (h *Handler) activeState(c echo.Context) (caselog.CaseState, error) {
	cs, err := h.cases.Active(c.Request().Context())
	if err != nil {
		return caselog.CaseState{}, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return cs, nil
}

// archivedState loads an archived case and presents it as case state so the
// same render paths serve both live and archived cases.
func (h *Handler) archivedState(c echo.Context) (caselog.CaseState, error) {
	a, err := h.archived.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == archive.ErrNotFound {
			return caselog.CaseState{}, echo.NewHTTPError(http.StatusNotFound, "archived case not found")
		}
		return caselog.CaseState{}, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	// Archived logs are oldest-first; case state stores newest-first.
	events := make([]caselog.Event, len(a.Log))
	for i, ev := range a.Log {
		events[len(a.Log)-1-i] = ev
	}
	return caselog.CaseState{
		CaseID:    a.CaseID,
		StartedAt: a.StartedAt,
		Events:    events,
		Closed:    true,
	}, nil
}

func (h *Handler) metrics(c echo.Context, cs caselog.CaseState) error {
	return c.JSON(http.StatusOK, quality.Compute(cs.Events))
}

func (h *Handler) debrief(c echo.Context, cs caselog.CaseState) error {
	return c.JSON(http.StatusOK, quality.BuildDebrief(quality.Compute(cs.Events)))
}

func (h *Handler) csv(c echo.Context, cs caselog.CaseState) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="case-`+cs.CaseID+`.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", h.svc.CSV(cs))
}

func (h *Handler) summaryCSV(c echo.Context, cs caselog.CaseState) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="summary-`+cs.CaseID+`.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", h.svc.SummaryCSV(cs))
}

func (h *Handler) xlsx(c echo.Context, cs caselog.CaseState) error {
	data, err := h.svc.XLSX(cs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="case-`+cs.CaseID+`.xlsx"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *Handler) pdf(c echo.Context, cs caselog.CaseState) error {
	data, err := h.svc.PDF(cs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="debrief-`+cs.CaseID+`.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}

func (h *Handler) ActiveMetrics(c echo.Context) error {
	cs, err := h.activeState(c)
	if err != nil {
		return err
	}
	return h.metrics(c, cs)
}

func (h *Handler) ActiveDebrief(c echo.Context) error {
	cs, err := h.activeState(c)
	if err != nil {
		return err
	}
	return h.debrief(c, cs)
}

func (h *Handler) ActiveCSV(c echo.Context) error {
	cs, err := h.activeState(c)
	if err != nil {
		return err
	}
	return h.csv(c, cs)
}

func (h *Handler) ActiveSummaryCSV(c echo.Context) error {
	cs, err := h.activeState(c)
	if err != nil {
		return err
	}
	return h.summaryCSV(c, cs)
}

func (h *Handler) ActiveXLSX(c echo.Context) error {
	cs, err := h.activeState(c)
	if err != nil {
		return err
	}
	return h.xlsx(c, cs)
}

func (h *Handler) ActivePDF(c echo.Context) error {
	cs, err := h.activeState(c)
	if err != nil {
		return err
	}
	return h.pdf(c, cs)
}

type saveResponse struct {
	Locator string `json:"locator"`
}

// SaveActiveCSV writes the CSV export to the configured export store and
// returns its locator.
func (h *Handler) SaveActiveCSV(c echo.Context) error {
	cs, err := h.activeState(c)
	if err != nil {
		return err
	}
	locator, err := h.svc.SaveCSV(c.Request().Context(), cs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, saveResponse{Locator: locator})
}

func (h *Handler) SaveActiveDebrief(c echo.Context) error {
	cs, err := h.activeState(c)
	if err != nil {
		return err
	}
	locator, err := h.svc.SaveDebrief(c.Request().Context(), cs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, saveResponse{Locator: locator})
}

func (h *Handler) ArchivedMetrics(c echo.Context) error {
	cs, err := h.archivedState(c)
	if err != nil {
		return err
	}
	return h.metrics(c, cs)
}

func (h *Handler) ArchivedDebrief(c echo.Context) error {
	cs, err := h.archivedState(c)
	if err != nil {
		return err
	}
	return h.debrief(c, cs)
}

func (h *Handler) ArchivedCSV(c echo.Context) error {
	cs, err := h.archivedState(c)
	if err != nil {
		return err
	}
	return h.csv(c, cs)
}

func (h *Handler) ArchivedXLSX(c echo.Context) error {
	cs, err := h.archivedState(c)
	if err != nil {
		return err
	}
	return h.xlsx(c, cs)
}

func (h *Handler) ArchivedPDF(c echo.Context) error {
	cs, err := h.archivedState(c)
	if err != nil {
		return err
	}
	return h.pdf(c, cs)
}
