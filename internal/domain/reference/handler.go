package reference

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/medresus/medresus/internal/platform/auth"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "physician", "nurse"))
	g.GET("/reference/drugs", h.ListDrugs)
	g.GET("/reference/drugs/:id", h.GetDrug)
	g.GET("/reference/drugs/paediatric-doses", h.PaediatricDoses)
	g.GET("/reference/ett-size", h.ETTSize)
	g.GET("/reference/procedures", h.ListProcedures)
	g.GET("/reference/reversible-causes", h.ListReversibleCauses)
}

func (h *Handler) ListDrugs(c echo.Context) error {
	return c.JSON(http.StatusOK, Drugs)
}

func (h *Handler) GetDrug(c echo.Context) error {
	d := DrugByID(c.Param("id"))
	if d == nil {
		return echo.NewHTTPError(http.StatusNotFound, "drug not found")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) PaediatricDoses(c echo.Context) error {
	w, _ := strconv.ParseFloat(c.QueryParam("weight_kg"), 64)
	return c.JSON(http.StatusOK, PaediatricDoses(w))
}

func (h *Handler) ETTSize(c echo.Context) error {
	age, err := strconv.ParseFloat(c.QueryParam("age_years"), 64)
	if err != nil || age < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "age_years must be a non-negative number")
	}
	uncuffed, cuffed := ETTSize(age)
	return c.JSON(http.StatusOK, map[string]float64{
		"uncuffed": uncuffed,
		"cuffed":   cuffed,
	})
}

func (h *Handler) ListProcedures(c echo.Context) error {
	if group := c.QueryParam("group"); group != "" {
		var filtered []ProcedureChip
		for _, p := range ProcedureChips {
			if p.Group == group {
				filtered = append(filtered, p)
			}
		}
		return c.JSON(http.StatusOK, filtered)
	}
	return c.JSON(http.StatusOK, ProcedureChips)
}

func (h *Handler) ListReversibleCauses(c echo.Context) error {
	return c.JSON(http.StatusOK, ReversibleCauses)
}
