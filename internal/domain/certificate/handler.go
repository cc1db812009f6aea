package certificate

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/pkg/pagination"
	"github.com/hms/hms/pkg/respond"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	clinical := auth.RequireRole("receptionist", "doctor", "nurse")

	b := api.Group("/certificates/birth", clinical)
	b.POST("", h.CreateBirth)
	b.GET("", h.ListBirth)
	b.GET("/:id", h.GetBirth)
	b.PUT("/:id", h.UpdateBirth)
	b.DELETE("/:id", h.DeleteBirth)

	d := api.Group("/certificates/death", clinical)
	d.POST("", h.CreateDeath)
	d.GET("", h.ListDeath)
	d.GET("/:id", h.GetDeath)
	d.PUT("/:id", h.UpdateDeath)
	d.DELETE("/:id", h.DeleteDeath)
}

func filtersFromQuery(c echo.Context) (Filters, error) {
	f := Filters{Search: c.QueryParam("search")}
	if v := c.QueryParam("fromDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid fromDate")
		}
		f.From = &t
	}
	if v := c.QueryParam("toDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid toDate")
		}
		t = t.AddDate(0, 0, 1)
		f.To = &t
	}
	return f, nil
}

func (h *Handler) CreateBirth(c echo.Context) error {
	var bc BirthCertificate
	if err := c.Bind(&bc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateBirth(c.Request().Context(), &bc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.Created(c, bc)
}

func (h *Handler) GetBirth(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	bc, err := h.svc.GetBirth(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "birth certificate not found")
	}
	return respond.OK(c, bc)
}

func (h *Handler) UpdateBirth(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var bc BirthCertificate
	if err := c.Bind(&bc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	bc.ID = id
	if err := h.svc.UpdateBirth(c.Request().Context(), &bc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.OK(c, bc)
}

func (h *Handler) DeleteBirth(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteBirth(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return respond.Message(c, "birth certificate deleted")
}

func (h *Handler) ListBirth(c echo.Context) error {
	pg := pagination.FromContext(c)
	f, err := filtersFromQuery(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.SearchBirth(c.Request().Context(), f, pg.Limit, pg.Offset())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

func (h *Handler) CreateDeath(c echo.Context) error {
	var dc DeathCertificate
	if err := c.Bind(&dc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateDeath(c.Request().Context(), &dc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.Created(c, dc)
}

func (h *Handler) GetDeath(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	dc, err := h.svc.GetDeath(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "death certificate not found")
	}
	return respond.OK(c, dc)
}

func (h *Handler) UpdateDeath(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var dc DeathCertificate
	if err := c.Bind(&dc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	dc.ID = id
	if err := h.svc.UpdateDeath(c.Request().Context(), &dc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.OK(c, dc)
}

func (h *Handler) DeleteDeath(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteDeath(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return respond.Message(c, "death certificate deleted")
}

func (h *Handler) ListDeath(c echo.Context) error {
	pg := pagination.FromContext(c)
	f, err := filtersFromQuery(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.SearchDeath(c.Request().Context(), f, pg.Limit, pg.Offset())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}
