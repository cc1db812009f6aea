package pharmacy

import (
	"errors"
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

// RegisterRoutes mounts the pharmacy surface. idem guards the financial
// POSTs: receipts, returns and sales all require an Idempotency-Key.
func (h *Handler) RegisterRoutes(api *echo.Group, idem echo.MiddlewareFunc) {
	pharmacist := auth.RequireRole("pharmacist")

	g := api.Group("/pharmacy", pharmacist)

	g.POST("/items", h.CreateItem)
	g.GET("/items", h.ListItems)
	g.GET("/items/:id", h.GetItem)
	g.PUT("/items/:id", h.UpdateItem)
	g.DELETE("/items/:id", h.DeleteItem)
	g.GET("/items/:id/batches", h.ListBatches)

	g.POST("/receipts", h.PostReceipt, idem)
	g.GET("/receipts", h.ListReceipts)
	g.GET("/receipts/:id", h.GetReceipt)

	g.POST("/returns", h.CreateReturn, idem)
	g.GET("/returns", h.ListReturns)
	g.GET("/returns/:id", h.GetReturn)
	g.PUT("/returns/:id/status", h.SetReturnStatus)

	g.POST("/sales", h.Sell, idem)
	g.GET("/sales", h.ListSales)
	g.GET("/sales/:id", h.GetSale)

	g.GET("/reports/sales", h.SalesSummary)
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func docFiltersFromQuery(c echo.Context) (DocFilters, error) {
	f := DocFilters{
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
	}
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

// Items

func (h *Handler) CreateItem(c echo.Context) error {
	var it Item
	if err := c.Bind(&it); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateItem(c.Request().Context(), &it); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.Created(c, it)
}

func (h *Handler) GetItem(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	it, err := h.svc.GetItem(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "item not found")
	}
	return respond.OK(c, it)
}

func (h *Handler) ListItems(c echo.Context) error {
	pg := pagination.FromContext(c)
	f := ItemFilters{
		Search:   c.QueryParam("search"),
		LowStock: c.QueryParam("lowStock") == "true",
	}
	items, total, err := h.svc.SearchItems(c.Request().Context(), f, pg.Limit, pg.Offset())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

func (h *Handler) UpdateItem(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var it Item
	if err := c.Bind(&it); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	it.ID = id
	if err := h.svc.UpdateItem(c.Request().Context(), &it); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.OK(c, it)
}

func (h *Handler) DeleteItem(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteItem(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrItemHasStock) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return respond.Message(c, "deleted")
}

func (h *Handler) ListBatches(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	batches, err := h.svc.ListBatches(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return respond.OK(c, batches)
}

// Goods receipts

func (h *Handler) PostReceipt(c echo.Context) error {
	var gr GoodsReceipt
	if err := c.Bind(&gr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if id, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context())); err == nil {
		gr.CreatedBy = id
	}
	if err := h.svc.PostReceipt(c.Request().Context(), &gr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.Created(c, gr)
}

func (h *Handler) GetReceipt(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	gr, err := h.svc.GetReceipt(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "goods receipt not found")
	}
	return respond.OK(c, gr)
}

func (h *Handler) ListReceipts(c echo.Context) error {
	pg := pagination.FromContext(c)
	f, err := docFiltersFromQuery(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.SearchReceipts(c.Request().Context(), f, pg.Limit, pg.Offset())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

// Stock returns

func (h *Handler) CreateReturn(c echo.Context) error {
	var sr StockReturn
	if err := c.Bind(&sr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if id, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context())); err == nil {
		sr.CreatedBy = id
	}
	if err := h.svc.CreateReturn(c.Request().Context(), &sr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.Created(c, sr)
}

func (h *Handler) GetReturn(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	sr, err := h.svc.GetReturn(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "stock return not found")
	}
	return respond.OK(c, sr)
}

func (h *Handler) ListReturns(c echo.Context) error {
	pg := pagination.FromContext(c)
	f, err := docFiltersFromQuery(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.SearchReturns(c.Request().Context(), f, pg.Limit, pg.Offset())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) SetReturnStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SetReturnStatus(c.Request().Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, ErrBadTransition):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, ErrInsufficientStock):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return respond.Message(c, "status updated")
}

// Point of sale

func (h *Handler) Sell(c echo.Context) error {
	var sale Sale
	if err := c.Bind(&sale); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if id, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context())); err == nil {
		sale.CreatedBy = id
	}
	if err := h.svc.Sell(c.Request().Context(), &sale); err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.Created(c, sale)
}

func (h *Handler) GetSale(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	sale, err := h.svc.GetSale(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "sale not found")
	}
	return respond.OK(c, sale)
}

func (h *Handler) ListSales(c echo.Context) error {
	pg := pagination.FromContext(c)
	f, err := docFiltersFromQuery(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.SearchSales(c.Request().Context(), f, pg.Limit, pg.Offset())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

func (h *Handler) SalesSummary(c echo.Context) error {
	from, err := time.Parse("2006-01-02", c.QueryParam("fromDate"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid fromDate")
	}
	to, err := time.Parse("2006-01-02", c.QueryParam("toDate"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid toDate")
	}
	days, err := h.svc.SalesSummary(c.Request().Context(), from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.OK(c, days)
}
