package facility

import (
	"errors"
	"net/http"

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
	admin := auth.RequireRole("admin")
	clinical := auth.RequireRole("receptionist", "doctor", "nurse")

	w := api.Group("/wards")
	w.POST("", h.CreateWard, admin)
	w.GET("", h.ListWards, clinical)
	w.GET("/:id", h.GetWard, clinical)
	w.PUT("/:id", h.UpdateWard, admin)
	w.DELETE("/:id", h.DeleteWard, admin)
	w.POST("/:id/beds", h.CreateBed, admin)
	w.GET("/:id/beds", h.ListBeds, clinical)

	api.PUT("/beds/:id/status", h.SetBedStatus, admin)
	api.DELETE("/beds/:id", h.DeleteBed, admin)

	r := api.Group("/rooms")
	r.POST("", h.CreateRoom, admin)
	r.GET("", h.ListRooms, clinical)
	r.GET("/:id", h.GetRoom, clinical)
	r.PUT("/:id", h.UpdateRoom, admin)
	r.DELETE("/:id", h.DeleteRoom, admin)
	r.POST("/:id/units", h.CreateRoomUnit, admin)
	r.GET("/:id/units", h.ListRoomUnits, clinical)

	api.PUT("/room-units/:id/status", h.SetRoomUnitStatus, admin)
	api.DELETE("/room-units/:id", h.DeleteRoomUnit, admin)
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// Wards

func (h *Handler) CreateWard(c echo.Context) error {
	var w Ward
	if err := c.Bind(&w); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateWard(c.Request().Context(), &w); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.Created(c, w)
}

func (h *Handler) GetWard(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	w, err := h.svc.GetWard(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "ward not found")
	}
	return respond.OK(c, w)
}

func (h *Handler) ListWards(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListWards(c.Request().Context(), pg.Limit, pg.Offset())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

func (h *Handler) UpdateWard(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var w Ward
	if err := c.Bind(&w); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	w.ID = id
	if err := h.svc.UpdateWard(c.Request().Context(), &w); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.OK(c, w)
}

func (h *Handler) DeleteWard(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteWard(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrHasOccupants) {
			return echo.NewHTTPError(http.StatusConflict, "ward has occupied beds")
		}
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return respond.Message(c, "deleted")
}

// Beds

func (h *Handler) CreateBed(c echo.Context) error {
	wardID, err := parseID(c)
	if err != nil {
		return err
	}
	var b Bed
	if err := c.Bind(&b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b.WardID = wardID
	if err := h.svc.CreateBed(c.Request().Context(), &b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.Created(c, b)
}

func (h *Handler) ListBeds(c echo.Context) error {
	wardID, err := parseID(c)
	if err != nil {
		return err
	}
	items, err := h.svc.ListBeds(c.Request().Context(), wardID, c.QueryParam("status"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.OK(c, items)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) SetBedStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SetBedStatus(c.Request().Context(), id, req.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.Message(c, "status updated")
}

func (h *Handler) DeleteBed(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteBed(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrHasOccupants) {
			return echo.NewHTTPError(http.StatusConflict, "bed is occupied")
		}
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return respond.Message(c, "deleted")
}

// Rooms

func (h *Handler) CreateRoom(c echo.Context) error {
	var r Room
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateRoom(c.Request().Context(), &r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.Created(c, r)
}

func (h *Handler) GetRoom(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	r, err := h.svc.GetRoom(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "room not found")
	}
	return respond.OK(c, r)
}

func (h *Handler) ListRooms(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListRooms(c.Request().Context(), pg.Limit, pg.Offset())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

func (h *Handler) UpdateRoom(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var r Room
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r.ID = id
	if err := h.svc.UpdateRoom(c.Request().Context(), &r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.OK(c, r)
}

func (h *Handler) DeleteRoom(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteRoom(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrHasOccupants) {
			return echo.NewHTTPError(http.StatusConflict, "room has occupied units")
		}
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return respond.Message(c, "deleted")
}

// Room units

func (h *Handler) CreateRoomUnit(c echo.Context) error {
	roomID, err := parseID(c)
	if err != nil {
		return err
	}
	var u RoomUnit
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u.RoomID = roomID
	if err := h.svc.CreateRoomUnit(c.Request().Context(), &u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.Created(c, u)
}

func (h *Handler) ListRoomUnits(c echo.Context) error {
	roomID, err := parseID(c)
	if err != nil {
		return err
	}
	items, err := h.svc.ListRoomUnits(c.Request().Context(), roomID, c.QueryParam("status"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.OK(c, items)
}

func (h *Handler) SetRoomUnitStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SetRoomUnitStatus(c.Request().Context(), id, req.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.Message(c, "status updated")
}

func (h *Handler) DeleteRoomUnit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteRoomUnit(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrHasOccupants) {
			return echo.NewHTTPError(http.StatusConflict, "room unit is occupied")
		}
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return respond.Message(c, "deleted")
}
