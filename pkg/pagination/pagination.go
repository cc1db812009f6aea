package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params holds pagination parameters extracted from a request. Pages are
// 1-based on the wire; Offset converts to the SQL offset.
type Params struct {
	Page  int
	Limit int
}

// FromContext extracts pagination parameters from the echo context, clamping
// limit to [1, MaxLimit] and page to >= 1.
func FromContext(c echo.Context) Params {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}

	return Params{Page: page, Limit: limit}
}

// Offset returns the SQL offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns the page count for a result set of the given size.
func (p Params) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	pages := total / p.Limit
	if total%p.Limit != 0 {
		pages++
	}
	return pages
}

// Response is the list envelope returned by every paginated endpoint.
type Response struct {
	Status      string      `json:"status"`
	Data        interface{} `json:"data"`
	Count       int         `json:"count"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
	Limit       int         `json:"limit"`
}

func NewResponse(data interface{}, total int, p Params) *Response {
	return &Response{
		Status:      "ok",
		Data:        data,
		Count:       total,
		TotalPages:  p.TotalPages(total),
		CurrentPage: p.Page,
		Limit:       p.Limit,
	}
}
