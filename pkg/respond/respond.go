// Package respond renders the response envelope shared by all endpoints:
// {status, data?, message?}. List endpoints use pkg/pagination instead.
package respond

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Body struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK writes a 200 envelope with data.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Body{Status: "ok", Data: data})
}

// Created writes a 201 envelope with data.
func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Body{Status: "ok", Data: data})
}

// Message writes an ok envelope carrying only a message.
func Message(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, Body{Status: "ok", Message: msg})
}

// ErrorHandler converts echo errors into the error envelope so that clients
// always see {status:"error", message}. Installed as e.HTTPErrorHandler.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, Body{Status: "error", Message: msg})
}
