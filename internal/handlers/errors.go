package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// reject logs a failed request once and converts it to an HTTP error.
func reject(l *slog.Logger, event string, status int, reason string, err error) error {
	if status >= http.StatusInternalServerError {
		l.Error(event, "status", status, "reason", reason, "error", err)
	} else {
		l.Warn(event, "status", status, "reason", reason, "error", err)
	}
	return echo.NewHTTPError(status, reason)
}

func idParam(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
