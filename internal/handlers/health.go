package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/petompp/internal/blob"
	"github.com/Skotchmaster/petompp/internal/db"
	"github.com/Skotchmaster/petompp/internal/logging"
)

type HealthHandler struct {
	DB      *gorm.DB
	Store   *blob.Store
	Buckets []string
}

func (h *HealthHandler) Live(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// Ready reports 503 until the database and every configured bucket answer.
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "health.ready")

	if err := db.Ping(ctx, h.DB); err != nil {
		return reject(l, "not_ready", http.StatusServiceUnavailable, "database unavailable", err)
	}
	if h.Store != nil {
		for _, b := range h.Buckets {
			if err := h.Store.Ping(ctx, b); err != nil {
				return reject(l, "not_ready", http.StatusServiceUnavailable, "storage unavailable", err)
			}
		}
	}
	return c.NoContent(http.StatusOK)
}
