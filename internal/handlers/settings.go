package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/petompp/internal/logging"
	"github.com/Skotchmaster/petompp/internal/models"
	"github.com/Skotchmaster/petompp/internal/service"
)

type SettingsHandler struct {
	Svc *service.SettingsService
}

func (h *SettingsHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "settings.get")

	settings, err := h.Svc.Get(ctx)
	if err != nil {
		return reject(l, "get_settings_failed", http.StatusInternalServerError, "cannot get settings", err)
	}
	return c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "settings.update")

	var update models.UserSettingsUpdate
	if err := c.Bind(&update); err != nil {
		return reject(l, "update_settings_failed", http.StatusBadRequest, "invalid body", err)
	}

	settings, err := h.Svc.Update(ctx, update)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return reject(l, "update_settings_failed", http.StatusBadRequest, err.Error(), err)
		}
		return reject(l, "update_settings_failed", http.StatusInternalServerError, "cannot update settings", err)
	}

	l.Info("update_settings_success")
	return c.JSON(http.StatusOK, settings)
}
