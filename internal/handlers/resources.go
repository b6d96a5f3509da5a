package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/petompp/internal/logging"
	"github.com/Skotchmaster/petompp/internal/models"
	"github.com/Skotchmaster/petompp/internal/service"
	"github.com/Skotchmaster/petompp/internal/transport"
	"github.com/Skotchmaster/petompp/internal/util"
)

type ResourceHandler struct {
	Svc *service.ResourceService
}

func (h *ResourceHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "resources.get")

	lang := models.LangEn
	if raw := c.QueryParam("lang"); raw != "" {
		parsed, err := models.ParseLang(raw)
		if err != nil {
			return reject(l, "get_resource_failed", http.StatusBadRequest, "unknown language", err)
		}
		lang = parsed
	}

	value, err := h.Svc.Get(ctx, c.Param("key"), lang)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return reject(l, "get_resource_failed", http.StatusNotFound, "resource not found", err)
		}
		return reject(l, "get_resource_failed", http.StatusInternalServerError, "cannot get resource", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"lang": lang, "value": value})
}

func (h *ResourceHandler) Keys(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "resources.keys")

	keys, err := h.Svc.Keys(ctx)
	if err != nil {
		return reject(l, "get_keys_failed", http.StatusInternalServerError, "cannot list keys", err)
	}
	if keys == nil {
		keys = []string{}
	}
	return c.JSON(http.StatusOK, keys)
}

func (h *ResourceHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "resources.create")

	var data models.ResourceData
	if err := c.Bind(&data); err != nil {
		return reject(l, "create_resource_failed", http.StatusBadRequest, "invalid body", err)
	}

	res, err := h.Svc.Create(ctx, c.Param("key"), data)
	if err != nil {
		return resourceErr(l, "create_resource_failed", err)
	}
	l.Info("create_resource_success", "key", res.Key)
	return c.JSON(http.StatusCreated, res)
}

func (h *ResourceHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "resources.update")

	var data models.ResourceData
	if err := c.Bind(&data); err != nil {
		return reject(l, "update_resource_failed", http.StatusBadRequest, "invalid body", err)
	}

	res, err := h.Svc.Update(ctx, c.Param("key"), data)
	if err != nil {
		return resourceErr(l, "update_resource_failed", err)
	}
	l.Info("update_resource_success", "key", res.Key)
	return c.JSON(http.StatusOK, res)
}

// Delete removes the whole resource, or only one translation when lang is
// given.
func (h *ResourceHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "resources.delete")
	key := c.Param("key")

	if raw := c.QueryParam("lang"); raw != "" {
		lang, err := models.ParseLang(raw)
		if err != nil {
			return reject(l, "delete_resource_failed", http.StatusBadRequest, "unknown language", err)
		}
		res, err := h.Svc.DeleteTranslation(ctx, key, lang)
		if err != nil {
			return resourceErr(l, "delete_resource_failed", err)
		}
		return c.JSON(http.StatusOK, res)
	}

	if err := h.Svc.Delete(ctx, key); err != nil {
		return resourceErr(l, "delete_resource_failed", err)
	}
	l.Info("delete_resource_success", "key", key)
	return c.NoContent(http.StatusNoContent)
}

func (h *ResourceHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "resources.search")

	var req transport.SearchRequest
	if err := c.Bind(&req); err != nil {
		return reject(l, "search_failed", http.StatusBadRequest, "invalid query", err)
	}
	if req.Query == "" {
		return reject(l, "search_failed", http.StatusBadRequest, "q is required", nil)
	}

	from, size := util.SearchWindow(req.Page, req.Size)
	total, items, err := h.Svc.SearchResources(ctx, req.Query, from, size)
	if err != nil {
		if errors.Is(err, service.ErrSearchUnavailable) {
			return reject(l, "search_failed", http.StatusServiceUnavailable, "search is not available", err)
		}
		return reject(l, "search_failed", http.StatusInternalServerError, "search failed", err)
	}
	if items == nil {
		items = []models.Resource{}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{"total": total, "from": from, "size": size},
	})
}

func resourceErr(l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return reject(l, event, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, service.ErrNotFound):
		return reject(l, event, http.StatusNotFound, "resource not found", err)
	case errors.Is(err, service.ErrAlreadyExists):
		return reject(l, event, http.StatusConflict, "resource already exists", err)
	}
	return reject(l, event, http.StatusInternalServerError, "resource storage failed", err)
}
