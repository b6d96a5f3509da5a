package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/petompp/internal/blob"
	"github.com/Skotchmaster/petompp/internal/logging"
	"github.com/Skotchmaster/petompp/internal/models"
)

type BlogHandler struct {
	Blog *blob.Blog
}

func postParams(c echo.Context) (string, models.Lang, error) {
	name := strings.Trim(c.Param("name"), "/")
	if name == "" {
		return "", "", errors.New("name is required")
	}
	lang, err := models.ParseLang(c.Param("lang"))
	if err != nil {
		return "", "", err
	}
	return name, lang, nil
}

func (h *BlogHandler) Save(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.save")

	name, lang, err := postParams(c)
	if err != nil {
		return reject(l, "save_post_failed", http.StatusBadRequest, err.Error(), err)
	}

	var data models.BlogData
	if err := c.Bind(&data); err != nil {
		return reject(l, "save_post_failed", http.StatusBadRequest, "invalid body", err)
	}
	if strings.TrimSpace(data.Meta.Title) == "" {
		return reject(l, "save_post_failed", http.StatusBadRequest, "title is required", nil)
	}

	meta, err := h.Blog.Save(ctx, name, lang, data)
	if err != nil {
		return reject(l, "save_post_failed", http.StatusInternalServerError, "cannot store post", err)
	}

	l.Info("save_post_success", "name", name, "lang", lang)
	return c.JSON(http.StatusOK, meta)
}

func (h *BlogHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.delete")

	name, lang, err := postParams(c)
	if err != nil {
		return reject(l, "delete_post_failed", http.StatusBadRequest, err.Error(), err)
	}

	if err := h.Blog.Delete(ctx, name, lang); err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return reject(l, "delete_post_failed", http.StatusNotFound, "post not found", err)
		}
		return reject(l, "delete_post_failed", http.StatusInternalServerError, "cannot delete post", err)
	}

	l.Info("delete_post_success", "name", name, "lang", lang)
	return c.NoContent(http.StatusNoContent)
}

func (h *BlogHandler) Meta(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.meta")

	name, lang, err := postParams(c)
	if err != nil {
		return reject(l, "get_post_meta_failed", http.StatusBadRequest, err.Error(), err)
	}

	meta, err := h.Blog.Meta(ctx, name, lang)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return reject(l, "get_post_meta_failed", http.StatusNotFound, "post not found", err)
		}
		return reject(l, "get_post_meta_failed", http.StatusInternalServerError, "cannot get post", err)
	}
	return c.JSON(http.StatusOK, meta)
}

func (h *BlogHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.list")

	metas, err := h.Blog.List(ctx, c.QueryParam("prefix"))
	if err != nil {
		return reject(l, "list_posts_failed", http.StatusInternalServerError, "cannot list posts", err)
	}
	if len(metas) == 0 {
		return reject(l, "list_posts_failed", http.StatusNotFound, "no posts found", nil)
	}
	return c.JSON(http.StatusOK, metas)
}
