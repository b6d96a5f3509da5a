package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/petompp/internal/blob"
	"github.com/Skotchmaster/petompp/internal/logging"
)

var errTooLarge = errors.New("upload exceeds size limit")

type ImageHandler struct {
	Images *blob.Images
	Limit  int64
}

func (h *ImageHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "images.list")

	keys, err := h.Images.List(ctx)
	if err != nil {
		return reject(l, "list_images_failed", http.StatusInternalServerError, "cannot list images", err)
	}
	return c.JSON(http.StatusOK, keys)
}

// Upload stores the raw request body as an image.
func (h *ImageHandler) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "images.upload")

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if _, err := blob.ImageExtension(contentType); err != nil {
		return reject(l, "upload_image_failed", http.StatusUnsupportedMediaType, "only jpeg, png and bmp images are accepted", err)
	}

	data, err := readLimited(c.Request().Body, h.Limit)
	if err != nil {
		if errors.Is(err, errTooLarge) {
			return reject(l, "upload_image_failed", http.StatusRequestEntityTooLarge, err.Error(), err)
		}
		return reject(l, "upload_image_failed", http.StatusBadRequest, "cannot read body", err)
	}

	key, err := h.Images.Upload(ctx, c.QueryParam("folder"), c.QueryParam("filename"), contentType, data)
	if err != nil {
		return reject(l, "upload_image_failed", http.StatusInternalServerError, "cannot store image", err)
	}

	l.Info("upload_image_success", "key", key, "size", len(data))
	return c.JSON(http.StatusCreated, map[string]string{"key": key})
}

func (h *ImageHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "images.delete")

	pattern := c.QueryParam("pattern")
	if pattern == "" {
		return reject(l, "delete_images_failed", http.StatusBadRequest, "pattern is required", nil)
	}

	n, err := h.Images.Delete(ctx, pattern)
	if err != nil {
		return reject(l, "delete_images_failed", http.StatusInternalServerError, "cannot delete images", err)
	}

	l.Info("delete_images_success", "pattern", pattern, "deleted", n)
	return c.JSON(http.StatusOK, map[string]int{"deleted": n})
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w of %d bytes", errTooLarge, limit)
	}
	return data, nil
}
