package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/petompp/internal/blob"
	"github.com/Skotchmaster/petompp/internal/logging"
	"github.com/Skotchmaster/petompp/internal/models"
)

type BlobHandler struct {
	Containers *blob.Containers
	Limit      int64
}

func blobErr(l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, blob.ErrUnknownContainer):
		return reject(l, event, http.StatusNotFound, "container not found", err)
	case errors.Is(err, blob.ErrNotFound):
		return reject(l, event, http.StatusNotFound, "blob not found", err)
	}
	return reject(l, event, http.StatusInternalServerError, "blob storage failed", err)
}

func (h *BlobHandler) Meta(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blob.meta")

	filename := c.Param("*")
	if filename == "" {
		return reject(l, "get_blob_failed", http.StatusBadRequest, "filename is required", nil)
	}

	meta, err := h.Containers.Meta(ctx, c.Param("container"), filename)
	if err != nil {
		return blobErr(l, "get_blob_failed", err)
	}
	return c.JSON(http.StatusOK, meta)
}

// List returns either full metadata or only names, depending on ?data.
func (h *BlobHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blob.list")

	container, prefix := c.Param("container"), c.QueryParam("prefix")
	switch c.QueryParam("data") {
	case "", "full":
		metas, err := h.Containers.List(ctx, container, prefix)
		if err != nil {
			return blobErr(l, "list_blobs_failed", err)
		}
		return c.JSON(http.StatusOK, metas)
	case "name":
		names, err := h.Containers.Names(ctx, container, prefix)
		if err != nil {
			return blobErr(l, "list_blobs_failed", err)
		}
		return c.JSON(http.StatusOK, names)
	default:
		return reject(l, "list_blobs_failed", http.StatusBadRequest, "data must be full or name", nil)
	}
}

func (h *BlobHandler) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blob.upload")

	var upload models.BlobUpload
	if err := json.Unmarshal([]byte(c.FormValue("meta")), &upload); err != nil {
		return reject(l, "upload_blob_failed", http.StatusBadRequest, "invalid meta", err)
	}
	if upload.Filename == "" {
		return reject(l, "upload_blob_failed", http.StatusBadRequest, "filename is required", nil)
	}

	fh, err := c.FormFile("content")
	if err != nil {
		return reject(l, "upload_blob_failed", http.StatusBadRequest, "content is required", err)
	}
	if fh.Size > h.Limit {
		return reject(l, "upload_blob_failed", http.StatusRequestEntityTooLarge, errTooLarge.Error(), nil)
	}
	f, err := fh.Open()
	if err != nil {
		return reject(l, "upload_blob_failed", http.StatusBadRequest, "cannot read content", err)
	}
	defer f.Close()

	data, err := readLimited(f, h.Limit)
	if err != nil {
		if errors.Is(err, errTooLarge) {
			return reject(l, "upload_blob_failed", http.StatusRequestEntityTooLarge, err.Error(), err)
		}
		return reject(l, "upload_blob_failed", http.StatusBadRequest, "cannot read content", err)
	}
	if upload.ContentType == "" {
		upload.ContentType = fh.Header.Get(echo.HeaderContentType)
	}

	if err := h.Containers.Put(ctx, c.Param("container"), upload, data); err != nil {
		return blobErr(l, "upload_blob_failed", err)
	}

	l.Info("upload_blob_success", "container", c.Param("container"), "filename", upload.Filename, "size", len(data))
	return c.NoContent(http.StatusCreated)
}

func (h *BlobHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blob.delete")

	prefix := c.Param("*")
	if prefix == "" {
		return reject(l, "delete_blob_failed", http.StatusBadRequest, "filename is required", nil)
	}

	n, err := h.Containers.Delete(ctx, c.Param("container"), prefix)
	if err != nil {
		return blobErr(l, "delete_blob_failed", err)
	}
	if n == 0 {
		return reject(l, "delete_blob_failed", http.StatusNotFound, "blob not found", nil)
	}

	l.Info("delete_blob_success", "container", c.Param("container"), "prefix", prefix, "deleted", n)
	return c.JSON(http.StatusOK, map[string]int{"deleted": n})
}
