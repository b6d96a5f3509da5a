package blob

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/petompp/internal/models"
)

var ErrUnknownContainer = errors.New("unknown container")

// Containers exposes an allow-listed set of buckets through the generic
// blob routes. Every container maps to the bucket of the same name.
type Containers struct {
	store   *Store
	allowed map[string]struct{}
}

func NewContainers(store *Store, names []string) *Containers {
	allowed := make(map[string]struct{}, len(names))
	for _, n := range names {
		allowed[n] = struct{}{}
	}
	return &Containers{store: store, allowed: allowed}
}

func (c *Containers) bucket(container string) (string, error) {
	if _, ok := c.allowed[container]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownContainer, container)
	}
	return container, nil
}

func (c *Containers) Meta(ctx context.Context, container, filename string) (*models.BlobMeta, error) {
	bucket, err := c.bucket(container)
	if err != nil {
		return nil, err
	}
	obj, err := c.store.Head(ctx, bucket, filename)
	if err != nil {
		return nil, err
	}
	return toBlobMeta(obj), nil
}

func (c *Containers) Names(ctx context.Context, container, prefix string) ([]string, error) {
	bucket, err := c.bucket(container)
	if err != nil {
		return nil, err
	}
	return c.store.List(ctx, bucket, prefix)
}

func (c *Containers) List(ctx context.Context, container, prefix string) ([]models.BlobMeta, error) {
	bucket, err := c.bucket(container)
	if err != nil {
		return nil, err
	}
	keys, err := c.store.List(ctx, bucket, prefix)
	if err != nil {
		return nil, err
	}
	out := make([]models.BlobMeta, 0, len(keys))
	for _, key := range keys {
		obj, err := c.store.Head(ctx, bucket, key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *toBlobMeta(obj))
	}
	return out, nil
}

func (c *Containers) Put(ctx context.Context, container string, upload models.BlobUpload, data []byte) error {
	bucket, err := c.bucket(container)
	if err != nil {
		return err
	}
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return c.store.Put(ctx, bucket, upload.Filename, data, contentType, upload.Metadata)
}

func (c *Containers) Delete(ctx context.Context, container, prefix string) (int, error) {
	bucket, err := c.bucket(container)
	if err != nil {
		return 0, err
	}
	return c.store.DeleteByPrefix(ctx, bucket, prefix)
}

func toBlobMeta(obj *Object) *models.BlobMeta {
	return &models.BlobMeta{
		Filename:     obj.Key,
		ContentType:  obj.ContentType,
		Size:         obj.Size,
		LastModified: obj.LastModified,
		Metadata:     obj.Metadata,
	}
}
