package blob

import (
	"context"
	"errors"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedImage = errors.New("unsupported image type")

var imageExtensions = map[string]string{
	"image/jpeg": "jpeg",
	"image/png":  "png",
	"image/bmp":  "bmp",
}

type Images struct {
	store  *Store
	bucket string
}

func NewImages(store *Store, bucket string) *Images {
	return &Images{store: store, bucket: bucket}
}

func (i *Images) Bucket() string { return i.bucket }

// ImageExtension maps an accepted image content type to its file extension.
func ImageExtension(contentType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", ErrUnsupportedImage
	}
	ext, ok := imageExtensions[mediaType]
	if !ok {
		return "", ErrUnsupportedImage
	}
	return ext, nil
}

// List returns the keys of all objects stored with an image content type.
func (i *Images) List(ctx context.Context) ([]string, error) {
	keys, err := i.store.List(ctx, i.bucket, "")
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		obj, err := i.store.Head(ctx, i.bucket, key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(obj.ContentType, "image/") {
			out = append(out, key)
		}
	}
	return out, nil
}

// Upload stores data under folder/filename. An empty filename is replaced
// by a random one with the extension of the content type.
func (i *Images) Upload(ctx context.Context, folder, filename, contentType string, data []byte) (string, error) {
	ext, err := ImageExtension(contentType)
	if err != nil {
		return "", err
	}
	if filename == "" {
		filename = uuid.NewString() + "." + ext
	}
	key := path.Join(strings.Trim(folder, "/"), filename)
	if err := i.store.Put(ctx, i.bucket, key, data, contentType, nil); err != nil {
		return "", err
	}
	return key, nil
}

func (i *Images) Delete(ctx context.Context, pattern string) (int, error) {
	return i.store.DeleteByPrefix(ctx, i.bucket, pattern)
}
