package blob

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"github.com/Skotchmaster/petompp/internal/models"
)

const markdownContentType = "text/markdown; charset=utf-8"

const (
	metaTitle       = "title"
	metaDescription = "description"
	metaTags        = "tags"
	metaImage       = "image"
	metaCreated     = "created"
)

// Blog stores posts as name/lang.md with their metadata on the object.
type Blog struct {
	store  *Store
	bucket string
	now    func() time.Time
}

func NewBlog(store *Store, bucket string, now func() time.Time) *Blog {
	if now == nil {
		now = time.Now
	}
	return &Blog{store: store, bucket: bucket, now: now}
}

func PostKey(name string, lang models.Lang) string {
	return name + "/" + string(lang) + ".md"
}

// Save creates or replaces a post. The creation time of an existing post
// is carried over.
func (b *Blog) Save(ctx context.Context, name string, lang models.Lang, data models.BlogData) (*models.BlogMeta, error) {
	key := PostKey(name, lang)
	created := b.now().UTC()

	existing, err := b.store.Head(ctx, b.bucket, key)
	switch {
	case err == nil:
		if t, perr := time.Parse(time.RFC3339, existing.Metadata[metaCreated]); perr == nil {
			created = t
		}
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	meta := map[string]string{
		metaTitle:       data.Meta.Title,
		metaDescription: data.Meta.Description,
		metaTags:        strings.Join(data.Meta.Tags, ","),
		metaCreated:     created.Format(time.RFC3339),
	}
	if data.Meta.Image != "" {
		meta[metaImage] = data.Meta.Image
	}
	if err := b.store.Put(ctx, b.bucket, key, []byte(data.Content), markdownContentType, meta); err != nil {
		return nil, err
	}
	return b.Meta(ctx, name, lang)
}

func (b *Blog) Delete(ctx context.Context, name string, lang models.Lang) error {
	return b.store.Delete(ctx, b.bucket, PostKey(name, lang))
}

func (b *Blog) Meta(ctx context.Context, name string, lang models.Lang) (*models.BlogMeta, error) {
	obj, err := b.store.Head(ctx, b.bucket, PostKey(name, lang))
	if err != nil {
		return nil, err
	}
	return blogMeta(name, lang, obj), nil
}

// List returns the metadata of every post whose key starts with prefix.
func (b *Blog) List(ctx context.Context, prefix string) ([]models.BlogMeta, error) {
	keys, err := b.store.List(ctx, b.bucket, prefix)
	if err != nil {
		return nil, err
	}
	var out []models.BlogMeta
	for _, key := range keys {
		name, lang, ok := parsePostKey(key)
		if !ok {
			continue
		}
		obj, err := b.store.Head(ctx, b.bucket, key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *blogMeta(name, lang, obj))
	}
	return out, nil
}

func parsePostKey(key string) (string, models.Lang, bool) {
	dir, file := path.Split(key)
	name := strings.TrimSuffix(dir, "/")
	base, found := strings.CutSuffix(file, ".md")
	if name == "" || !found {
		return "", "", false
	}
	lang, err := models.ParseLang(base)
	if err != nil {
		return "", "", false
	}
	return name, lang, true
}

func blogMeta(name string, lang models.Lang, obj *Object) *models.BlogMeta {
	meta := &models.BlogMeta{
		Name:        name,
		Lang:        lang,
		Title:       obj.Metadata[metaTitle],
		Description: obj.Metadata[metaDescription],
		Tags:        splitTags(obj.Metadata[metaTags]),
		Image:       obj.Metadata[metaImage],
		Updated:     obj.LastModified,
	}
	if t, err := time.Parse(time.RFC3339, obj.Metadata[metaCreated]); err == nil {
		meta.Created = t
	} else {
		meta.Created = obj.LastModified
	}
	return meta
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
