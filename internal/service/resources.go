package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/petompp/internal/logging"
	"github.com/Skotchmaster/petompp/internal/models"
	"github.com/Skotchmaster/petompp/internal/mykafka"
	"github.com/Skotchmaster/petompp/internal/repo"
)

// ResourceSearcher mirrors resources into a full text index.
type ResourceSearcher interface {
	Index(ctx context.Context, r models.Resource) error
	Delete(ctx context.Context, key string) error
	Search(ctx context.Context, q string, from, size int) (int64, []models.Resource, error)
}

type ResourceService struct {
	Repo      *repo.GormRepo
	Search    ResourceSearcher
	Publisher mykafka.Publisher
	Now       func() time.Time
}

func (s *ResourceService) Get(ctx context.Context, key string, lang models.Lang) (string, error) {
	res, err := s.Repo.GetResource(ctx, key)
	if err != nil {
		return "", mapResourceErr(err)
	}
	return res.Value(lang), nil
}

func (s *ResourceService) Keys(ctx context.Context) ([]string, error) {
	return s.Repo.ResourceKeys(ctx)
}

// Create stores a new resource under key. The key in data is ignored.
func (s *ResourceService) Create(ctx context.Context, key string, data models.ResourceData) (*models.Resource, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if data.En == nil {
		return nil, fmt.Errorf("%w: en is required", ErrValidation)
	}
	res := &models.Resource{Key: key, En: *data.En, Pl: data.Pl}
	if err := s.Repo.CreateResource(ctx, res); err != nil {
		return nil, mapResourceErr(err)
	}
	s.sync(ctx, mykafka.ResourceCreated, res)
	return res, nil
}

func (s *ResourceService) Update(ctx context.Context, key string, data models.ResourceData) (*models.Resource, error) {
	if data.Key != key {
		return nil, ErrKeyMismatch
	}
	if data.En == nil && data.Pl == nil {
		return nil, ErrValueMissing
	}
	res, err := s.Repo.UpdateResource(ctx, key, data.En, data.Pl)
	if err != nil {
		return nil, mapResourceErr(err)
	}
	s.sync(ctx, mykafka.ResourceUpdated, res)
	return res, nil
}

func (s *ResourceService) Delete(ctx context.Context, key string) error {
	if err := s.Repo.DeleteResource(ctx, key); err != nil {
		return mapResourceErr(err)
	}
	if s.Search != nil {
		if err := s.Search.Delete(ctx, key); err != nil {
			logging.FromContext(ctx).Warn("search_sync_failed", "key", key, "error", err)
		}
	}
	s.publish(ctx, mykafka.ResourceDeleted, key)
	return nil
}

// DeleteTranslation removes one language from a resource. English is the
// base value and cannot be removed this way.
func (s *ResourceService) DeleteTranslation(ctx context.Context, key string, lang models.Lang) (*models.Resource, error) {
	if lang == models.LangEn {
		return nil, ErrBaseLangClear
	}
	res, err := s.Repo.ClearTranslation(ctx, key, string(lang))
	if err != nil {
		return nil, mapResourceErr(err)
	}
	s.sync(ctx, mykafka.ResourceUpdated, res)
	return res, nil
}

func (s *ResourceService) SearchResources(ctx context.Context, q string, from, size int) (int64, []models.Resource, error) {
	if s.Search == nil {
		return 0, nil, ErrSearchUnavailable
	}
	return s.Search.Search(ctx, q, from, size)
}

// Reindex pushes every stored resource into the search index.
func (s *ResourceService) Reindex(ctx context.Context) (int, error) {
	if s.Search == nil {
		return 0, ErrSearchUnavailable
	}
	items, err := s.Repo.GetResources(ctx)
	if err != nil {
		return 0, err
	}
	for n, r := range items {
		if err := s.Search.Index(ctx, r); err != nil {
			return n, err
		}
	}
	return len(items), nil
}

func (s *ResourceService) sync(ctx context.Context, kind string, res *models.Resource) {
	if s.Search != nil {
		if err := s.Search.Index(ctx, *res); err != nil {
			logging.FromContext(ctx).Warn("search_sync_failed", "key", res.Key, "error", err)
		}
	}
	s.publish(ctx, kind, res.Key)
}

func (s *ResourceService) publish(ctx context.Context, kind, key string) {
	if s.Publisher == nil {
		return
	}
	at := time.Now().UTC()
	if s.Now != nil {
		at = s.Now().UTC()
	}
	event := mykafka.ResourceEvent{Type: kind, Key: key, At: at}
	if err := s.Publisher.PublishEvent(ctx, mykafka.ResourceTopic, key, event); err != nil {
		logging.FromContext(ctx).Warn("publish_failed", "topic", mykafka.ResourceTopic, "event", kind, "error", err)
	}
}

func validateKey(key string) error {
	if key == "" || len(key) > 64 {
		return fmt.Errorf("%w: key must be 1 to 64 characters", ErrValidation)
	}
	return nil
}

func mapResourceErr(err error) error {
	switch {
	case errors.Is(err, repo.ErrResourceNotFound):
		return ErrNotFound
	case errors.Is(err, repo.ErrResourceExists):
		return ErrAlreadyExists
	}
	return err
}
