package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/petompp/internal/models"
)

func (r *GormRepo) GetResource(ctx context.Context, key string) (*models.Resource, error) {
	var res models.Resource
	if err := r.DB.WithContext(ctx).Where(byKey(key)).First(&res).Error; err != nil {
		return nil, notFound(err, ErrResourceNotFound)
	}
	return &res, nil
}

func (r *GormRepo) ResourceKeys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := r.DB.WithContext(ctx).Model(&models.Resource{}).Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).Pluck("key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *GormRepo) GetResources(ctx context.Context) ([]models.Resource, error) {
	var items []models.Resource
	if err := r.DB.WithContext(ctx).Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateResource(ctx context.Context, res *models.Resource) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Resource{}).Where(byKey(res.Key)).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrResourceExists
		}
		return tx.Create(res).Error
	})
}

// UpdateResource sets the non-nil values and returns the stored row.
func (r *GormRepo) UpdateResource(ctx context.Context, key string, en, pl *string) (*models.Resource, error) {
	updates := map[string]any{}
	if en != nil {
		updates["en"] = *en
	}
	if pl != nil {
		updates["pl"] = *pl
	}

	var res models.Resource
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(byKey(key)).First(&res).Error; err != nil {
			return notFound(err, ErrResourceNotFound)
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&models.Resource{}).Where(byKey(key)).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where(byKey(key)).First(&res).Error
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *GormRepo) ClearTranslation(ctx context.Context, key string, column string) (*models.Resource, error) {
	var res models.Resource
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Resource{}).Where(byKey(key)).Update(column, gorm.Expr("NULL"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrResourceNotFound
		}
		return tx.Where(byKey(key)).First(&res).Error
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *GormRepo) DeleteResource(ctx context.Context, key string) error {
	res := r.DB.WithContext(ctx).Where(byKey(key)).Delete(&models.Resource{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrResourceNotFound
	}
	return nil
}

// key is quoted through the clause builder since it is a keyword in some dialects.
func byKey(key string) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: "key"}, Value: key}
}
