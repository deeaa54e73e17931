package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/canergenc/doctor-calendar-server/internal/model"
)

// LocationRepository 值班地点数据访问接口
type LocationRepository interface {
	Create(ctx context.Context, loc *model.Location) error
	GetByID(ctx context.Context, id string) (*model.Location, error)
	ListByGroup(ctx context.Context, groupID string, includeInactive bool) ([]model.Location, error)
	Update(ctx context.Context, loc *model.Location) error
	SoftDelete(ctx context.Context, id, deletedBy string) error
}

type locationRepo struct {
	db *gorm.DB
}

func NewLocationRepo(db *gorm.DB) LocationRepository {
	return &locationRepo{db: db}
}

func (r *locationRepo) Create(ctx context.Context, loc *model.Location) error {
	return r.db.WithContext(ctx).Create(loc).Error
}

func (r *locationRepo) GetByID(ctx context.Context, id string) (*model.Location, error) {
	var loc model.Location
	err := r.db.WithContext(ctx).
		Where("location_id = ?", id).
		First(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *locationRepo) ListByGroup(ctx context.Context, groupID string, includeInactive bool) ([]model.Location, error) {
	var locs []model.Location
	q := r.db.WithContext(ctx).Where("group_id = ?", groupID)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("name ASC").Find(&locs).Error
	return locs, err
}

func (r *locationRepo) Update(ctx context.Context, loc *model.Location) error {
	return r.db.WithContext(ctx).
		Model(loc).
		Where("location_id = ?", loc.LocationID).
		Updates(map[string]interface{}{
			"name":       loc.Name,
			"address":    loc.Address,
			"day_limit":  loc.DayLimit,
			"is_active":  loc.IsActive,
			"updated_by": loc.UpdatedBy,
		}).Error
}

func (r *locationRepo) SoftDelete(ctx context.Context, id, deletedBy string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Location{}).
		Where("location_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": time.Now(),
			"deleted_by": deletedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
