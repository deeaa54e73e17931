package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/canergenc/doctor-calendar-server/internal/model"
)

// GroupRepository 组（科室）数据访问接口
type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id string) (*model.Group, error)
	List(ctx context.Context, includeInactive bool) ([]model.Group, error)
	Update(ctx context.Context, group *model.Group) error
	SoftDelete(ctx context.Context, id, deletedBy string) error
}

type groupRepo struct {
	db *gorm.DB
}

func NewGroupRepo(db *gorm.DB) GroupRepository {
	return &groupRepo{db: db}
}

func (r *groupRepo) Create(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepo) GetByID(ctx context.Context, id string) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).
		Where("group_id = ?", id).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepo) List(ctx context.Context, includeInactive bool) ([]model.Group, error) {
	var groups []model.Group
	q := r.db.WithContext(ctx)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("name ASC").Find(&groups).Error
	return groups, err
}

func (r *groupRepo) Update(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).
		Model(group).
		Where("group_id = ?", group.GroupID).
		Updates(map[string]interface{}{
			"name":        group.Name,
			"description": group.Description,
			"is_active":   group.IsActive,
			"updated_by":  group.UpdatedBy,
		}).Error
}

func (r *groupRepo) SoftDelete(ctx context.Context, id, deletedBy string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Group{}).
		Where("group_id = ?", id).
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
