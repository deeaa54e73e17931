package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/canergenc/doctor-calendar-server/internal/model"
)

// GroupSettingRepository 组设置数据访问接口
type GroupSettingRepository interface {
	Create(ctx context.Context, setting *model.GroupSetting) error
	GetByID(ctx context.Context, id string) (*model.GroupSetting, error)
	// FindByGroupAndType 按组与档案类型查询设置；不存在时返回 gorm.ErrRecordNotFound
	FindByGroupAndType(ctx context.Context, groupID string, settingType model.GroupSettingType) (*model.GroupSetting, error)
	ListByGroup(ctx context.Context, groupID string) ([]model.GroupSetting, error)
	Update(ctx context.Context, setting *model.GroupSetting) error
	SoftDelete(ctx context.Context, id, deletedBy string) error
}

type groupSettingRepo struct {
	db *gorm.DB
}

func NewGroupSettingRepo(db *gorm.DB) GroupSettingRepository {
	return &groupSettingRepo{db: db}
}

func (r *groupSettingRepo) Create(ctx context.Context, setting *model.GroupSetting) error {
	return r.db.WithContext(ctx).Create(setting).Error
}

func (r *groupSettingRepo) GetByID(ctx context.Context, id string) (*model.GroupSetting, error) {
	var setting model.GroupSetting
	err := r.db.WithContext(ctx).
		Where("group_setting_id = ?", id).
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *groupSettingRepo) FindByGroupAndType(ctx context.Context, groupID string, settingType model.GroupSettingType) (*model.GroupSetting, error) {
	var setting model.GroupSetting
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND setting_type = ?", groupID, settingType).
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *groupSettingRepo) ListByGroup(ctx context.Context, groupID string) ([]model.GroupSetting, error) {
	var settings []model.GroupSetting
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Find(&settings).Error
	return settings, err
}

func (r *groupSettingRepo) Update(ctx context.Context, setting *model.GroupSetting) error {
	return r.db.WithContext(ctx).
		Model(setting).
		Where("group_setting_id = ?", setting.GroupSettingID).
		Updates(map[string]interface{}{
			"is_weekday_control":           setting.IsWeekdayControl,
			"is_weekend_control":           setting.IsWeekendControl,
			"sequential_order_limit_count": setting.SequentialOrderLimitCount,
			"location_day_limit":           setting.LocationDayLimit,
			"location_day_limit_count":     setting.LocationDayLimitCount,
			"updated_by":                   setting.UpdatedBy,
		}).Error
}

func (r *groupSettingRepo) SoftDelete(ctx context.Context, id, deletedBy string) error {
	result := r.db.WithContext(ctx).
		Model(&model.GroupSetting{}).
		Where("group_setting_id = ?", id).
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
