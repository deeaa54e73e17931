package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/canergenc/doctor-calendar-server/internal/model"
)

// UserSettingRepository 用户个人设置数据访问接口
type UserSettingRepository interface {
	Create(ctx context.Context, setting *model.UserSetting) error
	FindByUser(ctx context.Context, userID string) (*model.UserSetting, error)
	Update(ctx context.Context, setting *model.UserSetting) error
	SoftDelete(ctx context.Context, id, deletedBy string) error
}

type userSettingRepo struct {
	db *gorm.DB
}

func NewUserSettingRepo(db *gorm.DB) UserSettingRepository {
	return &userSettingRepo{db: db}
}

func (r *userSettingRepo) Create(ctx context.Context, setting *model.UserSetting) error {
	return r.db.WithContext(ctx).Create(setting).Error
}

func (r *userSettingRepo) FindByUser(ctx context.Context, userID string) (*model.UserSetting, error) {
	var setting model.UserSetting
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *userSettingRepo) Update(ctx context.Context, setting *model.UserSetting) error {
	return r.db.WithContext(ctx).
		Model(setting).
		Where("user_setting_id = ?", setting.UserSettingID).
		Updates(map[string]interface{}{
			"weekday_count_limit":    setting.WeekdayCountLimit,
			"weekend_count_limit":    setting.WeekendCountLimit,
			"sequential_count_limit": setting.SequentialCountLimit,
			"updated_by":             setting.UpdatedBy,
		}).Error
}

func (r *userSettingRepo) SoftDelete(ctx context.Context, id, deletedBy string) error {
	result := r.db.WithContext(ctx).
		Model(&model.UserSetting{}).
		Where("user_setting_id = ?", id).
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
