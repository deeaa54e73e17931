package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/canergenc/doctor-calendar-server/internal/model"
)

// MailTemplateRepository 邮件模板数据访问接口
type MailTemplateRepository interface {
	Create(ctx context.Context, tpl *model.MailTemplate) error
	// FindByCode 按模板编码查询有效模板
	FindByCode(ctx context.Context, code string) (*model.MailTemplate, error)
	List(ctx context.Context) ([]model.MailTemplate, error)
	Update(ctx context.Context, tpl *model.MailTemplate) error
	SoftDelete(ctx context.Context, id, deletedBy string) error
}

type mailTemplateRepo struct {
	db *gorm.DB
}

func NewMailTemplateRepo(db *gorm.DB) MailTemplateRepository {
	return &mailTemplateRepo{db: db}
}

func (r *mailTemplateRepo) Create(ctx context.Context, tpl *model.MailTemplate) error {
	return r.db.WithContext(ctx).Create(tpl).Error
}

func (r *mailTemplateRepo) FindByCode(ctx context.Context, code string) (*model.MailTemplate, error) {
	var tpl model.MailTemplate
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&tpl).Error
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *mailTemplateRepo) List(ctx context.Context) ([]model.MailTemplate, error) {
	var tpls []model.MailTemplate
	err := r.db.WithContext(ctx).Order("code ASC").Find(&tpls).Error
	return tpls, err
}

func (r *mailTemplateRepo) Update(ctx context.Context, tpl *model.MailTemplate) error {
	return r.db.WithContext(ctx).
		Model(tpl).
		Where("mail_template_id = ?", tpl.MailTemplateID).
		Updates(map[string]interface{}{
			"subject":    tpl.Subject,
			"body":       tpl.Body,
			"is_active":  tpl.IsActive,
			"updated_by": tpl.UpdatedBy,
		}).Error
}

func (r *mailTemplateRepo) SoftDelete(ctx context.Context, id, deletedBy string) error {
	result := r.db.WithContext(ctx).
		Model(&model.MailTemplate{}).
		Where("mail_template_id = ?", id).
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

// ── Notification Repository ──

// NotificationRepository 通知记录数据访问接口
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.Notification, int64, error)
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.Notification, int64, error) {
	var list []model.Notification
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ?", userID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&list).Error
	return list, total, err
}
