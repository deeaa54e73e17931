package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/canergenc/doctor-calendar-server/internal/model"
)

// ErrorLogRepository 错误日志数据访问接口
type ErrorLogRepository interface {
	Create(ctx context.Context, log *model.ErrorLog) error
}

type errorLogRepo struct {
	db *gorm.DB
}

func NewErrorLogRepo(db *gorm.DB) ErrorLogRepository {
	return &errorLogRepo{db: db}
}

func (r *errorLogRepo) Create(ctx context.Context, log *model.ErrorLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}
