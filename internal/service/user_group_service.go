package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/canergenc/doctor-calendar-server/internal/dto"
	"github.com/canergenc/doctor-calendar-server/internal/model"
	"github.com/canergenc/doctor-calendar-server/internal/repository"
)

// ── 成员关系模块业务错误 ──

var (
	ErrUserGroupNotFound = errors.New("成员关系不存在")
	ErrAlreadyMember     = errors.New("用户已是该组成员")
)

// UserGroupService 用户-组成员关系业务接口
type UserGroupService interface {
	// Create 将用户加入组；上限字段缺省时从用户个人设置回填
	Create(ctx context.Context, req *dto.CreateUserGroupRequest, actor *model.User) (*dto.UserGroupResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserGroupResponse, error)
	ListByGroup(ctx context.Context, groupID string) ([]dto.UserGroupResponse, error)
	ListByUser(ctx context.Context, userID string) ([]dto.UserGroupResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserGroupRequest, actor *model.User) (*dto.UserGroupResponse, error)
	Delete(ctx context.Context, id string, actor *model.User) error
}

type userGroupService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserGroupService 创建 UserGroupService 实例
func NewUserGroupService(repo *repository.Repository, logger *zap.Logger) UserGroupService {
	return &userGroupService{repo: repo, logger: logger}
}

func (s *userGroupService) Create(ctx context.Context, req *dto.CreateUserGroupRequest, actor *model.User) (*dto.UserGroupResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Group.GetByID(ctx, req.GroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	if _, err := s.repo.UserGroup.FindActive(ctx, req.UserID, req.GroupID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	weekdayLimit, weekendLimit := req.WeekdayCountLimit, req.WeekendCountLimit
	if weekdayLimit == nil || weekendLimit == nil {
		// 请求未指定时取用户个人设置的默认值
		if setting, err := s.repo.UserSetting.FindByUser(ctx, req.UserID); err == nil {
			if weekdayLimit == nil {
				weekdayLimit = setting.WeekdayCountLimit
			}
			if weekendLimit == nil {
				weekendLimit = setting.WeekendCountLimit
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	ug := &model.UserGroup{
		UserID:            req.UserID,
		GroupID:           req.GroupID,
		WeekdayCountLimit: weekdayLimit,
		WeekendCountLimit: weekendLimit,
		IsActive:          true,
	}
	ug.CreatedBy = &actor.UserID
	ug.UpdatedBy = &actor.UserID

	if err := s.repo.UserGroup.Create(ctx, ug); err != nil {
		s.logger.Error("创建成员关系失败",
			zap.String("user_id", req.UserID),
			zap.String("group_id", req.GroupID),
			zap.Error(err))
		return nil, err
	}

	return toUserGroupResponse(ug), nil
}

func (s *userGroupService) GetByID(ctx context.Context, id string) (*dto.UserGroupResponse, error) {
	ug, err := s.repo.UserGroup.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserGroupNotFound
		}
		return nil, err
	}
	return toUserGroupResponse(ug), nil
}

func (s *userGroupService) ListByGroup(ctx context.Context, groupID string) ([]dto.UserGroupResponse, error) {
	ugs, err := s.repo.UserGroup.ListByGroup(ctx, groupID)
	if err != nil {
		s.logger.Error("查询组成员失败", zap.String("group_id", groupID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserGroupResponse, 0, len(ugs))
	for i := range ugs {
		result = append(result, *toUserGroupResponse(&ugs[i]))
	}
	return result, nil
}

func (s *userGroupService) ListByUser(ctx context.Context, userID string) ([]dto.UserGroupResponse, error) {
	ugs, err := s.repo.UserGroup.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询用户所在组失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserGroupResponse, 0, len(ugs))
	for i := range ugs {
		result = append(result, *toUserGroupResponse(&ugs[i]))
	}
	return result, nil
}

func (s *userGroupService) Update(ctx context.Context, id string, req *dto.UpdateUserGroupRequest, actor *model.User) (*dto.UserGroupResponse, error) {
	ug, err := s.repo.UserGroup.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserGroupNotFound
		}
		return nil, err
	}

	if req.WeekdayCountLimit != nil {
		ug.WeekdayCountLimit = req.WeekdayCountLimit
	}
	if req.WeekendCountLimit != nil {
		ug.WeekendCountLimit = req.WeekendCountLimit
	}
	if req.IsActive != nil {
		ug.IsActive = *req.IsActive
	}
	ug.UpdatedBy = &actor.UserID

	if err := s.repo.UserGroup.Update(ctx, ug); err != nil {
		s.logger.Error("更新成员关系失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toUserGroupResponse(ug), nil
}

func (s *userGroupService) Delete(ctx context.Context, id string, actor *model.User) error {
	if err := s.repo.UserGroup.SoftDelete(ctx, id, actor.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserGroupNotFound
		}
		s.logger.Error("删除成员关系失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toUserGroupResponse(ug *model.UserGroup) *dto.UserGroupResponse {
	resp := &dto.UserGroupResponse{
		ID:                ug.UserGroupID,
		UserID:            ug.UserID,
		GroupID:           ug.GroupID,
		WeekdayCountLimit: ug.WeekdayCountLimit,
		WeekendCountLimit: ug.WeekendCountLimit,
		IsActive:          ug.IsActive,
	}
	if ug.User != nil {
		resp.User = toUserResponse(ug.User)
	}
	if ug.Group != nil {
		resp.Group = toGroupResponse(ug.Group)
	}
	return resp
}
