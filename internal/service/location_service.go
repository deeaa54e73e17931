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

var (
	ErrLocationNotFound = errors.New("地点不存在")
)

// LocationService 值班地点业务接口
type LocationService interface {
	Create(ctx context.Context, req *dto.CreateLocationRequest, actor *model.User) (*dto.LocationResponse, error)
	GetByID(ctx context.Context, id string) (*dto.LocationResponse, error)
	ListByGroup(ctx context.Context, req *dto.LocationListRequest) ([]dto.LocationResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateLocationRequest, actor *model.User) (*dto.LocationResponse, error)
	Delete(ctx context.Context, id string, actor *model.User) error
}

type locationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLocationService 创建 LocationService 实例
func NewLocationService(repo *repository.Repository, logger *zap.Logger) LocationService {
	return &locationService{repo: repo, logger: logger}
}

func (s *locationService) Create(ctx context.Context, req *dto.CreateLocationRequest, actor *model.User) (*dto.LocationResponse, error) {
	if _, err := s.repo.Group.GetByID(ctx, req.GroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	loc := &model.Location{
		GroupID:  req.GroupID,
		Name:     req.Name,
		Address:  req.Address,
		DayLimit: req.DayLimit,
		IsActive: true,
	}
	loc.CreatedBy = &actor.UserID
	loc.UpdatedBy = &actor.UserID

	if err := s.repo.Location.Create(ctx, loc); err != nil {
		s.logger.Error("创建地点失败", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	return toLocationResponse(loc), nil
}

func (s *locationService) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	loc, err := s.repo.Location.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return toLocationResponse(loc), nil
}

func (s *locationService) ListByGroup(ctx context.Context, req *dto.LocationListRequest) ([]dto.LocationResponse, error) {
	locs, err := s.repo.Location.ListByGroup(ctx, req.GroupID, req.IncludeInactive)
	if err != nil {
		s.logger.Error("查询地点列表失败", zap.String("group_id", req.GroupID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.LocationResponse, 0, len(locs))
	for i := range locs {
		result = append(result, *toLocationResponse(&locs[i]))
	}
	return result, nil
}

func (s *locationService) Update(ctx context.Context, id string, req *dto.UpdateLocationRequest, actor *model.User) (*dto.LocationResponse, error) {
	loc, err := s.repo.Location.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.Address != nil {
		loc.Address = *req.Address
	}
	if req.DayLimit != nil {
		loc.DayLimit = req.DayLimit
	}
	if req.IsActive != nil {
		loc.IsActive = *req.IsActive
	}
	loc.UpdatedBy = &actor.UserID

	if err := s.repo.Location.Update(ctx, loc); err != nil {
		s.logger.Error("更新地点失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toLocationResponse(loc), nil
}

func (s *locationService) Delete(ctx context.Context, id string, actor *model.User) error {
	if err := s.repo.Location.SoftDelete(ctx, id, actor.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLocationNotFound
		}
		s.logger.Error("删除地点失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toLocationResponse(loc *model.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:       loc.LocationID,
		GroupID:  loc.GroupID,
		Name:     loc.Name,
		Address:  loc.Address,
		DayLimit: loc.DayLimit,
		IsActive: loc.IsActive,
	}
}
