package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/canergenc/doctor-calendar-server/internal/dto"
	"github.com/canergenc/doctor-calendar-server/internal/model"
	"github.com/canergenc/doctor-calendar-server/internal/repository"
)

// ── 测试辅助 ──

type userGroupFixture struct {
	svc     UserGroupService
	ugRepo  *mockUserGroupRepo
	usRepo  *mockUserSettingRepo
}

func setupTestUserGroupService() *userGroupFixture {
	userRepo := newMockUserRepo()
	groupRepo := newMockGroupRepo()
	ugRepo := newMockUserGroupRepo()
	usRepo := newMockUserSettingRepo()

	repo := &repository.Repository{
		User:          userRepo,
		Group:         groupRepo,
		UserGroup:     ugRepo,
		GroupSetting:  newMockGroupSettingRepo(),
		UserSetting:   usRepo,
		Location:      newMockLocationRepo(),
		CalendarEntry: newMockCalendarEntryRepo(),
		MailTemplate:  newMockMailTemplateRepo(),
		Notification:  newMockNotificationRepo(),
		ErrorLog:      newMockErrorLogRepo(),
	}

	userRepo.users["doc-001"] = &model.User{UserID: "doc-001", FullName: "张医生", Role: model.RoleUser}
	groupRepo.groups["grp-001"] = &model.Group{GroupID: "grp-001", Name: "心内科", IsActive: true}

	return &userGroupFixture{
		svc:    NewUserGroupService(repo, zap.NewNop()),
		ugRepo: ugRepo,
		usRepo: usRepo,
	}
}

// ── Create 测试 ──

func TestUserGroupService_Create_Success(t *testing.T) {
	f := setupTestUserGroupService()

	result, err := f.svc.Create(context.Background(), &dto.CreateUserGroupRequest{
		UserID:            "doc-001",
		GroupID:           "grp-001",
		WeekdayCountLimit: intPtr(5),
	}, testAdmin)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if !result.IsActive {
		t.Error("新成员关系应为有效状态")
	}
	if result.WeekdayCountLimit == nil || *result.WeekdayCountLimit != 5 {
		t.Error("工作日上限应为 5")
	}
}

func TestUserGroupService_Create_DuplicateRejected(t *testing.T) {
	f := setupTestUserGroupService()
	f.ugRepo.userGroups["ug-001"] = &model.UserGroup{
		UserGroupID: "ug-001", UserID: "doc-001", GroupID: "grp-001", IsActive: true,
	}

	_, err := f.svc.Create(context.Background(), &dto.CreateUserGroupRequest{
		UserID:  "doc-001",
		GroupID: "grp-001",
	}, testAdmin)
	if !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("期望 ErrAlreadyMember，实际: %v", err)
	}
}

func TestUserGroupService_Create_BackfillsFromUserSetting(t *testing.T) {
	f := setupTestUserGroupService()
	f.usRepo.settings["us-001"] = &model.UserSetting{
		UserSettingID:     "us-001",
		UserID:            "doc-001",
		WeekdayCountLimit: intPtr(4),
		WeekendCountLimit: intPtr(2),
	}

	// 请求未指定上限：从用户个人设置回填
	result, err := f.svc.Create(context.Background(), &dto.CreateUserGroupRequest{
		UserID:  "doc-001",
		GroupID: "grp-001",
	}, testAdmin)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.WeekdayCountLimit == nil || *result.WeekdayCountLimit != 4 {
		t.Error("工作日上限应从用户设置回填为 4")
	}
	if result.WeekendCountLimit == nil || *result.WeekendCountLimit != 2 {
		t.Error("周末上限应从用户设置回填为 2")
	}
}

func TestUserGroupService_Create_UserMissing(t *testing.T) {
	f := setupTestUserGroupService()

	_, err := f.svc.Create(context.Background(), &dto.CreateUserGroupRequest{
		UserID:  "ghost",
		GroupID: "grp-001",
	}, testAdmin)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// ── Update / Delete 测试 ──

func TestUserGroupService_Update_Deactivate(t *testing.T) {
	f := setupTestUserGroupService()
	f.ugRepo.userGroups["ug-001"] = &model.UserGroup{
		UserGroupID: "ug-001", UserID: "doc-001", GroupID: "grp-001", IsActive: true,
	}

	inactive := false
	result, err := f.svc.Update(context.Background(), "ug-001", &dto.UpdateUserGroupRequest{IsActive: &inactive}, testAdmin)
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.IsActive {
		t.Error("期望成员关系被停用")
	}

	// 停用后可重新加入
	if _, err := f.svc.Create(context.Background(), &dto.CreateUserGroupRequest{
		UserID:  "doc-001",
		GroupID: "grp-001",
	}, testAdmin); err != nil {
		t.Fatalf("停用后应可重新加入: %v", err)
	}
}

func TestUserGroupService_Delete_NotFound(t *testing.T) {
	f := setupTestUserGroupService()

	err := f.svc.Delete(context.Background(), "ghost", testAdmin)
	if !errors.Is(err, ErrUserGroupNotFound) {
		t.Errorf("期望 ErrUserGroupNotFound，实际: %v", err)
	}
}
