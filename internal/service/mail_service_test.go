package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/canergenc/doctor-calendar-server/internal/model"
	"github.com/canergenc/doctor-calendar-server/internal/repository"
)

// ── 测试辅助 ──

// recordingMailer 记录发送调用；failWith 非空时模拟发送失败
type recordingMailer struct {
	sent     []string
	failWith error
}

func (m *recordingMailer) Send(to []string, subject, body string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.sent = append(m.sent, fmt.Sprintf("%s|%s|%s", to[0], subject, body))
	return nil
}

func setupTestMailService(m *recordingMailer) (MailService, *mockUserRepo, *mockMailTemplateRepo, *mockNotificationRepo) {
	userRepo := newMockUserRepo()
	tplRepo := newMockMailTemplateRepo()
	ntfRepo := newMockNotificationRepo()

	repo := &repository.Repository{
		User:          userRepo,
		Group:         newMockGroupRepo(),
		UserGroup:     newMockUserGroupRepo(),
		GroupSetting:  newMockGroupSettingRepo(),
		UserSetting:   newMockUserSettingRepo(),
		Location:      newMockLocationRepo(),
		CalendarEntry: newMockCalendarEntryRepo(),
		MailTemplate:  tplRepo,
		Notification:  ntfRepo,
		ErrorLog:      newMockErrorLogRepo(),
	}

	svc := NewMailService(repo, m, zap.NewNop())
	return svc, userRepo, tplRepo, ntfRepo
}

func seedApprovedTemplate(tplRepo *mockMailTemplateRepo) {
	tplRepo.templates["tpl-1"] = &model.MailTemplate{
		MailTemplateID: "tpl-1",
		Code:           model.MailTemplateEntryApproved,
		Subject:        "排班已批准",
		Body:           "{{user_name}} 您好，您 {{start_date}} 至 {{end_date}} 的排班已批准。",
		IsActive:       true,
	}
}

// ── 发送测试 ──

func TestMailService_SendEntryStatusMail_RendersPlaceholders(t *testing.T) {
	m := &recordingMailer{}
	svc, userRepo, tplRepo, ntfRepo := setupTestMailService(m)
	seedApprovedTemplate(tplRepo)
	userRepo.users["doc-001"] = &model.User{UserID: "doc-001", FullName: "张医生", Email: "zhang@hospital.com"}

	entry := &model.CalendarEntry{
		UserID:    "doc-001",
		Type:      model.EntryTypeDuty,
		StartDate: date(2026, 6, 20),
		EndDate:   date(2026, 6, 21),
		Status:    model.EntryStatusApproved,
	}

	if err := svc.SendEntryStatusMail(context.Background(), entry); err != nil {
		t.Fatalf("SendEntryStatusMail 应成功: %v", err)
	}

	if len(m.sent) != 1 {
		t.Fatalf("期望发送 1 封邮件，实际=%d", len(m.sent))
	}
	want := "zhang@hospital.com|排班已批准|张医生 您好，您 2026-06-20 至 2026-06-21 的排班已批准。"
	if m.sent[0] != want {
		t.Errorf("邮件内容不符\n期望: %s\n实际: %s", want, m.sent[0])
	}

	// 成功发送应记录带 SentAt 的通知
	if len(ntfRepo.notifications) != 1 {
		t.Fatalf("期望 1 条通知记录，实际=%d", len(ntfRepo.notifications))
	}
	if ntfRepo.notifications[0].SentAt == nil {
		t.Error("成功发送的通知应有 SentAt")
	}
}

func TestMailService_SendFailure_RecordsError(t *testing.T) {
	m := &recordingMailer{failWith: errors.New("SMTP 连接超时")}
	svc, userRepo, tplRepo, ntfRepo := setupTestMailService(m)
	seedApprovedTemplate(tplRepo)
	userRepo.users["doc-001"] = &model.User{UserID: "doc-001", FullName: "张医生", Email: "zhang@hospital.com"}

	entry := &model.CalendarEntry{
		UserID:    "doc-001",
		StartDate: date(2026, 6, 20),
		EndDate:   date(2026, 6, 20),
		Status:    model.EntryStatusApproved,
	}

	if err := svc.SendEntryStatusMail(context.Background(), entry); err == nil {
		t.Fatal("发送失败应返回错误")
	}

	// 失败同样落通知记录，SendError 非空、SentAt 为空
	if len(ntfRepo.notifications) != 1 {
		t.Fatalf("期望 1 条通知记录，实际=%d", len(ntfRepo.notifications))
	}
	n := ntfRepo.notifications[0]
	if n.SendError == "" {
		t.Error("失败的通知应记录 SendError")
	}
	if n.SentAt != nil {
		t.Error("失败的通知不应有 SentAt")
	}
}

func TestMailService_TemplateMissing(t *testing.T) {
	m := &recordingMailer{}
	svc, userRepo, _, _ := setupTestMailService(m)
	userRepo.users["doc-001"] = &model.User{UserID: "doc-001", FullName: "张医生", Email: "zhang@hospital.com"}

	entry := &model.CalendarEntry{
		UserID:    "doc-001",
		StartDate: date(2026, 6, 20),
		EndDate:   date(2026, 6, 20),
		Status:    model.EntryStatusApproved,
	}

	err := svc.SendEntryStatusMail(context.Background(), entry)
	if !errors.Is(err, ErrMailTemplateNotFound) {
		t.Errorf("期望 ErrMailTemplateNotFound，实际: %v", err)
	}
}

func TestMailService_RejectedUsesRejectionTemplate(t *testing.T) {
	m := &recordingMailer{}
	svc, userRepo, tplRepo, _ := setupTestMailService(m)
	userRepo.users["doc-001"] = &model.User{UserID: "doc-001", FullName: "张医生", Email: "zhang@hospital.com"}
	tplRepo.templates["tpl-2"] = &model.MailTemplate{
		MailTemplateID: "tpl-2",
		Code:           model.MailTemplateEntryRejected,
		Subject:        "排班已驳回",
		Body:           "{{user_name}}，您的排班申请已被驳回。",
		IsActive:       true,
	}

	entry := &model.CalendarEntry{
		UserID:    "doc-001",
		StartDate: date(2026, 6, 20),
		EndDate:   date(2026, 6, 20),
		Status:    model.EntryStatusRejected,
	}

	if err := svc.SendEntryStatusMail(context.Background(), entry); err != nil {
		t.Fatalf("SendEntryStatusMail 应成功: %v", err)
	}
	if len(m.sent) != 1 || m.sent[0] != "zhang@hospital.com|排班已驳回|张医生，您的排班申请已被驳回。" {
		t.Errorf("应使用驳回模板，实际: %v", m.sent)
	}
}
