package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/canergenc/doctor-calendar-server/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	ids := make([]string, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var result []model.User
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(result) >= limit {
			break
		}
		result = append(result, *m.users[id])
	}
	return result, int64(len(m.users)), nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) SoftDelete(_ context.Context, id, _ string) error {
	if _, ok := m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, id)
	return nil
}

// ── Mock GroupRepository ──

type mockGroupRepo struct {
	groups map[string]*model.Group
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{groups: make(map[string]*model.Group)}
}

func (m *mockGroupRepo) Create(_ context.Context, group *model.Group) error {
	if group.GroupID == "" {
		group.GroupID = "group-" + group.Name
	}
	m.groups[group.GroupID] = group
	return nil
}

func (m *mockGroupRepo) GetByID(_ context.Context, id string) (*model.Group, error) {
	if g, ok := m.groups[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupRepo) List(_ context.Context, includeInactive bool) ([]model.Group, error) {
	var result []model.Group
	for _, g := range m.groups {
		if !includeInactive && !g.IsActive {
			continue
		}
		result = append(result, *g)
	}
	return result, nil
}

func (m *mockGroupRepo) Update(_ context.Context, group *model.Group) error {
	if _, ok := m.groups[group.GroupID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.groups[group.GroupID] = group
	return nil
}

func (m *mockGroupRepo) SoftDelete(_ context.Context, id, _ string) error {
	if _, ok := m.groups[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.groups, id)
	return nil
}

// ── Mock UserGroupRepository ──

type mockUserGroupRepo struct {
	userGroups map[string]*model.UserGroup
}

func newMockUserGroupRepo() *mockUserGroupRepo {
	return &mockUserGroupRepo{userGroups: make(map[string]*model.UserGroup)}
}

func (m *mockUserGroupRepo) Create(_ context.Context, ug *model.UserGroup) error {
	if ug.UserGroupID == "" {
		ug.UserGroupID = fmt.Sprintf("ug-%s-%s", ug.UserID, ug.GroupID)
	}
	m.userGroups[ug.UserGroupID] = ug
	return nil
}

func (m *mockUserGroupRepo) GetByID(_ context.Context, id string) (*model.UserGroup, error) {
	if ug, ok := m.userGroups[id]; ok {
		return ug, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserGroupRepo) FindActive(_ context.Context, userID, groupID string) (*model.UserGroup, error) {
	for _, ug := range m.userGroups {
		if ug.UserID == userID && ug.GroupID == groupID && ug.IsActive {
			return ug, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserGroupRepo) ListByGroup(_ context.Context, groupID string) ([]model.UserGroup, error) {
	var result []model.UserGroup
	for _, ug := range m.userGroups {
		if ug.GroupID == groupID && ug.IsActive {
			result = append(result, *ug)
		}
	}
	return result, nil
}

func (m *mockUserGroupRepo) ListByUser(_ context.Context, userID string) ([]model.UserGroup, error) {
	var result []model.UserGroup
	for _, ug := range m.userGroups {
		if ug.UserID == userID && ug.IsActive {
			result = append(result, *ug)
		}
	}
	return result, nil
}

func (m *mockUserGroupRepo) Update(_ context.Context, ug *model.UserGroup) error {
	if _, ok := m.userGroups[ug.UserGroupID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.userGroups[ug.UserGroupID] = ug
	return nil
}

func (m *mockUserGroupRepo) SoftDelete(_ context.Context, id, _ string) error {
	if _, ok := m.userGroups[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.userGroups, id)
	return nil
}

// ── Mock GroupSettingRepository ──

type mockGroupSettingRepo struct {
	settings map[string]*model.GroupSetting
}

func newMockGroupSettingRepo() *mockGroupSettingRepo {
	return &mockGroupSettingRepo{settings: make(map[string]*model.GroupSetting)}
}

func (m *mockGroupSettingRepo) Create(_ context.Context, setting *model.GroupSetting) error {
	if setting.GroupSettingID == "" {
		setting.GroupSettingID = fmt.Sprintf("gs-%s-%s", setting.GroupID, setting.SettingType)
	}
	m.settings[setting.GroupSettingID] = setting
	return nil
}

func (m *mockGroupSettingRepo) GetByID(_ context.Context, id string) (*model.GroupSetting, error) {
	if s, ok := m.settings[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupSettingRepo) FindByGroupAndType(_ context.Context, groupID string, settingType model.GroupSettingType) (*model.GroupSetting, error) {
	for _, s := range m.settings {
		if s.GroupID == groupID && s.SettingType == settingType {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupSettingRepo) ListByGroup(_ context.Context, groupID string) ([]model.GroupSetting, error) {
	var result []model.GroupSetting
	for _, s := range m.settings {
		if s.GroupID == groupID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockGroupSettingRepo) Update(_ context.Context, setting *model.GroupSetting) error {
	if _, ok := m.settings[setting.GroupSettingID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.settings[setting.GroupSettingID] = setting
	return nil
}

func (m *mockGroupSettingRepo) SoftDelete(_ context.Context, id, _ string) error {
	if _, ok := m.settings[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.settings, id)
	return nil
}

// ── Mock UserSettingRepository ──

type mockUserSettingRepo struct {
	settings map[string]*model.UserSetting
}

func newMockUserSettingRepo() *mockUserSettingRepo {
	return &mockUserSettingRepo{settings: make(map[string]*model.UserSetting)}
}

func (m *mockUserSettingRepo) Create(_ context.Context, setting *model.UserSetting) error {
	if setting.UserSettingID == "" {
		setting.UserSettingID = "us-" + setting.UserID
	}
	m.settings[setting.UserSettingID] = setting
	return nil
}

func (m *mockUserSettingRepo) FindByUser(_ context.Context, userID string) (*model.UserSetting, error) {
	for _, s := range m.settings {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserSettingRepo) Update(_ context.Context, setting *model.UserSetting) error {
	if _, ok := m.settings[setting.UserSettingID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.settings[setting.UserSettingID] = setting
	return nil
}

func (m *mockUserSettingRepo) SoftDelete(_ context.Context, id, _ string) error {
	if _, ok := m.settings[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.settings, id)
	return nil
}

// ── Mock LocationRepository ──

type mockLocationRepo struct {
	locations map[string]*model.Location
}

func newMockLocationRepo() *mockLocationRepo {
	return &mockLocationRepo{locations: make(map[string]*model.Location)}
}

func (m *mockLocationRepo) Create(_ context.Context, loc *model.Location) error {
	if loc.LocationID == "" {
		loc.LocationID = "loc-" + loc.Name
	}
	m.locations[loc.LocationID] = loc
	return nil
}

func (m *mockLocationRepo) GetByID(_ context.Context, id string) (*model.Location, error) {
	if l, ok := m.locations[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLocationRepo) ListByGroup(_ context.Context, groupID string, includeInactive bool) ([]model.Location, error) {
	var result []model.Location
	for _, l := range m.locations {
		if l.GroupID != groupID {
			continue
		}
		if !includeInactive && !l.IsActive {
			continue
		}
		result = append(result, *l)
	}
	return result, nil
}

func (m *mockLocationRepo) Update(_ context.Context, loc *model.Location) error {
	if _, ok := m.locations[loc.LocationID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.locations[loc.LocationID] = loc
	return nil
}

func (m *mockLocationRepo) SoftDelete(_ context.Context, id, _ string) error {
	if _, ok := m.locations[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.locations, id)
	return nil
}

// ── Mock CalendarEntryRepository ──
//
// 过滤逻辑与 SQL 版本保持一致：软删除（从 map 移除）天然不参与任何查询。

type mockCalendarEntryRepo struct {
	entries map[string]*model.CalendarEntry
	seq     int
}

func newMockCalendarEntryRepo() *mockCalendarEntryRepo {
	return &mockCalendarEntryRepo{entries: make(map[string]*model.CalendarEntry)}
}

func (m *mockCalendarEntryRepo) Create(_ context.Context, entry *model.CalendarEntry) error {
	if entry.EntryID == "" {
		m.seq++
		entry.EntryID = fmt.Sprintf("entry-%03d", m.seq)
	}
	if entry.Version == 0 {
		entry.Version = 1
	}
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockCalendarEntryRepo) BatchCreate(ctx context.Context, entries []model.CalendarEntry) error {
	for i := range entries {
		if err := m.Create(ctx, &entries[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockCalendarEntryRepo) GetByID(_ context.Context, id string) (*model.CalendarEntry, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCalendarEntryRepo) ListOverlapping(_ context.Context, userID string, start, end time.Time, excludeID string) ([]model.CalendarEntry, error) {
	var result []model.CalendarEntry
	for _, e := range m.entries {
		if e.UserID != userID || e.EntryID == excludeID {
			continue
		}
		if e.Status == model.EntryStatusRejected {
			continue
		}
		if !e.StartDate.After(end) && !e.EndDate.Before(start) {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockCalendarEntryRepo) ListGroupDutyBetween(_ context.Context, groupID string, from, to time.Time, excludeID string) ([]model.CalendarEntry, error) {
	var result []model.CalendarEntry
	for _, e := range m.entries {
		if e.GroupID != groupID || e.EntryID == excludeID {
			continue
		}
		if e.Type != model.EntryTypeDuty || e.Status == model.EntryStatusRejected {
			continue
		}
		if !e.StartDate.Before(from) && !e.StartDate.After(to) {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockCalendarEntryRepo) ListUserDutyEndingWithin(_ context.Context, userID, groupID string, from, to time.Time, excludeID string) ([]model.CalendarEntry, error) {
	var result []model.CalendarEntry
	for _, e := range m.entries {
		if e.UserID != userID || e.GroupID != groupID || e.EntryID == excludeID {
			continue
		}
		if e.Type != model.EntryTypeDuty || e.Status == model.EntryStatusRejected {
			continue
		}
		if !e.EndDate.Before(from) && !e.EndDate.After(to) {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockCalendarEntryRepo) ListUserDutyStartingWithin(_ context.Context, userID, groupID string, from, to time.Time, excludeID string) ([]model.CalendarEntry, error) {
	var result []model.CalendarEntry
	for _, e := range m.entries {
		if e.UserID != userID || e.GroupID != groupID || e.EntryID == excludeID {
			continue
		}
		if e.Type != model.EntryTypeDuty || e.Status == model.EntryStatusRejected {
			continue
		}
		if !e.StartDate.Before(from) && !e.StartDate.After(to) {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockCalendarEntryRepo) ListByUserBetween(_ context.Context, userID string, from, to time.Time) ([]model.CalendarEntry, error) {
	var result []model.CalendarEntry
	for _, e := range m.entries {
		if e.UserID != userID {
			continue
		}
		if !e.StartDate.After(to) && !e.EndDate.Before(from) {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockCalendarEntryRepo) Update(_ context.Context, entry *model.CalendarEntry) error {
	if _, ok := m.entries[entry.EntryID]; !ok {
		return gorm.ErrRecordNotFound
	}
	entry.Version++
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockCalendarEntryRepo) SoftDelete(_ context.Context, id, _ string) error {
	if _, ok := m.entries[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.entries, id)
	return nil
}

// ── Mock MailTemplateRepository ──

type mockMailTemplateRepo struct {
	templates map[string]*model.MailTemplate
}

func newMockMailTemplateRepo() *mockMailTemplateRepo {
	return &mockMailTemplateRepo{templates: make(map[string]*model.MailTemplate)}
}

func (m *mockMailTemplateRepo) Create(_ context.Context, tpl *model.MailTemplate) error {
	if tpl.MailTemplateID == "" {
		tpl.MailTemplateID = "tpl-" + tpl.Code
	}
	m.templates[tpl.MailTemplateID] = tpl
	return nil
}

func (m *mockMailTemplateRepo) FindByCode(_ context.Context, code string) (*model.MailTemplate, error) {
	for _, t := range m.templates {
		if t.Code == code && t.IsActive {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMailTemplateRepo) List(_ context.Context) ([]model.MailTemplate, error) {
	var result []model.MailTemplate
	for _, t := range m.templates {
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockMailTemplateRepo) Update(_ context.Context, tpl *model.MailTemplate) error {
	if _, ok := m.templates[tpl.MailTemplateID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.templates[tpl.MailTemplateID] = tpl
	return nil
}

func (m *mockMailTemplateRepo) SoftDelete(_ context.Context, id, _ string) error {
	if _, ok := m.templates[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.templates, id)
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications []*model.Notification
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if n.NotificationID == "" {
		n.NotificationID = fmt.Sprintf("ntf-%03d", len(m.notifications)+1)
	}
	m.notifications = append(m.notifications, n)
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, offset, limit int) ([]model.Notification, int64, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			result = append(result, *n)
		}
	}
	return result, int64(len(result)), nil
}

// ── Mock ErrorLogRepository ──

type mockErrorLogRepo struct {
	logs []*model.ErrorLog
}

func newMockErrorLogRepo() *mockErrorLogRepo {
	return &mockErrorLogRepo{}
}

func (m *mockErrorLogRepo) Create(_ context.Context, log *model.ErrorLog) error {
	m.logs = append(m.logs, log)
	return nil
}
