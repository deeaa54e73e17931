package dto

// ── 组（科室）模块 DTO ──

// CreateGroupRequest 创建组请求
type CreateGroupRequest struct {
	Name        string `json:"name"        binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// UpdateGroupRequest 更新组请求
type UpdateGroupRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

// GroupListRequest 组列表查询参数
type GroupListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// GroupResponse 组信息响应
type GroupResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// ── 成员关系 DTO ──

// CreateUserGroupRequest 添加组成员请求
type CreateUserGroupRequest struct {
	UserID            string `json:"user_id"  binding:"required,uuid"`
	GroupID           string `json:"group_id" binding:"required,uuid"`
	WeekdayCountLimit *int   `json:"weekday_count_limit" binding:"omitempty,min=0"`
	WeekendCountLimit *int   `json:"weekend_count_limit" binding:"omitempty,min=0"`
}

// UpdateUserGroupRequest 更新组成员请求
type UpdateUserGroupRequest struct {
	WeekdayCountLimit *int  `json:"weekday_count_limit" binding:"omitempty,min=0"`
	WeekendCountLimit *int  `json:"weekend_count_limit" binding:"omitempty,min=0"`
	IsActive          *bool `json:"is_active"`
}

// UserGroupResponse 组成员关系响应
type UserGroupResponse struct {
	ID                string        `json:"id"`
	UserID            string        `json:"user_id"`
	GroupID           string        `json:"group_id"`
	WeekdayCountLimit *int          `json:"weekday_count_limit,omitempty"`
	WeekendCountLimit *int          `json:"weekend_count_limit,omitempty"`
	IsActive          bool          `json:"is_active"`
	User              *UserResponse `json:"user,omitempty"`
	Group             *GroupResponse `json:"group,omitempty"`
}

// ── 组设置 DTO ──

// UpsertGroupSettingRequest 创建/更新组设置请求
type UpsertGroupSettingRequest struct {
	SettingType               string `json:"setting_type" binding:"omitempty,oneof=general"`
	IsWeekdayControl          bool   `json:"is_weekday_control"`
	IsWeekendControl          bool   `json:"is_weekend_control"`
	SequentialOrderLimitCount *int   `json:"sequential_order_limit_count" binding:"omitempty,min=1"`
	LocationDayLimit          bool   `json:"location_day_limit"`
	LocationDayLimitCount     int    `json:"location_day_limit_count" binding:"omitempty,min=0"`
}

// GroupSettingResponse 组设置响应
type GroupSettingResponse struct {
	ID                        string `json:"id"`
	GroupID                   string `json:"group_id"`
	SettingType               string `json:"setting_type"`
	IsWeekdayControl          bool   `json:"is_weekday_control"`
	IsWeekendControl          bool   `json:"is_weekend_control"`
	SequentialOrderLimitCount *int   `json:"sequential_order_limit_count,omitempty"`
	LocationDayLimit          bool   `json:"location_day_limit"`
	LocationDayLimitCount     int    `json:"location_day_limit_count"`
}
