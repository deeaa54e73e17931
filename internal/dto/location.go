package dto

// ── 地点模块 DTO ──

// CreateLocationRequest 创建地点请求
type CreateLocationRequest struct {
	GroupID  string `json:"group_id" binding:"required,uuid"`
	Name     string `json:"name"     binding:"required,min=2,max=100"`
	Address  string `json:"address"  binding:"omitempty,max=200"`
	DayLimit *int   `json:"day_limit" binding:"omitempty,min=1"`
}

// UpdateLocationRequest 更新地点请求
type UpdateLocationRequest struct {
	Name     *string `json:"name"     binding:"omitempty,min=2,max=100"`
	Address  *string `json:"address"  binding:"omitempty,max=200"`
	DayLimit *int    `json:"day_limit" binding:"omitempty,min=1"`
	IsActive *bool   `json:"is_active"`
}

// LocationListRequest 地点列表查询参数
type LocationListRequest struct {
	GroupID         string `form:"group_id" binding:"required,uuid"`
	IncludeInactive bool   `form:"include_inactive"`
}

// LocationResponse 地点信息响应
type LocationResponse struct {
	ID       string `json:"id"`
	GroupID  string `json:"group_id"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	DayLimit *int   `json:"day_limit,omitempty"`
	IsActive bool   `json:"is_active"`
}
