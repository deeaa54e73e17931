package dto

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求（管理员操作）
type CreateUserRequest struct {
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
	Email    string `json:"email"     binding:"required,email"`
	Password string `json:"password"  binding:"required,min=8,max=64"`
	Role     string `json:"role"      binding:"omitempty,oneof=admin manager user"`
	Title    string `json:"title"     binding:"omitempty,max=100"`
}

// UpdateUserRequest 更新用户请求
type UpdateUserRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email"     binding:"omitempty,email"`
	Title    *string `json:"title"     binding:"omitempty,max=100"`
}

// AssignRoleRequest 角色分配请求
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin manager user"`
}

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	Page     int `form:"page,default=1"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// UserResponse 用户信息响应
type UserResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Title    string `json:"title,omitempty"`
}

// ── 用户设置 DTO ──

// UpsertUserSettingRequest 创建/更新用户设置请求
type UpsertUserSettingRequest struct {
	WeekdayCountLimit    *int `json:"weekday_count_limit"    binding:"omitempty,min=0"`
	WeekendCountLimit    *int `json:"weekend_count_limit"    binding:"omitempty,min=0"`
	SequentialCountLimit *int `json:"sequential_count_limit" binding:"omitempty,min=0"`
}

// UserSettingResponse 用户设置响应
type UserSettingResponse struct {
	ID                   string `json:"id"`
	UserID               string `json:"user_id"`
	WeekdayCountLimit    *int   `json:"weekday_count_limit,omitempty"`
	WeekendCountLimit    *int   `json:"weekend_count_limit,omitempty"`
	SequentialCountLimit *int   `json:"sequential_count_limit,omitempty"`
}
