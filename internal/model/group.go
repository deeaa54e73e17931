package model

// Group 科室（组）表 — 对应 groups
// 组是设置、成员关系与值班地点的归属单位。
type Group struct {
	GroupID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"group_id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	Description string `gorm:"type:text"                                      json:"description,omitempty"`
	IsActive    bool   `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel
}

// TableName 指定表名
func (Group) TableName() string { return "groups" }
