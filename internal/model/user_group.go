package model

// UserGroup 用户-组成员关系表 — 对应 user_groups
// 唯一性约束：同一 (user_id, group_id) 至多一条有效记录（部分唯一索引，见迁移脚本）。
// WeekdayCountLimit / WeekendCountLimit 为该成员在本组内的月度值班上限；
// 当组设置开启对应控制开关而此处为 NULL 时，校验引擎直接拒绝（配置缺失本身即失败）。
type UserGroup struct {
	UserGroupID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_group_id"`
	UserID            string `gorm:"type:uuid;not null"                             json:"user_id"`
	GroupID           string `gorm:"type:uuid;not null"                             json:"group_id"`
	WeekdayCountLimit *int   `json:"weekday_count_limit,omitempty"`
	WeekendCountLimit *int   `json:"weekend_count_limit,omitempty"`
	IsActive          bool   `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel

	// 关联
	User  *User  `gorm:"foreignKey:UserID;references:UserID"   json:"user,omitempty"`
	Group *Group `gorm:"foreignKey:GroupID;references:GroupID" json:"group,omitempty"`
}

// TableName 指定表名
func (UserGroup) TableName() string { return "user_groups" }
