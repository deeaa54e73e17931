package model

// UserSetting 用户个人设置表 — 对应 user_settings
// 保存用户级别的默认值班上限，供创建成员关系时作为初始值参考。
type UserSetting struct {
	UserSettingID        string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_setting_id"`
	UserID               string `gorm:"type:uuid;not null"                             json:"user_id"`
	WeekdayCountLimit    *int   `json:"weekday_count_limit,omitempty"`
	WeekendCountLimit    *int   `json:"weekend_count_limit,omitempty"`
	SequentialCountLimit *int   `json:"sequential_count_limit,omitempty"`
	SoftDeleteModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (UserSetting) TableName() string { return "user_settings" }
