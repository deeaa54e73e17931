package model

// Location 值班地点表 — 对应 locations
// DayLimit 为地点自身的单日并发值班上限（组设置 LocationDayLimitCount 的替代配置来源）。
type Location struct {
	LocationID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"location_id"`
	GroupID    string `gorm:"type:uuid;not null"                             json:"group_id"`
	Name       string `gorm:"type:varchar(100);not null"                     json:"name"`
	Address    string `gorm:"type:varchar(200)"                              json:"address,omitempty"`
	DayLimit   *int   `json:"day_limit,omitempty"`
	IsActive   bool   `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel

	// 关联
	Group *Group `gorm:"foreignKey:GroupID;references:GroupID" json:"group,omitempty"`
}

// TableName 指定表名
func (Location) TableName() string { return "locations" }
