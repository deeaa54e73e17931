package model

import "time"

// Notification 通知记录表 — 对应 notifications
// 记录系统向用户发出的每一封邮件/站内通知，便于审计与重发。
type Notification struct {
	NotificationID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string     `gorm:"type:uuid;not null"                             json:"user_id"`
	TemplateCode   string     `gorm:"type:varchar(50);not null"                      json:"template_code"`
	Subject        string     `gorm:"type:varchar(200);not null"                     json:"subject"`
	Body           string     `gorm:"type:text;not null"                             json:"body"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	SendError      string     `gorm:"type:varchar(500)"                              json:"send_error,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }
