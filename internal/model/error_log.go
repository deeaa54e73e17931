package model

// ErrorLog 错误日志表 — 对应 error_logs
// 记录 HTTP 层 panic 与 5xx 级别错误，供运维排查。
type ErrorLog struct {
	ErrorLogID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"error_log_id"`
	Method     string `gorm:"type:varchar(10)"   json:"method"`
	Path       string `gorm:"type:varchar(200)"  json:"path"`
	UserID     string `gorm:"type:uuid"          json:"user_id,omitempty"`
	Message    string `gorm:"type:text;not null" json:"message"`
	Stack      string `gorm:"type:text"          json:"stack,omitempty"`
	BaseModel
}

// TableName 指定表名
func (ErrorLog) TableName() string { return "error_logs" }
