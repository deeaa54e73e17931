package model

// 邮件模板编码
const (
	MailTemplateEntryApproved = "entry_approved" // 排班审批通过通知
	MailTemplateEntryRejected = "entry_rejected" // 排班驳回通知
	MailTemplatePasswordReset = "password_reset" // 密码重置通知
)

// MailTemplate 邮件模板表 — 对应 mail_templates
// Body 中以 {{name}} 形式声明占位符，发送时由 MailService 替换。
type MailTemplate struct {
	MailTemplateID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"mail_template_id"`
	Code           string `gorm:"type:varchar(50);not null"                      json:"code"`
	Subject        string `gorm:"type:varchar(200);not null"                     json:"subject"`
	Body           string `gorm:"type:text;not null"                             json:"body"`
	IsActive       bool   `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel
}

// TableName 指定表名
func (MailTemplate) TableName() string { return "mail_templates" }
