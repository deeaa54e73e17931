package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/canergenc/doctor-calendar-server/config"
)

// Mailer SMTP 邮件发送器
// 发送失败不重试，由调用方记录到通知表中供人工排查。
type Mailer interface {
	Send(to []string, subject, body string) error
}

type smtpMailer struct {
	cfg    *config.MailConfig
	logger *zap.Logger
}

// NewMailer 创建 SMTP 邮件发送器
func NewMailer(cfg *config.MailConfig, logger *zap.Logger) Mailer {
	return &smtpMailer{cfg: cfg, logger: logger}
}

func (m *smtpMailer) Send(to []string, subject, body string) error {
	if m.cfg.SMTPHost == "" {
		return fmt.Errorf("SMTP 未配置")
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, m.cfg.From, to, []byte(msg)); err != nil {
		m.logger.Error("发送邮件失败", zap.Strings("to", to), zap.Error(err))
		return err
	}

	return nil
}
