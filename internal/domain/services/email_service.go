package services

import (
	"fmt"
	"net/http"

	"bnb-ops-service/internal/infrastructure/config"
	"bnb-ops-service/pkg/logger"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// EmailMessage 一封待发送的邮件
type EmailMessage struct {
	To      []string `json:"to" binding:"required"`
	Subject string   `json:"subject" binding:"required"`
	Text    string   `json:"text"`
	HTML    string   `json:"html"`
}

// InterfaceEmailService defines the outbound email service interface
type InterfaceEmailService interface {
	SendEmail(msg EmailMessage) error
}

// EmailService 通过 SendGrid 发送邮件
// 未配置 API Key 时降级为仅打印日志，便于本地开发
type EmailService struct {
	apiKey string
	from   *sgmail.Email
}

// NewEmailService 创建一个新的邮件服务
func NewEmailService(cfg *config.Config) InterfaceEmailService {
	return &EmailService{
		apiKey: cfg.SendGridAPIKey,
		from:   sgmail.NewEmail(cfg.EmailFromName, cfg.EmailFromAddr),
	}
}

// SendEmail 发送一封邮件
func (s *EmailService) SendEmail(msg EmailMessage) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("收件人不能为空")
	}
	if msg.Subject == "" {
		return fmt.Errorf("邮件主题不能为空")
	}

	// 本地开发模式：没有API Key时只打印日志
	if s.apiKey == "" {
		logger.Info("邮件服务未配置，跳过发送: to=%v, subject=%s", msg.To, msg.Subject)
		return nil
	}

	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	for _, to := range msg.To {
		p.AddTos(sgmail.NewEmail("", to))
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)

	text := msg.Text
	if text == "" {
		text = " "
	}
	m.AddContent(sgmail.NewContent("text/plain", text))
	if msg.HTML != "" {
		m.AddContent(sgmail.NewContent("text/html", msg.HTML))
	}

	req := sendgrid.GetRequest(s.apiKey, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.API(req)
	if err != nil {
		return err
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sending email - status: %d - body: %s", res.StatusCode, res.Body)
	}

	return nil
}
