package controllers

import (
	"bnb-ops-service/internal/domain/services"
	"bnb-ops-service/internal/domain/services/container"
	"bnb-ops-service/internal/error/code"
	"bnb-ops-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceEmailController 定义邮件控制器接口
type InterfaceEmailController interface {
	SendEmail()
}

// EmailController 处理邮件发送请求
type EmailController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewEmailController 创建一个新的邮件控制器
func NewEmailController(ctx *gin.Context, container *container.ServiceContainer) *EmailController {
	return &EmailController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleEmailFunc 返回一个处理邮件请求的Gin处理函数
func HandleEmailFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewEmailController(ctx, container)

		switch method {
		case "sendEmail":
			controller.SendEmail()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// SendEmailRequest 表示发送邮件的请求体
type SendEmailRequest struct {
	To      []string `json:"to" binding:"required,min=1" example:"guest@example.com"`
	Subject string   `json:"subject" binding:"required" example:"Conferma prenotazione"`
	Text    string   `json:"text"`
	HTML    string   `json:"html"`
}

// SendEmail 发送邮件
// @Summary      发送邮件
// @Description  通过SendGrid发送一封邮件，仅管理员和运营可用
// @Tags         Email
// @Accept       json
// @Produce      json
// @Param        request body SendEmailRequest true "邮件内容"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /email [post]
// @Security     BearerAuth
func (c *EmailController) SendEmail() {
	var req SendEmailRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	emailService := c.Container.GetService("email").(services.InterfaceEmailService)
	if err := emailService.SendEmail(services.EmailMessage{
		To:      req.To,
		Subject: req.Subject,
		Text:    req.Text,
		HTML:    req.HTML,
	}); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrEmailSendFailed, "邮件发送失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"success": true})
}
