package controllers

import (
	"errors"
	"strconv"

	"bnb-ops-service/internal/app/middleware"
	"bnb-ops-service/internal/domain/models"
	"bnb-ops-service/internal/domain/services"
	"bnb-ops-service/internal/domain/services/container"
	"bnb-ops-service/internal/error/code"
	"bnb-ops-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceNotificationController 定义通知控制器接口
type InterfaceNotificationController interface {
	GetNotifications()
	CreateNotification()
	MarkAsRead()
	MarkAllAsRead()
}

// NotificationController 处理通知相关的请求
type NotificationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewNotificationController 创建一个新的通知控制器
func NewNotificationController(ctx *gin.Context, container *container.ServiceContainer) *NotificationController {
	return &NotificationController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleNotificationFunc 返回一个处理通知请求的Gin处理函数
func HandleNotificationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewNotificationController(ctx, container)

		switch method {
		case "getNotifications":
			controller.GetNotifications()
		case "createNotification":
			controller.CreateNotification()
		case "markAsRead":
			controller.MarkAsRead()
		case "markAllAsRead":
			controller.MarkAllAsRead()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetNotifications 获取当前用户的通知列表
// @Summary      获取通知列表
// @Description  获取当前用户最近的通知，按创建时间倒序，附带未读数
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        limit query int false "返回条数，默认50" example:"50"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /notifications [get]
// @Security     BearerAuth
func (c *NotificationController) GetNotifications() {
	actor, ok := middleware.GetActingUser(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	limit, _ := strconv.Atoi(c.Ctx.DefaultQuery("limit", "50"))

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	notifications, err := notificationService.GetUserNotifications(actor.ID, limit)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询通知失败: "+err.Error(), nil)
		return
	}

	unread, err := notificationService.CountUnread(actor.ID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询未读数失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

// CreateNotificationRequest 表示创建通知的请求体
type CreateNotificationRequest struct {
	Title   string `json:"title" binding:"required" example:"Promemoria"`
	Message string `json:"message" binding:"required" example:"Controllare la lavanderia"`
	Type    string `json:"type" example:"info"` // 可选值: info, success, warning, error
	Link    string `json:"link" example:"/activities/1"`
	UserID  *uint  `json:"user_id"` // 不传则发给自己
}

// CreateNotification 创建通知
// @Summary      创建通知
// @Description  创建一条通知，未指定接收人时发给当前用户
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        request body CreateNotificationRequest true "通知信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /notifications [post]
// @Security     BearerAuth
func (c *NotificationController) CreateNotification() {
	actor, ok := middleware.GetActingUser(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	var req CreateNotificationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	ntype := models.NotificationType(req.Type)
	if ntype == "" {
		ntype = models.NotificationInfo
	}

	userID := actor.ID
	if req.UserID != nil {
		userID = *req.UserID
	}

	notification := &models.Notification{
		Title:   req.Title,
		Message: req.Message,
		Type:    ntype,
		Link:    req.Link,
		UserID:  userID,
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	if err := notificationService.CreateNotification(notification); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建通知失败: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, notification)
}

// MarkAsRead 标记通知为已读
// @Summary      标记通知已读
// @Description  将指定通知标记为已读，只能操作属于自己的通知
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        id path int true "通知ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /notifications/{id}/read [put]
// @Security     BearerAuth
func (c *NotificationController) MarkAsRead() {
	actor, ok := middleware.GetActingUser(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	if err := notificationService.MarkAsRead(uint(id), actor.ID); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			response.NotFound(c.Ctx, "通知不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "标记已读失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}

// MarkAllAsRead 标记所有通知为已读
// @Summary      全部标记已读
// @Description  将当前用户的所有未读通知标记为已读
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /notifications/read-all [put]
// @Security     BearerAuth
func (c *NotificationController) MarkAllAsRead() {
	actor, ok := middleware.GetActingUser(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	if err := notificationService.MarkAllAsRead(actor.ID); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "标记已读失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}
