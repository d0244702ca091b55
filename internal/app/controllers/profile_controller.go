package controllers

import (
	"errors"

	"bnb-ops-service/internal/app/middleware"
	"bnb-ops-service/internal/domain/services"
	"bnb-ops-service/internal/domain/services/container"
	"bnb-ops-service/internal/error/code"
	"bnb-ops-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceProfileController 定义个人资料控制器接口
type InterfaceProfileController interface {
	GetProfile()
	UpdateProfile()
	ChangePassword()
}

// ProfileController 处理当前用户个人资料相关的请求
type ProfileController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewProfileController 创建一个新的个人资料控制器
func NewProfileController(ctx *gin.Context, container *container.ServiceContainer) *ProfileController {
	return &ProfileController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleProfileFunc 返回一个处理个人资料请求的Gin处理函数
func HandleProfileFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewProfileController(ctx, container)

		switch method {
		case "getProfile":
			controller.GetProfile()
		case "updateProfile":
			controller.UpdateProfile()
		case "changePassword":
			controller.ChangePassword()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetProfile 获取当前用户资料
// @Summary      获取个人资料
// @Description  获取当前登录用户的资料
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /profile [get]
// @Security     BearerAuth
func (c *ProfileController) GetProfile() {
	actor, ok := middleware.GetActingUser(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserByID(actor.ID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.NotFound(c.Ctx, "用户不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询资料失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, user)
}

// UpdateProfileRequest 表示更新个人资料的请求体
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required" example:"Mario Rossi"`
	Phone string `json:"phone" example:"+39 340 1234567"`
}

// UpdateProfile 更新当前用户资料
// @Summary      更新个人资料
// @Description  更新当前登录用户的姓名和电话
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        request body UpdateProfileRequest true "资料信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /profile [put]
// @Security     BearerAuth
func (c *ProfileController) UpdateProfile() {
	actor, ok := middleware.GetActingUser(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	var req UpdateProfileRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.UpdateProfile(actor.ID, req.Name, req.Phone)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.NotFound(c.Ctx, "用户不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新资料失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, user)
}

// ChangePasswordRequest 表示修改密码的请求体
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required" example:"OldSecret@123"`
	NewPassword     string `json:"new_password" binding:"required,min=6" example:"NewSecret@456"`
}

// ChangePassword 修改当前用户密码
// @Summary      修改密码
// @Description  校验当前密码后更新为新密码
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        request body ChangePasswordRequest true "密码信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /profile/password [put]
// @Security     BearerAuth
func (c *ProfileController) ChangePassword() {
	actor, ok := middleware.GetActingUser(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	var req ChangePasswordRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.ChangePassword(actor.ID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrWrongPassword) {
			response.FailWithMessage(c.Ctx, code.ErrUserPasswordIncorrect, err.Error(), nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "修改密码失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}
