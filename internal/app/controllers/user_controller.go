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

// InterfaceUserController 定义用户控制器接口
type InterfaceUserController interface {
	GetUsers()
	GetUser()
	CreateUser()
	UpdateUser()
	DeleteUser()
}

// UserController 处理员工账户相关的请求
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController 创建一个新的用户控制器
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleUserFunc 返回一个处理用户请求的Gin处理函数
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "getUsers":
			controller.GetUsers()
		case "getUser":
			controller.GetUser()
		case "createUser":
			controller.CreateUser()
		case "updateUser":
			controller.UpdateUser()
		case "deleteUser":
			controller.DeleteUser()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetUsers 获取用户列表
// @Summary      获取用户列表
// @Description  获取所有员工账户，支持分页和搜索，附带分配活动数
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1" example:"1"
// @Param        page_size query int false "每页条数，默认为10" example:"10"
// @Param        search query string false "搜索关键词(姓名、邮箱)" example:"mario"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /users [get]
// @Security     BearerAuth
func (c *UserController) GetUsers() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	search := c.Ctx.Query("search")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)

	users, total, err := userService.GetAllUsers(page, pageSize, search)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询用户列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        users,
	})
}

// GetUser 获取单个用户详情
// @Summary      获取用户详情
// @Description  根据ID获取特定员工账户的详细信息
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        id path int true "用户ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
// @Security     BearerAuth
func (c *UserController) GetUser() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.NotFound(c.Ctx, "用户不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询用户失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, user)
}

// CreateUserRequest 表示创建用户的请求体
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email" example:"mario@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"Secret@123"`
	Name     string `json:"name" binding:"required" example:"Mario Rossi"`
	Phone    string `json:"phone" example:"+39 340 1234567"`
	Role     string `json:"role" example:"WORKER"` // 可选值: ADMIN, OPERATOR, WORKER, HOUSEKEEPER
}

// CreateUser 创建新用户
// @Summary      创建用户
// @Description  创建一个新的员工账户，仅管理员可用
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "用户信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users [post]
// @Security     BearerAuth
func (c *UserController) CreateUser() {
	var req CreateUserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	role := models.UserRole(req.Role)
	if role == "" {
		role = models.RoleWorker
	}
	if !models.ValidRole(role) {
		response.ParamError(c.Ctx, "无效的角色")
		return
	}

	user := &models.User{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     role,
		IsActive: true,
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.CreateUser(user); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			response.FailWithMessage(c.Ctx, code.ErrUserAlreadyExist, err.Error(), nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建用户失败: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, user)
}

// UpdateUserRequest 表示更新用户的请求体
type UpdateUserRequest struct {
	Email    string `json:"email" example:"mario@example.com"`
	Password string `json:"password" example:"NewSecret@456"`
	Name     string `json:"name" example:"Mario Rossi"`
	Phone    string `json:"phone" example:"+39 340 1234567"`
	Role     string `json:"role" example:"OPERATOR"`
	IsActive *bool  `json:"is_active"`
}

// UpdateUser 更新用户信息
// @Summary      更新用户
// @Description  更新现有员工账户的信息，仅管理员可用
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        id path int true "用户ID" example:"1"
// @Param        request body UpdateUserRequest true "更新的用户信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [put]
// @Security     BearerAuth
func (c *UserController) UpdateUser() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req UpdateUserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	updates := make(map[string]interface{})
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Password != "" {
		updates["password"] = req.Password
	}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Role != "" {
		if !models.ValidRole(models.UserRole(req.Role)) {
			response.ParamError(c.Ctx, "无效的角色")
			return
		}
		updates["role"] = req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.UpdateUser(uint(id), updates)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.NotFound(c.Ctx, "用户不存在")
			return
		}
		if errors.Is(err, services.ErrEmailTaken) {
			response.FailWithMessage(c.Ctx, code.ErrUserAlreadyExist, err.Error(), nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新用户失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, user)
}

// DeleteUser 删除用户
// @Summary      删除用户
// @Description  删除指定用户及其关联数据（通知、考勤、创建的活动），不能删除自己
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        id path int true "用户ID" example:"2"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [delete]
// @Security     BearerAuth
func (c *UserController) DeleteUser() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	actor, ok := middleware.GetActingUser(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.DeleteUser(actor, uint(id)); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.NotFound(c.Ctx, "用户不存在")
			return
		}
		if errors.Is(err, services.ErrDeleteSelf) {
			response.FailWithMessage(c.Ctx, code.ErrUserDeleteSelf, err.Error(), nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除用户失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}
