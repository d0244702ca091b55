package controllers

import (
	"errors"
	"strconv"
	"time"

	"bnb-ops-service/internal/app/middleware"
	"bnb-ops-service/internal/domain/models"
	"bnb-ops-service/internal/domain/services"
	"bnb-ops-service/internal/domain/services/container"
	"bnb-ops-service/internal/error/code"
	"bnb-ops-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceActivityController 定义活动控制器接口
type InterfaceActivityController interface {
	GetActivities()
	GetActivity()
	CreateActivity()
	UpdateActivity()
	DeleteActivity()
}

// ActivityController 处理活动相关的请求
type ActivityController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewActivityController 创建一个新的活动控制器
func NewActivityController(ctx *gin.Context, container *container.ServiceContainer) *ActivityController {
	return &ActivityController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleActivityFunc 返回一个处理活动请求的Gin处理函数
func HandleActivityFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewActivityController(ctx, container)

		switch method {
		case "getActivities":
			controller.GetActivities()
		case "getActivity":
			controller.GetActivity()
		case "createActivity":
			controller.CreateActivity()
		case "updateActivity":
			controller.UpdateActivity()
		case "deleteActivity":
			controller.DeleteActivity()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetActivities 获取活动列表
// @Summary      获取活动列表
// @Description  获取活动列表，支持状态、类型、房源和分配人过滤；非后台角色只能看到分配给自己的活动
// @Tags         Activity
// @Accept       json
// @Produce      json
// @Param        status query string false "活动状态" example:"PENDING"
// @Param        type query string false "活动类型" example:"CLEANING"
// @Param        location_id query int false "房源ID" example:"1"
// @Param        assigned_to_id query int false "分配人ID" example:"2"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /activities [get]
// @Security     BearerAuth
func (c *ActivityController) GetActivities() {
	actor, ok := middleware.GetActingUser(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	var filter services.ActivityFilter
	if v := c.Ctx.Query("status"); v != "" {
		status := models.ActivityStatus(v)
		filter.Status = &status
	}
	if v := c.Ctx.Query("type"); v != "" {
		t := models.ActivityType(v)
		filter.Type = &t
	}
	if v := c.Ctx.Query("location_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			locationID := uint(id)
			filter.LocationID = &locationID
		}
	}
	if v := c.Ctx.Query("assigned_to_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			assignedToID := uint(id)
			filter.AssignedToID = &assignedToID
		}
	}

	activityService := c.Container.GetService("activity").(services.InterfaceActivityService)
	activities, err := activityService.GetActivities(actor, filter)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询活动列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, activities)
}

// GetActivity 获取单个活动详情
// @Summary      获取活动详情
// @Description  根据ID获取活动详情，包含清单项、房源、分配人和考勤记录
// @Tags         Activity
// @Accept       json
// @Produce      json
// @Param        id path int true "活动ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /activities/{id} [get]
// @Security     BearerAuth
func (c *ActivityController) GetActivity() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	activityService := c.Container.GetService("activity").(services.InterfaceActivityService)
	activity, err := activityService.GetActivityByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrActivityNotFound) {
			response.NotFound(c.Ctx, "活动不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询活动失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, activity)
}

// CreateActivityRequest 表示创建活动的请求体
type CreateActivityRequest struct {
	Title          string     `json:"title" binding:"required" example:"Pulizia appartamento"`
	Description    string     `json:"description"`
	Type           string     `json:"type" binding:"required" example:"CLEANING"`
	Priority       string     `json:"priority" example:"MEDIUM"`
	LocationID     uint       `json:"location_id" binding:"required" example:"1"`
	AssignedToID   *uint      `json:"assigned_to_id"`
	ScheduledAt    *time.Time `json:"scheduled_at"`
	DueDate        *time.Time `json:"due_date"`
	Notes          string     `json:"notes"`
	Cost           *float64   `json:"cost"`
	ChecklistItems []string   `json:"checklist_items"`
	TemplateID     *uint      `json:"template_id"`
}

// CreateActivity 创建新活动
// @Summary      创建活动
// @Description  创建一个新活动，状态强制为PENDING；可附带清单项或从模板复制清单
// @Tags         Activity
// @Accept       json
// @Produce      json
// @Param        request body CreateActivityRequest true "活动信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /activities [post]
// @Security     BearerAuth
func (c *ActivityController) CreateActivity() {
	actor, ok := middleware.GetActingUser(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	var req CreateActivityRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	activityService := c.Container.GetService("activity").(services.InterfaceActivityService)
	activity, err := activityService.CreateActivity(actor, services.CreateActivityRequest{
		Title:          req.Title,
		Description:    req.Description,
		Type:           models.ActivityType(req.Type),
		Priority:       models.ActivityPriority(req.Priority),
		LocationID:     req.LocationID,
		AssignedToID:   req.AssignedToID,
		ScheduledAt:    req.ScheduledAt,
		DueDate:        req.DueDate,
		Notes:          req.Notes,
		Cost:           req.Cost,
		ChecklistItems: req.ChecklistItems,
		TemplateID:     req.TemplateID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidType):
			response.FailWithMessage(c.Ctx, code.ErrActivityTypeInvalid, err.Error(), nil)
		case errors.Is(err, services.ErrLocationNotFound):
			response.NotFound(c.Ctx, "房源不存在")
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建活动失败: "+err.Error(), nil)
		}
		return
	}

	response.Created(c.Ctx, activity)
}

// UpdateActivityRequest 表示更新活动的请求体
type UpdateActivityRequest struct {
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	Type         string     `json:"type"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status" example:"IN_PROGRESS"`
	AssignedToID *uint      `json:"assigned_to_id"` // 传0表示取消分配
	ScheduledAt  *time.Time `json:"scheduled_at"`
	DueDate      *time.Time `json:"due_date"`
	Notes        *string    `json:"notes"`
	Cost         *float64   `json:"cost"`
}

// UpdateActivity 更新活动信息
// @Summary      更新活动
// @Description  对活动应用部分更新；状态变更时自动派生started_at/completed_at并发送通知
// @Tags         Activity
// @Accept       json
// @Produce      json
// @Param        id path int true "活动ID" example:"1"
// @Param        request body UpdateActivityRequest true "更新的活动信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /activities/{id} [put]
// @Security     BearerAuth
func (c *ActivityController) UpdateActivity() {
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

	var req UpdateActivityRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Type != "" {
		updates["type"] = req.Type
	}
	if req.Priority != "" {
		updates["priority"] = req.Priority
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.AssignedToID != nil {
		if *req.AssignedToID == 0 {
			updates["assigned_to_id"] = nil
		} else {
			updates["assigned_to_id"] = *req.AssignedToID
		}
	}
	if req.ScheduledAt != nil {
		updates["scheduled_at"] = *req.ScheduledAt
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Cost != nil {
		updates["cost"] = *req.Cost
	}

	activityService := c.Container.GetService("activity").(services.InterfaceActivityService)
	activity, err := activityService.UpdateActivity(actor, uint(id), updates)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrActivityNotFound):
			response.NotFound(c.Ctx, "活动不存在")
		case errors.Is(err, services.ErrInvalidStatus):
			response.FailWithMessage(c.Ctx, code.ErrActivityStatusInvalid, err.Error(), nil)
		case errors.Is(err, services.ErrInvalidType):
			response.FailWithMessage(c.Ctx, code.ErrActivityTypeInvalid, err.Error(), nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新活动失败: "+err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, activity)
}

// DeleteActivity 删除活动
// @Summary      删除活动
// @Description  删除指定活动及其清单项和关联考勤记录，仅管理员和运营可用
// @Tags         Activity
// @Accept       json
// @Produce      json
// @Param        id path int true "活动ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /activities/{id} [delete]
// @Security     BearerAuth
func (c *ActivityController) DeleteActivity() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	activityService := c.Container.GetService("activity").(services.InterfaceActivityService)
	if err := activityService.DeleteActivity(uint(id)); err != nil {
		if errors.Is(err, services.ErrActivityNotFound) {
			response.NotFound(c.Ctx, "活动不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除活动失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}
