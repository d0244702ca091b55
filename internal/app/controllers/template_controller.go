package controllers

import (
	"errors"
	"strconv"

	"bnb-ops-service/internal/domain/services"
	"bnb-ops-service/internal/domain/services/container"
	"bnb-ops-service/internal/error/code"
	"bnb-ops-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceTemplateController 定义模板控制器接口
type InterfaceTemplateController interface {
	GetTemplates()
	GetTemplate()
	CreateTemplate()
	UpdateTemplate()
	DeleteTemplate()
}

// TemplateController 处理活动模板相关的请求
type TemplateController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewTemplateController 创建一个新的模板控制器
func NewTemplateController(ctx *gin.Context, container *container.ServiceContainer) *TemplateController {
	return &TemplateController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleTemplateFunc 返回一个处理模板请求的Gin处理函数
func HandleTemplateFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewTemplateController(ctx, container)

		switch method {
		case "getTemplates":
			controller.GetTemplates()
		case "getTemplate":
			controller.GetTemplate()
		case "createTemplate":
			controller.CreateTemplate()
		case "updateTemplate":
			controller.UpdateTemplate()
		case "deleteTemplate":
			controller.DeleteTemplate()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetTemplates 获取模板列表
// @Summary      获取模板列表
// @Description  获取所有活动模板及其步骤，按名称排序
// @Tags         Template
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /templates [get]
// @Security     BearerAuth
func (c *TemplateController) GetTemplates() {
	templateService := c.Container.GetService("template").(services.InterfaceTemplateService)

	templates, err := templateService.GetTemplates()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询模板列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, templates)
}

// GetTemplate 获取单个模板详情
// @Summary      获取模板详情
// @Description  根据ID获取模板及其有序步骤
// @Tags         Template
// @Accept       json
// @Produce      json
// @Param        id path int true "模板ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /templates/{id} [get]
// @Security     BearerAuth
func (c *TemplateController) GetTemplate() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	templateService := c.Container.GetService("template").(services.InterfaceTemplateService)
	template, err := templateService.GetTemplateByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrTemplateNotFound) {
			response.NotFound(c.Ctx, "模板不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询模板失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, template)
}

// CreateTemplate 创建新模板
// @Summary      创建模板
// @Description  创建一个新的活动模板；设为默认时同一(类型,角色)组合下其它模板的默认标记会被清除
// @Tags         Template
// @Accept       json
// @Produce      json
// @Param        request body services.TemplateRequest true "模板信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /templates [post]
// @Security     BearerAuth
func (c *TemplateController) CreateTemplate() {
	var req services.TemplateRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	templateService := c.Container.GetService("template").(services.InterfaceTemplateService)
	template, err := templateService.CreateTemplate(req)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建模板失败: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, template)
}

// UpdateTemplate 更新模板
// @Summary      更新模板
// @Description  更新模板信息并整体重建步骤列表
// @Tags         Template
// @Accept       json
// @Produce      json
// @Param        id path int true "模板ID" example:"1"
// @Param        request body services.TemplateRequest true "更新的模板信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /templates/{id} [put]
// @Security     BearerAuth
func (c *TemplateController) UpdateTemplate() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req services.TemplateRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	templateService := c.Container.GetService("template").(services.InterfaceTemplateService)
	template, err := templateService.UpdateTemplate(uint(id), req)
	if err != nil {
		if errors.Is(err, services.ErrTemplateNotFound) {
			response.NotFound(c.Ctx, "模板不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新模板失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, template)
}

// DeleteTemplate 删除模板
// @Summary      删除模板
// @Description  删除指定模板及其步骤
// @Tags         Template
// @Accept       json
// @Produce      json
// @Param        id path int true "模板ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /templates/{id} [delete]
// @Security     BearerAuth
func (c *TemplateController) DeleteTemplate() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	templateService := c.Container.GetService("template").(services.InterfaceTemplateService)
	if err := templateService.DeleteTemplate(uint(id)); err != nil {
		if errors.Is(err, services.ErrTemplateNotFound) {
			response.NotFound(c.Ctx, "模板不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除模板失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}
