package controllers

import (
	"errors"
	"strconv"

	"bnb-ops-service/internal/domain/models"
	"bnb-ops-service/internal/domain/services"
	"bnb-ops-service/internal/domain/services/container"
	"bnb-ops-service/internal/error/code"
	"bnb-ops-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceLocationController 定义房源控制器接口
type InterfaceLocationController interface {
	GetLocations()
	GetLocation()
	CreateLocation()
	UpdateLocation()
	DeleteLocation()
}

// LocationController 处理房源相关的请求
type LocationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewLocationController 创建一个新的房源控制器
func NewLocationController(ctx *gin.Context, container *container.ServiceContainer) *LocationController {
	return &LocationController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleLocationFunc 返回一个处理房源请求的Gin处理函数
func HandleLocationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewLocationController(ctx, container)

		switch method {
		case "getLocations":
			controller.GetLocations()
		case "getLocation":
			controller.GetLocation()
		case "createLocation":
			controller.CreateLocation()
		case "updateLocation":
			controller.UpdateLocation()
		case "deleteLocation":
			controller.DeleteLocation()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetLocations 获取房源列表
// @Summary      获取房源列表
// @Description  获取所有房源及其活动数，按名称排序
// @Tags         Location
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /locations [get]
// @Security     BearerAuth
func (c *LocationController) GetLocations() {
	locationService := c.Container.GetService("location").(services.InterfaceLocationService)

	locations, err := locationService.GetAllLocations()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询房源列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, locations)
}

// GetLocation 获取单个房源详情
// @Summary      获取房源详情
// @Description  根据ID获取房源详情，包含最近活动、库存和考勤记录
// @Tags         Location
// @Accept       json
// @Produce      json
// @Param        id path int true "房源ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /locations/{id} [get]
// @Security     BearerAuth
func (c *LocationController) GetLocation() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	locationService := c.Container.GetService("location").(services.InterfaceLocationService)
	location, err := locationService.GetLocationByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			response.NotFound(c.Ctx, "房源不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询房源失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, location)
}

// LocationRequest 表示创建/更新房源的请求体
type LocationRequest struct {
	Name        string `json:"name" binding:"required" example:"B&B Centro Storico"`
	Description string `json:"description" example:"Appartamento nel centro storico"`
	Address     string `json:"address" binding:"required" example:"Via Roma 1"`
	City        string `json:"city" binding:"required" example:"Firenze"`
	PostalCode  string `json:"postal_code" example:"50100"`
	Phone       string `json:"phone" example:"+39 055 123456"`
	Email       string `json:"email" example:"info@bbcentro.it"`
	Capacity    int    `json:"capacity" example:"4"`
	Rooms       int    `json:"rooms" example:"2"`
	Bathrooms   int    `json:"bathrooms" example:"1"`
	HasWifi     *bool  `json:"has_wifi"`
	HasParking  *bool  `json:"has_parking"`
	HasAC       *bool  `json:"has_ac"`
	Notes       string `json:"notes"`
	IsActive    *bool  `json:"is_active"`
}

// CreateLocation 创建新房源
// @Summary      创建房源
// @Description  创建一个新的房源并生成唯一二维码
// @Tags         Location
// @Accept       json
// @Produce      json
// @Param        request body LocationRequest true "房源信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /locations [post]
// @Security     BearerAuth
func (c *LocationController) CreateLocation() {
	var req LocationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	location := &models.Location{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		PostalCode:  req.PostalCode,
		Phone:       req.Phone,
		Email:       req.Email,
		Capacity:    req.Capacity,
		Rooms:       req.Rooms,
		Bathrooms:   req.Bathrooms,
		Notes:       req.Notes,
	}
	if req.HasWifi != nil {
		location.HasWifi = *req.HasWifi
	}
	if req.HasParking != nil {
		location.HasParking = *req.HasParking
	}
	if req.HasAC != nil {
		location.HasAC = *req.HasAC
	}

	locationService := c.Container.GetService("location").(services.InterfaceLocationService)
	if err := locationService.CreateLocation(location); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建房源失败: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, location)
}

// UpdateLocation 更新房源信息
// @Summary      更新房源
// @Description  更新现有房源的信息，二维码不可修改
// @Tags         Location
// @Accept       json
// @Produce      json
// @Param        id path int true "房源ID" example:"1"
// @Param        request body LocationRequest true "更新的房源信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /locations/{id} [put]
// @Security     BearerAuth
func (c *LocationController) UpdateLocation() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req LocationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"address":     req.Address,
		"city":        req.City,
		"postal_code": req.PostalCode,
		"phone":       req.Phone,
		"email":       req.Email,
		"notes":       req.Notes,
	}
	if req.Capacity > 0 {
		updates["capacity"] = req.Capacity
	}
	if req.Rooms > 0 {
		updates["rooms"] = req.Rooms
	}
	if req.Bathrooms > 0 {
		updates["bathrooms"] = req.Bathrooms
	}
	if req.HasWifi != nil {
		updates["has_wifi"] = *req.HasWifi
	}
	if req.HasParking != nil {
		updates["has_parking"] = *req.HasParking
	}
	if req.HasAC != nil {
		updates["has_ac"] = *req.HasAC
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	locationService := c.Container.GetService("location").(services.InterfaceLocationService)
	location, err := locationService.UpdateLocation(uint(id), updates)
	if err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			response.NotFound(c.Ctx, "房源不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新房源失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, location)
}

// DeleteLocation 删除房源
// @Summary      删除房源
// @Description  删除指定房源及其库存、考勤和活动记录，仅管理员可用
// @Tags         Location
// @Accept       json
// @Produce      json
// @Param        id path int true "房源ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /locations/{id} [delete]
// @Security     BearerAuth
func (c *LocationController) DeleteLocation() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	locationService := c.Container.GetService("location").(services.InterfaceLocationService)
	if err := locationService.DeleteLocation(uint(id)); err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			response.NotFound(c.Ctx, "房源不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除房源失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}
