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

// InterfaceInventoryController 定义库存控制器接口
type InterfaceInventoryController interface {
	GetItems()
	GetItem()
	CreateItem()
	UpdateItem()
	DeleteItem()
}

// InventoryController 处理库存相关的请求
type InventoryController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewInventoryController 创建一个新的库存控制器
func NewInventoryController(ctx *gin.Context, container *container.ServiceContainer) *InventoryController {
	return &InventoryController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleInventoryFunc 返回一个处理库存请求的Gin处理函数
func HandleInventoryFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewInventoryController(ctx, container)

		switch method {
		case "getItems":
			controller.GetItems()
		case "getItem":
			controller.GetItem()
		case "createItem":
			controller.CreateItem()
		case "updateItem":
			controller.UpdateItem()
		case "deleteItem":
			controller.DeleteItem()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetItems 获取库存物品列表
// @Summary      获取库存列表
// @Description  获取库存物品，支持按房源过滤，按分类和名称排序
// @Tags         Inventory
// @Accept       json
// @Produce      json
// @Param        location_id query int false "房源ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /inventory [get]
// @Security     BearerAuth
func (c *InventoryController) GetItems() {
	var locationID *uint
	if v := c.Ctx.Query("location_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			parsed := uint(id)
			locationID = &parsed
		}
	}

	inventoryService := c.Container.GetService("inventory").(services.InterfaceInventoryService)
	items, err := inventoryService.GetAllItems(locationID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询库存失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, items)
}

// GetItem 获取单个库存物品
// @Summary      获取库存物品详情
// @Description  根据ID获取库存物品详情
// @Tags         Inventory
// @Accept       json
// @Produce      json
// @Param        id path int true "物品ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /inventory/{id} [get]
// @Security     BearerAuth
func (c *InventoryController) GetItem() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	inventoryService := c.Container.GetService("inventory").(services.InterfaceInventoryService)
	item, err := inventoryService.GetItemByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrInventoryNotFound) {
			response.NotFound(c.Ctx, "库存物品不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询库存物品失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, item)
}

// InventoryRequest 表示创建库存物品的请求体
type InventoryRequest struct {
	Name        string `json:"name" binding:"required" example:"Asciugamani"`
	Category    string `json:"category" example:"Biancheria"`
	Quantity    int    `json:"quantity" example:"20"`
	MinQuantity int    `json:"min_quantity" example:"5"`
	Unit        string `json:"unit" example:"pz"`
	LocationID  uint   `json:"location_id" binding:"required" example:"1"`
}

// CreateItem 创建库存物品
// @Summary      创建库存物品
// @Description  在指定房源下创建一个新的库存物品
// @Tags         Inventory
// @Accept       json
// @Produce      json
// @Param        request body InventoryRequest true "物品信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /inventory [post]
// @Security     BearerAuth
func (c *InventoryController) CreateItem() {
	var req InventoryRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	item := &models.Inventory{
		Name:        req.Name,
		Category:    req.Category,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		Unit:        req.Unit,
		LocationID:  req.LocationID,
	}

	inventoryService := c.Container.GetService("inventory").(services.InterfaceInventoryService)
	if err := inventoryService.CreateItem(item); err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			response.NotFound(c.Ctx, "房源不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建库存物品失败: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, item)
}

// UpdateInventoryRequest 表示更新库存物品的请求体
type UpdateInventoryRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Quantity    *int   `json:"quantity"`
	MinQuantity *int   `json:"min_quantity"`
	Unit        string `json:"unit"`
}

// UpdateItem 更新库存物品
// @Summary      更新库存物品
// @Description  更新库存物品的数量和属性
// @Tags         Inventory
// @Accept       json
// @Produce      json
// @Param        id path int true "物品ID" example:"1"
// @Param        request body UpdateInventoryRequest true "更新的物品信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /inventory/{id} [put]
// @Security     BearerAuth
func (c *InventoryController) UpdateItem() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req UpdateInventoryRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.MinQuantity != nil {
		updates["min_quantity"] = *req.MinQuantity
	}
	if req.Unit != "" {
		updates["unit"] = req.Unit
	}

	inventoryService := c.Container.GetService("inventory").(services.InterfaceInventoryService)
	item, err := inventoryService.UpdateItem(uint(id), updates)
	if err != nil {
		if errors.Is(err, services.ErrInventoryNotFound) {
			response.NotFound(c.Ctx, "库存物品不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新库存物品失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, item)
}

// DeleteItem 删除库存物品
// @Summary      删除库存物品
// @Description  删除指定的库存物品
// @Tags         Inventory
// @Accept       json
// @Produce      json
// @Param        id path int true "物品ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /inventory/{id} [delete]
// @Security     BearerAuth
func (c *InventoryController) DeleteItem() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	inventoryService := c.Container.GetService("inventory").(services.InterfaceInventoryService)
	if err := inventoryService.DeleteItem(uint(id)); err != nil {
		if errors.Is(err, services.ErrInventoryNotFound) {
			response.NotFound(c.Ctx, "库存物品不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除库存物品失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}
