package controllers

import (
	"strconv"
	"time"

	"bnb-ops-service/internal/app/middleware"
	"bnb-ops-service/internal/domain/services"
	"bnb-ops-service/internal/domain/services/container"
	"bnb-ops-service/internal/error/code"
	"bnb-ops-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceReportController 定义报表控制器接口
type InterfaceReportController interface {
	GetActivityReport()
	GetDashboard()
}

// ReportController 处理报表相关的请求
type ReportController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewReportController 创建一个新的报表控制器
func NewReportController(ctx *gin.Context, container *container.ServiceContainer) *ReportController {
	return &ReportController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleReportFunc 返回一个处理报表请求的Gin处理函数
func HandleReportFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewReportController(ctx, container)

		switch method {
		case "getActivityReport":
			controller.GetActivityReport()
		case "getDashboard":
			controller.GetDashboard()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetActivityReport 获取活动报表
// @Summary      获取活动报表
// @Description  按房源和日期范围统计活动，返回明细、按房源分组和汇总数据
// @Tags         Report
// @Accept       json
// @Produce      json
// @Param        location_id query int false "房源ID" example:"1"
// @Param        start_date query string false "开始日期" example:"2025-01-01"
// @Param        end_date query string false "结束日期" example:"2025-01-31"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /reports/activities [get]
// @Security     BearerAuth
func (c *ReportController) GetActivityReport() {
	var filter services.ReportFilter
	if v := c.Ctx.Query("location_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			locationID := uint(id)
			filter.LocationID = &locationID
		}
	}
	if v := c.Ctx.Query("start_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.StartDate = &t
		}
	}
	if v := c.Ctx.Query("end_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.EndDate = &t
		}
	}

	reportService := c.Container.GetService("report").(services.InterfaceReportService)
	report, err := reportService.GetActivityReport(filter)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "生成报表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, report)
}

// GetDashboard 获取仪表盘统计
// @Summary      获取仪表盘统计
// @Description  获取活动状态分布、当前在岗人数、低库存数和当前用户未读通知数
// @Tags         Report
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /reports/dashboard [get]
// @Security     BearerAuth
func (c *ReportController) GetDashboard() {
	actor, ok := middleware.GetActingUser(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	reportService := c.Container.GetService("report").(services.InterfaceReportService)
	stats, err := reportService.GetDashboardStats(actor)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询统计失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, stats)
}
