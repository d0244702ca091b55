package controllers

import (
	"errors"
	"strconv"
	"time"

	"bnb-ops-service/internal/app/middleware"
	"bnb-ops-service/internal/domain/services"
	"bnb-ops-service/internal/domain/services/container"
	"bnb-ops-service/internal/error/code"
	"bnb-ops-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceAttendanceController 定义考勤控制器接口
type InterfaceAttendanceController interface {
	Scan()
	GetAttendances()
}

// AttendanceController 处理扫码考勤相关的请求
type AttendanceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAttendanceController 创建一个新的考勤控制器
func NewAttendanceController(ctx *gin.Context, container *container.ServiceContainer) *AttendanceController {
	return &AttendanceController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleAttendanceFunc 返回一个处理考勤请求的Gin处理函数
func HandleAttendanceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAttendanceController(ctx, container)

		switch method {
		case "scan":
			controller.Scan()
		case "getAttendances":
			controller.GetAttendances()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// ScanRequest 表示一次扫码签到/签退请求
type ScanRequest struct {
	QRCode     string   `json:"qr_code" binding:"required" example:"LOC-001-CENTRO"`
	ActivityID *uint    `json:"activity_id"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Notes      string   `json:"notes"`
}

// Scan 处理扫码签到/签退
// @Summary      扫码签到/签退
// @Description  解析房源二维码：该用户在该房源没有未关闭的考勤记录时签到，否则关闭该记录并签退
// @Tags         Attendance
// @Accept       json
// @Produce      json
// @Param        request body ScanRequest true "扫码请求"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /attendance [post]
// @Security     BearerAuth
func (c *AttendanceController) Scan() {
	actor, ok := middleware.GetActingUser(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	var req ScanRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	attendanceService := c.Container.GetService("attendance").(services.InterfaceAttendanceService)
	result, err := attendanceService.ResolveScan(actor, services.ScanRequest{
		QRCode:     req.QRCode,
		ActivityID: req.ActivityID,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Notes:      req.Notes,
	})
	if err != nil {
		if errors.Is(err, services.ErrQRCodeInvalid) {
			response.FailWithMessage(c.Ctx, code.ErrQRCodeInvalid, err.Error(), nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "处理扫码失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, result)
}

// GetAttendances 获取考勤记录列表
// @Summary      获取考勤记录
// @Description  获取考勤记录，支持房源、用户和日期范围过滤；非后台角色只能看到自己的记录
// @Tags         Attendance
// @Accept       json
// @Produce      json
// @Param        location_id query int false "房源ID" example:"1"
// @Param        user_id query int false "用户ID" example:"2"
// @Param        start_date query string false "开始日期" example:"2025-01-01"
// @Param        end_date query string false "结束日期" example:"2025-01-31"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /attendance [get]
// @Security     BearerAuth
func (c *AttendanceController) GetAttendances() {
	actor, ok := middleware.GetActingUser(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	var filter services.AttendanceFilter
	if v := c.Ctx.Query("location_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			locationID := uint(id)
			filter.LocationID = &locationID
		}
	}
	if v := c.Ctx.Query("user_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			userID := uint(id)
			filter.UserID = &userID
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

	attendanceService := c.Container.GetService("attendance").(services.InterfaceAttendanceService)
	attendances, err := attendanceService.GetAttendances(actor, filter)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询考勤记录失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, attendances)
}
