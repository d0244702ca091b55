package services

import (
	"errors"
	"fmt"
	"time"

	"bnb-ops-service/internal/domain/models"
	"bnb-ops-service/internal/infrastructure/config"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 考勤签到相关的业务错误
var (
	ErrQRCodeInvalid = errors.New("二维码无效")
)

// AttendanceAction 表示一次扫码被解析成的动作
type AttendanceAction string

const (
	ActionCheckIn  AttendanceAction = "checkin"
	ActionCheckOut AttendanceAction = "checkout"
)

// ScanRequest 表示一次扫码签到/签退请求
type ScanRequest struct {
	QRCode     string
	ActivityID *uint
	Latitude   *float64
	Longitude  *float64
	Notes      string
}

// ScanResult 表示扫码解析结果
type ScanResult struct {
	Action     AttendanceAction   `json:"action"`
	Message    string             `json:"message"`
	Attendance *models.Attendance `json:"attendance"`
}

// AttendanceFilter 考勤列表查询条件
type AttendanceFilter struct {
	LocationID *uint
	UserID     *uint
	StartDate  *time.Time
	EndDate    *time.Time
}

// InterfaceAttendanceService defines the attendance service interface
type InterfaceAttendanceService interface {
	ResolveScan(actor ActingUser, req ScanRequest) (*ScanResult, error)
	GetAttendances(actor ActingUser, filter AttendanceFilter) ([]models.Attendance, error)
}

// AttendanceService 提供扫码考勤相关的服务
type AttendanceService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAttendanceService 创建一个新的考勤服务
func NewAttendanceService(db *gorm.DB, cfg *config.Config) InterfaceAttendanceService {
	return &AttendanceService{
		DB:     db,
		Config: cfg,
	}
}

// 1 ResolveScan 解析一次扫码：该用户在该房源存在打开的考勤记录则签退，否则签到
// 读改写在事务内完成并对打开记录加行锁，避免并发扫码产生两条打开记录
func (s *AttendanceService) ResolveScan(actor ActingUser, req ScanRequest) (*ScanResult, error) {
	// 通过二维码定位房源
	var location models.Location
	if err := s.DB.Where("qr_code = ?", req.QRCode).First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQRCodeInvalid
		}
		return nil, err
	}

	var result *ScanResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		query := tx.Where("user_id = ? AND location_id = ? AND check_out_at IS NULL",
			actor.ID, location.ID)
		// SQLite 不支持 FOR UPDATE，仅在 MySQL 上加行锁
		if tx.Dialector.Name() == "mysql" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var open models.Attendance
		err := query.First(&open).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now()

		if err == nil {
			// 存在打开记录 → 签退
			updates := map[string]interface{}{"check_out_at": now}
			if req.Notes != "" {
				updates["notes"] = req.Notes
			}
			if err := tx.Model(&open).Updates(updates).Error; err != nil {
				return err
			}
			open.CheckOutAt = &now
			if req.Notes != "" {
				open.Notes = req.Notes
			}
			open.Location = &location
			result = &ScanResult{
				Action:     ActionCheckOut,
				Message:    fmt.Sprintf("Check-out effettuato da %s", location.Name),
				Attendance: &open,
			}
			return nil
		}

		// 不存在打开记录 → 签到
		attendance := models.Attendance{
			UserID:     actor.ID,
			LocationID: location.ID,
			ActivityID: req.ActivityID,
			CheckInAt:  now,
			Latitude:   req.Latitude,
			Longitude:  req.Longitude,
			Notes:      req.Notes,
		}
		if err := tx.Create(&attendance).Error; err != nil {
			return err
		}
		attendance.Location = &location
		result = &ScanResult{
			Action:     ActionCheckIn,
			Message:    fmt.Sprintf("Check-in effettuato presso %s", location.Name),
			Attendance: &attendance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// 2 GetAttendances 查询考勤列表，非管理员/运营只能查看自己的记录
func (s *AttendanceService) GetAttendances(actor ActingUser, filter AttendanceFilter) ([]models.Attendance, error) {
	query := s.DB.Model(&models.Attendance{})

	if filter.LocationID != nil {
		query = query.Where("location_id = ?", *filter.LocationID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.StartDate != nil {
		query = query.Where("check_in_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("check_in_at <= ?", *filter.EndDate)
	}

	// 非后台角色只能看到自己的考勤
	if !actor.IsBackOffice() {
		query = query.Where("user_id = ?", actor.ID)
	}

	var attendances []models.Attendance
	if err := query.
		Preload("User").
		Preload("Location").
		Preload("Activity").
		Order("check_in_at DESC").
		Find(&attendances).Error; err != nil {
		return nil, err
	}

	return attendances, nil
}
