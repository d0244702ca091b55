package services

import (
	"time"

	"bnb-ops-service/internal/domain/models"
	"bnb-ops-service/internal/infrastructure/config"
	"bnb-ops-service/pkg/logger"

	"gorm.io/gorm"
)

// ReportFilter 活动报表查询条件
type ReportFilter struct {
	LocationID *uint
	StartDate  *time.Time
	EndDate    *time.Time
}

// ReportSummary 报表汇总统计
type ReportSummary struct {
	Total      int64                         `json:"total"`
	Completed  int64                         `json:"completed"`
	Pending    int64                         `json:"pending"`
	InProgress int64                         `json:"in_progress"`
	Cancelled  int64                         `json:"cancelled"`
	ByType     map[models.ActivityType]int64 `json:"by_type"`
}

// LocationGroup 按房源分组的活动
type LocationGroup struct {
	Location   *models.Location  `json:"location"`
	Activities []models.Activity `json:"activities"`
}

// ActivityReport 活动报表
type ActivityReport struct {
	Activities []models.Activity        `json:"activities"`
	Grouped    map[string]LocationGroup `json:"grouped"`
	Summary    ReportSummary            `json:"summary"`
}

// DashboardStats 仪表盘统计数据
type DashboardStats struct {
	ActivitiesPending    int64 `json:"activities_pending"`
	ActivitiesInProgress int64 `json:"activities_in_progress"`
	ActivitiesCompleted  int64 `json:"activities_completed"`
	ActivitiesCancelled  int64 `json:"activities_cancelled"`
	OpenAttendances      int64 `json:"open_attendances"`
	LowStockItems        int64 `json:"low_stock_items"`
	UnreadNotifications  int64 `json:"unread_notifications"`
}

// InterfaceReportService defines the report service interface
type InterfaceReportService interface {
	GetActivityReport(filter ReportFilter) (*ActivityReport, error)
	GetDashboardStats(actor ActingUser) (*DashboardStats, error)
}

// ReportService 提供报表和仪表盘统计服务
type ReportService struct {
	DB     *gorm.DB
	Config *config.Config
	Cache  InterfaceRedisService
}

// dashboardCacheTTL 仪表盘统计缓存时间
const dashboardCacheTTL = 30 * time.Second

// NewReportService 创建一个新的报表服务
func NewReportService(db *gorm.DB, cfg *config.Config, cache InterfaceRedisService) InterfaceReportService {
	return &ReportService{
		DB:     db,
		Config: cfg,
		Cache:  cache,
	}
}

// 1 GetActivityReport 生成活动报表，附带汇总统计和按房源分组
func (s *ReportService) GetActivityReport(filter ReportFilter) (*ActivityReport, error) {
	query := s.DB.Model(&models.Activity{})

	if filter.LocationID != nil {
		query = query.Where("location_id = ?", *filter.LocationID)
	}
	if filter.StartDate != nil {
		query = query.Where("activities.created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		// 截止日期取当天结束
		end := filter.EndDate.Add(24*time.Hour - time.Nanosecond)
		query = query.Where("activities.created_at <= ?", end)
	}

	var activities []models.Activity
	if err := query.
		Preload("Location").
		Preload("AssignedTo").
		Preload("CreatedBy").
		Preload("Attendances").
		Preload("Attendances.User").
		Order("created_at ASC").
		Find(&activities).Error; err != nil {
		return nil, err
	}

	report := &ActivityReport{
		Activities: activities,
		Grouped:    make(map[string]LocationGroup),
		Summary: ReportSummary{
			ByType: make(map[models.ActivityType]int64),
		},
	}

	for i := range activities {
		a := &activities[i]
		report.Summary.Total++
		switch a.Status {
		case models.StatusCompleted:
			report.Summary.Completed++
		case models.StatusPending:
			report.Summary.Pending++
		case models.StatusInProgress:
			report.Summary.InProgress++
		case models.StatusCancelled:
			report.Summary.Cancelled++
		}
		report.Summary.ByType[a.Type]++

		if a.Location != nil {
			group := report.Grouped[a.Location.Name]
			if group.Location == nil {
				group.Location = a.Location
			}
			group.Activities = append(group.Activities, *a)
			report.Grouped[a.Location.Name] = group
		}
	}

	return report, nil
}

// 2 GetDashboardStats 统计仪表盘数据，结果短暂缓存在Redis中
func (s *ReportService) GetDashboardStats(actor ActingUser) (*DashboardStats, error) {
	cacheKey := "dashboard:stats"

	var stats DashboardStats
	if s.Cache != nil {
		if err := s.Cache.Get(cacheKey, &stats); err == nil {
			// 未读通知数与用户相关，不走缓存
			if err := s.countUnread(actor.ID, &stats); err != nil {
				return nil, err
			}
			return &stats, nil
		}
	}

	type statusCount struct {
		Status models.ActivityStatus
		Count  int64
	}
	var counts []statusCount
	if err := s.DB.Model(&models.Activity{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		switch c.Status {
		case models.StatusPending:
			stats.ActivitiesPending = c.Count
		case models.StatusInProgress:
			stats.ActivitiesInProgress = c.Count
		case models.StatusCompleted:
			stats.ActivitiesCompleted = c.Count
		case models.StatusCancelled:
			stats.ActivitiesCancelled = c.Count
		}
	}

	if err := s.DB.Model(&models.Attendance{}).
		Where("check_out_at IS NULL").
		Count(&stats.OpenAttendances).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Inventory{}).
		Where("quantity <= min_quantity").
		Count(&stats.LowStockItems).Error; err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Set(cacheKey, stats, dashboardCacheTTL); err != nil {
			logger.Warning("缓存仪表盘统计失败: %v", err)
		}
	}

	if err := s.countUnread(actor.ID, &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

// countUnread 统计当前用户的未读通知数
func (s *ReportService) countUnread(userID uint, stats *DashboardStats) error {
	return s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&stats.UnreadNotifications).Error
}
