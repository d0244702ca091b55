package container

import (
	"context"
	"log"
	"sync"
	"time"

	"bnb-ops-service/internal/domain/services"
	"bnb-ops-service/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService
	emailService services.InterfaceEmailService

	// 业务服务
	userService         services.InterfaceUserService
	locationService     services.InterfaceLocationService
	activityService     services.InterfaceActivityService
	attendanceService   services.InterfaceAttendanceService
	notificationService services.InterfaceNotificationService
	templateService     services.InterfaceTemplateService
	inventoryService    services.InterfaceInventoryService
	reportService       services.InterfaceReportService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，将不使用Redis缓存", err)
			redisClient = nil
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 基础服务
	c.jwtService = services.NewJWTService(c.config, c.db)
	c.emailService = services.NewEmailService(c.config)
	if c.redis != nil {
		c.redisService = services.NewRedisService(c.config)
	}

	// 业务服务，注意活动服务依赖通知服务
	c.notificationService = services.NewNotificationService(c.db, c.config)
	c.userService = services.NewUserService(c.db, c.config)
	c.locationService = services.NewLocationService(c.db, c.config)
	c.activityService = services.NewActivityService(c.db, c.config, c.notificationService)
	c.attendanceService = services.NewAttendanceService(c.db, c.config)
	c.templateService = services.NewTemplateService(c.db, c.config)
	c.inventoryService = services.NewInventoryService(c.db, c.config)
	c.reportService = services.NewReportService(c.db, c.config, c.redisService)
}

// GetService 根据名称获取服务实例
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "email":
		return c.emailService
	case "user":
		return c.userService
	case "location":
		return c.locationService
	case "activity":
		return c.activityService
	case "attendance":
		return c.attendanceService
	case "notification":
		return c.notificationService
	case "template":
		return c.templateService
	case "inventory":
		return c.inventoryService
	case "report":
		return c.reportService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	return c.db
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}
