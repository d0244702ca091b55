package routes

import (
	"time"

	_ "bnb-ops-service/docs"
	"bnb-ops-service/internal/app/controllers"
	"bnb-ops-service/internal/app/middleware"
	"bnb-ops-service/internal/domain/models"
	"bnb-ops-service/internal/domain/services/container"
	"bnb-ops-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg, db)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加IP限流中间件 - 每秒允许10个请求，最多突发20个请求
	api.Use(middleware.IPRateLimiter(10, 20))

	// 健康检查路由
	healthController := controllers.NewHealthCheckController()
	api.GET("/ping", healthController.Ping)
	api.GET("/health", healthController.Ping) // 兼容Docker健康检查的路由

	// 认证路由 - 单独收紧限流，防止暴力破解
	api.POST("/auth/login",
		middleware.CombinedRateLimiter(1, 5),
		controllers.HandleAuthFunc(container, "login"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.Authenticate())

	// 添加通用限流中间件 - 每秒30个请求，最多突发50个请求
	auth.Use(middleware.IPRateLimiter(30, 50))

	backOffice := middleware.RequireRoles(models.RoleAdmin, models.RoleOperator)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	// 用户路由 - 仅管理员
	userGroup := auth.Group("/users")
	userGroup.Use(adminOnly)
	userGroup.GET("", controllers.HandleUserFunc(container, "getUsers"))
	userGroup.GET("/:id", controllers.HandleUserFunc(container, "getUser"))
	userGroup.POST("", controllers.HandleUserFunc(container, "createUser"))
	userGroup.PUT("/:id", controllers.HandleUserFunc(container, "updateUser"))
	userGroup.DELETE("/:id", controllers.HandleUserFunc(container, "deleteUser"))

	// 房源路由 - 读取对所有人开放，写入限后台角色，删除仅管理员
	locationGroup := auth.Group("/locations")
	locationGroup.GET("", middleware.CacheResponse(1*time.Minute), controllers.HandleLocationFunc(container, "getLocations"))
	locationGroup.GET("/:id", controllers.HandleLocationFunc(container, "getLocation"))
	locationGroup.POST("", backOffice, controllers.HandleLocationFunc(container, "createLocation"))
	locationGroup.PUT("/:id", backOffice, controllers.HandleLocationFunc(container, "updateLocation"))
	locationGroup.DELETE("/:id", adminOnly, controllers.HandleLocationFunc(container, "deleteLocation"))

	// 活动路由 - 删除限后台角色
	activityGroup := auth.Group("/activities")
	activityGroup.GET("", controllers.HandleActivityFunc(container, "getActivities"))
	activityGroup.GET("/:id", controllers.HandleActivityFunc(container, "getActivity"))
	activityGroup.POST("", controllers.HandleActivityFunc(container, "createActivity"))
	activityGroup.PUT("/:id", controllers.HandleActivityFunc(container, "updateActivity"))
	activityGroup.DELETE("/:id", backOffice, controllers.HandleActivityFunc(container, "deleteActivity"))

	// 考勤路由
	attendanceGroup := auth.Group("/attendance")
	attendanceGroup.POST("", controllers.HandleAttendanceFunc(container, "scan"))
	attendanceGroup.GET("", controllers.HandleAttendanceFunc(container, "getAttendances"))

	// 模板路由 - 写入限后台角色
	templateGroup := auth.Group("/templates")
	templateGroup.GET("", controllers.HandleTemplateFunc(container, "getTemplates"))
	templateGroup.GET("/:id", controllers.HandleTemplateFunc(container, "getTemplate"))
	templateGroup.POST("", backOffice, controllers.HandleTemplateFunc(container, "createTemplate"))
	templateGroup.PUT("/:id", backOffice, controllers.HandleTemplateFunc(container, "updateTemplate"))
	templateGroup.DELETE("/:id", backOffice, controllers.HandleTemplateFunc(container, "deleteTemplate"))

	// 库存路由 - 写入限后台角色
	inventoryGroup := auth.Group("/inventory")
	inventoryGroup.GET("", controllers.HandleInventoryFunc(container, "getItems"))
	inventoryGroup.GET("/:id", controllers.HandleInventoryFunc(container, "getItem"))
	inventoryGroup.POST("", backOffice, controllers.HandleInventoryFunc(container, "createItem"))
	inventoryGroup.PUT("/:id", backOffice, controllers.HandleInventoryFunc(container, "updateItem"))
	inventoryGroup.DELETE("/:id", backOffice, controllers.HandleInventoryFunc(container, "deleteItem"))

	// 通知路由
	notificationGroup := auth.Group("/notifications")
	notificationGroup.GET("", controllers.HandleNotificationFunc(container, "getNotifications"))
	notificationGroup.POST("", controllers.HandleNotificationFunc(container, "createNotification"))
	notificationGroup.PUT("/:id/read", controllers.HandleNotificationFunc(container, "markAsRead"))
	notificationGroup.PUT("/read-all", controllers.HandleNotificationFunc(container, "markAllAsRead"))

	// 个人资料路由
	profileGroup := auth.Group("/profile")
	profileGroup.GET("", controllers.HandleProfileFunc(container, "getProfile"))
	profileGroup.PUT("", controllers.HandleProfileFunc(container, "updateProfile"))
	profileGroup.PUT("/password", controllers.HandleProfileFunc(container, "changePassword"))

	// 报表路由 - 仪表盘对所有人开放，活动报表限后台角色
	reportGroup := auth.Group("/reports")
	reportGroup.GET("/activities", backOffice, middleware.CacheResponse(30*time.Second), controllers.HandleReportFunc(container, "getActivityReport"))
	reportGroup.GET("/dashboard", controllers.HandleReportFunc(container, "getDashboard"))

	// 邮件路由 - 限后台角色
	auth.POST("/email", backOffice, controllers.HandleEmailFunc(container, "sendEmail"))
}
