package middleware

import (
	"net/http"
	"strings"

	"bnb-ops-service/internal/domain/models"
	"bnb-ops-service/internal/domain/services"
	"bnb-ops-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

var jwtService services.InterfaceJWTService

// actingUserKey 上下文中存放调用者身份的键
const actingUserKey = "actingUser"

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(cfg *config.Config, db *gorm.DB) {
	jwtService = services.NewJWTService(cfg, db)
}

// extractToken 从授权头中提取token
func extractToken(authHeader string) string {
	// 检查并移除 "Bearer " 前缀
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// abortUnauthorized 以401中断请求
func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"code":    401,
		"message": message,
		"data":    nil,
	})
	c.Abort()
}

// Authenticate 验证令牌并把调用者身份写入请求上下文
// 每个请求只在这里解析一次身份，后续组件都拿显式的 ActingUser 值
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		// 提取token
		tokenString := extractToken(authHeader)
		token, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid token: "+err.Error())
			return
		}

		if !token.Valid {
			abortUnauthorized(c, "Invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			abortUnauthorized(c, "Invalid token claims")
			return
		}
		role, ok := claims["role"].(string)
		if !ok {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		c.Set(actingUserKey, services.ActingUser{
			ID:   uint(userID),
			Role: models.UserRole(role),
		})
		c.Next()
	}
}

// RequireRoles 限制只有指定角色才能访问，必须在 Authenticate 之后使用
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActingUser(c)
		if !ok {
			abortUnauthorized(c, "Authentication required")
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"code":    403,
			"message": "Insufficient permissions",
			"data":    nil,
		})
		c.Abort()
	}
}

// GetActingUser 从请求上下文取出调用者身份
func GetActingUser(c *gin.Context) (services.ActingUser, bool) {
	value, exists := c.Get(actingUserKey)
	if !exists {
		return services.ActingUser{}, false
	}
	actor, ok := value.(services.ActingUser)
	return actor, ok
}
