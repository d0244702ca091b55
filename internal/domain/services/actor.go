package services

import "bnb-ops-service/internal/domain/models"

// ActingUser 表示一次请求的已认证调用者，由认证中间件构造后显式传入各服务
type ActingUser struct {
	ID   uint
	Role models.UserRole
}

// IsBackOffice 判断调用者是否为管理员或运营
func (a ActingUser) IsBackOffice() bool {
	return a.Role == models.RoleAdmin || a.Role == models.RoleOperator
}
