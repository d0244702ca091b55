package services

import (
	"testing"

	"bnb-ops-service/internal/domain/models"
	"bnb-ops-service/pkg/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewJWTService(testConfig(), db)

	tokenString, err := svc.GenerateToken(42, models.RoleOperator)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, string(models.RoleOperator), claims["role"])
	assert.Equal(t, "bnb-ops-service", claims["iss"])
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	db := newTestDB(t)
	svc := NewJWTService(testConfig(), db)

	tokenString, err := svc.GenerateToken(1, models.RoleWorker)
	require.NoError(t, err)

	_, err = svc.ValidateToken(tokenString + "x")
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewJWTService(testConfig(), db)

	hashed, err := utils.HashPassword("password123")
	require.NoError(t, err)
	user := &models.User{
		Email:    "admin@test.it",
		Password: hashed,
		Name:     "Amministratore",
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)

	result, err := svc.Login("admin@test.it", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.UserID)
	assert.Equal(t, models.RoleAdmin, result.Role)
	assert.Equal(t, "admin@test.it", result.Email)

	// 密码错误
	_, err = svc.Login("admin@test.it", "sbagliata")
	assert.Error(t, err)

	// 邮箱不存在
	_, err = svc.Login("ignoto@test.it", "password123")
	assert.Error(t, err)
}

func TestLoginDisabledAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewJWTService(testConfig(), db)

	hashed, err := utils.HashPassword("password123")
	require.NoError(t, err)
	user := &models.User{
		Email:    "disattivo@test.it",
		Password: hashed,
		Name:     "Disattivo",
		Role:     models.RoleWorker,
	}
	require.NoError(t, db.Create(user).Error)
	// is_active 带默认值标签，零值在插入时会被忽略，这里显式禁用
	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	_, err = svc.Login("disattivo@test.it", "password123")
	assert.Error(t, err)
}
