package services

import (
	"testing"

	"bnb-ops-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTemplateWithSteps(t *testing.T) {
	db := newTestDB(t)
	svc := NewTemplateService(db, testConfig())

	notRequired := false
	template, err := svc.CreateTemplate(TemplateRequest{
		Name: "Pulizia standard",
		Type: models.ActivityTypeCleaning,
		Role: models.RoleHousekeeper,
		Steps: []TemplateStepInput{
			{Title: "Cambiare lenzuola"},
			{Title: "Pulire bagno"},
			{Title: "Controllare minibar", IsRequired: &notRequired},
		},
	})
	require.NoError(t, err)

	require.Len(t, template.Steps, 3)
	// 步骤按输入顺序保存，is_required 默认为 true
	assert.Equal(t, "Cambiare lenzuola", template.Steps[0].Title)
	assert.Equal(t, 0, template.Steps[0].StepOrder)
	assert.True(t, template.Steps[0].IsRequired)
	assert.Equal(t, 2, template.Steps[2].StepOrder)
	assert.False(t, template.Steps[2].IsRequired)
}

func TestCreateTemplateInvalidType(t *testing.T) {
	db := newTestDB(t)
	svc := NewTemplateService(db, testConfig())

	_, err := svc.CreateTemplate(TemplateRequest{
		Name: "Modello",
		Type: "INVALID",
		Role: models.RoleWorker,
	})
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestCreateTemplateDefaultUniqueness(t *testing.T) {
	db := newTestDB(t)
	svc := NewTemplateService(db, testConfig())

	first, err := svc.CreateTemplate(TemplateRequest{
		Name:      "Pulizia A",
		Type:      models.ActivityTypeCleaning,
		Role:      models.RoleHousekeeper,
		IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	// 同一 (type, role) 的新默认模板清除旧的默认标记
	second, err := svc.CreateTemplate(TemplateRequest{
		Name:      "Pulizia B",
		Type:      models.ActivityTypeCleaning,
		Role:      models.RoleHousekeeper,
		IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	reloaded, err := svc.GetTemplateByID(first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsDefault)

	// 不同角色的默认模板互不影响
	other, err := svc.CreateTemplate(TemplateRequest{
		Name:      "Pulizia operatori",
		Type:      models.ActivityTypeCleaning,
		Role:      models.RoleWorker,
		IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, other.IsDefault)

	reloaded, err = svc.GetTemplateByID(second.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsDefault)
}

func TestUpdateTemplateRebuildsSteps(t *testing.T) {
	db := newTestDB(t)
	svc := NewTemplateService(db, testConfig())

	template, err := svc.CreateTemplate(TemplateRequest{
		Name: "Manutenzione",
		Type: models.ActivityTypeMaintenance,
		Role: models.RoleWorker,
		Steps: []TemplateStepInput{
			{Title: "Vecchio passo 1"},
			{Title: "Vecchio passo 2"},
		},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTemplate(template.ID, TemplateRequest{
		Name: "Manutenzione caldaia",
		Type: models.ActivityTypeMaintenance,
		Role: models.RoleWorker,
		Steps: []TemplateStepInput{
			{Title: "Nuovo passo"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Manutenzione caldaia", updated.Name)
	require.Len(t, updated.Steps, 1)
	assert.Equal(t, "Nuovo passo", updated.Steps[0].Title)

	// 旧步骤已被物理删除
	var count int64
	db.Model(&models.TemplateStep{}).Where("template_id = ?", template.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateTemplateNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewTemplateService(db, testConfig())

	_, err := svc.UpdateTemplate(999, TemplateRequest{
		Name: "Inesistente",
		Type: models.ActivityTypeOther,
		Role: models.RoleWorker,
	})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestDeleteTemplateRemovesSteps(t *testing.T) {
	db := newTestDB(t)
	svc := NewTemplateService(db, testConfig())

	template, err := svc.CreateTemplate(TemplateRequest{
		Name: "Da eliminare",
		Type: models.ActivityTypeOther,
		Role: models.RoleWorker,
		Steps: []TemplateStepInput{
			{Title: "passo 1"},
			{Title: "passo 2"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTemplate(template.ID))

	_, err = svc.GetTemplateByID(template.ID)
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	var count int64
	db.Model(&models.TemplateStep{}).Where("template_id = ?", template.ID).Count(&count)
	assert.Zero(t, count)
}

func TestGetTemplatesOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := NewTemplateService(db, testConfig())

	for _, tc := range []struct {
		name string
		role models.UserRole
	}{
		{"Zeta", models.RoleWorker},
		{"Alfa", models.RoleHousekeeper},
		{"Beta", models.RoleHousekeeper},
	} {
		_, err := svc.CreateTemplate(TemplateRequest{
			Name: tc.name,
			Type: models.ActivityTypeCleaning,
			Role: tc.role,
		})
		require.NoError(t, err)
	}

	templates, err := svc.GetTemplates()
	require.NoError(t, err)
	require.Len(t, templates, 3)
	// 先按角色再按名称排序
	assert.Equal(t, "Alfa", templates[0].Name)
	assert.Equal(t, "Beta", templates[1].Name)
	assert.Equal(t, "Zeta", templates[2].Name)
}
