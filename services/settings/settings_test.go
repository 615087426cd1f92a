package settings

import (
	"testing"

	"nyumbani/models"
	"nyumbani/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsRepo struct {
	doc *models.Settings
}

func (r *fakeSettingsRepo) GetGlobal() (*models.Settings, error) {
	if r.doc == nil {
		return nil, nil
	}
	copy := *r.doc
	return &copy, nil
}

func (r *fakeSettingsRepo) Upsert(doc *models.Settings) error {
	copy := *doc
	r.doc = &copy
	return nil
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func TestGetSeedsDefaults(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := &DefaultSettingsService{Repo: repo}

	doc, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, 1500.0, doc.Pricing.ViewingFeeBase)
	assert.Equal(t, 3, doc.Pricing.ViewingFeeThreshold)
	assert.Equal(t, models.ViewingFeePerBlock, doc.Pricing.ViewingFeeStrategy)
	assert.Equal(t, 20.0, doc.Pricing.DefaultCommissionPercentage)

	// The seeded document is persisted, not recreated per call.
	require.NotNil(t, repo.doc)
	again, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, doc.ID, again.ID)
}

func TestUpdateValidatesBeforeWriting(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := &DefaultSettingsService{Repo: repo}

	_, err := svc.Update(models.SettingsUpdate{DefaultCommissionPercentage: floatPtr(120)})
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidArgument, serr.Code)

	_, err = svc.Update(models.SettingsUpdate{ViewingFeeBase: floatPtr(-1)})
	serr, ok = utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidArgument, serr.Code)

	_, err = svc.Update(models.SettingsUpdate{ViewingFeeStrategy: strPtr("per_galaxy")})
	serr, ok = utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidArgument, serr.Code)

	// Nothing above should have persisted a change.
	doc, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPricingSettings(), doc.Pricing)
}

func TestUpdateAppliesPatch(t *testing.T) {
	svc := &DefaultSettingsService{Repo: &fakeSettingsRepo{}}

	doc, err := svc.Update(models.SettingsUpdate{
		ViewingFeeBase:              floatPtr(2000),
		ViewingFeeThreshold:         intPtr(5),
		ViewingFeeStrategy:          strPtr(models.ViewingFeePerProperty),
		DefaultCommissionPercentage: floatPtr(15),
	})
	require.NoError(t, err)

	assert.Equal(t, 2000.0, doc.Pricing.ViewingFeeBase)
	assert.Equal(t, 5, doc.Pricing.ViewingFeeThreshold)
	assert.Equal(t, models.ViewingFeePerProperty, doc.Pricing.ViewingFeeStrategy)
	assert.Equal(t, 15.0, doc.Pricing.DefaultCommissionPercentage)
	// Untouched fields keep their defaults.
	assert.Equal(t, 500.0, doc.Pricing.ViewingFeeAdditional)
}
