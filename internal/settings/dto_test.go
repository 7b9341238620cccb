// AngelaMos | 2026
// dto_test.go

package settings

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestUpdateRequestAllowsZeroAwards(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	err := validate.Struct(UpdateSettingsRequest{
		PointsPerReport:         0,
		PointsPerResolvedReport: 0,
		MaxReportsPerDay:        10,
	})
	assert.NoError(t, err)
}

func TestUpdateRequestRejectsNegativeAwards(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	err := validate.Struct(UpdateSettingsRequest{
		PointsPerReport:         -1,
		PointsPerResolvedReport: 20,
		MaxReportsPerDay:        10,
	})
	assert.Error(t, err)
}

func TestUpdateRequestRejectsZeroDailyCap(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	err := validate.Struct(UpdateSettingsRequest{
		PointsPerReport:         10,
		PointsPerResolvedReport: 20,
		MaxReportsPerDay:        0,
	})
	assert.Error(t, err)
}
