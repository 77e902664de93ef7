package health

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"crediris/internal/simulation/models"
)

func TestBMI(t *testing.T) {
	assert.InDelta(t, 22.86, BMI(models.HealthProfile{HeightCm: 175, WeightKg: 70}), 0.01)
	assert.InDelta(t, 33.2, BMI(models.HealthProfile{HeightCm: 170, WeightKg: 96}), 0.1)
	assert.Zero(t, BMI(models.HealthProfile{WeightKg: 70}))
}

func TestAssess(t *testing.T) {
	tests := []struct {
		name    string
		profile models.HealthProfile
		want    []string
	}{
		{
			name:    "healthy profile has no risks",
			profile: models.HealthProfile{HeightCm: 175, WeightKg: 70},
			want:    nil,
		},
		{
			name:    "underweight",
			profile: models.HealthProfile{HeightCm: 180, WeightKg: 55},
			want:    []string{LabelUnderweight},
		},
		{
			name:    "high BMI",
			profile: models.HealthProfile{HeightCm: 170, WeightKg: 95},
			want:    []string{LabelHighBMI},
		},
		{
			name:    "moderate smoker is not flagged",
			profile: models.HealthProfile{HeightCm: 175, WeightKg: 70, Smoker: true, CigarettesPerDay: 10},
			want:    nil,
		},
		{
			name:    "heavy smoker",
			profile: models.HealthProfile{HeightCm: 175, WeightKg: 70, Smoker: true, CigarettesPerDay: 25},
			want:    []string{LabelHeavySmoking},
		},
		{
			name:    "twenty per day is the inclusive limit",
			profile: models.HealthProfile{HeightCm: 175, WeightKg: 70, Smoker: true, CigarettesPerDay: 20},
			want:    nil,
		},
		{
			name:    "chronic condition",
			profile: models.HealthProfile{HeightCm: 175, WeightKg: 70, HasChronicCondition: true},
			want:    []string{LabelChronicCondition},
		},
		{
			name:    "surgical history",
			profile: models.HealthProfile{HeightCm: 175, WeightKg: 70, HasSurgeryHistory: true},
			want:    []string{LabelSurgeryHistory},
		},
		{
			name: "all risks in fixed order",
			profile: models.HealthProfile{
				HeightCm: 170, WeightKg: 95,
				Smoker: true, CigarettesPerDay: 30,
				HasChronicCondition: true,
				HasSurgeryHistory:   true,
			},
			want: []string{LabelHighBMI, LabelHeavySmoking, LabelChronicCondition, LabelSurgeryHistory},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Assess(tt.profile))
		})
	}
}
