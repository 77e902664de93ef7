// Package health derives advisory risk labels from the questionnaire. The
// assessment annotates a simulation for the underwriter; it never blocks
// submission and never fails.
package health

import (
	"crediris/internal/simulation/models"
)

// Labels are the French wordings shown on quotes and stored with the
// simulation record.
const (
	LabelUnderweight      = "IMC inférieur à la normale"
	LabelHighBMI          = "IMC élevé"
	LabelHeavySmoking     = "Consommation de tabac élevée"
	LabelChronicCondition = "Présence de maladie chronique"
	LabelSurgeryHistory   = "Antécédents chirurgicaux"
)

// BMI thresholds (kg/m²) and the daily cigarette count considered heavy.
const (
	bmiUnderweight     = 18.5
	bmiHigh            = 30
	heavySmokingPerDay = 20
)

// BMI computes the body mass index from centimetres and kilograms. Zero
// height yields zero rather than a division panic; validated profiles can
// never hit that branch.
func BMI(h models.HealthProfile) float64 {
	if h.HeightCm == 0 {
		return 0
	}
	meters := float64(h.HeightCm) / 100
	return float64(h.WeightKg) / (meters * meters)
}

// Assess returns the risk labels for a profile in a fixed order: BMI, then
// smoking, then chronic condition, then surgical history. Tests and quote
// rendering rely on that order.
func Assess(h models.HealthProfile) []string {
	var risks []string

	bmi := BMI(h)
	if bmi > 0 && bmi < bmiUnderweight {
		risks = append(risks, LabelUnderweight)
	} else if bmi > bmiHigh {
		risks = append(risks, LabelHighBMI)
	}

	if h.Smoker && h.CigarettesPerDay > heavySmokingPerDay {
		risks = append(risks, LabelHeavySmoking)
	}

	if h.HasChronicCondition {
		risks = append(risks, LabelChronicCondition)
	}
	if h.HasSurgeryHistory {
		risks = append(risks, LabelSurgeryHistory)
	}

	return risks
}
