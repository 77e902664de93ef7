package validate

import (
	"math"

	"crediris/internal/simulation/models"
	pkgerrors "crediris/pkg/errors"
)

// Loan term bounds. Amounts are euros, duration is months, rate is an annual
// percentage.
const (
	LoanAmountMin   = 10_000
	LoanAmountMax   = 1_000_000
	LoanDurationMin = 12
	LoanDurationMax = 360
	LoanRateMin     = 0.1
	LoanRateMax     = 20
)

// Loan checks the loan segment and returns the typed terms, or every field
// violation found.
func Loan(in *models.RawLoan) (models.LoanTerms, []pkgerrors.FieldViolation) {
	var errs violations
	if in == nil {
		errs.add("loan", "Les données du prêt sont manquantes")
		return models.LoanTerms{}, errs
	}

	var terms models.LoanTerms

	switch {
	case !in.Amount.Set:
		errs.add("loan.amount", "Le montant du prêt est requis")
	case !in.Amount.Valid:
		errs.add("loan.amount", "Le montant du prêt doit être un nombre")
	case in.Amount.Value < LoanAmountMin:
		errs.add("loan.amount", "Le montant minimum est de 10 000 €")
	case in.Amount.Value > LoanAmountMax:
		errs.add("loan.amount", "Le montant maximum est de 1 000 000 €")
	default:
		terms.Amount = in.Amount.Value
	}

	switch {
	case !in.Duration.Set:
		errs.add("loan.duration", "La durée du prêt est requise")
	case !in.Duration.Valid || in.Duration.Value != math.Trunc(in.Duration.Value):
		errs.add("loan.duration", "La durée doit être un nombre entier de mois")
	case in.Duration.Value < LoanDurationMin:
		errs.add("loan.duration", "Durée minimum : 12 mois")
	case in.Duration.Value > LoanDurationMax:
		errs.add("loan.duration", "Durée maximum : 360 mois")
	default:
		terms.Duration = int(in.Duration.Value)
	}

	switch {
	case !in.Rate.Set:
		errs.add("loan.rate", "Le taux du prêt est requis")
	case !in.Rate.Valid:
		errs.add("loan.rate", "Le taux du prêt doit être un nombre")
	case in.Rate.Value < LoanRateMin:
		errs.add("loan.rate", "Taux minimum : 0.1%")
	case in.Rate.Value > LoanRateMax:
		errs.add("loan.rate", "Taux maximum : 20%")
	default:
		terms.Rate = in.Rate.Value
	}

	switch models.LoanType(in.Type) {
	case models.LoanMortgage, models.LoanConsumer, models.LoanProfessional:
		terms.Type = models.LoanType(in.Type)
	default:
		errs.add("loan.type", "Type de prêt invalide")
	}

	if len(errs) > 0 {
		return models.LoanTerms{}, errs
	}
	return terms, nil
}
