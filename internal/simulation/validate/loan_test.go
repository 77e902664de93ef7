package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crediris/internal/simulation/models"
)

func num(v float64) models.Number {
	return models.Number{Value: v, Set: true, Valid: true}
}

func badNum() models.Number {
	return models.Number{Set: true}
}

func flag(v bool) models.Flag {
	return models.Flag{Value: v, Set: true, Valid: true}
}

func validRawLoan() *models.RawLoan {
	return &models.RawLoan{
		Amount:   num(250_000),
		Duration: num(240),
		Rate:     num(1.85),
		Type:     "MORTGAGE",
	}
}

func TestLoanValid(t *testing.T) {
	terms, errs := Loan(validRawLoan())
	require.Empty(t, errs)
	assert.Equal(t, 250_000.0, terms.Amount)
	assert.Equal(t, 240, terms.Duration)
	assert.Equal(t, 1.85, terms.Rate)
	assert.Equal(t, models.LoanMortgage, terms.Type)
}

func TestLoanNilSegment(t *testing.T) {
	_, errs := Loan(nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "loan", errs[0].Field)
}

func TestLoanBounds(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.RawLoan)
		wantField string
		wantMsg   string
	}{
		{
			name:      "amount below minimum",
			mutate:    func(l *models.RawLoan) { l.Amount = num(5_000) },
			wantField: "loan.amount",
			wantMsg:   "Le montant minimum est de 10 000 €",
		},
		{
			name:      "amount above maximum",
			mutate:    func(l *models.RawLoan) { l.Amount = num(1_500_000) },
			wantField: "loan.amount",
			wantMsg:   "Le montant maximum est de 1 000 000 €",
		},
		{
			name:      "amount missing",
			mutate:    func(l *models.RawLoan) { l.Amount = models.Number{} },
			wantField: "loan.amount",
			wantMsg:   "Le montant du prêt est requis",
		},
		{
			name:      "amount not a number",
			mutate:    func(l *models.RawLoan) { l.Amount = badNum() },
			wantField: "loan.amount",
			wantMsg:   "Le montant du prêt doit être un nombre",
		},
		{
			name:      "duration below minimum",
			mutate:    func(l *models.RawLoan) { l.Duration = num(6) },
			wantField: "loan.duration",
			wantMsg:   "Durée minimum : 12 mois",
		},
		{
			name:      "duration above maximum",
			mutate:    func(l *models.RawLoan) { l.Duration = num(420) },
			wantField: "loan.duration",
			wantMsg:   "Durée maximum : 360 mois",
		},
		{
			name:      "duration not an integer",
			mutate:    func(l *models.RawLoan) { l.Duration = num(120.5) },
			wantField: "loan.duration",
			wantMsg:   "La durée doit être un nombre entier de mois",
		},
		{
			name:      "rate below minimum",
			mutate:    func(l *models.RawLoan) { l.Rate = num(0.05) },
			wantField: "loan.rate",
			wantMsg:   "Taux minimum : 0.1%",
		},
		{
			name:      "rate above maximum",
			mutate:    func(l *models.RawLoan) { l.Rate = num(25) },
			wantField: "loan.rate",
			wantMsg:   "Taux maximum : 20%",
		},
		{
			name:      "unknown loan type",
			mutate:    func(l *models.RawLoan) { l.Type = "BALLOON" },
			wantField: "loan.type",
			wantMsg:   "Type de prêt invalide",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRawLoan()
			tt.mutate(in)
			_, errs := Loan(in)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantField, errs[0].Field)
			assert.Equal(t, tt.wantMsg, errs[0].Message)
		})
	}
}

// Boundary values are themselves accepted.
func TestLoanBoundaryValuesAccepted(t *testing.T) {
	for _, amount := range []float64{LoanAmountMin, LoanAmountMax} {
		in := validRawLoan()
		in.Amount = num(amount)
		_, errs := Loan(in)
		assert.Empty(t, errs, "amount %v should be accepted", amount)
	}
	for _, duration := range []float64{LoanDurationMin, LoanDurationMax} {
		in := validRawLoan()
		in.Duration = num(duration)
		_, errs := Loan(in)
		assert.Empty(t, errs, "duration %v should be accepted", duration)
	}
}

// A loan with several bad fields reports all of them in one pass.
func TestLoanReportsEveryViolation(t *testing.T) {
	in := &models.RawLoan{
		Amount:   num(5_000),
		Duration: num(6),
		Rate:     badNum(),
		Type:     "",
	}
	_, errs := Loan(in)
	require.Len(t, errs, 4)

	fields := make([]string, 0, len(errs))
	for _, v := range errs {
		fields = append(fields, v.Field)
	}
	assert.Equal(t, []string{"loan.amount", "loan.duration", "loan.rate", "loan.type"}, fields)
}
