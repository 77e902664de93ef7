package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crediris/internal/simulation/models"
)

func validRawInsured() *models.RawInsured {
	return &models.RawInsured{
		Civility:             "M",
		FirstName:            "Jean",
		LastName:             "Dupont",
		BirthDate:            "1985-04-12",
		Email:                "jean.dupont@example.fr",
		Phone:                "0612345678",
		Profession:           "Ingénieur",
		ProfessionalCategory: "EXECUTIVE",
		Address: &models.RawAddress{
			Number:     "12",
			StreetType: "rue",
			Street:     "de la Paix",
			PostalCode: "75002",
			City:       "Paris",
		},
		Height:                   num(180),
		Weight:                   num(75),
		Smoker:                   flag(false),
		HasChronicCondition:      flag(false),
		HasSurgeryHistory:        flag(false),
		PracticesDangerousSports: flag(false),
	}
}

func TestInsuredValid(t *testing.T) {
	p, errs := Insured(validRawInsured())
	require.Empty(t, errs)
	assert.Equal(t, models.CivilityM, p.Civility)
	assert.Equal(t, "Jean", p.FirstName)
	assert.Equal(t, "Dupont", p.LastName)
	assert.Equal(t, models.CategoryExecutive, p.ProfessionalCategory)
	assert.Equal(t, 180, p.Health.HeightCm)
	assert.Equal(t, 75, p.Health.WeightKg)
}

func TestInsuredNilSegment(t *testing.T) {
	_, errs := Insured(nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "insured", errs[0].Field)
}

func TestInsuredFieldViolations(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.RawInsured)
		wantField string
	}{
		{"missing civility", func(p *models.RawInsured) { p.Civility = "" }, "insured.civility"},
		{"unknown civility", func(p *models.RawInsured) { p.Civility = "DR" }, "insured.civility"},
		{"short first name", func(p *models.RawInsured) { p.FirstName = "J" }, "insured.firstName"},
		{"blank last name", func(p *models.RawInsured) { p.LastName = "  " }, "insured.lastName"},
		{"missing birth date", func(p *models.RawInsured) { p.BirthDate = "" }, "insured.birthDate"},
		{"missing profession", func(p *models.RawInsured) { p.Profession = "" }, "insured.profession"},
		{"unknown category", func(p *models.RawInsured) { p.ProfessionalCategory = "ARTISAN" }, "insured.professionalCategory"},
		{"bad email", func(p *models.RawInsured) { p.Email = "not-an-email" }, "insured.email"},
		{"bad phone", func(p *models.RawInsured) { p.Phone = "12345" }, "insured.phone"},
		{"height too low", func(p *models.RawInsured) { p.Height = num(90) }, "insured.height"},
		{"height too high", func(p *models.RawInsured) { p.Height = num(260) }, "insured.height"},
		{"weight too low", func(p *models.RawInsured) { p.Weight = num(25) }, "insured.weight"},
		{"weight too high", func(p *models.RawInsured) { p.Weight = num(220) }, "insured.weight"},
		{"smoker flag missing", func(p *models.RawInsured) { p.Smoker = models.Flag{} }, "insured.smoker"},
		{"negative cigarettes", func(p *models.RawInsured) { p.CigarettesPerDay = num(-3) }, "insured.cigarettesPerDay"},
		{"chronic flag missing", func(p *models.RawInsured) { p.HasChronicCondition = models.Flag{} }, "insured.hasChronicCondition"},
		{"surgery flag missing", func(p *models.RawInsured) { p.HasSurgeryHistory = models.Flag{} }, "insured.hasSurgeryHistory"},
		{"sports flag missing", func(p *models.RawInsured) { p.PracticesDangerousSports = models.Flag{} }, "insured.practicesDangerousSports"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRawInsured()
			tt.mutate(in)
			_, errs := Insured(in)
			require.Len(t, errs, 1, "violations: %v", errs)
			assert.Equal(t, tt.wantField, errs[0].Field)
		})
	}
}

func TestInsuredPhoneFormats(t *testing.T) {
	for _, phone := range []string{"0612345678", "+33612345678", "0145678901"} {
		in := validRawInsured()
		in.Phone = phone
		_, errs := Insured(in)
		assert.Empty(t, errs, "phone %q should be accepted", phone)
	}
	for _, phone := range []string{"0012345678", "061234567", "06123456789", "06 12 34 56 78"} {
		in := validRawInsured()
		in.Phone = phone
		_, errs := Insured(in)
		assert.NotEmpty(t, errs, "phone %q should be rejected", phone)
	}
}

func TestInsuredAddress(t *testing.T) {
	t.Run("missing address is one violation", func(t *testing.T) {
		in := validRawInsured()
		in.Address = nil
		_, errs := Insured(in)
		require.Len(t, errs, 1)
		assert.Equal(t, "insured.address", errs[0].Field)
	})

	t.Run("empty address reports every missing field", func(t *testing.T) {
		in := validRawInsured()
		in.Address = &models.RawAddress{}
		_, errs := Insured(in)
		fields := make([]string, 0, len(errs))
		for _, v := range errs {
			fields = append(fields, v.Field)
		}
		assert.ElementsMatch(t, []string{
			"insured.address.number",
			"insured.address.streetType",
			"insured.address.street",
			"insured.address.postalCode",
			"insured.address.city",
		}, fields)
	})

	t.Run("country defaults to FRANCE", func(t *testing.T) {
		p, errs := Insured(validRawInsured())
		require.Empty(t, errs)
		assert.Equal(t, "FRANCE", p.Address.Country)
	})

	t.Run("explicit country kept", func(t *testing.T) {
		in := validRawInsured()
		in.Address.Country = "Belgique"
		p, errs := Insured(in)
		require.Empty(t, errs)
		assert.Equal(t, "Belgique", p.Address.Country)
	})
}

func TestInsuredWhitespaceTrimmed(t *testing.T) {
	in := validRawInsured()
	in.FirstName = "  Jean  "
	in.LastName = " Dupont "
	p, errs := Insured(in)
	require.Empty(t, errs)
	assert.Equal(t, "Jean", p.FirstName)
	assert.Equal(t, "Dupont", p.LastName)
}
