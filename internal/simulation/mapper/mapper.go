// Package mapper turns validated simulation entities into the canonical
// partner pricing request. It is a total function over validated input;
// an error here means a caller broke the contract, not that the user typed
// something wrong.
package mapper

import (
	"time"

	"crediris/internal/pricing"
	"crediris/internal/simulation/models"
	pkgerrors "crediris/pkg/errors"
)

// Administrative defaults fixed by the distribution agreement. Not
// user-configurable in this flow.
const (
	CodeLangue      = "FR"
	CotisationType  = "VARIABLE"
	Periodicite     = "MENSUELLE"
	JourPrelevement = 5
	Franchise       = "90"

	defaultProfessionID   = 1
	defaultTauxCommission = 0
)

// Partner translation tables. The category fallback to AUTRE is a defensive
// default: the enum was already validated upstream.
var professionalCategories = map[models.ProfessionalCategory]string{
	models.CategoryEmployee:     "SALARIE",
	models.CategoryExecutive:    "CADRE",
	models.CategorySelfEmployed: "TNS",
	models.CategoryCivilServant: "FONCTIONNAIRE",
	models.CategoryRetired:      "RETRAITE",
	models.CategoryOther:        "AUTRE",
}

var loanTypes = map[models.LoanType]string{
	models.LoanMortgage:     "AMORT",
	models.LoanConsumer:     "RELAIS",
	models.LoanProfessional: "INFINE",
}

// guaranteeOrder is the canonical order of partner guarantee codes in the
// request, independent of selection order.
var guaranteeOrder = []struct {
	code     string
	selected func(models.CoverageSelection) bool
}{
	{"DC", func(c models.CoverageSelection) bool { return c.Death }},
	{"PTIA", func(c models.CoverageSelection) bool { return c.PTIA }},
	{"IPT", func(c models.CoverageSelection) bool { return c.IPT }},
	{"ITT", func(c models.CoverageSelection) bool { return c.ITT }},
	{"IPP", func(c models.CoverageSelection) bool { return c.IPP }},
}

// GuaranteeCodes lists the partner codes for every selected guarantee, in
// canonical order.
func GuaranteeCodes(sel models.CoverageSelection) []string {
	var codes []string
	for _, g := range guaranteeOrder {
		if g.selected(sel) {
			codes = append(codes, g.code)
		}
	}
	return codes
}

// CategoryCode translates a professional category to the partner code,
// falling back to AUTRE for anything unknown.
func CategoryCode(c models.ProfessionalCategory) string {
	if code, ok := professionalCategories[c]; ok {
		return code
	}
	return "AUTRE"
}

// ToPricingRequest builds the canonical request from validated entities.
// The coverage selection must already be normalized and non-empty; risks are
// the advisory labels from the health assessor; now fixes DateEffet.
func ToPricingRequest(
	loan models.LoanTerms,
	insured models.InsuredPerson,
	coverage models.CoverageSelection,
	risks []string,
	now time.Time,
) (*pricing.Request, error) {
	codes := GuaranteeCodes(coverage)
	if len(codes) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "mapping attempted with no guarantee selected")
	}
	if insured.LastName == "" || insured.FirstName == "" || loan.Amount == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "mapping attempted with unvalidated input")
	}

	loanType, ok := loanTypes[loan.Type]
	if !ok {
		return nil, pkgerrors.Newf(pkgerrors.CodeInternal, "unmapped loan type %q", loan.Type)
	}

	assure := pricing.Assure{
		Civilite:      string(insured.Civility),
		Nom:           upper(insured.LastName),
		Prenom:        insured.FirstName,
		DateNaissance: insured.BirthDate,
		EMail:         insured.Email,
		Telephone:     FormatPhone(insured.Phone),
		Adresse:       mapAddress(insured.Address),

		Profession:     insured.Profession,
		CategoriePro:   CategoryCode(insured.ProfessionalCategory),
		ProfessionID:   defaultProfessionID,
		TauxCommission: defaultTauxCommission,

		Fumeur:                  insured.Health.Smoker,
		NbCigarettes:            insured.Health.CigarettesPerDay,
		Taille:                  insured.Health.HeightCm,
		Poids:                   insured.Health.WeightKg,
		MaladieChronique:        insured.Health.HasChronicCondition,
		AntecedentsChirurgicaux: insured.Health.HasSurgeryHistory,
		SportsDangereux:         insured.Health.PracticesDangerousSports,
		RisquesSante:            risks,

		Garanties: codes,
		Quotite:   coverage.Quotity,
	}

	pret := pricing.Pret{
		Numero:           1,
		Montant:          loan.Amount,
		Duree:            loan.Duration,
		Taux:             loan.Rate,
		Type:             loanType,
		Differe:          0,
		ValeurResiduelle: 0,
	}

	return &pricing.Request{
		Assures:         []pricing.Assure{assure},
		Prets:           []pricing.Pret{pret},
		CodeLangue:      CodeLangue,
		CotisationType:  CotisationType,
		DateEffet:       now.Format("2006-01-02"),
		Periodicite:     Periodicite,
		JourPrelevement: JourPrelevement,
		Franchise:       Franchise,
	}, nil
}
