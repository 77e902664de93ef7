package validate

import (
	"math"

	"crediris/internal/simulation/models"
	pkgerrors "crediris/pkg/errors"
)

// Quotity is the insured share of the loan, in percent.
const (
	QuotityMin = 1
	QuotityMax = 100
)

// Coverage checks the guarantee selection segment. Dependency rules between
// guarantees live in the guarantee package; this only enforces shape and the
// quotity range. Unset flags default to false.
func Coverage(in *models.RawCoverage) (models.CoverageSelection, []pkgerrors.FieldViolation) {
	var errs violations
	if in == nil {
		errs.add("coverage", "Les données des garanties sont manquantes")
		return models.CoverageSelection{}, errs
	}

	sel := models.CoverageSelection{
		Death: in.Death.Value,
		PTIA:  in.PTIA.Value,
		IPT:   in.IPT.Value,
		ITT:   in.ITT.Value,
		IPP:   in.IPP.Value,
	}

	for _, f := range []struct {
		name string
		flag models.Flag
	}{
		{"coverage.death", in.Death},
		{"coverage.ptia", in.PTIA},
		{"coverage.ipt", in.IPT},
		{"coverage.itt", in.ITT},
		{"coverage.ipp", in.IPP},
	} {
		if f.flag.Set && !f.flag.Valid {
			errs.add(f.name, "Valeur de garantie invalide")
		}
	}

	switch {
	case !in.Quotity.Set:
		errs.add("coverage.quotity", "Quotité requise")
	case !in.Quotity.Valid || in.Quotity.Value != math.Trunc(in.Quotity.Value):
		errs.add("coverage.quotity", "La quotité doit être un nombre entier")
	case in.Quotity.Value < QuotityMin || in.Quotity.Value > QuotityMax:
		errs.add("coverage.quotity", "La quotité doit être comprise entre 1% et 100%")
	default:
		sel.Quotity = int(in.Quotity.Value)
	}

	if len(errs) > 0 {
		return models.CoverageSelection{}, errs
	}
	return sel, nil
}
