// Package guarantee encodes the dependency chain between the five loan
// insurance guarantees. The chain is a fixed property of the product, not
// user data:
//
//	IPP → ITT → IPT → PTIA → DC   (left requires right)
//
// Two entry points exist on purpose. Check is the strict path used when
// inconsistent user input must be rejected with an actionable message;
// Normalize is the permissive path that auto-repairs computed or pre-filled
// selections. Neither replaces the other.
package guarantee

import (
	"crediris/internal/simulation/models"
)

// Violation describes one broken dependency link.
type Violation struct {
	Guarantee string
	Requires  string
	Message   string
}

type link struct {
	name     string
	requires string
	selected func(models.CoverageSelection) bool
	required func(models.CoverageSelection) bool
	message  string
}

// chain is ordered from the weakest guarantee to the strongest prerequisite.
var chain = []link{
	{
		name: "PTIA", requires: "DC",
		selected: func(c models.CoverageSelection) bool { return c.PTIA },
		required: func(c models.CoverageSelection) bool { return c.Death },
		message:  "La garantie PTIA nécessite la garantie Décès",
	},
	{
		name: "IPT", requires: "PTIA",
		selected: func(c models.CoverageSelection) bool { return c.IPT },
		required: func(c models.CoverageSelection) bool { return c.PTIA },
		message:  "La garantie IPT nécessite la garantie PTIA",
	},
	{
		name: "ITT", requires: "IPT",
		selected: func(c models.CoverageSelection) bool { return c.ITT },
		required: func(c models.CoverageSelection) bool { return c.IPT },
		message:  "La garantie ITT nécessite la garantie IPT",
	},
	{
		name: "IPP", requires: "ITT",
		selected: func(c models.CoverageSelection) bool { return c.IPP },
		required: func(c models.CoverageSelection) bool { return c.ITT },
		message:  "La garantie IPP nécessite la garantie ITT",
	},
}

// Check returns one violation per broken dependency link, in chain order.
// An empty result means the selection already satisfies the partial order.
func Check(sel models.CoverageSelection) []Violation {
	var out []Violation
	for _, l := range chain {
		if l.selected(sel) && !l.required(sel) {
			out = append(out, Violation{Guarantee: l.name, Requires: l.requires, Message: l.message})
		}
	}
	return out
}

// CheckDisclosures enforces the questionnaire completeness rules that ride
// along the strict coverage check: a declared smoker must state a daily
// cigarette count, and declared dangerous sports must be described.
func CheckDisclosures(h models.HealthProfile) []Violation {
	var out []Violation
	if h.Smoker && h.CigarettesPerDay <= 0 {
		out = append(out, Violation{
			Guarantee: "FUMEUR",
			Message:   "Le nombre de cigarettes par jour est requis pour les fumeurs",
		})
	}
	if h.PracticesDangerousSports && h.DangerousSportsDetails == "" {
		out = append(out, Violation{
			Guarantee: "SPORTS",
			Message:   "Veuillez préciser les sports dangereux pratiqués",
		})
	}
	return out
}

// Normalize force-enables every prerequisite of an enabled guarantee, walking
// the chain from IPP down to Death. It only ever enables flags, so applying
// it twice is a no-op and a selection that passes Check comes back unchanged.
func Normalize(sel models.CoverageSelection) models.CoverageSelection {
	out := sel
	if out.IPP {
		out.ITT = true
	}
	if out.ITT {
		out.IPT = true
	}
	if out.IPT {
		out.PTIA = true
	}
	if out.PTIA {
		out.Death = true
	}
	return out
}
