package mapper

import (
	"strings"

	"crediris/internal/pricing"
	"crediris/internal/simulation/models"
)

// FormatPhone rewrites a French national number (leading 0) into +33
// international form. Anything else passes through unchanged.
func FormatPhone(phone string) string {
	if strings.HasPrefix(phone, "0") && len(phone) > 1 {
		return "+33" + phone[1:]
	}
	return phone
}

// mapAddress uppercases the street fields per the partner convention and
// pins the country to FRANCE regardless of input.
func mapAddress(a models.Address) *pricing.Adresse {
	return &pricing.Adresse{
		Numero:     a.Number,
		TypeVoie:   upper(a.StreetType),
		NomVoie:    upper(a.Street),
		Complement: upper(a.Complement),
		CodePostal: a.PostalCode,
		Ville:      upper(a.City),
		Pays:       "FRANCE",
	}
}

func upper(s string) string {
	return strings.ToUpper(s)
}
