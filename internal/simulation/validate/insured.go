package validate

import (
	"strings"

	"crediris/internal/simulation/models"
	pkgerrors "crediris/pkg/errors"
)

// Health attribute bounds, in centimetres and kilograms.
const (
	HeightMin = 100
	HeightMax = 250
	WeightMin = 30
	WeightMax = 200
)

// DefaultCountry is applied when the address omits a country.
const DefaultCountry = "FRANCE"

// Insured checks the applicant segment: identity, contact, address, and the
// health questionnaire. Every violation is reported, not just the first.
func Insured(in *models.RawInsured) (models.InsuredPerson, []pkgerrors.FieldViolation) {
	var errs violations
	if in == nil {
		errs.add("insured", "Les données de l'assuré sont manquantes")
		return models.InsuredPerson{}, errs
	}

	var p models.InsuredPerson

	switch models.Civility(in.Civility) {
	case models.CivilityM, models.CivilityMme:
		p.Civility = models.Civility(in.Civility)
	case "":
		errs.add("insured.civility", "Civilité requise")
	default:
		errs.add("insured.civility", "Civilité invalide (M ou MME)")
	}

	p.FirstName = strings.TrimSpace(in.FirstName)
	if len(p.FirstName) < 2 {
		errs.add("insured.firstName", "Prénom requis (min 2 caractères)")
	}
	p.LastName = strings.TrimSpace(in.LastName)
	if len(p.LastName) < 2 {
		errs.add("insured.lastName", "Nom requis (min 2 caractères)")
	}

	p.BirthDate = strings.TrimSpace(in.BirthDate)
	if p.BirthDate == "" {
		errs.add("insured.birthDate", "Date de naissance requise")
	}

	p.Profession = strings.TrimSpace(in.Profession)
	if len(p.Profession) < 2 {
		errs.add("insured.profession", "Profession requise (min 2 caractères)")
	}

	switch models.ProfessionalCategory(in.ProfessionalCategory) {
	case models.CategoryEmployee, models.CategoryExecutive, models.CategorySelfEmployed,
		models.CategoryCivilServant, models.CategoryRetired, models.CategoryOther:
		p.ProfessionalCategory = models.ProfessionalCategory(in.ProfessionalCategory)
	default:
		errs.add("insured.professionalCategory", "Catégorie professionnelle invalide")
	}

	p.Email = strings.TrimSpace(in.Email)
	if !emailPattern.MatchString(p.Email) {
		errs.add("insured.email", "Adresse email invalide")
	}
	p.Phone = strings.TrimSpace(in.Phone)
	if !phonePattern.MatchString(p.Phone) {
		errs.add("insured.phone", "Numéro de téléphone invalide")
	}

	p.Address, errs = validateAddress(in.Address, errs)
	p.Health, errs = validateHealth(in, errs)

	if len(errs) > 0 {
		return models.InsuredPerson{}, errs
	}
	return p, nil
}

func validateAddress(in *models.RawAddress, errs violations) (models.Address, violations) {
	var a models.Address
	if in == nil {
		errs.add("insured.address", "Adresse requise")
		return a, errs
	}

	a.Number = strings.TrimSpace(in.Number)
	if a.Number == "" {
		errs.add("insured.address.number", "Numéro de voie requis")
	}
	a.StreetType = strings.TrimSpace(in.StreetType)
	if a.StreetType == "" {
		errs.add("insured.address.streetType", "Type de voie requis")
	}
	a.Street = strings.TrimSpace(in.Street)
	if a.Street == "" {
		errs.add("insured.address.street", "Nom de voie requis")
	}
	a.Complement = strings.TrimSpace(in.Complement)

	a.PostalCode = strings.TrimSpace(in.PostalCode)
	if !postalCodePattern.MatchString(a.PostalCode) {
		errs.add("insured.address.postalCode", "Code postal invalide (5 chiffres)")
	}
	a.City = strings.TrimSpace(in.City)
	if a.City == "" {
		errs.add("insured.address.city", "Ville requise")
	}

	a.Country = strings.TrimSpace(in.Country)
	if a.Country == "" {
		a.Country = DefaultCountry
	}
	return a, errs
}

func validateHealth(in *models.RawInsured, errs violations) (models.HealthProfile, violations) {
	var h models.HealthProfile

	switch {
	case !in.Height.Set:
		errs.add("insured.height", "Taille requise")
	case !in.Height.Valid:
		errs.add("insured.height", "La taille doit être un nombre")
	case in.Height.Value < HeightMin:
		errs.add("insured.height", "Taille minimum : 100 cm")
	case in.Height.Value > HeightMax:
		errs.add("insured.height", "Taille maximum : 250 cm")
	default:
		h.HeightCm = int(in.Height.Value)
	}

	switch {
	case !in.Weight.Set:
		errs.add("insured.weight", "Poids requis")
	case !in.Weight.Valid:
		errs.add("insured.weight", "Le poids doit être un nombre")
	case in.Weight.Value < WeightMin:
		errs.add("insured.weight", "Poids minimum : 30 kg")
	case in.Weight.Value > WeightMax:
		errs.add("insured.weight", "Poids maximum : 200 kg")
	default:
		h.WeightKg = int(in.Weight.Value)
	}

	if !in.Smoker.Set || !in.Smoker.Valid {
		errs.add("insured.smoker", "Statut fumeur requis")
	} else {
		h.Smoker = in.Smoker.Value
	}
	if in.CigarettesPerDay.Set {
		if !in.CigarettesPerDay.Valid || in.CigarettesPerDay.Value < 0 {
			errs.add("insured.cigarettesPerDay", "Nombre de cigarettes par jour invalide")
		} else {
			h.CigarettesPerDay = int(in.CigarettesPerDay.Value)
		}
	}

	if !in.HasChronicCondition.Set || !in.HasChronicCondition.Valid {
		errs.add("insured.hasChronicCondition", "Réponse maladie chronique requise")
	} else {
		h.HasChronicCondition = in.HasChronicCondition.Value
	}
	h.ChronicConditionDetails = strings.TrimSpace(in.ChronicConditionDetails)

	if !in.HasSurgeryHistory.Set || !in.HasSurgeryHistory.Valid {
		errs.add("insured.hasSurgeryHistory", "Réponse antécédents chirurgicaux requise")
	} else {
		h.HasSurgeryHistory = in.HasSurgeryHistory.Value
	}
	h.SurgeryHistoryDetails = strings.TrimSpace(in.SurgeryHistoryDetails)

	if !in.PracticesDangerousSports.Set || !in.PracticesDangerousSports.Valid {
		errs.add("insured.practicesDangerousSports", "Réponse sports dangereux requise")
	} else {
		h.PracticesDangerousSports = in.PracticesDangerousSports.Value
	}
	h.DangerousSportsDetails = strings.TrimSpace(in.DangerousSportsDetails)

	return h, errs
}
