// Package models holds the validated domain entities for a loan-insurance
// simulation. Values are constructed by the validators and never mutated in
// place; each pipeline step returns a fresh value.
package models

import (
	"encoding/json"
	"time"
)

// LoanType is the closed set of loan categories accepted from the form.
type LoanType string

const (
	LoanMortgage     LoanType = "MORTGAGE"
	LoanConsumer     LoanType = "CONSUMER"
	LoanProfessional LoanType = "PROFESSIONAL"
)

// Civility follows the French civil form convention.
type Civility string

const (
	CivilityM   Civility = "M"
	CivilityMme Civility = "MME"
)

// ProfessionalCategory is the closed set of socio-professional categories.
type ProfessionalCategory string

const (
	CategoryEmployee     ProfessionalCategory = "EMPLOYEE"
	CategoryExecutive    ProfessionalCategory = "EXECUTIVE"
	CategorySelfEmployed ProfessionalCategory = "SELF_EMPLOYED"
	CategoryCivilServant ProfessionalCategory = "CIVIL_SERVANT"
	CategoryRetired      ProfessionalCategory = "RETIRED"
	CategoryOther        ProfessionalCategory = "OTHER"
)

// LoanTerms are the validated loan characteristics.
type LoanTerms struct {
	Amount   float64
	Duration int // months
	Rate     float64
	Type     LoanType
}

// Address is a French postal address. Country defaults to FRANCE.
type Address struct {
	Number     string
	StreetType string
	Street     string
	Complement string
	PostalCode string
	City       string
	Country    string
}

// HealthProfile carries the health questionnaire answers.
type HealthProfile struct {
	HeightCm                 int
	WeightKg                 int
	Smoker                   bool
	CigarettesPerDay         int
	HasChronicCondition      bool
	ChronicConditionDetails  string
	HasSurgeryHistory        bool
	SurgeryHistoryDetails    string
	PracticesDangerousSports bool
	DangerousSportsDetails   string
}

// InsuredPerson is the validated applicant profile.
type InsuredPerson struct {
	Civility  Civility
	FirstName string
	LastName  string
	BirthDate string // ISO date, as submitted
	Email     string
	Phone     string

	Profession           string
	ProfessionalCategory ProfessionalCategory

	Address Address
	Health  HealthProfile
}

// CoverageSelection is the requested guarantee set plus the insured share.
// The five flags are subject to the dependency chain enforced by the
// guarantee package.
type CoverageSelection struct {
	Death bool
	PTIA  bool
	IPT   bool
	ITT   bool
	IPP   bool

	Quotity int // percent, 1-100
}

// Any reports whether at least one guarantee is selected.
func (c CoverageSelection) Any() bool {
	return c.Death || c.PTIA || c.IPT || c.ITT || c.IPP
}

// SimulationRecord is the persisted summary of a priced simulation. The
// payloads are kept verbatim so downstream document generation can reuse
// partner fields this core does not interpret.
type SimulationRecord struct {
	ID                  string
	UserID              string
	PartnerSimulationID string
	RequestPayload      json.RawMessage
	ResponsePayload     json.RawMessage
	MonthlyPremium      float64
	TotalPremium        float64
	CreatedAt           time.Time
}
