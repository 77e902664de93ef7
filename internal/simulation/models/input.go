package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Form submissions arrive with numeric fields possibly string-encoded (HTML
// form values) and legacy payloads naming the applicant sub-object either
// "insured" or "insuredPerson". The raw types below absorb both so nothing
// untyped flows past the validators.

// Number accepts a JSON number or a numeric string. A non-numeric value is
// remembered as present-but-invalid instead of failing the whole decode, so
// validators can report every bad field at once.
type Number struct {
	Value float64
	Set   bool
	Valid bool
}

func (n *Number) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Set = false
		return nil
	}
	s := string(data)
	if len(s) >= 2 && s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return nil
		}
		s = strings.TrimSpace(unquoted)
		if s == "" {
			n.Set = false
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n.Value = v
	n.Valid = true
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Set || !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Flag accepts a JSON bool or the strings "true"/"false"/"1"/"0".
type Flag struct {
	Value bool
	Set   bool
	Valid bool
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	f.Set = true
	switch strings.Trim(string(data), `"`) {
	case "true", "1":
		f.Value, f.Valid = true, true
	case "false", "0":
		f.Value, f.Valid = false, true
	case "null":
		f.Set = false
	}
	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	if !f.Set || !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// RawSimulationInput is the untrusted form payload from the UI layer.
type RawSimulationInput struct {
	Loan          *RawLoan     `json:"loan"`
	Insured       *RawInsured  `json:"insured"`
	InsuredPerson *RawInsured  `json:"insuredPerson"`
	Coverage      *RawCoverage `json:"coverage"`
	UserID        string       `json:"userId,omitempty"`
}

// InsuredInput resolves the two accepted applicant field names, preferring
// the canonical "insured".
func (in *RawSimulationInput) InsuredInput() *RawInsured {
	if in.Insured != nil {
		return in.Insured
	}
	return in.InsuredPerson
}

type RawLoan struct {
	Amount   Number `json:"amount"`
	Duration Number `json:"duration"`
	Rate     Number `json:"rate"`
	Type     string `json:"type"`
}

type RawAddress struct {
	Number     string `json:"number"`
	StreetType string `json:"streetType"`
	Street     string `json:"street"`
	Complement string `json:"complement"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
	Country    string `json:"country"`
}

type RawInsured struct {
	Civility             string      `json:"civility"`
	FirstName            string      `json:"firstName"`
	LastName             string      `json:"lastName"`
	BirthDate            string      `json:"birthDate"`
	Email                string      `json:"email"`
	Phone                string      `json:"phone"`
	Profession           string      `json:"profession"`
	ProfessionalCategory string      `json:"professionalCategory"`
	Address              *RawAddress `json:"address"`

	Height                   Number `json:"height"`
	Weight                   Number `json:"weight"`
	Smoker                   Flag   `json:"smoker"`
	CigarettesPerDay         Number `json:"cigarettesPerDay"`
	HasChronicCondition      Flag   `json:"hasChronicCondition"`
	ChronicConditionDetails  string `json:"chronicConditionDetails"`
	HasSurgeryHistory        Flag   `json:"hasSurgeryHistory"`
	SurgeryHistoryDetails    string `json:"surgeryHistoryDetails"`
	PracticesDangerousSports Flag   `json:"practicesDangerousSports"`
	DangerousSportsDetails   string `json:"dangerousSportsDetails"`
}

type RawCoverage struct {
	Death   Flag   `json:"death"`
	PTIA    Flag   `json:"ptia"`
	IPT     Flag   `json:"ipt"`
	ITT     Flag   `json:"itt"`
	IPP     Flag   `json:"ipp"`
	Quotity Number `json:"quotity"`
}
