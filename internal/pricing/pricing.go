// Package pricing defines the port to the AFI ESCA pricing partner. The
// simulation core depends only on the Client interface and the canonical
// request/result shapes; the SOAP transport lives in the afiesca subpackage
// and can be swapped for the deterministic mock without touching callers.
package pricing

import (
	"context"
	"encoding/json"
)

// Field names follow the partner's WSDL vocabulary so the request marshals
// straight into the wire shape.

// Adresse is a postal address in the partner's format.
type Adresse struct {
	Numero     string `json:"Numero"`
	TypeVoie   string `json:"TypeVoie"`
	NomVoie    string `json:"NomVoie"`
	Complement string `json:"Complement,omitempty"`
	CodePostal string `json:"CodePostal"`
	Ville      string `json:"Ville"`
	Pays       string `json:"Pays"`
}

// Assure is one insured party on the request.
type Assure struct {
	Civilite      string   `json:"Civilite"`
	Nom           string   `json:"Nom"`
	Prenom        string   `json:"Prenom"`
	DateNaissance string   `json:"DateNaissance"`
	EMail         string   `json:"EMail,omitempty"`
	Telephone     string   `json:"Telephone,omitempty"`
	Adresse       *Adresse `json:"Adresse,omitempty"`

	Profession     string  `json:"Profession"`
	CategoriePro   string  `json:"CategoriePro"`
	ProfessionID   int     `json:"ProfessionID"`
	TauxCommission float64 `json:"TauxCommission"`

	Fumeur                  bool     `json:"Fumeur"`
	NbCigarettes            int      `json:"NbCigarettes"`
	Taille                  int      `json:"Taille"`
	Poids                   int      `json:"Poids"`
	MaladieChronique        bool     `json:"MaladieChronique"`
	AntecedentsChirurgicaux bool     `json:"AntecedentsChirurgicaux"`
	SportsDangereux         bool     `json:"SportsDangereux"`
	RisquesSante            []string `json:"RisquesSante,omitempty"`

	Garanties []string `json:"Garanties"`
	Quotite   int      `json:"Quotite"`
}

// Pret is one loan on the request.
type Pret struct {
	Numero          int     `json:"Numero"`
	Montant         float64 `json:"Montant"`
	Duree           int     `json:"Duree"`
	Taux            float64 `json:"Taux"`
	Type            string  `json:"Type"`
	Differe         int     `json:"Differe"`
	ValeurResiduelle float64 `json:"ValeurResiduelle"`
}

// Request is the canonical pricing request: validated, normalized, and
// field-translated. Administrative defaults are fixed by the mapper.
type Request struct {
	Assures         []Assure `json:"Assures"`
	Prets           []Pret   `json:"Prets"`
	CodeLangue      string   `json:"CodeLangue"`
	CotisationType  string   `json:"CotisationType"`
	DateEffet       string   `json:"DateEffet"`
	Periodicite     string   `json:"Periodicite"`
	JourPrelevement int      `json:"JourPrelevement"`
	Franchise       string   `json:"Franchise"`
}

// GuaranteePremium is one per-guarantee premium line from the partner.
type GuaranteePremium struct {
	Garantie string  `json:"Garantie"`
	Prime    float64 `json:"Prime"`
}

// Result is the partner's answer. Raw keeps the untouched response payload
// for callers (quote PDFs, contract flow) that read fields this core does
// not interpret.
type Result struct {
	SimulationID       string             `json:"SimulationId"`
	Premiums           []GuaranteePremium `json:"Primes"`
	MonthlyPremium     float64            `json:"PrimeMensuelle"`
	TotalPremium       float64            `json:"TotalPrimes"`
	FilingFee          float64            `json:"FraisDossier"`
	MedicalFormalities []string           `json:"FormalitesMedicales,omitempty"`
	Raw                json.RawMessage    `json:"-"`
}

// Client prices a canonical request against the partner.
type Client interface {
	CreateSimulation(ctx context.Context, req *Request) (*Result, error)
}
