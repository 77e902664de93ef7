package afiesca

import (
	"encoding/xml"

	"crediris/internal/pricing"
)

// SOAP 1.1 wire types for the partner's simulation service. Request structs
// carry explicit prefixes; response structs match on local names only, which
// keeps parsing tolerant of whatever prefix the partner emits.

const (
	soapNamespace    = "http://schemas.xmlsoap.org/soap/envelope/"
	serviceNamespace = "http://www.afi-esca.com/ws/simulation"
)

type requestEnvelope struct {
	XMLName      xml.Name      `xml:"soapenv:Envelope"`
	XmlnsSoapenv string        `xml:"xmlns:soapenv,attr"`
	XmlnsSim     string        `xml:"xmlns:sim,attr"`
	Header       requestHeader `xml:"soapenv:Header"`
	Body         requestBody   `xml:"soapenv:Body"`
}

type requestHeader struct {
	Auth authHeader `xml:"sim:AuthHeader"`
}

type authHeader struct {
	Login     string `xml:"sim:Login"`
	Password  string `xml:"sim:Password"`
	PartnerID string `xml:"sim:PartnerId"`
}

type requestBody struct {
	CreateSimulation createSimulation `xml:"sim:CreateSimulationData"`
}

type createSimulation struct {
	SimulationData simulationData `xml:"sim:simulationData"`
}

type simulationData struct {
	Assures         []assureData `xml:"sim:Assures>sim:Assure"`
	Prets           []pretData   `xml:"sim:Prets>sim:Pret"`
	CodeLangue      string       `xml:"sim:CodeLangue"`
	CotisationType  string       `xml:"sim:CotisationType"`
	DateEffet       string       `xml:"sim:DateEffet"`
	Periodicite     string       `xml:"sim:Periodicite"`
	JourPrelevement int          `xml:"sim:JourPrelevement"`
	Franchise       string       `xml:"sim:Franchise"`
}

type assureData struct {
	Civilite                string       `xml:"sim:Civilite"`
	Nom                     string       `xml:"sim:Nom"`
	Prenom                  string       `xml:"sim:Prenom"`
	DateNaissance           string       `xml:"sim:DateNaissance"`
	EMail                   string       `xml:"sim:EMail,omitempty"`
	Telephone               string       `xml:"sim:Telephone,omitempty"`
	Adresse                 *adresseData `xml:"sim:Adresse,omitempty"`
	Profession              string       `xml:"sim:Profession"`
	CategoriePro            string       `xml:"sim:CategoriePro"`
	ProfessionID            int          `xml:"sim:ProfessionID"`
	TauxCommission          float64      `xml:"sim:TauxCommission"`
	Fumeur                  bool         `xml:"sim:Fumeur"`
	NbCigarettes            int          `xml:"sim:NbCigarettes"`
	Taille                  int          `xml:"sim:Taille"`
	Poids                   int          `xml:"sim:Poids"`
	MaladieChronique        bool         `xml:"sim:MaladieChronique"`
	AntecedentsChirurgicaux bool         `xml:"sim:AntecedentsChirurgicaux"`
	SportsDangereux         bool         `xml:"sim:SportsDangereux"`
	RisquesSante            []string     `xml:"sim:RisquesSante>sim:Risque,omitempty"`
	Garanties               []string     `xml:"sim:Garanties>sim:Garantie"`
	Quotite                 int          `xml:"sim:Quotite"`
}

type adresseData struct {
	Numero     string `xml:"sim:Numero"`
	TypeVoie   string `xml:"sim:TypeVoie"`
	NomVoie    string `xml:"sim:NomVoie"`
	Complement string `xml:"sim:Complement,omitempty"`
	CodePostal string `xml:"sim:CodePostal"`
	Ville      string `xml:"sim:Ville"`
	Pays       string `xml:"sim:Pays"`
}

type pretData struct {
	Numero           int     `xml:"sim:Numero"`
	Montant          float64 `xml:"sim:Montant"`
	Duree            int     `xml:"sim:Duree"`
	Taux             float64 `xml:"sim:Taux"`
	Type             string  `xml:"sim:Type"`
	Differe          int     `xml:"sim:Differe"`
	ValeurResiduelle float64 `xml:"sim:ValeurResiduelle"`
}

func newEnvelope(auth authHeader, req *pricing.Request) requestEnvelope {
	data := simulationData{
		CodeLangue:      req.CodeLangue,
		CotisationType:  req.CotisationType,
		DateEffet:       req.DateEffet,
		Periodicite:     req.Periodicite,
		JourPrelevement: req.JourPrelevement,
		Franchise:       req.Franchise,
	}
	for _, a := range req.Assures {
		assure := assureData{
			Civilite:                a.Civilite,
			Nom:                     a.Nom,
			Prenom:                  a.Prenom,
			DateNaissance:           a.DateNaissance,
			EMail:                   a.EMail,
			Telephone:               a.Telephone,
			Profession:              a.Profession,
			CategoriePro:            a.CategoriePro,
			ProfessionID:            a.ProfessionID,
			TauxCommission:          a.TauxCommission,
			Fumeur:                  a.Fumeur,
			NbCigarettes:            a.NbCigarettes,
			Taille:                  a.Taille,
			Poids:                   a.Poids,
			MaladieChronique:        a.MaladieChronique,
			AntecedentsChirurgicaux: a.AntecedentsChirurgicaux,
			SportsDangereux:         a.SportsDangereux,
			RisquesSante:            a.RisquesSante,
			Garanties:               a.Garanties,
			Quotite:                 a.Quotite,
		}
		if a.Adresse != nil {
			assure.Adresse = &adresseData{
				Numero:     a.Adresse.Numero,
				TypeVoie:   a.Adresse.TypeVoie,
				NomVoie:    a.Adresse.NomVoie,
				Complement: a.Adresse.Complement,
				CodePostal: a.Adresse.CodePostal,
				Ville:      a.Adresse.Ville,
				Pays:       a.Adresse.Pays,
			}
		}
		data.Assures = append(data.Assures, assure)
	}
	for _, p := range req.Prets {
		data.Prets = append(data.Prets, pretData(p))
	}

	return requestEnvelope{
		XmlnsSoapenv: soapNamespace,
		XmlnsSim:     serviceNamespace,
		Header:       requestHeader{Auth: auth},
		Body:         requestBody{CreateSimulation: createSimulation{SimulationData: data}},
	}
}

// Response side.

type responseEnvelope struct {
	XMLName xml.Name     `xml:"Envelope"`
	Body    responseBody `xml:"Body"`
}

type responseBody struct {
	Fault    *soapFault          `xml:"Fault"`
	Response *simulationResponse `xml:"CreateSimulationDataResponse"`
}

type soapFault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
}

type simulationResponse struct {
	SimulationID        string      `xml:"SimulationId"`
	ErrorCode           string      `xml:"ErrorCode"`
	ErrorDescription    string      `xml:"ErrorDescription"`
	Primes              []primeData `xml:"Primes>Prime"`
	PrimeMensuelle      float64     `xml:"PrimeMensuelle"`
	TotalPrimes         float64     `xml:"TotalPrimes"`
	FraisDossier        float64     `xml:"FraisDossier"`
	FormalitesMedicales []string    `xml:"FormalitesMedicales>Formalite"`
}

type primeData struct {
	Garantie string  `xml:"Garantie"`
	Montant  float64 `xml:"Montant"`
}
