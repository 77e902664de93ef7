package pricing

import (
	"context"
	"encoding/json"
	"time"
)

// Annual premium rate per euro insured, by guarantee code. The figures are
// plausible but arbitrary; they exist so development and tests get stable,
// request-dependent quotes without the partner.
var mockRates = map[string]float64{
	"DC":   0.0032,
	"PTIA": 0.0009,
	"IPT":  0.0013,
	"ITT":  0.0018,
	"IPP":  0.0011,
}

// MockClient is a deterministic stand-in for the partner, with a
// configurable latency to mimic a real round trip.
type MockClient struct {
	Latency time.Duration
}

func (c MockClient) CreateSimulation(ctx context.Context, req *Request) (*Result, error) {
	if c.Latency > 0 {
		select {
		case <-time.After(c.Latency):
		case <-ctx.Done():
			return nil, NewPartnerError(ErrorTimeout, "mock latency interrupted", ctx.Err())
		}
	}
	if len(req.Assures) == 0 || len(req.Prets) == 0 {
		return nil, NewPartnerError(ErrorRejected, "empty simulation request", nil)
	}

	assure := req.Assures[0]
	pret := req.Prets[0]
	share := float64(assure.Quotite) / 100

	var premiums []GuaranteePremium
	var monthly float64
	for _, code := range assure.Garanties {
		rate, ok := mockRates[code]
		if !ok {
			continue
		}
		prime := round2(pret.Montant * rate * share / 12)
		premiums = append(premiums, GuaranteePremium{Garantie: code, Prime: prime})
		monthly += prime
	}
	monthly = round2(monthly)

	result := &Result{
		SimulationID:   "SIM-" + Fingerprint(req)[:12],
		Premiums:       premiums,
		MonthlyPremium: monthly,
		TotalPremium:   round2(monthly * float64(pret.Duree)),
		FilingFee:      30,
	}
	if len(assure.RisquesSante) > 0 {
		result.MedicalFormalities = append(result.MedicalFormalities, "Questionnaire de santé détaillé")
	}
	if pret.Montant > 500_000 {
		result.MedicalFormalities = append(result.MedicalFormalities, "Examen médical requis")
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, NewPartnerError(ErrorInternal, "marshal mock result", err)
	}
	result.Raw = raw
	return result, nil
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
