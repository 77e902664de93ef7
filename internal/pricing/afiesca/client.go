// Package afiesca implements the pricing port against the AFI ESCA SOAP
// simulation service.
package afiesca

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"crediris/internal/pricing"
	"crediris/pkg/platform/circuit"
)

// Config carries the partner endpoint and credentials.
type Config struct {
	Endpoint  string
	Login     string
	Password  string
	PartnerID string
	Timeout   time.Duration
}

// Client calls the partner over SOAP 1.1. A circuit breaker fronts the
// endpoint so a partner outage degrades into fast failures instead of a
// pile-up of hanging requests; once open, a trial request per cooldown
// window probes the partner so the breaker can close after recovery.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: timeout},
		breaker: circuit.New("afi-esca", circuit.WithFailureThreshold(5), circuit.WithSuccessThreshold(2)),
		logger:  logger,
	}
}

func (c *Client) CreateSimulation(ctx context.Context, req *pricing.Request) (*pricing.Result, error) {
	if !c.breaker.Allow() {
		return nil, pricing.NewPartnerError(pricing.ErrorOutage, "pricing circuit open", nil)
	}

	result, err := c.call(ctx, req)
	if err != nil {
		if pricing.IsRetryable(err) {
			if _, change := c.breaker.RecordFailure(); change.Opened {
				c.logger.WarnContext(ctx, "pricing circuit opened", "breaker", c.breaker.Name())
			}
		}
		return nil, err
	}
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "pricing circuit closed", "breaker", c.breaker.Name())
	}
	return result, nil
}

func (c *Client) call(ctx context.Context, req *pricing.Request) (*pricing.Result, error) {
	auth := authHeader{Login: c.cfg.Login, Password: c.cfg.Password, PartnerID: c.cfg.PartnerID}
	payload, err := xml.Marshal(newEnvelope(auth, req))
	if err != nil {
		return nil, pricing.NewPartnerError(pricing.ErrorInternal, "marshal simulation envelope", err)
	}
	body := append([]byte(xml.Header), payload...)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, pricing.NewPartnerError(pricing.ErrorInternal, "build simulation request", err)
	}
	httpReq.Header.Set("Content-Type", "text/xml; charset=utf-8")
	httpReq.Header.Set("SOAPAction", serviceNamespace+"/CreateSimulationData")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, pricing.NewPartnerError(pricing.ErrorTimeout, "pricing call timed out", err)
		}
		return nil, pricing.NewPartnerError(pricing.ErrorOutage, "pricing endpoint unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pricing.NewPartnerError(pricing.ErrorOutage, "read pricing response", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, pricing.NewPartnerError(pricing.ErrorAuthentication, "partner rejected credentials", nil)
	case resp.StatusCode >= 500:
		return nil, pricing.NewPartnerError(pricing.ErrorOutage,
			fmt.Sprintf("partner returned status %d", resp.StatusCode), nil)
	case resp.StatusCode != http.StatusOK:
		return nil, pricing.NewPartnerError(pricing.ErrorRejected,
			fmt.Sprintf("partner returned status %d", resp.StatusCode), nil)
	}

	var envelope responseEnvelope
	if err := xml.Unmarshal(raw, &envelope); err != nil {
		return nil, pricing.NewPartnerError(pricing.ErrorBadData, "unparseable pricing response", err)
	}

	if fault := envelope.Body.Fault; fault != nil {
		if strings.Contains(strings.ToUpper(fault.Code), "AUTH") {
			return nil, pricing.NewPartnerError(pricing.ErrorAuthentication, fault.String, nil)
		}
		return nil, pricing.NewPartnerError(pricing.ErrorRejected, "soap fault: "+fault.String, nil)
	}

	sim := envelope.Body.Response
	if sim == nil {
		return nil, pricing.NewPartnerError(pricing.ErrorBadData, "missing simulation response element", nil)
	}
	if sim.ErrorCode != "" {
		if sim.ErrorCode == "AUTH_ERROR" {
			return nil, pricing.NewPartnerError(pricing.ErrorAuthentication, sim.ErrorDescription, nil)
		}
		// ErrorDescription is the partner's user-facing wording; keep it
		// separate from the internal message so the orchestrator can decide
		// what to surface.
		perr := pricing.NewPartnerError(pricing.ErrorRejected, "partner error "+sim.ErrorCode, nil)
		perr.UserMessage = sim.ErrorDescription
		return nil, perr
	}
	if sim.SimulationID == "" {
		return nil, pricing.NewPartnerError(pricing.ErrorBadData, "response missing simulation id", nil)
	}

	result := &pricing.Result{
		SimulationID:       sim.SimulationID,
		MonthlyPremium:     sim.PrimeMensuelle,
		TotalPremium:       sim.TotalPrimes,
		FilingFee:          sim.FraisDossier,
		MedicalFormalities: sim.FormalitesMedicales,
	}
	for _, p := range sim.Primes {
		result.Premiums = append(result.Premiums, pricing.GuaranteePremium{Garantie: p.Garantie, Prime: p.Montant})
	}
	if result.Raw, err = json.Marshal(sim); err != nil {
		return nil, pricing.NewPartnerError(pricing.ErrorInternal, "serialize pricing response", err)
	}
	return result, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
