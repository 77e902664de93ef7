// Package handler exposes the simulation service over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"crediris/internal/simulation/models"
	"crediris/internal/simulation/service"
	"crediris/internal/simulation/store"
	pkgerrors "crediris/pkg/errors"
)

// HealthCheck probes one dependency. Checks run concurrently with a shared
// deadline; a failing check marks the service degraded but never panics it.
type HealthCheck func(ctx context.Context) error

const healthCheckTimeout = 3 * time.Second

// Handler owns the simulation routes.
type Handler struct {
	svc    *service.Service
	store  store.Store
	logger *slog.Logger
	checks map[string]HealthCheck
}

func New(svc *service.Service, st store.Store, logger *slog.Logger, checks map[string]HealthCheck) *Handler {
	return &Handler{svc: svc, store: st, logger: logger, checks: checks}
}

// Routes assembles the router. Ambient middleware is applied by the caller.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/simulations", h.createSimulation)
	r.Get("/simulations", h.listSimulations)
	r.Get("/simulations/{id}", h.getSimulation)
	r.Get("/healthz", h.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

type premiumLine struct {
	Guarantee string  `json:"guarantee"`
	Premium   float64 `json:"premium"`
}

type simulationResponse struct {
	ID                 string        `json:"id"`
	State              string        `json:"state"`
	Persisted          bool          `json:"persisted"`
	SimulationID       string        `json:"simulationId"`
	MonthlyPremium     float64       `json:"monthlyPremium"`
	TotalPremium       float64       `json:"totalPremium"`
	FilingFee          float64       `json:"filingFee"`
	Premiums           []premiumLine `json:"premiums"`
	MedicalFormalities []string      `json:"medicalFormalities,omitempty"`
	HealthRisks        []string      `json:"healthRisks,omitempty"`
}

func (h *Handler) createSimulation(w http.ResponseWriter, r *http.Request) {
	var in models.RawSimulationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.writeError(w, pkgerrors.Wrap(pkgerrors.CodeInvalidData,
			"Le corps de la requête est illisible", err))
		return
	}

	result, err := h.svc.Run(r.Context(), &in)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(result))
}

func toResponse(result *service.Result) simulationResponse {
	resp := simulationResponse{
		ID:                 result.RecordID,
		State:              string(result.State),
		Persisted:          result.Persisted,
		SimulationID:       result.Quote.SimulationID,
		MonthlyPremium:     result.Quote.MonthlyPremium,
		TotalPremium:       result.Quote.TotalPremium,
		FilingFee:          result.Quote.FilingFee,
		Premiums:           make([]premiumLine, 0, len(result.Quote.Premiums)),
		MedicalFormalities: result.Quote.MedicalFormalities,
		HealthRisks:        result.HealthRisks,
	}
	for _, p := range result.Quote.Premiums {
		resp.Premiums = append(resp.Premiums, premiumLine{Guarantee: p.Garantie, Premium: p.Prime})
	}
	return resp
}

type recordResponse struct {
	ID                  string          `json:"id"`
	UserID              string          `json:"userId,omitempty"`
	PartnerSimulationID string          `json:"simulationId"`
	MonthlyPremium      float64         `json:"monthlyPremium"`
	TotalPremium        float64         `json:"totalPremium"`
	CreatedAt           time.Time       `json:"createdAt"`
	Response            json.RawMessage `json:"response,omitempty"`
}

func toRecordResponse(record models.SimulationRecord, includePayload bool) recordResponse {
	resp := recordResponse{
		ID:                  record.ID,
		UserID:              record.UserID,
		PartnerSimulationID: record.PartnerSimulationID,
		MonthlyPremium:      record.MonthlyPremium,
		TotalPremium:        record.TotalPremium,
		CreatedAt:           record.CreatedAt,
	}
	if includePayload {
		resp.Response = record.ResponsePayload
	}
	return resp
}

func (h *Handler) getSimulation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	record, err := h.store.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, pkgerrors.New(pkgerrors.CodeNotFound, "Simulation introuvable"))
			return
		}
		h.writeError(w, pkgerrors.Wrap(pkgerrors.CodeInternal, "Une erreur est survenue", err))
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponse(record, true))
}

func (h *Handler) listSimulations(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	if userID == "" {
		h.writeError(w, pkgerrors.New(pkgerrors.CodeBadRequest, "Le paramètre user est requis"))
		return
	}
	records, err := h.store.ListByUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, pkgerrors.Wrap(pkgerrors.CodeInternal, "Une erreur est survenue", err))
		return
	}
	out := make([]recordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, toRecordResponse(record, false))
	}
	writeJSON(w, http.StatusOK, map[string]any{"simulations": out})
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]error, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		check := h.checks[name]
		g.Go(func() error {
			results[i] = check(gctx)
			return nil
		})
	}
	_ = g.Wait()

	resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
	for i, name := range names {
		if results[i] != nil {
			resp.Status = "degraded"
			resp.Checks[name] = results[i].Error()
			continue
		}
		resp.Checks[name] = "ok"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

type errorResponse struct {
	Error   string                     `json:"error"`
	Message string                     `json:"message"`
	Details []pkgerrors.FieldViolation `json:"details,omitempty"`
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var de *pkgerrors.Error
	if !errors.As(err, &de) {
		de = pkgerrors.New(pkgerrors.CodeInternal, "Une erreur est survenue")
	}
	writeJSON(w, pkgerrors.ToHTTPStatus(de.Code), errorResponse{
		Error:   string(de.Code),
		Message: de.Message,
		Details: de.Violations,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
