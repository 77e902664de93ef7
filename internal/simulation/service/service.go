// Package service orchestrates a simulation run: validate, check coverage
// rules, assess health risks, map to the canonical pricing request, price
// against the partner, and persist the summary. It is the single place where
// internal failures are converted into the coded error taxonomy; callers
// never see a raw transport or store error.
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"crediris/internal/platform/config"
	"crediris/internal/platform/metrics"
	"crediris/internal/pricing"
	"crediris/internal/pricing/cache"
	"crediris/internal/simulation/guarantee"
	"crediris/internal/simulation/health"
	"crediris/internal/simulation/mapper"
	"crediris/internal/simulation/models"
	"crediris/internal/simulation/store"
	"crediris/internal/simulation/validate"
	pkgerrors "crediris/pkg/errors"
)

// State tracks a run through its linear life cycle. There is no branching
// back: a run either reaches PERSISTED or stops at FAILED.
type State string

const (
	StateReceived     State = "RECEIVED"
	StateValidating   State = "VALIDATING"
	StateRulesChecked State = "RULES_CHECKED"
	StateMapped       State = "MAPPED"
	StatePriced       State = "PRICED"
	StatePersisted    State = "PERSISTED"
	StateFailed       State = "FAILED"
)

// Result is what a successful run hands back to the transport layer.
// Persisted is false when the audit write failed; the quote is still valid.
type Result struct {
	RecordID    string
	State       State
	Request     *pricing.Request
	Quote       *pricing.Result
	HealthRisks []string
	Persisted   bool
}

// QuoteCache is the read-through cache consulted before the partner call.
// *cache.QuoteCache implements it; a nil one always misses.
type QuoteCache interface {
	Get(ctx context.Context, req *pricing.Request) (*pricing.Result, bool)
	Put(ctx context.Context, req *pricing.Request, result *pricing.Result)
}

// Service wires the pipeline. The pricing client and store are ports; the
// quote cache is optional.
type Service struct {
	pricer  pricing.Client
	store   store.Store
	quotes  QuoteCache
	logger  *slog.Logger
	metrics *metrics.Metrics
	retry   config.Retry
	now     func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithQuoteCache enables the read-through quote cache.
func WithQuoteCache(quotes QuoteCache) Option {
	return func(s *Service) {
		if quotes != nil {
			s.quotes = quotes
		}
	}
}

// WithMetrics attaches the Prometheus instruments.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithRetry overrides the pricing retry policy.
func WithRetry(r config.Retry) Option {
	return func(s *Service) { s.retry = r }
}

// WithClock fixes the time source; tests use this to pin DateEffet.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(pricer pricing.Client, st store.Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		pricer: pricer,
		store:  st,
		quotes: (*cache.QuoteCache)(nil),
		logger: logger,
		retry: config.Retry{
			MaxAttempts: 3,
			BaseDelay:   200 * time.Millisecond,
			MaxDelay:    3 * time.Second,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one simulation end to end. Each invocation builds fresh
// entities; no state is shared between concurrent runs.
func (s *Service) Run(ctx context.Context, in *models.RawSimulationInput) (*Result, error) {
	if in == nil {
		return nil, s.fail(ctx, StateReceived,
			pkgerrors.New(pkgerrors.CodeInvalidData, "Les données de simulation sont manquantes"))
	}

	loan, insured, coverage, err := s.validateInput(in)
	if err != nil {
		return nil, s.fail(ctx, StateValidating, err)
	}

	if err := s.checkCoverageRules(coverage, insured.Health); err != nil {
		return nil, s.fail(ctx, StateValidating, err)
	}

	normalized := guarantee.Normalize(coverage)
	if !normalized.Any() {
		err := pkgerrors.New(pkgerrors.CodeValidation, "Certaines données sont invalides. Veuillez les vérifier.").
			WithViolations([]pkgerrors.FieldViolation{
				{Field: "coverage", Message: "Au moins une garantie doit être sélectionnée"},
			})
		return nil, s.fail(ctx, StateRulesChecked, err)
	}

	risks := health.Assess(insured.Health)

	req, err := mapper.ToPricingRequest(loan, insured, normalized, risks, s.now())
	if err != nil {
		return nil, s.fail(ctx, StateRulesChecked, err)
	}

	quote, cached, err := s.price(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, StateMapped, err)
	}

	result := &Result{
		RecordID:    uuid.NewString(),
		State:       StatePriced,
		Request:     req,
		Quote:       quote,
		HealthRisks: risks,
	}

	// Best effort: the user keeps their quote even if the audit write fails.
	if err := s.persist(ctx, result, in.UserID); err != nil {
		s.logger.ErrorContext(ctx, "simulation record write failed",
			"record_id", result.RecordID,
			"partner_simulation_id", quote.SimulationID,
			"error", err,
		)
		s.metrics.IncPersistenceFailure()
		s.metrics.RecordSimulation("priced_unsaved")
	} else {
		result.State = StatePersisted
		result.Persisted = true
		s.metrics.RecordSimulation("persisted")
	}

	s.logger.InfoContext(ctx, "simulation completed",
		"record_id", result.RecordID,
		"partner_simulation_id", quote.SimulationID,
		"state", string(result.State),
		"cached_quote", cached,
		"monthly_premium", quote.MonthlyPremium,
	)
	return result, nil
}

// validateInput runs the three schema validators and aggregates every field
// violation into a single VALIDATION_ERROR.
func (s *Service) validateInput(in *models.RawSimulationInput) (models.LoanTerms, models.InsuredPerson, models.CoverageSelection, error) {
	loan, loanErrs := validate.Loan(in.Loan)
	insured, insuredErrs := validate.Insured(in.InsuredInput())
	coverage, coverageErrs := validate.Coverage(in.Coverage)

	var violations []pkgerrors.FieldViolation
	violations = append(violations, loanErrs...)
	violations = append(violations, insuredErrs...)
	violations = append(violations, coverageErrs...)
	if len(violations) > 0 {
		err := pkgerrors.New(pkgerrors.CodeValidation, "Certaines données sont invalides. Veuillez les vérifier.").
			WithViolations(violations)
		return models.LoanTerms{}, models.InsuredPerson{}, models.CoverageSelection{}, err
	}
	return loan, insured, coverage, nil
}

// checkCoverageRules is the strict path: inconsistent selections are
// rejected with one sentence per broken rule, never silently repaired.
func (s *Service) checkCoverageRules(coverage models.CoverageSelection, h models.HealthProfile) error {
	violations := guarantee.Check(coverage)
	violations = append(violations, guarantee.CheckDisclosures(h)...)
	if len(violations) == 0 {
		return nil
	}
	fields := make([]pkgerrors.FieldViolation, 0, len(violations))
	for _, v := range violations {
		fields = append(fields, pkgerrors.FieldViolation{Field: v.Guarantee, Message: v.Message})
	}
	return pkgerrors.New(pkgerrors.CodeCoverage, "Les garanties sélectionnées sont invalides ou incompatibles.").
		WithViolations(fields)
}

// persist writes the summary record through the storage port.
func (s *Service) persist(ctx context.Context, result *Result, userID string) error {
	requestPayload, err := json.Marshal(result.Request)
	if err != nil {
		return err
	}
	responsePayload := result.Quote.Raw
	if len(responsePayload) == 0 {
		if responsePayload, err = json.Marshal(result.Quote); err != nil {
			return err
		}
	}
	return s.store.Save(ctx, models.SimulationRecord{
		ID:                  result.RecordID,
		UserID:              userID,
		PartnerSimulationID: result.Quote.SimulationID,
		RequestPayload:      requestPayload,
		ResponsePayload:     responsePayload,
		MonthlyPremium:      result.Quote.MonthlyPremium,
		TotalPremium:        result.Quote.TotalPremium,
		CreatedAt:           s.now(),
	})
}

func (s *Service) fail(ctx context.Context, at State, err error) error {
	code := pkgerrors.CodeOf(err)
	s.metrics.RecordSimulation(string(code))
	logFn := s.logger.WarnContext
	if code == pkgerrors.CodeInternal || code == pkgerrors.CodeSimulationFailed || code == pkgerrors.CodeAuth {
		logFn = s.logger.ErrorContext
	}
	logFn(ctx, "simulation failed",
		"at_state", string(at),
		"code", string(code),
		"error", err,
	)
	return err
}
