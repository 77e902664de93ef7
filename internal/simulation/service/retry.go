package service

import (
	"context"
	"math/rand/v2"
	"time"

	"crediris/internal/pricing"
	pkgerrors "crediris/pkg/errors"
)

// price returns a quote for req, consulting the cache first. The second
// return reports whether the quote came from the cache.
func (s *Service) price(ctx context.Context, req *pricing.Request) (*pricing.Result, bool, error) {
	if quote, ok := s.quotes.Get(ctx, req); ok {
		s.metrics.RecordCacheHit()
		return quote, true, nil
	}
	s.metrics.RecordCacheMiss()

	quote, err := s.priceWithRetry(ctx, req)
	if err != nil {
		return nil, false, err
	}
	s.quotes.Put(ctx, req, quote)
	return quote, false, nil
}

// priceWithRetry calls the partner up to MaxAttempts times. Only transient
// failures (timeouts, outages) are retried; authentication and rejection
// errors surface immediately.
func (s *Service) priceWithRetry(ctx context.Context, req *pricing.Request) (*pricing.Result, error) {
	var lastErr error
	for attempt := 1; attempt <= s.retry.MaxAttempts; attempt++ {
		start := time.Now()
		quote, err := s.pricer.CreateSimulation(ctx, req)
		s.metrics.ObservePricingDuration(time.Since(start).Seconds())
		if err == nil {
			return quote, nil
		}
		lastErr = err

		if !pricing.IsRetryable(err) {
			break
		}
		if attempt == s.retry.MaxAttempts {
			break
		}

		s.metrics.IncPricingRetry()
		s.logger.WarnContext(ctx, "pricing call failed, retrying",
			"attempt", attempt,
			"max_attempts", s.retry.MaxAttempts,
			"category", string(pricing.CategoryOf(lastErr)),
			"error", lastErr,
		)
		if err := sleep(ctx, s.backoff(attempt)); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeSimulationFailed,
				"La simulation a échoué. Veuillez réessayer.", err)
		}
	}
	return nil, s.pricingError(lastErr)
}

// pricingError maps a partner failure onto the coded taxonomy with a
// user-safe message.
func (s *Service) pricingError(err error) error {
	if pricing.CategoryOf(err) == pricing.ErrorAuthentication {
		return pkgerrors.Wrap(pkgerrors.CodeAuth,
			"Impossible de se connecter au service de tarification. Veuillez réessayer.", err)
	}
	msg := pricing.UserMessageOf(err)
	if msg == "" {
		msg = "La simulation a échoué. Veuillez réessayer."
	}
	return pkgerrors.Wrap(pkgerrors.CodeSimulationFailed, msg, err)
}

// backoff doubles the base delay per attempt, caps it at MaxDelay and adds
// up to 50% jitter so synchronized clients do not retry in lockstep.
func (s *Service) backoff(attempt int) time.Duration {
	delay := s.retry.BaseDelay << (attempt - 1)
	if delay > s.retry.MaxDelay {
		delay = s.retry.MaxDelay
	}
	return delay + rand.N(delay/2+1)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
