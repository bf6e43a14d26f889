package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeFailure
	outcomeAbandoned
)

// CircuitBreaker guards repository calls. It opens after failureThreshold
// consecutive failures, rejects calls for openTimeout and then admits up to
// halfOpenMaxReq trial calls before closing again.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	openTimeout      time.Duration
	halfOpenMaxReq   int

	state    CircuitState
	failures int
	openedAt time.Time
	trials   int
	trialsOK int
	now      func() time.Time
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, halfOpenMaxReq int) *CircuitBreaker {
	cfg := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{
		FailureThreshold: failureThreshold,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMaxReq,
	})

	return &CircuitBreaker{
		failureThreshold: cfg.FailureThreshold,
		openTimeout:      cfg.OpenTimeout,
		halfOpenMaxReq:   cfg.HalfOpenMaxReq,
		state:            CircuitStateClosed,
		now:              time.Now,
	}
}

// Execute runs fn behind the breaker. A nil breaker runs fn directly, and a
// canceled caller context is not counted as a dependency failure.
func (b *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if b == nil {
		return fn(ctx)
	}
	if err := b.Allow(); err != nil {
		return err
	}

	err := fn(ctx)
	switch {
	case err == nil:
		b.settle(outcomeSuccess)
	case errors.Is(err, context.Canceled) && ctx.Err() != nil:
		b.settle(outcomeAbandoned)
	default:
		b.settle(outcomeFailure)
	}
	return err
}

// Allow reserves a slot for one call. Every successful Allow must be followed
// by RecordSuccess or RecordFailure.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen {
		if b.now().Sub(b.openedAt) < b.openTimeout {
			return ErrCircuitOpen
		}
		b.moveTo(CircuitStateHalfOpen)
	}
	if b.state == CircuitStateHalfOpen {
		if b.trials >= b.halfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.trials++
	}
	return nil
}

func (b *CircuitBreaker) RecordSuccess() { b.settle(outcomeSuccess) }

func (b *CircuitBreaker) RecordFailure() { b.settle(outcomeFailure) }

func (b *CircuitBreaker) settle(result outcome) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		switch result {
		case outcomeSuccess:
			b.failures = 0
		case outcomeFailure:
			b.failures++
			if b.failures >= b.failureThreshold {
				b.moveTo(CircuitStateOpen)
			}
		}
	case CircuitStateHalfOpen:
		if b.trials > 0 {
			b.trials--
		}
		switch result {
		case outcomeSuccess:
			b.trialsOK++
			if b.trialsOK >= b.halfOpenMaxReq && b.trials == 0 {
				b.moveTo(CircuitStateClosed)
			}
		case outcomeFailure:
			b.moveTo(CircuitStateOpen)
		}
	case CircuitStateOpen:
		if result == outcomeFailure {
			b.openedAt = b.now()
		}
	}
}

// State reports half-open once the open timeout has passed, even before the
// next call performs the transition.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.openTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) moveTo(state CircuitState) {
	b.state = state
	b.trials = 0
	b.trialsOK = 0
	switch state {
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
}
