package translation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerTranslator stops calling a backend after repeated failures and
// fails fast until the cooldown has passed.
type BreakerTranslator struct {
	backend Translator
	cb      *gobreaker.CircuitBreaker
}

// NewBreakerTranslator wraps backend in a circuit breaker
func NewBreakerTranslator(backend Translator, failures uint32, cooldown time.Duration) *BreakerTranslator {
	if failures == 0 {
		failures = 3
	}
	settings := gobreaker.Settings{
		Name:        backend.Name(),
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("translator %s: circuit %s -> %s", name, from, to)
		},
	}
	return &BreakerTranslator{
		backend: backend,
		cb:      gobreaker.NewCircuitBreaker(settings),
	}
}

// Translate forwards to the backend unless the circuit is open
func (b *BreakerTranslator) Translate(ctx context.Context, sentence string) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.backend.Translate(ctx, sentence)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return "", fmt.Errorf("translator %s unavailable: %w", b.backend.Name(), err)
		}
		return "", err
	}
	return out.(string), nil
}

// Name returns the backend name
func (b *BreakerTranslator) Name() string {
	return b.backend.Name()
}

// IsAvailable reports the backend configuration or an open circuit
func (b *BreakerTranslator) IsAvailable() error {
	if b.cb.State() == gobreaker.StateOpen {
		return fmt.Errorf("translator %s: %w", b.backend.Name(), gobreaker.ErrOpenState)
	}
	return b.backend.IsAvailable()
}
