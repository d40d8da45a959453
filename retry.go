package i18nsync

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryConfig configures retries of transient provider failures.
type RetryConfig struct {
	MaxRetries int           // Attempts after the first one
	BaseDelay  time.Duration // Delay before the first retry, doubled each time
	MaxDelay   time.Duration // Upper bound for a single delay

	// Logger receives one warning per retry (default: no logging).
	Logger *slog.Logger
}

// DefaultRetryConfig returns sensible defaults for retry behavior.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// backOff builds the delay schedule for cfg. Delays are not randomized so a
// run is reproducible.
func (cfg RetryConfig) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = cfg.BaseDelay
	exp.RandomizationFactor = 0
	exp.Multiplier = 2
	exp.MaxInterval = cfg.MaxDelay
	if exp.MaxInterval < cfg.BaseDelay {
		exp.MaxInterval = cfg.BaseDelay
	}
	exp.MaxElapsedTime = 0
	exp.Reset()

	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}

// RetryFunc is a function that can be retried.
type RetryFunc[T any] func() (T, error)

// WithRetry calls fn until it succeeds, fails with an error IsRetryable
// rejects, the retries are used up or ctx is done. The last error is
// returned unwrapped.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn RetryFunc[T]) (T, error) {
	op := func() (T, error) {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, backoff.Permanent(err)
		}
		result, err := fn()
		if err != nil && !IsRetryable(err) {
			return result, backoff.Permanent(err)
		}
		return result, err
	}

	var notify backoff.Notify
	if cfg.Logger != nil {
		notify = func(err error, delay time.Duration) {
			cfg.Logger.Warn("retrying after transient failure",
				slog.Duration("delay", delay),
				slog.String("error", err.Error()))
		}
	}

	return backoff.RetryNotifyWithData(op, cfg.backOff(ctx), notify)
}

// IsRetryable reports whether err is a transient provider failure.
// Unsupported languages and context errors never are.
func IsRetryable(err error) bool {
	if err == nil || IsUnsupportedLanguage(err) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Retryable
	}
	return false
}

// RetryableProvider wraps a Provider with retry logic.
type RetryableProvider struct {
	provider Provider
	config   RetryConfig
}

// NewRetryableProvider creates a new provider with retry logic.
func NewRetryableProvider(provider Provider, cfg RetryConfig) *RetryableProvider {
	return &RetryableProvider{
		provider: provider,
		config:   cfg,
	}
}

// Translate implements Provider with retry logic.
func (p *RetryableProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	cfg := p.config
	if cfg.Logger != nil {
		cfg.Logger = cfg.Logger.With(slog.String("key", req.Key), slog.String("lang", req.TargetLang))
	}
	return WithRetry(ctx, cfg, func() (string, error) {
		return p.provider.Translate(ctx, req)
	})
}
