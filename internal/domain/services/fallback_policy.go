package services

import (
	"context"
	"errors"
	"time"

	"style-outfits/internal/domain/valueobjects"
)

var ErrEmptyStepResult = errors.New("step produced no value")

// FallbackPolicy runs a best-effort step under a deadline and substitutes the
// placeholder when the step fails, times out or produces nothing.
type FallbackPolicy struct {
	placeholder string
	timeout     time.Duration
}

func NewFallbackPolicy(placeholder string, timeout time.Duration) *FallbackPolicy {
	return &FallbackPolicy{
		placeholder: placeholder,
		timeout:     timeout,
	}
}

func (p *FallbackPolicy) Placeholder() string {
	return p.placeholder
}

func (p *FallbackPolicy) Resolve(ctx context.Context, step func(ctx context.Context) (string, error)) valueobjects.Degradable[string] {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	value, err := step(ctx)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		return valueobjects.Fallback(p.placeholder, err)
	}
	if value == "" {
		return valueobjects.Fallback(p.placeholder, ErrEmptyStepResult)
	}

	return valueobjects.Real(value)
}
