package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testPlaceholder = "https://placehold.co/512x768?text=Mannequin"

func TestFallbackPolicy_Resolve(t *testing.T) {
	policy := NewFallbackPolicy(testPlaceholder, 50*time.Millisecond)

	t.Run("real value", func(t *testing.T) {
		got := policy.Resolve(context.Background(), func(ctx context.Context) (string, error) {
			return "data:image/png;base64,AAAA", nil
		})

		assert.False(t, got.UsedFallback())
		assert.Equal(t, "data:image/png;base64,AAAA", got.Value())
		assert.NoError(t, got.Cause())
	})

	t.Run("step error", func(t *testing.T) {
		boom := errors.New("image model unavailable")
		got := policy.Resolve(context.Background(), func(ctx context.Context) (string, error) {
			return "", boom
		})

		assert.True(t, got.UsedFallback())
		assert.Equal(t, testPlaceholder, got.Value())
		assert.ErrorIs(t, got.Cause(), boom)
	})

	t.Run("empty value", func(t *testing.T) {
		got := policy.Resolve(context.Background(), func(ctx context.Context) (string, error) {
			return "", nil
		})

		assert.True(t, got.UsedFallback())
		assert.ErrorIs(t, got.Cause(), ErrEmptyStepResult)
	})

	t.Run("deadline exceeded", func(t *testing.T) {
		got := policy.Resolve(context.Background(), func(ctx context.Context) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})

		assert.True(t, got.UsedFallback())
		assert.Equal(t, testPlaceholder, got.Value())
		assert.ErrorIs(t, got.Cause(), context.DeadlineExceeded)
	})

	t.Run("late value after deadline is discarded", func(t *testing.T) {
		got := policy.Resolve(context.Background(), func(ctx context.Context) (string, error) {
			<-ctx.Done()
			return "data:image/png;base64,LATE", nil
		})

		assert.True(t, got.UsedFallback())
		assert.Equal(t, testPlaceholder, got.Value())
	})
}
