package valueobjects

// Degradable carries the outcome of a best-effort step: either the real value or a
// substitute that was used because the step failed.
type Degradable[T any] struct {
	value    T
	fallback bool
	cause    error
}

// Real wraps a value produced by the step itself.
func Real[T any](value T) Degradable[T] {
	return Degradable[T]{value: value}
}

// Fallback wraps a substitute value together with the failure that caused it.
func Fallback[T any](value T, cause error) Degradable[T] {
	return Degradable[T]{value: value, fallback: true, cause: cause}
}

func (d Degradable[T]) Value() T {
	return d.value
}

func (d Degradable[T]) UsedFallback() bool {
	return d.fallback
}

// Cause is nil unless UsedFallback is true.
func (d Degradable[T]) Cause() error {
	return d.cause
}
