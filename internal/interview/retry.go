package interview

// retryOnce asks an unreliable generator for a value, validates it, and on
// validation failure regenerates exactly once more with the identical inputs,
// accepting the second result unconditionally. No further retries, no partial
// acceptance.
func retryOnce[T any](gen func() T, valid func(T) bool) T {
	out := gen()
	if valid(out) {
		return out
	}
	return gen()
}
