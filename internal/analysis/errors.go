package analysis

import "fmt"

// NormalizerError wraps a failure of the injected text normalizer.
type NormalizerError struct {
	Op    string
	Cause error
}

func (e *NormalizerError) Error() string {
	return fmt.Sprintf("normalizer %s failed: %v", e.Op, e.Cause)
}

func (e *NormalizerError) Unwrap() error {
	return e.Cause
}
