package utils

import (
	"log"
	"time"
)

// WithRetry runs fn up to attempts times, sleeping delay × attempt between
// failures, and returns the last error if every attempt fails. Used around
// remote calls only, never around local computation.
func WithRetry(attempts int, delay time.Duration, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := fn(); err != nil {
			lastErr = err
			if attempt < attempts {
				backoff := delay * time.Duration(attempt)
				log.Printf("retry: attempt %d/%d failed (%v), retrying in %s", attempt, attempts, err, backoff)
				time.Sleep(backoff)
			}
			continue
		}
		return nil
	}
	return lastErr
}
