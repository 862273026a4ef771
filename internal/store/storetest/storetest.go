// Package storetest opens throwaway journals for tests.
package storetest

import (
	"testing"

	"github.com/abhisek/vidya/internal/store"
)

// Open returns the EventRepo of a fresh in-memory Store that is closed
// when the test ends.
func Open(tb testing.TB) store.EventRepo {
	tb.Helper()
	s, err := store.OpenMemory()
	if err != nil {
		tb.Fatalf("open store: %v", err)
	}
	tb.Cleanup(func() { _ = s.Close() })
	return s.EventRepo()
}
