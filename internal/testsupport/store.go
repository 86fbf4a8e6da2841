package testsupport

import (
	"context"
	"testing"

	"lathe/internal/config"
	"lathe/internal/records"
)

// MustOpenStore opens a records.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *records.Store {
	t.Helper()

	store, err := records.Open(cfg)
	if err != nil {
		t.Fatalf("records.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustRecord creates or fetches a format record for tests.
func MustRecord(t testing.TB, store *records.Store, owner records.OwnerRef, format string) *records.Record {
	t.Helper()

	record, _, err := store.GetOrCreate(context.Background(), owner, format)
	if err != nil {
		t.Fatalf("store.GetOrCreate: %v", err)
	}
	return record
}
