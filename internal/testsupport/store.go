package testsupport

import (
	"context"
	"testing"

	"montage/internal/config"
	"montage/internal/project"
	"montage/internal/projectstore"
)

// MustOpenStore opens a projectstore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *projectstore.Store {
	t.Helper()

	store, err := projectstore.Open(cfg)
	if err != nil {
		t.Fatalf("projectstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SaveProject persists the project for tests using the provided store.
func SaveProject(t testing.TB, store *projectstore.Store, p *project.Project) {
	t.Helper()

	if err := store.Save(context.Background(), p); err != nil {
		t.Fatalf("store.Save: %v", err)
	}
}
