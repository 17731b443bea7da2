package ui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/javiermolinar/salonboard/internal/db"
)

const testRoster = `resources:
  - {id: mia, name: Mia, color: "#f5a97f"}
  - {id: leo, name: Leo}
services:
  - {id: cut, name: Cut, price: "30.00", duration: 30}
  - {id: colour, name: Colour, price: "80", duration: 90}
`

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing roster: %v", err)
	}
	return path
}

func newTestStore(t *testing.T) *db.Store {
	t.Helper()
	store, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestImportRoster(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	roster, err := readRoster(writeRoster(t, testRoster))
	if err != nil {
		t.Fatalf("readRoster failed: %v", err)
	}

	resources, services, err := importRoster(ctx, store, roster)
	if err != nil {
		t.Fatalf("importRoster failed: %v", err)
	}
	if resources != 2 || services != 2 {
		t.Fatalf("imported %d resources and %d services, want 2 and 2", resources, services)
	}

	gotRes, err := store.FetchResources(ctx)
	if err != nil {
		t.Fatalf("FetchResources failed: %v", err)
	}
	if len(gotRes) != 2 || gotRes[0].ID != "mia" || gotRes[1].ID != "leo" {
		t.Fatalf("unexpected resources: %+v", gotRes)
	}
	if gotRes[0].ColorHex != "#f5a97f" {
		t.Errorf("color = %q", gotRes[0].ColorHex)
	}

	gotSvc, err := store.FetchServices(ctx)
	if err != nil {
		t.Fatalf("FetchServices failed: %v", err)
	}
	if len(gotSvc) != 2 {
		t.Fatalf("expected 2 services, got %d", len(gotSvc))
	}
}

func TestImportRoster_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	roster, err := readRoster(writeRoster(t, testRoster))
	if err != nil {
		t.Fatalf("readRoster failed: %v", err)
	}

	for range 2 {
		if _, _, err := importRoster(ctx, store, roster); err != nil {
			t.Fatalf("importRoster failed: %v", err)
		}
	}
	got, err := store.FetchResources(ctx)
	if err != nil {
		t.Fatalf("FetchResources failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 resources after re-import, got %d", len(got))
	}
}

func TestImportRoster_ValidatesBeforeWriting(t *testing.T) {
	tests := []struct {
		name   string
		roster string
	}{
		{"bad color", "resources:\n  - {id: mia, name: Mia, color: red}\n"},
		{"missing name", "resources:\n  - {id: mia}\n"},
		{"bad price", "resources:\n  - {id: mia, name: Mia}\nservices:\n  - {id: cut, name: Cut, price: abc, duration: 30}\n"},
		{"zero duration", "resources:\n  - {id: mia, name: Mia}\nservices:\n  - {id: cut, name: Cut}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := newTestStore(t)
			roster, err := readRoster(writeRoster(t, tt.roster))
			if err != nil {
				t.Fatalf("readRoster failed: %v", err)
			}
			if _, _, err := importRoster(ctx, store, roster); err == nil {
				t.Fatal("expected an error")
			}
			got, err := store.FetchResources(ctx)
			if err != nil {
				t.Fatalf("FetchResources failed: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("nothing should be written, got %d resources", len(got))
			}
		})
	}
}

func TestReadRoster_Missing(t *testing.T) {
	if _, err := readRoster(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
