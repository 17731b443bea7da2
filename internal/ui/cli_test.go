package ui

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/salonboard/internal/config"
	"github.com/javiermolinar/salonboard/internal/db"
	"github.com/javiermolinar/salonboard/internal/remote"
)

func TestVersionCommand(t *testing.T) {
	a := NewApp(config.Default())
	var out bytes.Buffer
	a.root.SetOut(&out)
	a.root.SetArgs([]string{"version"})
	if err := a.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "salonboard dev") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestOpenStore(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "nested", "board.db")

	store, closer, err := openStore(cfg)
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	defer func() { _ = closer.Close() }()
	if _, ok := store.(*db.Store); !ok {
		t.Errorf("expected *db.Store, got %T", store)
	}

	cfg.Storage.Driver = config.DriverHTTP
	cfg.Storage.BaseURL = "http://127.0.0.1:1"
	store, closer, err = openStore(cfg)
	if err != nil {
		t.Fatalf("http: %v", err)
	}
	_ = closer.Close()
	if _, ok := store.(*remote.Client); !ok {
		t.Errorf("expected *remote.Client, got %T", store)
	}

	cfg.Storage.Driver = "mongo"
	if _, _, err := openStore(cfg); !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestConfigSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := runConfigInit(&bytes.Buffer{}, path, true); err != nil {
		t.Fatalf("init: %v", err)
	}

	var out bytes.Buffer
	if err := runConfigSet(&out, path, "schedule.slot_height", "3"); err != nil {
		t.Fatalf("set: %v", err)
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Schedule.SlotHeight != 3 {
		t.Errorf("slot_height = %d, want 3", cfg.Schedule.SlotHeight)
	}

	if err := runConfigSet(&out, path, "ui.theme", "neon"); err == nil {
		t.Error("expected an error for an unknown theme")
	}
	if err := runConfigSet(&out, path, "schedule.granularity_minutes", "0"); err == nil {
		t.Error("expected a validation error")
	}
}

func TestPrintConfig_MasksSecrets(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.APIKey = "s3cret"
	var out bytes.Buffer
	printConfig(&out, cfg)
	if strings.Contains(out.String(), "s3cret") {
		t.Error("api key should be masked")
	}
	if !strings.Contains(out.String(), "[schedule]") || !strings.Contains(out.String(), "domain_start") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}
