package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pumpversuch/internal/models"

	"github.com/spf13/viper"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	v := viper.New()
	if err := loadConfig(v, t.TempDir()); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	opts, err := serviceOptions(v)
	if err != nil {
		t.Fatalf("serviceOptions: %v", err)
	}
	if opts.Defaults.Parameters != models.DefaultParameters() || opts.Defaults.ProjectName != models.DefaultProjectName {
		t.Fatalf("unexpected defaults: %+v", opts.Defaults)
	}
	if opts.SessionTTL != 7*24*time.Hour {
		t.Fatalf("session ttl %v", opts.SessionTTL)
	}
	if v.GetString("db.path") != ":memory:" || v.GetString("port") != "8080" {
		t.Fatalf("unexpected db.path=%q port=%q", v.GetString("db.path"), v.GetString("port"))
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yml := []byte("port: \"9000\"\nchart:\n  width: 800\ndefaults:\n  project_name: Brunnen 3\n  pump_duration_hours: 4\n  total_duration_hours: 6\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), yml, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PUMPVERSUCH_DEFAULTS_TARGET_FLOW_RATE", "7.5")
	t.Setenv("PUMPVERSUCH_SESSION_TTL", "2h")

	v := viper.New()
	if err := loadConfig(v, dir); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	opts, err := serviceOptions(v)
	if err != nil {
		t.Fatalf("serviceOptions: %v", err)
	}
	want := models.Parameters{StaticWaterLevel: 2.10, TargetFlowRate: 7.5, PumpDurationHours: 4, TotalDurationHours: 6}
	if opts.Defaults.Parameters != want {
		t.Fatalf("parameters: got %+v, want %+v", opts.Defaults.Parameters, want)
	}
	if opts.Defaults.ProjectName != "Brunnen 3" || opts.Chart.Width != 800 || opts.Chart.UnitHeight != 250 {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.SessionTTL != 2*time.Hour {
		t.Fatalf("session ttl %v", opts.SessionTTL)
	}
	if v.GetString("port") != "9000" {
		t.Fatalf("port %q", v.GetString("port"))
	}
}

func TestServiceOptions_RejectsInvalidDefaults(t *testing.T) {
	v := viper.New()
	if err := loadConfig(v, t.TempDir()); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	v.Set("defaults.total_duration_hours", 2)

	if _, err := serviceOptions(v); !errors.Is(err, models.ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters, got %v", err)
	}
}
