package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Timezone != "America/Chicago" {
		t.Errorf("Timezone = %q, want America/Chicago", cfg.Timezone)
	}
	if cfg.SourceTimezone != "America/New_York" {
		t.Errorf("SourceTimezone = %q, want America/New_York", cfg.SourceTimezone)
	}
	if cfg.Events != EventsPerCard {
		t.Errorf("Events = %q, want %q", cfg.Events, EventsPerCard)
	}
	if cfg.DurationHours != 3 {
		t.Errorf("DurationHours = %d, want 3", cfg.DurationHours)
	}
	if cfg.LocationTimezones["Saudi Arabia"] != "Asia/Riyadh" {
		t.Errorf("LocationTimezones[Saudi Arabia] = %q", cfg.LocationTimezones["Saudi Arabia"])
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	cfg := &Config{Timezone: "Europe/London", Events: "nonsense"}
	cfg.Normalize()

	if cfg.Timezone != "Europe/London" {
		t.Errorf("Normalize should keep explicit values, got %q", cfg.Timezone)
	}
	if cfg.Events != EventsPerCard {
		t.Errorf("invalid events value should reset to %q, got %q", EventsPerCard, cfg.Events)
	}
	if cfg.Output == "" || cfg.SourceURL == "" || cfg.DataDir == "" {
		t.Error("Normalize should fill empty fields")
	}
	if cfg.DurationHours <= 0 || cfg.FetchTimeoutSec <= 0 {
		t.Error("Normalize should fill zero numeric fields")
	}
	if cfg.LocationTimezones == nil {
		t.Error("Normalize should fill the location timezone table")
	}
}

func TestLoadMissingFileWritesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Timezone != "America/Chicago" {
		t.Errorf("Timezone = %q, want default", cfg.Timezone)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Load should write a default config file: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	original := DefaultConfig()
	original.Timezone = "Europe/Berlin"
	original.Events = EventsPerBout
	original.DurationHours = 4

	if err := Save(path, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone = %q, want Europe/Berlin", loaded.Timezone)
	}
	if loaded.Events != EventsPerBout {
		t.Errorf("Events = %q, want %q", loaded.Events, EventsPerBout)
	}
	if loaded.DurationHours != 4 {
		t.Errorf("DurationHours = %d, want 4", loaded.DurationHours)
	}
}

func TestLoadPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timezone: Asia/Tokyo\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Timezone != "Asia/Tokyo" {
		t.Errorf("Timezone = %q, want Asia/Tokyo", cfg.Timezone)
	}
	if cfg.SourceURL == "" || cfg.Output == "" {
		t.Error("unset fields should be normalized to defaults")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timezone: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestSaveEmptyPath(t *testing.T) {
	if err := Save("", DefaultConfig()); err == nil {
		t.Error("expected error for empty path")
	}
	if err := Save(filepath.Join(t.TempDir(), "c.yaml"), nil); err == nil {
		t.Error("expected error for nil config")
	}
}
