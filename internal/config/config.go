// Package config provides the YAML configuration model for boxing-calendar.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Event granularity values for Config.Events.
const (
	EventsPerCard = "card"
	EventsPerBout = "bout"
)

// Config is the top-level application configuration.
type Config struct {
	// SourceURL is the fight-schedule page to scrape.
	SourceURL string `yaml:"source_url"`

	// Output is the path the .ics file is written to.
	Output string `yaml:"output"`

	// Timezone is the IANA zone calendar events are emitted in.
	Timezone string `yaml:"timezone"`

	// SourceTimezone is the IANA zone assumed for listed times that carry
	// no zone annotation.
	SourceTimezone string `yaml:"source_timezone"`

	// Events selects calendar granularity: "card" (one event per fight
	// night) or "bout" (one event per matchup).
	Events string `yaml:"events"`

	// DurationHours is the length of each calendar event.
	DurationHours int `yaml:"duration_hours"`

	// FetchTimeoutSec bounds the whole page fetch, browser launch included.
	FetchTimeoutSec int `yaml:"fetch_timeout_sec"`

	// DataDir holds schedule snapshots used to detect newly added cards.
	DataDir string `yaml:"data_dir"`

	// LocationTimezones maps country/region keywords appearing in venue
	// text to IANA zone names, for "Local Time" ringwalk annotations.
	LocationTimezones map[string]string `yaml:"location_timezones"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		SourceURL:         "https://www.boxing247.com/fight-schedule",
		Output:            "boxing_schedule.ics",
		Timezone:          "America/Chicago",
		SourceTimezone:    "America/New_York",
		Events:            EventsPerCard,
		DurationHours:     3,
		FetchTimeoutSec:   45,
		DataDir:           "~/.local/share/boxing-calendar",
		LocationTimezones: defaultLocationTimezones(),
	}
}

func defaultLocationTimezones() map[string]string {
	return map[string]string{
		"USA":                  "America/New_York",
		"United States":        "America/New_York",
		"England":              "Europe/London",
		"UK":                   "Europe/London",
		"Scotland":             "Europe/London",
		"Wales":                "Europe/London",
		"Ireland":              "Europe/Dublin",
		"Mexico":               "America/Mexico_City",
		"Australia":            "Australia/Brisbane",
		"Puerto Rico":          "America/Puerto_Rico",
		"Germany":              "Europe/Berlin",
		"Denmark":              "Europe/Copenhagen",
		"Japan":                "Asia/Tokyo",
		"United Arab Emirates": "Asia/Dubai",
		"Saudi Arabia":         "Asia/Riyadh",
		"Canada":               "America/Toronto",
	}
}

// Normalize fills in missing/zero values with defaults so partially-filled
// configs still behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.SourceURL == "" {
		c.SourceURL = def.SourceURL
	}
	if c.Output == "" {
		c.Output = def.Output
	}
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	if c.SourceTimezone == "" {
		c.SourceTimezone = def.SourceTimezone
	}
	switch c.Events {
	case EventsPerCard, EventsPerBout:
	default:
		c.Events = EventsPerCard
	}
	if c.DurationHours <= 0 {
		c.DurationHours = def.DurationHours
	}
	if c.FetchTimeoutSec <= 0 {
		c.FetchTimeoutSec = def.FetchTimeoutSec
	}
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.LocationTimezones == nil {
		c.LocationTimezones = def.LocationTimezones
	}
}

// Load reads configuration from a YAML path. A missing file is treated as a
// first run: a default config is written there and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration to path atomically (temp file + rename),
// creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".boxing-calendar-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
