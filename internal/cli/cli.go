package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sciAnima/boxing-calendar/internal/calendar"
	"github.com/sciAnima/boxing-calendar/internal/config"
	"github.com/sciAnima/boxing-calendar/internal/fetch"
	"github.com/sciAnima/boxing-calendar/internal/logger"
	"github.com/sciAnima/boxing-calendar/internal/schedule"
	"github.com/sciAnima/boxing-calendar/internal/storage"
)

const (
	ExitSuccess  = 0
	ExitError    = 1
	ExitNewCards = 2
)

const defaultConfigPath = "~/.config/boxing-calendar/config.yaml"

var (
	flagConfig   string
	flagOutput   string
	flagTimezone string
	flagPerBout  bool
	flagOffline  string
	flagDataDir  string
	flagFormat   string
	flagVerbose  bool
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boxing-calendar",
		Short: "Build a calendar file from the Boxing247 fight schedule",
		Long: `Fetches the Boxing247 fight schedule, parses it into fight cards,
converts listed ringwalk times into the configured time zone, and writes
an .ics calendar file. Cards new since the previous run are reported.`,
		RunE: runBuild,
	}

	cmd.Flags().StringVar(&flagConfig, "config", defaultConfigPath, "Path to YAML config file")
	cmd.Flags().StringVar(&flagOutput, "output", "", "Output .ics path (overrides config)")
	cmd.Flags().StringVar(&flagTimezone, "timezone", "", "Target IANA time zone (overrides config)")
	cmd.Flags().BoolVar(&flagPerBout, "per-bout", false, "Emit one calendar event per bout instead of per card")
	cmd.Flags().StringVar(&flagOffline, "offline", "", "Parse a saved page-text file instead of fetching")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", "", "Data directory for schedule snapshots (overrides config)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// runBuild is the main command logic.
func runBuild(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfgPath, err := expandHome(flagConfig)
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyOverrides(cfg, cmd)

	// Fetch (or read) the raw page text.
	raw, err := loadScheduleText(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	// Parse it into fight cards. No date headers at all means the input
	// does not resemble the schedule; nothing downstream can proceed and
	// no output file is written.
	parseStart := time.Now()
	cards, err := schedule.NewParser().Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing schedule: %w", err)
	}
	logger.RecordTiming("parse", time.Since(parseStart))
	logger.Info("parsed schedule", logger.Fields{"cards": len(cards)})

	// Diff against the previous run and store the new snapshot.
	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	previous, err := store.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}
	diff := schedule.Diff(previous, cards)
	if err := store.SnapshotCards(cards); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	// Build and write the calendar.
	builder, err := calendar.NewBuilder(calendar.Options{
		TargetZone:    cfg.Timezone,
		SourceZone:    cfg.SourceTimezone,
		LocationZones: cfg.LocationTimezones,
		PerBout:       cfg.Events == config.EventsPerBout,
		Duration:      time.Duration(cfg.DurationHours) * time.Hour,
		CalName:       "Boxing Fight Schedule",
	})
	if err != nil {
		return err
	}

	buildStart := time.Now()
	result, err := builder.Build(cards)
	if err != nil {
		return fmt.Errorf("building calendar: %w", err)
	}
	logger.RecordTiming("build", time.Since(buildStart))

	for _, skip := range result.Skipped {
		logger.Warn("skipping unlocalizable event", logger.Fields{
			"card": skip.CardID,
			"date": skip.Day.Format("2006-01-02"),
			"time": skip.Clock.String(),
			"zone": skip.Zone,
		})
	}

	if err := result.WriteFile(cfg.Output); err != nil {
		return err
	}
	logger.Info("wrote calendar", logger.Fields{
		"path":   cfg.Output,
		"events": result.EventCount,
	})

	out := &OutputResult{
		GeneratedAt: time.Now().UTC(),
		OutputPath:  cfg.Output,
		CardCount:   len(cards),
		EventCount:  result.EventCount,
		NewCards:    diff.NewCards,
	}
	for _, skip := range result.Skipped {
		out.Skipped = append(out.Skipped, skip.Error())
	}
	if err := WriteOutput(os.Stdout, out, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if len(diff.NewCards) > 0 {
		os.Exit(ExitNewCards)
	}
	os.Exit(ExitSuccess)
	return nil
}

// loadScheduleText returns the raw schedule text, from the offline file when
// --offline is set, otherwise by fetching the live page.
func loadScheduleText(ctx context.Context, cfg *config.Config) (string, error) {
	if flagOffline != "" {
		data, err := os.ReadFile(flagOffline)
		if err != nil {
			return "", fmt.Errorf("reading offline file: %w", err)
		}
		return string(data), nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	fetcher := fetch.New(cfg.SourceURL, time.Duration(cfg.FetchTimeoutSec)*time.Second)

	logger.Debug("fetching schedule page", logger.Fields{"url": cfg.SourceURL})
	fetchStart := time.Now()
	raw, err := fetcher.PageText(ctx)
	if err != nil {
		return "", fmt.Errorf("fetching schedule: %w", err)
	}
	logger.RecordTiming("fetch", time.Since(fetchStart))
	logger.IncrCounter("fetches")
	return raw, nil
}

func applyOverrides(cfg *config.Config, cmd *cobra.Command) {
	if flagOutput != "" {
		cfg.Output = flagOutput
	}
	if flagTimezone != "" {
		cfg.Timezone = flagTimezone
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if cmd.Flags().Changed("per-bout") {
		if flagPerBout {
			cfg.Events = config.EventsPerBout
		} else {
			cfg.Events = config.EventsPerCard
		}
	}
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
