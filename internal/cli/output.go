package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sciAnima/boxing-calendar/internal/schedule"
)

// OutputFormat specifies the output format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains the run summary to be output.
type OutputResult struct {
	GeneratedAt time.Time        `json:"generated_at"`
	OutputPath  string           `json:"output_path"`
	CardCount   int              `json:"card_count"`
	EventCount  int              `json:"event_count"`
	NewCards    []*schedule.Card `json:"new_cards"`
	Skipped     []string         `json:"skipped,omitempty"`
}

// WriteOutput writes the result in the specified format.
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	fmt.Fprintf(w, "Wrote %d events from %d fight cards to %s\n",
		result.EventCount, result.CardCount, result.OutputPath)

	for _, skip := range result.Skipped {
		fmt.Fprintf(w, "  SKIPPED: %s\n", skip)
	}

	if len(result.NewCards) == 0 {
		fmt.Fprintln(w, "No new fight cards since last run.")
		return nil
	}

	fmt.Fprintf(w, "\n%d new fight cards:\n", len(result.NewCards))
	for _, card := range result.NewCards {
		fmt.Fprintf(w, "  NEW: %s - %s\n", card.Date.Format("Jan 2"), card.Title())
		if verbose {
			fmt.Fprintf(w, "       ID: %s\n", card.ID)
			if card.Venue != "" {
				fmt.Fprintf(w, "       Venue: %s\n", card.Venue)
			}
			if card.Broadcaster != "" {
				fmt.Fprintf(w, "       TV: %s\n", card.Broadcaster)
			}
		}
	}

	return nil
}
