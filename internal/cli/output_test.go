package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sciAnima/boxing-calendar/internal/schedule"
)

func sampleResult() *OutputResult {
	date := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	card := &schedule.Card{
		Date:        date,
		Venue:       "MSG",
		Broadcaster: "ESPN",
		Bouts:       []schedule.Bout{{Fighters: []string{"Alvarez", "Smith"}}},
		Raw:         "MSG, ESPN\nAlvarez vs Smith",
	}
	card.ID = schedule.GenerateID(date, card.Raw)

	return &OutputResult{
		GeneratedAt: time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC),
		OutputPath:  "boxing_schedule.ics",
		CardCount:   3,
		EventCount:  2,
		NewCards:    []*schedule.Card{card},
		Skipped:     []string{"cannot localize 2026-03-08 02:30 in America/New_York (card abc)"},
	}
}

func TestWriteTextOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText, false); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Wrote 2 events from 3 fight cards to boxing_schedule.ics",
		"SKIPPED: cannot localize",
		"1 new fight cards:",
		"NEW: Mar 1 - Alvarez vs Smith",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Venue: MSG") {
		t.Error("venue details should only appear in verbose mode")
	}
}

func TestWriteTextVerbose(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText, true); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"ID: ", "Venue: MSG", "TV: ESPN"} {
		if !strings.Contains(out, want) {
			t.Errorf("verbose output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteTextNoNewCards(t *testing.T) {
	result := sampleResult()
	result.NewCards = nil
	result.Skipped = nil

	var buf bytes.Buffer
	if err := WriteOutput(&buf, result, FormatText, false); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No new fight cards since last run.") {
		t.Errorf("output missing no-new-cards line:\n%s", buf.String())
	}
}

func TestWriteJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatJSON, false); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}

	var decoded OutputResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.EventCount != 2 || decoded.CardCount != 3 {
		t.Errorf("counts = %d/%d, want 2/3", decoded.EventCount, decoded.CardCount)
	}
	if len(decoded.NewCards) != 1 || decoded.NewCards[0].Venue != "MSG" {
		t.Errorf("new cards did not round-trip: %+v", decoded.NewCards)
	}
}

func TestWriteOutputUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), OutputFormat("xml"), false); err == nil {
		t.Error("expected error for unknown format")
	}
}
