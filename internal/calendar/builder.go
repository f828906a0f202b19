package calendar

import (
	"fmt"
	"os"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/sciAnima/boxing-calendar/internal/schedule"
)

const (
	// DefaultStartHour is the target-zone start hour used when a card
	// carries no ringwalk or bout time at all.
	DefaultStartHour = 21

	// DefaultDuration is how long each calendar event runs.
	DefaultDuration = 3 * time.Hour

	prodID    = "-//boxing-calendar//sciAnima//EN"
	uidDomain = "boxing-calendar"
	sourceURL = "https://www.boxing247.com/fight-schedule"
)

// TimeConversionError reports a card date/time that could not be
// unambiguously localized, e.g. an instant inside a DST spring-forward gap.
type TimeConversionError struct {
	CardID string
	Day    time.Time
	Clock  schedule.Clock
	Zone   string
}

func (e *TimeConversionError) Error() string {
	return fmt.Sprintf("cannot localize %s %s in %s (card %s)",
		e.Day.Format("2006-01-02"), e.Clock, e.Zone, e.CardID)
}

// Options configures a Builder.
type Options struct {
	// TargetZone is the IANA zone events are emitted in, e.g. "America/Chicago".
	TargetZone string
	// SourceZone is the IANA zone assumed for times with no zone annotation.
	SourceZone string
	// LocationZones maps country/region keywords found in venue text to
	// IANA zone names, used for "Local Time" annotations.
	LocationZones map[string]string
	// PerBout emits one event per bout instead of one per card.
	PerBout bool
	// Duration of each event. Zero means DefaultDuration.
	Duration time.Duration
	// CalName sets X-WR-CALNAME on the emitted calendar. Optional.
	CalName string
}

// Builder turns fight cards into an iCalendar document.
type Builder struct {
	target   *time.Location
	source   *time.Location
	zones    map[string]string
	perBout  bool
	duration time.Duration
	calName  string

	loaded map[string]*time.Location
	now    func() time.Time
}

// NewBuilder validates the configured zones and creates a Builder.
func NewBuilder(opts Options) (*Builder, error) {
	if opts.TargetZone == "" {
		return nil, fmt.Errorf("target time zone is required")
	}
	target, err := time.LoadLocation(opts.TargetZone)
	if err != nil {
		return nil, fmt.Errorf("loading target zone %q: %w", opts.TargetZone, err)
	}

	sourceName := opts.SourceZone
	if sourceName == "" {
		sourceName = "America/New_York"
	}
	source, err := time.LoadLocation(sourceName)
	if err != nil {
		return nil, fmt.Errorf("loading source zone %q: %w", sourceName, err)
	}

	dur := opts.Duration
	if dur <= 0 {
		dur = DefaultDuration
	}

	return &Builder{
		target:   target,
		source:   source,
		zones:    opts.LocationZones,
		perBout:  opts.PerBout,
		duration: dur,
		calName:  opts.CalName,
		loaded:   make(map[string]*time.Location),
		now:      time.Now,
	}, nil
}

// Result holds the built calendar plus per-record conversion failures.
type Result struct {
	Calendar   *ics.Calendar
	EventCount int
	Skipped    []*TimeConversionError
}

// Build converts cards into calendar events. Records whose time falls in a
// DST gap are skipped and reported in Result.Skipped; Build fails only when
// no card at all could be converted.
func (b *Builder) Build(cards []*schedule.Card) (*Result, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(prodID)
	cal.SetCalscale("GREGORIAN")
	if b.calName != "" {
		cal.SetXWRCalName(b.calName)
	}

	result := &Result{Calendar: cal}
	stamp := b.now().UTC()

	for _, card := range cards {
		if b.perBout && len(card.Bouts) > 0 {
			for i := range card.Bouts {
				if err := b.addBoutEvent(cal, card, i, stamp); err != nil {
					result.Skipped = append(result.Skipped, err)
					continue
				}
				result.EventCount++
			}
			continue
		}
		if err := b.addCardEvent(cal, card, stamp); err != nil {
			result.Skipped = append(result.Skipped, err)
			continue
		}
		result.EventCount++
	}

	if result.EventCount == 0 {
		return nil, fmt.Errorf("no cards could be converted to calendar events (%d skipped)", len(result.Skipped))
	}
	return result, nil
}

// WriteFile serializes the calendar to path, overwriting any existing file.
func (r *Result) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(r.Calendar.Serialize()), 0644); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

func (b *Builder) addCardEvent(cal *ics.Calendar, card *schedule.Card, stamp time.Time) *TimeConversionError {
	clock, zone := b.cardStart(card)
	start, cerr := b.localize(card, clock, zone)
	if cerr != nil {
		return cerr
	}

	uid := fmt.Sprintf("%s-%s@%s", card.Date.Format("20060102"), card.Slug(), uidDomain)
	ev := cal.AddEvent(uid)
	b.fillEvent(ev, start, stamp, card.Title(), card, cardDescription(card))
	return nil
}

func (b *Builder) addBoutEvent(cal *ics.Calendar, card *schedule.Card, idx int, stamp time.Time) *TimeConversionError {
	bout := &card.Bouts[idx]

	clock, zone := bout.Time, bout.Zone
	if clock == nil {
		clock, zone = b.cardStart(card)
	}
	start, cerr := b.localize(card, clock, zone)
	if cerr != nil {
		return cerr
	}

	title := strings.Join(bout.Fighters, " vs ")
	uid := fmt.Sprintf("%s-%s-%d@%s", card.Date.Format("20060102"), card.Slug(), idx+1, uidDomain)
	ev := cal.AddEvent(uid)
	desc := boutDescription(card, bout)
	b.fillEvent(ev, start, stamp, title, card, desc)
	return nil
}

func (b *Builder) fillEvent(ev *ics.VEvent, start, stamp time.Time, title string, card *schedule.Card, desc string) {
	ev.SetDtStampTime(stamp)
	ev.SetStartAt(start)
	ev.SetEndAt(start.Add(b.duration))
	ev.SetSummary(title)
	if card.Venue != "" {
		ev.SetLocation(card.Venue)
	}
	ev.SetDescription(desc)
	ev.SetURL(sourceURL)
}

// cardStart picks the card's start time: the announced ringwalk, otherwise
// the first bout line carrying a time, otherwise nil (default start).
func (b *Builder) cardStart(card *schedule.Card) (*schedule.Clock, schedule.ZoneHint) {
	if card.Ringwalk != nil {
		return card.Ringwalk, card.RingwalkZone
	}
	for i := range card.Bouts {
		if card.Bouts[i].Time != nil {
			return card.Bouts[i].Time, card.Bouts[i].Zone
		}
	}
	return nil, schedule.ZoneSource
}

// localize builds the start instant: the clock interpreted in its quoted
// zone on the card's date, converted to the target zone. A nil clock means
// the default start hour directly in the target zone.
func (b *Builder) localize(card *schedule.Card, clock *schedule.Clock, zone schedule.ZoneHint) (time.Time, *TimeConversionError) {
	day := card.Date
	if clock == nil {
		return time.Date(day.Year(), day.Month(), day.Day(), DefaultStartHour, 0, 0, 0, b.target), nil
	}

	loc := b.zoneFor(zone, card.Venue)
	t := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour, clock.Minute, 0, 0, loc)
	if t.Hour() != clock.Hour || t.Minute() != clock.Minute {
		// time.Date normalized a nonexistent instant: DST spring-forward gap.
		return time.Time{}, &TimeConversionError{
			CardID: card.ID,
			Day:    day,
			Clock:  *clock,
			Zone:   loc.String(),
		}
	}
	return t.In(b.target), nil
}

// zoneFor resolves a zone hint to a concrete location. "Local Time"
// annotations go through the venue keyword table; an unknown venue falls
// back to the source zone.
func (b *Builder) zoneFor(zone schedule.ZoneHint, venue string) *time.Location {
	switch zone {
	case schedule.ZoneET:
		return b.load("America/New_York")
	case schedule.ZoneUK:
		return b.load("Europe/London")
	case schedule.ZoneLocal:
		lower := strings.ToLower(venue)
		for keyword, name := range b.zones {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				if loc := b.load(name); loc != nil {
					return loc
				}
			}
		}
		return b.source
	default:
		return b.source
	}
}

func (b *Builder) load(name string) *time.Location {
	if loc, ok := b.loaded[name]; ok {
		return loc
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		loc = b.source
	}
	b.loaded[name] = loc
	return loc
}

func cardDescription(card *schedule.Card) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Date: %s\n", card.Date.Format("January 2, 2006"))
	if card.Venue != "" {
		fmt.Fprintf(&sb, "Location: %s\n", card.Venue)
	}
	if card.Broadcaster != "" {
		fmt.Fprintf(&sb, "TV: %s\n", card.Broadcaster)
	}
	sb.WriteString("\n")
	sb.WriteString(card.Raw)
	sb.WriteString("\n\nSource: Boxing247.com")
	return sb.String()
}

func boutDescription(card *schedule.Card, bout *schedule.Bout) string {
	var sb strings.Builder
	if bout.Detail != "" {
		sb.WriteString(bout.Detail)
		sb.WriteString("\n\n")
	}
	sb.WriteString(cardDescription(card))
	return sb.String()
}
