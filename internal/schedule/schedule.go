package schedule

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"
)

// ZoneHint records which time zone a listed time was quoted in.
type ZoneHint string

const (
	// ZoneSource means no zone annotation was present; the time is taken
	// to be in the configured default source zone.
	ZoneSource ZoneHint = ""
	// ZoneET marks a time quoted as US Eastern ("8:00 PM ET").
	ZoneET ZoneHint = "ET"
	// ZoneUK marks a time quoted as UK time ("1:00 AM UK").
	ZoneUK ZoneHint = "UK"
	// ZoneLocal marks a time quoted as venue-local ("7:00 PM Local Time").
	ZoneLocal ZoneHint = "LOCAL"
)

// Clock is a time of day in 24-hour form, detached from any date or zone.
type Clock struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Bout is a single matchup within a fight card.
type Bout struct {
	Fighters []string `json:"fighters"`
	Time     *Clock   `json:"time,omitempty"`
	Zone     ZoneHint `json:"zone,omitempty"`
	// Detail is the full bout line as it appeared in the source,
	// including rounds and title information.
	Detail string `json:"detail,omitempty"`
}

// Card represents one fight night: a date, a venue, and its bouts.
type Card struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"` // calendar date, midnight UTC
	Venue       string    `json:"venue"`
	Broadcaster string    `json:"broadcaster,omitempty"`
	Bouts       []Bout    `json:"bouts"`

	// Ringwalk is the card-level start time extracted from the broadcast
	// annotation, with the zone it was quoted in.
	Ringwalk     *Clock   `json:"ringwalk,omitempty"`
	RingwalkZone ZoneHint `json:"ringwalk_zone,omitempty"`

	// Raw preserves the card's full source text, including lines that
	// matched no structured pattern.
	Raw string `json:"raw"`
}

// GenerateID creates a deterministic ID for a card from its date and raw text.
func GenerateID(date time.Time, raw string) string {
	h := sha1.New()
	h.Write([]byte(date.Format("2006-01-02") + "|" + raw))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// MainBout returns the card's headline matchup, or nil for a card whose
// bout lines all failed structured parsing.
func (c *Card) MainBout() *Bout {
	if len(c.Bouts) == 0 {
		return nil
	}
	return &c.Bouts[0]
}

// Title derives a human-readable card title: the main bout if one parsed,
// otherwise a generic label with the venue.
func (c *Card) Title() string {
	if b := c.MainBout(); b != nil && len(b.Fighters) == 2 {
		return b.Fighters[0] + " vs " + b.Fighters[1]
	}
	return "Boxing card - " + c.Venue
}

// Slug produces a lowercase, hyphenated identifier fragment from the card
// title and venue, used in calendar event UIDs.
func (c *Card) Slug() string {
	base := c.Venue
	if b := c.MainBout(); b != nil {
		base = base + " " + strings.Join(b.Fighters, " ")
	}
	var sb strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(base) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				sb.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(sb.String(), "-")
}
