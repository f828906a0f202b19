package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrNoSchedule is returned when the input contains no recognizable date
// headers at all, i.e. it does not resemble the fight-schedule page.
var ErrNoSchedule = errors.New("no date headers found in schedule text")

const monthsAlt = `jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec`

var (
	// headerRe matches a date header at the start of a line:
	// "February 5:", "Fri, Mar 1", "March 1, 2026: Las Vegas ..."
	headerRe = regexp.MustCompile(`(?i)^(?:(?:mon|tue|wed|thu|fri|sat|sun)[a-z]*\.?,?\s+)?(` + monthsAlt + `)[a-z]*\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s*(\d{4}))?\s*:?\s*(.*)$`)

	// inlineHeaderRe finds "Month Day:" tokens inside a single text blob so
	// the blob can be cut into per-card lines. The full month name plus a
	// colon keeps ordinary month mentions from splitting a card.
	inlineHeaderRe = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}(?:,\s*\d{4})?:`)

	// broadcastRe captures "Venue (Live on NETWORK | at 8:00 PM ET ...)" style
	// annotations: prefix, parenthesized info, trailing fights text.
	broadcastRe = regexp.MustCompile(`^(.*?)\(([^)]*)\)(.*)$`)

	liveOnRe = regexp.MustCompile(`(?i)\blive on\s+([^|)/]+)`)

	// boutRe finds "A versus B" / "A vs B" matchups. Fighter names are runs
	// of capitalized words so that surrounding prose does not bleed in.
	boutRe = regexp.MustCompile(`([A-Z][\w.'-]*(?:\s+[A-Z][\w.'-]*){0,3})\s+(?:vs\.?|versus)\s+([A-Z][\w.'-]*(?:\s+[A-Z][\w.'-]*){0,3})`)

	// timeRe matches a time-of-day token like "8:00 PM" or "10:30 a.m.".
	timeRe = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*([ap])\.?m\.?\b`)

	// Ringwalk annotations inside broadcast info. The context between the
	// time and the zone tag must not cross a "/" or "|" separator, so
	// "7:00 PM Local Time / 8:00 PM ET" attributes each time correctly.
	etRingwalkRe    = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*([ap])\.?m\.?[^/|)]{0,40}?\bET\b`)
	ukRingwalkRe    = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*([ap])\.?m\.?[^/|)]{0,40}?\bUK\b`)
	localRingwalkRe = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*([ap])\.?m\.?[^/|)]{0,40}?\blocal\b`)

	etTagRe    = regexp.MustCompile(`(?i)\bET\b`)
	ukTagRe    = regexp.MustCompile(`(?i)\bUK\b`)
	localTagRe = regexp.MustCompile(`(?i)\blocal\b`)

	// trailingDecorRe strips flag emoji and similar decoration from the end
	// of a venue string.
	trailingDecorRe = regexp.MustCompile(`[^\p{L}\p{N}\s,.]+\s*$`)

	whitespaceRe = regexp.MustCompile(`[ \t]+`)
)

// Parser converts raw schedule page text into fight cards.
type Parser struct {
	// Now supplies the reference time used to infer the year for date
	// headers that carry none. Defaults to time.Now.
	Now func() time.Time
}

// NewParser creates a Parser with default settings.
func NewParser() *Parser {
	return &Parser{Now: time.Now}
}

// Parse segments raw page text into fight cards. Text before the first date
// header is dropped; lines inside a card that match no known pattern are
// preserved in the card's Raw text but produce no structured bout. Returns
// ErrNoSchedule when the text contains no date headers at all.
func (p *Parser) Parse(raw string) ([]*Card, error) {
	lines := splitLines(raw)

	var cards []*Card
	var current *Card
	var currentLines []string

	flush := func() {
		if current == nil {
			return
		}
		p.finishCard(current, currentLines)
		cards = append(cards, current)
		current = nil
		currentLines = nil
	}

	for _, line := range lines {
		if m := headerRe.FindStringSubmatch(line); m != nil {
			flush()
			date, err := p.resolveDate(m[1], m[2], m[3])
			if err != nil {
				// Header-shaped line with an impossible date: keep it as
				// plain text in the current card, or drop it before one.
				if current != nil {
					currentLines = append(currentLines, line)
				}
				continue
			}
			current = &Card{Date: date}
			currentLines = []string{line}
			if rest := strings.TrimSpace(m[4]); rest != "" {
				currentLines = append(currentLines, rest)
			}
			continue
		}
		if current != nil {
			currentLines = append(currentLines, line)
		}
	}
	flush()

	if len(cards) == 0 {
		return nil, fmt.Errorf("parsing schedule: %w", ErrNoSchedule)
	}
	return cards, nil
}

// splitLines normalizes the input into trimmed, non-empty lines. Inline
// blobs (the whole schedule rendered as one line) are cut apart at every
// "Month Day:" token first.
func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\U0001F4C5", "\n") // calendar emoji marker
	raw = inlineHeaderRe.ReplaceAllString(raw, "\n$0")

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(whitespaceRe.ReplaceAllString(line, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// finishCard extracts venue, broadcaster, ringwalk and bouts from the card's
// content lines. lines[0] is the header line itself.
func (p *Parser) finishCard(card *Card, lines []string) {
	card.Raw = strings.Join(lines, "\n")

	content := lines[1:]
	var boutText []string

	for i, line := range content {
		if m := broadcastRe.FindStringSubmatch(line); m != nil && card.Venue == "" && looksLikeBroadcast(m[2]) {
			card.Venue = cleanVenue(m[1])
			info := strings.TrimSpace(m[2])
			if lm := liveOnRe.FindStringSubmatch(info); lm != nil {
				card.Broadcaster = strings.TrimSpace(lm[1])
			}
			card.Ringwalk, card.RingwalkZone = extractRingwalk(info)
			if rest := strings.TrimSpace(m[3]); rest != "" {
				boutText = append(boutText, rest)
			}
			continue
		}
		if i == 0 && card.Venue == "" {
			if venue, network, ok := splitVenueLabel(line); ok {
				card.Venue = venue
				card.Broadcaster = network
				continue
			}
		}
		boutText = append(boutText, line)
	}

	for _, text := range boutText {
		card.Bouts = append(card.Bouts, extractBouts(text)...)
	}
	if card.ID == "" {
		card.ID = GenerateID(card.Date, card.Raw)
	}
}

// resolveDate builds a concrete calendar date from header tokens. Headers
// without a year get the current year, matching the source site's rolling
// schedule window.
func (p *Parser) resolveDate(monthTok, dayTok, yearTok string) (time.Time, error) {
	month, ok := monthByPrefix(monthTok)
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month %q", monthTok)
	}
	day, err := strconv.Atoi(dayTok)
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid day %q", dayTok)
	}

	year := p.Now().Year()
	if yearTok != "" {
		year, err = strconv.Atoi(yearTok)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid year %q", yearTok)
		}
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day {
		// time.Date normalized an overflow like February 30.
		return time.Time{}, fmt.Errorf("invalid date %s %d", month, day)
	}
	return date, nil
}

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

func monthByPrefix(tok string) (time.Month, bool) {
	tok = strings.ToLower(tok)
	if len(tok) > 3 {
		tok = tok[:3]
	}
	m, ok := months[tok]
	return m, ok
}

// looksLikeBroadcast reports whether parenthesized text is a broadcast/time
// annotation rather than incidental prose.
func looksLikeBroadcast(info string) bool {
	return liveOnRe.MatchString(info) || timeRe.MatchString(info)
}

// splitVenueLabel handles the compact "Venue, Network" label form, e.g.
// "MSG, ESPN". Lines containing a matchup or a time token are not labels.
func splitVenueLabel(line string) (venue, network string, ok bool) {
	if boutRe.MatchString(line) || timeRe.MatchString(line) {
		return "", "", false
	}
	idx := strings.LastIndex(line, ",")
	if idx <= 0 || idx == len(line)-1 {
		return "", "", false
	}
	venue = strings.TrimSpace(line[:idx])
	network = strings.TrimSpace(line[idx+1:])
	if venue == "" || network == "" || strings.Contains(network, " on ") {
		return "", "", false
	}
	return venue, network, true
}

func cleanVenue(s string) string {
	s = strings.TrimSpace(s)
	s = trailingDecorRe.ReplaceAllString(s, "")
	return strings.TrimRight(strings.TrimSpace(s), ",.")
}

// extractRingwalk pulls the announced start time out of broadcast info,
// preferring an ET annotation, then UK, then venue-local.
func extractRingwalk(info string) (*Clock, ZoneHint) {
	for _, cand := range []struct {
		re   *regexp.Regexp
		zone ZoneHint
	}{
		{etRingwalkRe, ZoneET},
		{ukRingwalkRe, ZoneUK},
		{localRingwalkRe, ZoneLocal},
	} {
		if m := cand.re.FindStringSubmatch(info); m != nil {
			if c := newClock(m[1], m[2], m[3]); c != nil {
				return c, cand.zone
			}
		}
	}
	return nil, ZoneSource
}

// extractBouts finds every "A versus B" matchup in a chunk of text. The
// chunk is sliced at each matchup so that rounds/title detail and a trailing
// time token attach to the right bout.
func extractBouts(text string) []Bout {
	locs := boutRe.FindAllStringSubmatchIndex(text, -1)
	bouts := make([]Bout, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		seg := strings.TrimSpace(text[loc[0]:end])
		b := Bout{
			Fighters: []string{text[loc[2]:loc[3]], text[loc[4]:loc[5]]},
			Detail:   strings.TrimRight(seg, " ,;"),
		}
		if m := timeRe.FindStringSubmatch(seg); m != nil {
			if c := newClock(m[1], m[2], m[3]); c != nil {
				b.Time = c
				b.Zone = zoneTag(seg)
			}
		}
		bouts = append(bouts, b)
	}
	return bouts
}

func zoneTag(seg string) ZoneHint {
	switch {
	case etTagRe.MatchString(seg):
		return ZoneET
	case ukTagRe.MatchString(seg):
		return ZoneUK
	case localTagRe.MatchString(seg):
		return ZoneLocal
	default:
		return ZoneSource
	}
}

// newClock converts a 12-hour time token into a Clock, or nil when the
// token is not a valid time of day.
func newClock(hourTok, minTok, meridiem string) *Clock {
	hour, err := strconv.Atoi(hourTok)
	if err != nil || hour < 1 || hour > 12 {
		return nil
	}
	min, err := strconv.Atoi(minTok)
	if err != nil || min < 0 || min > 59 {
		return nil
	}
	if hour == 12 {
		hour = 0
	}
	if strings.EqualFold(meridiem, "p") {
		hour += 12
	}
	return &Clock{Hour: hour, Minute: min}
}
