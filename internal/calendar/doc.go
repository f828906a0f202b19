// Package calendar converts fight cards into time-zone-normalized
// iCalendar events.
//
// Listed times are interpreted in the zone they were quoted in (ET, UK, or
// venue-local via a country lookup table) for the card's specific calendar
// date, then converted to the configured target zone. Both sides use real
// IANA zone data, so dates on either side of a DST transition convert with
// that date's actual offset.
package calendar
