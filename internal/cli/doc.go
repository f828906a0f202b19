// Package cli implements the boxing-calendar command line interface.
//
// The root command runs the full pipeline: fetch the schedule page, parse
// it into fight cards, report cards that are new since the previous run,
// and write the time-zone-converted .ics file.
package cli
