// Package storage provides JSON-based persistence for schedule snapshots.
//
// A snapshot records the fight cards seen on the most recent run, so the
// next run can report newly announced cards. Snapshots live in a single
// snapshot.json under the data directory (~/.local/share/boxing-calendar
// by default).
package storage
