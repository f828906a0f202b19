package schedule

import "sort"

// Snapshot represents the parsed schedule at a point in time.
type Snapshot struct {
	Cards     map[string]*Card `json:"cards"` // keyed by Card.ID
	UpdatedAt string           `json:"updated_at"`
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Cards: make(map[string]*Card),
	}
}

// CreateSnapshot builds a snapshot from a list of cards.
func CreateSnapshot(cards []*Card, updatedAt string) *Snapshot {
	snap := NewSnapshot()
	snap.UpdatedAt = updatedAt
	for _, c := range cards {
		snap.Cards[c.ID] = c
	}
	return snap
}

// DiffResult contains the cards that appeared since the previous snapshot.
type DiffResult struct {
	NewCards []*Card
}

// Diff compares the current schedule against a previous snapshot and
// returns the fight cards not seen before, ordered by date then venue.
func Diff(previous *Snapshot, current []*Card) *DiffResult {
	result := &DiffResult{NewCards: make([]*Card, 0)}

	if previous == nil {
		previous = NewSnapshot()
	}

	for _, c := range current {
		if _, exists := previous.Cards[c.ID]; !exists {
			result.NewCards = append(result.NewCards, c)
		}
	}

	sort.Slice(result.NewCards, func(i, j int) bool {
		a, b := result.NewCards[i], result.NewCards[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.Venue < b.Venue
	})

	return result
}
