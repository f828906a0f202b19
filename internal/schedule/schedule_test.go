package schedule

import (
	"testing"
	"time"
)

func TestGenerateID(t *testing.T) {
	date := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	id1 := GenerateID(date, "MSG, ESPN\nAlvarez vs Smith")
	id2 := GenerateID(date, "MSG, ESPN\nAlvarez vs Smith")
	if id1 != id2 {
		t.Error("IDs should be deterministic for identical input")
	}

	id3 := GenerateID(date, "MSG, ESPN\nAlvarez vs Jones")
	if id1 == id3 {
		t.Error("different raw text should produce different IDs")
	}

	other := date.AddDate(0, 0, 1)
	id4 := GenerateID(other, "MSG, ESPN\nAlvarez vs Smith")
	if id1 == id4 {
		t.Error("different dates should produce different IDs")
	}
}

func TestCardTitle(t *testing.T) {
	card := &Card{
		Venue: "MSG",
		Bouts: []Bout{{Fighters: []string{"Alvarez", "Smith"}}},
	}
	if got := card.Title(); got != "Alvarez vs Smith" {
		t.Errorf("Title() = %q, want %q", got, "Alvarez vs Smith")
	}

	empty := &Card{Venue: "MSG"}
	if got := empty.Title(); got != "Boxing card - MSG" {
		t.Errorf("Title() = %q, want %q", got, "Boxing card - MSG")
	}
}

func TestCardSlug(t *testing.T) {
	card := &Card{
		Venue: "Riyadh, Saudi Arabia",
		Bouts: []Bout{{Fighters: []string{"Artur Beterbiev", "Dmitry Bivol"}}},
	}
	want := "riyadh-saudi-arabia-artur-beterbiev-dmitry-bivol"
	if got := card.Slug(); got != want {
		t.Errorf("Slug() = %q, want %q", got, want)
	}
}

func TestClockString(t *testing.T) {
	c := Clock{Hour: 20, Minute: 5}
	if got := c.String(); got != "20:05" {
		t.Errorf("String() = %q, want %q", got, "20:05")
	}
}
