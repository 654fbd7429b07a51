package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []Status{"", "done", "Playing"} {
		if s.Valid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestPlatformValid(t *testing.T) {
	for _, p := range []Platform{"", PlatformSteam, PlatformEpic, PlatformGOG} {
		if !p.Valid() {
			t.Errorf("%q should be valid", p)
		}
	}
	if Platform("itch").Valid() {
		t.Error("unknown storefront should be invalid")
	}
}

func TestNormalizeGenres(t *testing.T) {
	got := NormalizeGenres([]Genre{GenreAction, GenreRPG, GenreAction, GenreIndie, GenreRPG})
	want := []Genre{GenreAction, GenreRPG, GenreIndie}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestMatchesQuery(t *testing.T) {
	game := Game{
		Title: "The Witcher 3: Wild Hunt",
		Genre: []Genre{GenreRPG, GenreAction},
	}

	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"witcher", true},
		{"WILD", true},
		{"rpg", true},
		{"act", true},
		{"puzzle", false},
		{"witcher 4", false},
	}

	for _, tt := range tests {
		if got := game.MatchesQuery(tt.query); got != tt.want {
			t.Errorf("MatchesQuery(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestDraftValidate(t *testing.T) {
	score := 8
	good := Draft{
		Title:     "Hades",
		Status:    StatusBacklog,
		Platform:  PlatformSteam,
		Genre:     []Genre{GenreAction},
		UserScore: &score,
		Goals:     []Goal{{Description: "escape once"}},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}

	badScore := 0
	tests := []struct {
		name  string
		draft Draft
		field string
	}{
		{"blank title", Draft{Title: " ", Status: StatusBacklog}, "title"},
		{"bad status", Draft{Title: "x", Status: "done"}, "status"},
		{"bad platform", Draft{Title: "x", Status: StatusBacklog, Platform: "itch"}, "platform"},
		{"bad genre", Draft{Title: "x", Status: StatusBacklog, Genre: []Genre{"Roguelike"}}, "genre"},
		{"score below range", Draft{Title: "x", Status: StatusBacklog, UserScore: &badScore}, "userScore"},
		{"blank goal", Draft{Title: "x", Status: StatusBacklog, Goals: []Goal{{Description: "  "}}}, "goal.description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("want ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Fatalf("field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestPatchValidate(t *testing.T) {
	if err := (Patch{}).Validate(); err != nil {
		t.Fatalf("empty patch must validate: %v", err)
	}

	blank := "  "
	if err := (Patch{Title: &blank}).Validate(); err == nil {
		t.Fatal("blank title patch must be rejected")
	}

	bad := Status("done")
	if err := (Patch{Status: &bad}).Validate(); err == nil {
		t.Fatal("unknown status patch must be rejected")
	}

	meta := 101
	if err := (Patch{MetacriticScore: &meta}).Validate(); err == nil {
		t.Fatal("metacritic above 100 must be rejected")
	}
}

func TestGameCloneIsDeep(t *testing.T) {
	score := 9
	started := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	game := Game{
		ID:          "g1",
		Title:       "Hades",
		Genre:       []Genre{GenreAction},
		UserScore:   &score,
		DateStarted: &started,
		Goals:       []Goal{{ID: "goal1", Description: "escape"}},
	}

	clone := game.Clone()
	clone.Genre[0] = GenrePuzzle
	*clone.UserScore = 1
	*clone.DateStarted = started.Add(time.Hour)
	clone.Goals[0].Completed = true

	if game.Genre[0] != GenreAction {
		t.Error("clone shares the genre slice")
	}
	if *game.UserScore != 9 {
		t.Error("clone shares the userScore pointer")
	}
	if !game.DateStarted.Equal(started) {
		t.Error("clone shares the dateStarted pointer")
	}
	if game.Goals[0].Completed {
		t.Error("clone shares the goals slice")
	}
}

func TestGameJSONShape(t *testing.T) {
	started := time.Date(2024, 2, 1, 18, 30, 0, 0, time.UTC)
	game := Game{
		ID:          "g1",
		Title:       "Hades",
		Status:      StatusPlaying,
		Platform:    PlatformSteam,
		Genre:       []Genre{GenreAction},
		Goals:       []Goal{},
		DateAdded:   time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
		DateStarted: &started,
	}

	data, err := json.Marshal(game)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"id", "title", "status", "platform", "genre", "goals", "dateAdded", "dateStarted"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing %q in serialized game", key)
		}
	}
	// Unset optionals stay off the wire.
	for _, key := range []string{"dateCompleted", "userScore", "notes", "imageUrl"} {
		if _, ok := raw[key]; ok {
			t.Errorf("unset %q should be omitted", key)
		}
	}

	var back Game
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back.DateStarted.Equal(started) {
		t.Fatalf("dateStarted did not round-trip: %v", back.DateStarted)
	}
}
