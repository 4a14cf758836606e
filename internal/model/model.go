package model

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a referenced fighter or fight id is absent
// from the store. Lookup failures are never silently skipped.
var ErrNotFound = errors.New("not found")

// Fighter is one athlete, keyed by the opaque ufcstats id.
type Fighter struct {
	ID   string
	Name string
}

// FightRecord is one completed (or scheduled) bout. WinnerID is empty for
// draws, no-contests, and unscored fights.
type FightRecord struct {
	ID               string
	EventName        string
	EventDate        time.Time
	WeightClass      string
	Fighter1ID       string
	Fighter2ID       string
	WinnerID         string
	Method           string
	RoundEnded       int
	TimeEndedSeconds int
}

// Decisive reports whether the fight has a resolvable winner.
func (f *FightRecord) Decisive() bool {
	return f.WinnerID != ""
}

// StatLine holds one fighter's recorded performance numbers for one fight.
// Exactly two stat lines exist per stored fight.
type StatLine struct {
	FightID               string
	FighterID             string
	Knockdowns            int
	SigStrikesLanded      int
	SigStrikesAttempted   int
	TotalStrikesLanded    int
	TotalStrikesAttempted int
	TakedownsLanded       int
	TakedownsAttempted    int
	SubAttempts           int
	ControlTimeSeconds    int
	TimeFoughtSeconds     int
}

// HistoryRow is one prior fight from a fighter's perspective: the fight
// record, the fighter's own stat line, and the opponent's stat line from the
// same fight (needed for absorbed-stat differentials).
type HistoryRow struct {
	Fight    FightRecord
	Own      StatLine
	Opponent StatLine
}

// Won reports whether the fighter owning this row won the fight.
func (h *HistoryRow) Won() bool {
	return h.Fight.WinnerID != "" && h.Fight.WinnerID == h.Own.FighterID
}

// Metric is a rate or ratio aggregate whose denominator may be zero.
// Known=false means the value must not be read as a measured rate (Rate
// leaves the 0 sentinel; derived diffs keep their raw arithmetic); consumers
// see the flag as a *_known dataset column.
type Metric struct {
	Value float64
	Known bool
}

// Rate divides num by den, returning an unknown Metric when den is zero.
func Rate(num, den float64) Metric {
	if den == 0 {
		return Metric{}
	}
	return Metric{Value: num / den, Known: true}
}

// Window selects which slice of a fighter's history a profile aggregates.
// N == 0 means the full career; N >= 1 means the last N eligible fights.
type Window struct {
	N int
}

// Career aggregates all eligible prior fights.
var Career = Window{}

// LastN aggregates the most recent n eligible prior fights.
func LastN(n int) Window { return Window{N: n} }

func (w Window) String() string {
	if w.N == 0 {
		return "career"
	}
	return "recent"
}

// FighterProfile is a snapshot of a fighter's aggregated form as of a
// reference date, built only from fights strictly before that date.
type FighterProfile struct {
	FighterID string
	AsOf      time.Time
	Window    Window

	// Fights is the number of prior fights considered; for a recent-form
	// window it may be smaller than Window.N (incomplete history).
	Fights int
	Wins   int

	WinRate             Metric
	SigStrikesPerMin    Metric
	TotalStrikesPerMin  Metric
	SigStrikeAccuracy   Metric
	TakedownAccuracy    Metric
	TakedownsPer15Min   Metric
	SubAttemptsPer15Min Metric
	KnockdownsPer15Min  Metric
	ControlRatio        Metric
	SigStrikeDiffPerMin Metric // landed minus absorbed per minute
}

// Feature is one named profile value flattened for dataset assembly.
type Feature struct {
	Name string
	Metric
}

// MatchupExample is one training row: both fighters' flattened features,
// elementwise differences, and the did-fighter1-win label. Each decisive
// fight produces exactly two examples (the original and its mirror).
type MatchupExample struct {
	FightID      string
	EventDate    time.Time
	WeightClass  string
	Fighter1ID   string
	Fighter1Name string
	Fighter2ID   string
	Fighter2Name string
	Mirror       bool

	F1    []Feature
	F2    []Feature
	Diffs []Feature

	F1Win int
}
