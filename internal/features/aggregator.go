// Package features computes point-in-time fighter profiles from raw fight
// history. A profile as-of date D is built only from fights strictly before
// D; nothing on or after D may leak in.
package features

import (
	"fmt"
	"sort"
	"time"

	"github.com/a-bakhtine/UFC-predictor/internal/model"
)

// Store is the read-only fight record store the aggregator pulls from.
type Store interface {
	GetFighter(id string) (*model.Fighter, error)
	GetFightHistory(fighterID string, before time.Time) ([]model.HistoryRow, error)
}

// Aggregator resolves fighter profiles against a store.
type Aggregator struct {
	store Store
}

// New returns an Aggregator reading from the given store.
func New(store Store) *Aggregator {
	return &Aggregator{store: store}
}

// Profile computes a fighter's profile as of the reference date. Unknown
// fighter ids surface as model.ErrNotFound; thin or zero-time histories
// degrade to unknown-flagged metrics, never to errors.
func (a *Aggregator) Profile(fighterID string, asOf time.Time, w model.Window) (*model.FighterProfile, error) {
	history, err := a.store.GetFightHistory(fighterID, asOf)
	if err != nil {
		return nil, fmt.Errorf("fight history for %s: %w", fighterID, err)
	}
	return Build(fighterID, asOf, w, history), nil
}

// Build computes a profile from the given history rows. Rows on or after the
// reference date are discarded regardless of what the caller passed in; the
// remainder is ordered by (event date, fight id) before window selection so
// "last N" never depends on input iteration order.
func Build(fighterID string, asOf time.Time, w model.Window, history []model.HistoryRow) *model.FighterProfile {
	eligible := make([]model.HistoryRow, 0, len(history))
	for _, h := range history {
		if h.Fight.EventDate.Before(asOf) {
			eligible = append(eligible, h)
		}
	}
	sort.Slice(eligible, func(i, j int) bool {
		if !eligible[i].Fight.EventDate.Equal(eligible[j].Fight.EventDate) {
			return eligible[i].Fight.EventDate.Before(eligible[j].Fight.EventDate)
		}
		return eligible[i].Fight.ID < eligible[j].Fight.ID
	})

	// Recent-form window: last N of the date-ascending history. Fewer than N
	// eligible fights means all of them — no padding, no failure.
	if w.N > 0 && len(eligible) > w.N {
		eligible = eligible[len(eligible)-w.N:]
	}

	p := &model.FighterProfile{
		FighterID: fighterID,
		AsOf:      asOf,
		Window:    w,
		Fights:    len(eligible),
	}

	var (
		timeSec, control                       int
		sigLanded, sigAttempted, sigAbsorbed   int
		totalLanded                            int
		tdLanded, tdAttempted, subs, knockdown int
	)
	for _, h := range eligible {
		if h.Won() {
			p.Wins++
		}
		timeSec += h.Own.TimeFoughtSeconds
		control += h.Own.ControlTimeSeconds
		sigLanded += h.Own.SigStrikesLanded
		sigAttempted += h.Own.SigStrikesAttempted
		totalLanded += h.Own.TotalStrikesLanded
		tdLanded += h.Own.TakedownsLanded
		tdAttempted += h.Own.TakedownsAttempted
		subs += h.Own.SubAttempts
		knockdown += h.Own.Knockdowns
		// Absorbed strikes come from the opponent's stat line of the same fight.
		sigAbsorbed += h.Opponent.SigStrikesLanded
	}

	minutes := float64(timeSec) / 60.0

	p.WinRate = model.Rate(float64(p.Wins), float64(p.Fights))
	p.SigStrikesPerMin = model.Rate(float64(sigLanded), minutes)
	p.TotalStrikesPerMin = model.Rate(float64(totalLanded), minutes)
	p.SigStrikeAccuracy = model.Rate(float64(sigLanded), float64(sigAttempted))
	p.TakedownAccuracy = model.Rate(float64(tdLanded), float64(tdAttempted))
	p.TakedownsPer15Min = model.Rate(float64(tdLanded)*15, minutes)
	p.SubAttemptsPer15Min = model.Rate(float64(subs)*15, minutes)
	p.KnockdownsPer15Min = model.Rate(float64(knockdown)*15, minutes)
	p.ControlRatio = model.Rate(float64(control), float64(timeSec))
	p.SigStrikeDiffPerMin = model.Rate(float64(sigLanded-sigAbsorbed), minutes)

	return p
}

// FieldNames is the canonical ordered list of flattenable profile fields.
// Dataset column order follows this list.
var FieldNames = []string{
	"fights_count",
	"wins_count",
	"win_rate",
	"sig_strikes_per_min",
	"total_strikes_per_min",
	"sig_strike_accuracy",
	"td_accuracy",
	"td_per15",
	"sub_attempts_per15",
	"knockdowns_per15",
	"control_ratio",
	"sig_strike_diff_per_min",
}

// Flatten turns a profile into ordered named features. fields narrows the
// output to a subset of FieldNames (nil or empty means all); an unrecognized
// field name is a configuration error.
func Flatten(p *model.FighterProfile, fields []string) ([]model.Feature, error) {
	all := map[string]model.Metric{
		"fights_count":            {Value: float64(p.Fights), Known: true},
		"wins_count":              {Value: float64(p.Wins), Known: true},
		"win_rate":                p.WinRate,
		"sig_strikes_per_min":     p.SigStrikesPerMin,
		"total_strikes_per_min":   p.TotalStrikesPerMin,
		"sig_strike_accuracy":     p.SigStrikeAccuracy,
		"td_accuracy":             p.TakedownAccuracy,
		"td_per15":                p.TakedownsPer15Min,
		"sub_attempts_per15":      p.SubAttemptsPer15Min,
		"knockdowns_per15":        p.KnockdownsPer15Min,
		"control_ratio":           p.ControlRatio,
		"sig_strike_diff_per_min": p.SigStrikeDiffPerMin,
	}

	selected := fields
	if len(selected) == 0 {
		selected = FieldNames
	}

	out := make([]model.Feature, 0, len(selected))
	for _, name := range selected {
		m, ok := all[name]
		if !ok {
			return nil, fmt.Errorf("unknown feature field %q", name)
		}
		out = append(out, model.Feature{Name: p.Window.String() + "_" + name, Metric: m})
	}
	return out, nil
}
