// Package matchup turns completed fights into symmetric, leakage-free
// training examples and materializes them as a tabular dataset.
package matchup

import (
	"errors"
	"fmt"

	"github.com/a-bakhtine/UFC-predictor/internal/features"
	"github.com/a-bakhtine/UFC-predictor/internal/model"
)

// ErrSchemaDrift is returned when the two sides of a matchup produce
// different feature columns. That indicates an ingestion inconsistency and
// must fail the build rather than be zero-filled into fake signal.
var ErrSchemaDrift = errors.New("matchup feature schema drift")

// Store is the read side the assembler needs.
type Store interface {
	features.Store
	ListDecisiveFights() ([]model.FightRecord, error)
}

// Assembler builds MatchupExamples from completed fights.
type Assembler struct {
	store   Store
	agg     *features.Aggregator
	recentN int
	fields  []string
}

// NewAssembler returns an Assembler. recentN is the recent-form window size;
// fields narrows the profile fields used as dataset columns (nil means all).
func NewAssembler(store Store, recentN int, fields []string) *Assembler {
	return &Assembler{
		store:   store,
		agg:     features.New(store),
		recentN: recentN,
		fields:  fields,
	}
}

// SideFeatures computes one fighter's full pre-fight feature vector (career
// followed by recent-form) as of the reference date.
func (a *Assembler) SideFeatures(fighterID string, asOf model.FightRecord) ([]model.Feature, error) {
	career, err := a.agg.Profile(fighterID, asOf.EventDate, model.Career)
	if err != nil {
		return nil, err
	}
	recent, err := a.agg.Profile(fighterID, asOf.EventDate, model.LastN(a.recentN))
	if err != nil {
		return nil, err
	}

	cf, err := features.Flatten(career, a.fields)
	if err != nil {
		return nil, err
	}
	rf, err := features.Flatten(recent, a.fields)
	if err != nil {
		return nil, err
	}
	return append(cf, rf...), nil
}

// Assemble produces the two examples (original + mirror) for a decisive
// fight. Fights without a resolvable winner contribute zero examples.
func (a *Assembler) Assemble(fight model.FightRecord) ([]model.MatchupExample, error) {
	if !fight.Decisive() {
		return nil, nil
	}

	f1, err := a.store.GetFighter(fight.Fighter1ID)
	if err != nil {
		return nil, fmt.Errorf("fight %s: %w", fight.ID, err)
	}
	f2, err := a.store.GetFighter(fight.Fighter2ID)
	if err != nil {
		return nil, fmt.Errorf("fight %s: %w", fight.ID, err)
	}

	side1, err := a.SideFeatures(fight.Fighter1ID, fight)
	if err != nil {
		return nil, fmt.Errorf("fight %s: %w", fight.ID, err)
	}
	side2, err := a.SideFeatures(fight.Fighter2ID, fight)
	if err != nil {
		return nil, fmt.Errorf("fight %s: %w", fight.ID, err)
	}

	diffs, err := diffFeatures(fight.ID, side1, side2)
	if err != nil {
		return nil, err
	}

	label := 0
	if fight.WinnerID == fight.Fighter1ID {
		label = 1
	}

	original := model.MatchupExample{
		FightID:      fight.ID,
		EventDate:    fight.EventDate,
		WeightClass:  fight.WeightClass,
		Fighter1ID:   f1.ID,
		Fighter1Name: f1.Name,
		Fighter2ID:   f2.ID,
		Fighter2Name: f2.Name,
		F1:           side1,
		F2:           side2,
		Diffs:        diffs,
		F1Win:        label,
	}

	return []model.MatchupExample{original, mirrorOf(original)}, nil
}

// diffFeatures pairs the two sides positionally and computes side1 - side2.
// A name mismatch at any position is schema drift: the sides were built from
// inconsistent ingestion state and the matchup must fail, not zero-fill.
// The subtraction always uses the stored values, sentinels included; the
// diff's Known flag is set only when both inputs are known, so consumers can
// tell a measured difference from one involving an undefined rate.
func diffFeatures(fightID string, side1, side2 []model.Feature) ([]model.Feature, error) {
	if len(side1) != len(side2) {
		return nil, fmt.Errorf("fight %s: %d vs %d feature columns: %w",
			fightID, len(side1), len(side2), ErrSchemaDrift)
	}
	diffs := make([]model.Feature, len(side1))
	for i := range side1 {
		if side1[i].Name != side2[i].Name {
			return nil, fmt.Errorf("fight %s: column %q vs %q: %w",
				fightID, side1[i].Name, side2[i].Name, ErrSchemaDrift)
		}
		d := model.Feature{Name: "diff_" + side1[i].Name}
		if side1[i].Known && side2[i].Known {
			d.Known = true
		}
		d.Value = side1[i].Value - side2[i].Value
		diffs[i] = d
	}
	return diffs, nil
}

// mirrorOf swaps the two sides, sign-flips every diff, and inverts the label.
// This removes the arbitrary who-is-listed-first bias: without it a model
// could learn column position instead of fighter strength.
func mirrorOf(ex model.MatchupExample) model.MatchupExample {
	m := ex
	m.Mirror = true
	m.Fighter1ID, m.Fighter2ID = ex.Fighter2ID, ex.Fighter1ID
	m.Fighter1Name, m.Fighter2Name = ex.Fighter2Name, ex.Fighter1Name
	m.F1, m.F2 = ex.F2, ex.F1
	m.F1Win = 1 - ex.F1Win

	m.Diffs = make([]model.Feature, len(ex.Diffs))
	for i, d := range ex.Diffs {
		v := -d.Value
		if v == 0 {
			v = 0 // avoid -0 leaking into the dataset encoding
		}
		m.Diffs[i] = model.Feature{
			Name:   d.Name,
			Metric: model.Metric{Value: v, Known: d.Known},
		}
	}
	return m
}
