package matchup

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/a-bakhtine/UFC-predictor/internal/model"
)

// Dataset is the materialized training table: a fixed column schema and one
// row per MatchupExample, in a stable deterministic order.
type Dataset struct {
	Columns  []string
	Examples []model.MatchupExample
}

// Materializer iterates all decisive fights, assembles their examples in
// parallel, and concatenates them in stable (event date, fight id, mirror)
// order. Re-running over an unchanged store yields byte-identical output.
type Materializer struct {
	store       Store
	asm         *Assembler
	concurrency int
}

// NewMaterializer returns a Materializer. concurrency bounds the per-fight
// assembly fan-out; ordering is restored after compute, not during.
func NewMaterializer(store Store, asm *Assembler, concurrency int) *Materializer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Materializer{store: store, asm: asm, concurrency: concurrency}
}

// Build materializes the full dataset. Any NotFound or SchemaDrift aborts
// the build with the offending fight id in the error; data-quality
// irregularities (thin histories, zero-time fights) surface only as cleared
// *_known flags in the rows.
func (m *Materializer) Build(ctx context.Context) (*Dataset, error) {
	fights, err := m.store.ListDecisiveFights()
	if err != nil {
		return nil, fmt.Errorf("list decisive fights: %w", err)
	}

	// Per-fight computations are independent: fan out, then concatenate in
	// the fights' own (date, id) order so output order never depends on
	// scheduling.
	results := make([][]model.MatchupExample, len(fights))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for i, fight := range fights {
		i, fight := i, fight
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			examples, err := m.asm.Assemble(fight)
			if err != nil {
				return err
			}
			results[i] = examples
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds := &Dataset{}
	for _, examples := range results {
		ds.Examples = append(ds.Examples, examples...)
	}

	if len(ds.Examples) > 0 {
		ds.Columns = columnsFor(ds.Examples[0])
		// Every row must carry the same columns; a ragged schema here means
		// assembly produced inconsistent feature sets across fights.
		for _, ex := range ds.Examples[1:] {
			if err := checkSchema(ds.Columns, ex); err != nil {
				return nil, err
			}
		}
	}
	return ds, nil
}

// metaColumns are the non-feature columns, in output order.
var metaColumns = []string{
	"fight_id", "event_date", "weight_class",
	"fighter1_id", "fighter1_name", "fighter2_id", "fighter2_name",
	"f1_win",
}

func columnsFor(ex model.MatchupExample) []string {
	cols := append([]string{}, metaColumns...)
	for _, f := range ex.F1 {
		cols = append(cols, "f1_"+f.Name, "f1_"+f.Name+"_known")
	}
	for _, f := range ex.F2 {
		cols = append(cols, "f2_"+f.Name, "f2_"+f.Name+"_known")
	}
	for _, d := range ex.Diffs {
		cols = append(cols, d.Name, d.Name+"_known")
	}
	return cols
}

func checkSchema(columns []string, ex model.MatchupExample) error {
	cols := columnsFor(ex)
	if len(cols) != len(columns) {
		return fmt.Errorf("fight %s: %d columns, dataset has %d: %w",
			ex.FightID, len(cols), len(columns), ErrSchemaDrift)
	}
	for i := range cols {
		if cols[i] != columns[i] {
			return fmt.Errorf("fight %s: column %q, dataset has %q: %w",
				ex.FightID, cols[i], columns[i], ErrSchemaDrift)
		}
	}
	return nil
}

// Row renders one example as strings matching Columns. Unknown metrics emit
// the 0 sentinel with their flag column cleared.
func Row(ex model.MatchupExample) []string {
	row := []string{
		ex.FightID,
		ex.EventDate.Format("2006-01-02"),
		ex.WeightClass,
		ex.Fighter1ID, ex.Fighter1Name,
		ex.Fighter2ID, ex.Fighter2Name,
		strconv.Itoa(ex.F1Win),
	}
	for _, group := range [][]model.Feature{ex.F1, ex.F2, ex.Diffs} {
		for _, f := range group {
			row = append(row, formatFloat(f.Value), boolCol(f.Known))
		}
	}
	return row
}

// WriteCSV writes the dataset with a header row.
func (ds *Dataset) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Columns); err != nil {
		return err
	}
	for _, ex := range ds.Examples {
		if err := cw.Write(Row(ex)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DiffMatrix extracts the diff_* feature matrix and labels for training.
// Unknown diffs contribute their 0 sentinel, mirroring what the CSV holds.
func (ds *Dataset) DiffMatrix() (names []string, x [][]float64, y []int) {
	if len(ds.Examples) == 0 {
		return nil, nil, nil
	}
	for _, d := range ds.Examples[0].Diffs {
		names = append(names, d.Name)
	}
	x = make([][]float64, len(ds.Examples))
	y = make([]int, len(ds.Examples))
	for i, ex := range ds.Examples {
		vec := make([]float64, len(ex.Diffs))
		for j, d := range ex.Diffs {
			vec[j] = d.Value
		}
		x[i] = vec
		y[i] = ex.F1Win
	}
	return names, x, y
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func boolCol(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
