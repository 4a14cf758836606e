package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/a-bakhtine/UFC-predictor/internal/model"
)

const dateLayout = "2006-01-02"

// InsertFighters upserts fighter records. Uses INSERT OR REPLACE so re-scraping
// an event is idempotent.
func (db *DB) InsertFighters(fighters []model.Fighter) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO fighters(fighter_id, name) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, f := range fighters {
		if _, err := stmt.Exec(f.ID, f.Name); err != nil {
			return fmt.Errorf("insert fighter %s: %w", f.ID, err)
		}
	}
	return tx.Commit()
}

// InsertFights bulk-inserts fight records in a transaction.
func (db *DB) InsertFights(fights []model.FightRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO fights(
			fight_id, event_name, event_date, weight_class,
			fighter1_id, fighter2_id, winner_id, method, round_ended, time_ended_seconds
		) VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, f := range fights {
		var winner any
		if f.WinnerID != "" {
			winner = f.WinnerID
		}
		_, err := stmt.Exec(
			f.ID, f.EventName, f.EventDate.Format(dateLayout), f.WeightClass,
			f.Fighter1ID, f.Fighter2ID, winner, f.Method, f.RoundEnded, f.TimeEndedSeconds,
		)
		if err != nil {
			return fmt.Errorf("insert fight %s: %w", f.ID, err)
		}
	}
	return tx.Commit()
}

// InsertStatLines bulk-inserts fighter stat lines in a transaction.
func (db *DB) InsertStatLines(lines []model.StatLine) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO fighter_stats(
			fight_id, fighter_id, knockdowns,
			sig_strikes_landed, sig_strikes_attempted,
			total_strikes_landed, total_strikes_attempted,
			td_landed, td_attempts, sub_attempts,
			control_time_seconds, time_fought_seconds
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range lines {
		_, err := stmt.Exec(
			s.FightID, s.FighterID, s.Knockdowns,
			s.SigStrikesLanded, s.SigStrikesAttempted,
			s.TotalStrikesLanded, s.TotalStrikesAttempted,
			s.TakedownsLanded, s.TakedownsAttempted, s.SubAttempts,
			s.ControlTimeSeconds, s.TimeFoughtSeconds,
		)
		if err != nil {
			return fmt.Errorf("insert stat line %s/%s: %w", s.FightID, s.FighterID, err)
		}
	}
	return tx.Commit()
}

// FightExists returns true if a fight with the given id is already stored.
func (db *DB) FightExists(id string) (bool, error) {
	var count int
	err := db.conn.QueryRow(`SELECT COUNT(1) FROM fights WHERE fight_id = ?`, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFighter looks up a fighter by id. Returns model.ErrNotFound for unknown ids.
func (db *DB) GetFighter(id string) (*model.Fighter, error) {
	var f model.Fighter
	err := db.conn.QueryRow(`SELECT fighter_id, name FROM fighters WHERE fighter_id = ?`, id).
		Scan(&f.ID, &f.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("fighter %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// FindFighters resolves a search term to fighters: exact id match first, then
// case-insensitive partial name match, ordered by name.
func (db *DB) FindFighters(term string) ([]model.Fighter, error) {
	if f, err := db.GetFighter(term); err == nil {
		return []model.Fighter{*f}, nil
	}

	rows, err := db.conn.Query(`
		SELECT fighter_id, name FROM fighters
		WHERE name LIKE '%' || ? || '%' COLLATE NOCASE
		ORDER BY name`, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Fighter
	for rows.Next() {
		var f model.Fighter
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// GetFightHistory returns a fighter's fights strictly before the given date,
// each joined with the fighter's own stat line and the opponent's stat line,
// ordered by event date ascending with fight id as the stable tiebreak.
// Fights without both stat lines (e.g. upcoming bouts) are excluded.
func (db *DB) GetFightHistory(fighterID string, before time.Time) ([]model.HistoryRow, error) {
	if _, err := db.GetFighter(fighterID); err != nil {
		return nil, err
	}

	rows, err := db.conn.Query(`
		SELECT
			f.fight_id, f.event_name, f.event_date, f.weight_class,
			f.fighter1_id, f.fighter2_id, COALESCE(f.winner_id, ''),
			f.method, f.round_ended, f.time_ended_seconds,
			own.knockdowns, own.sig_strikes_landed, own.sig_strikes_attempted,
			own.total_strikes_landed, own.total_strikes_attempted,
			own.td_landed, own.td_attempts, own.sub_attempts,
			own.control_time_seconds, own.time_fought_seconds,
			opp.fighter_id,
			opp.knockdowns, opp.sig_strikes_landed, opp.sig_strikes_attempted,
			opp.total_strikes_landed, opp.total_strikes_attempted,
			opp.td_landed, opp.td_attempts, opp.sub_attempts,
			opp.control_time_seconds, opp.time_fought_seconds
		FROM fights f
		JOIN fighter_stats own ON own.fight_id = f.fight_id AND own.fighter_id = ?
		JOIN fighter_stats opp ON opp.fight_id = f.fight_id AND opp.fighter_id <> ?
		WHERE (f.fighter1_id = ? OR f.fighter2_id = ?)
		  AND f.event_date < ?
		ORDER BY f.event_date ASC, f.fight_id ASC`,
		fighterID, fighterID, fighterID, fighterID, before.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.HistoryRow
	for rows.Next() {
		var h model.HistoryRow
		var dateStr string
		err := rows.Scan(
			&h.Fight.ID, &h.Fight.EventName, &dateStr, &h.Fight.WeightClass,
			&h.Fight.Fighter1ID, &h.Fight.Fighter2ID, &h.Fight.WinnerID,
			&h.Fight.Method, &h.Fight.RoundEnded, &h.Fight.TimeEndedSeconds,
			&h.Own.Knockdowns, &h.Own.SigStrikesLanded, &h.Own.SigStrikesAttempted,
			&h.Own.TotalStrikesLanded, &h.Own.TotalStrikesAttempted,
			&h.Own.TakedownsLanded, &h.Own.TakedownsAttempted, &h.Own.SubAttempts,
			&h.Own.ControlTimeSeconds, &h.Own.TimeFoughtSeconds,
			&h.Opponent.FighterID,
			&h.Opponent.Knockdowns, &h.Opponent.SigStrikesLanded, &h.Opponent.SigStrikesAttempted,
			&h.Opponent.TotalStrikesLanded, &h.Opponent.TotalStrikesAttempted,
			&h.Opponent.TakedownsLanded, &h.Opponent.TakedownsAttempted, &h.Opponent.SubAttempts,
			&h.Opponent.ControlTimeSeconds, &h.Opponent.TimeFoughtSeconds,
		)
		if err != nil {
			return nil, err
		}
		h.Fight.EventDate, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("fight %s: bad event_date %q: %w", h.Fight.ID, dateStr, err)
		}
		h.Own.FightID = h.Fight.ID
		h.Own.FighterID = fighterID
		h.Opponent.FightID = h.Fight.ID
		out = append(out, h)
	}
	return out, rows.Err()
}

// ListDecisiveFights returns all fights with a defined winner and both stat
// lines present, ordered by event date then fight id.
func (db *DB) ListDecisiveFights() ([]model.FightRecord, error) {
	rows, err := db.conn.Query(`
		SELECT f.fight_id, f.event_name, f.event_date, f.weight_class,
			f.fighter1_id, f.fighter2_id, f.winner_id,
			f.method, f.round_ended, f.time_ended_seconds
		FROM fights f
		WHERE f.winner_id IS NOT NULL
		  AND (SELECT COUNT(1) FROM fighter_stats s WHERE s.fight_id = f.fight_id) = 2
		ORDER BY f.event_date ASC, f.fight_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFights(rows)
}

// ListEvents returns one row per stored event, newest first.
func (db *DB) ListEvents() ([]EventSummary, error) {
	rows, err := db.conn.Query(`
		SELECT event_name, event_date, COUNT(*) AS fights,
			SUM(CASE WHEN winner_id IS NOT NULL THEN 1 ELSE 0 END) AS decisive
		FROM fights
		GROUP BY event_name, event_date
		ORDER BY event_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EventSummary
	for rows.Next() {
		var e EventSummary
		if err := rows.Scan(&e.Name, &e.Date, &e.Fights, &e.Decisive); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// EventSummary is a lightweight record for the list command.
type EventSummary struct {
	Name     string
	Date     string
	Fights   int
	Decisive int
}

// Overview holds database-wide counts for the summary command.
type Overview struct {
	Fighters       int
	Fights         int
	DecisiveFights int
	Events         int
	EarliestDate   string
	LatestDate     string
}

// GetOverview returns database-wide counts.
func (db *DB) GetOverview() (*Overview, error) {
	var ov Overview
	err := db.conn.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM fighters),
			COUNT(*),
			COALESCE(SUM(CASE WHEN winner_id IS NOT NULL THEN 1 ELSE 0 END), 0),
			COUNT(DISTINCT event_name),
			COALESCE(MIN(event_date), ''),
			COALESCE(MAX(event_date), '')
		FROM fights`).
		Scan(&ov.Fighters, &ov.Fights, &ov.DecisiveFights, &ov.Events, &ov.EarliestDate, &ov.LatestDate)
	if err != nil {
		return nil, err
	}
	return &ov, nil
}

func scanFights(rows *sql.Rows) ([]model.FightRecord, error) {
	var out []model.FightRecord
	for rows.Next() {
		var f model.FightRecord
		var dateStr string
		err := rows.Scan(&f.ID, &f.EventName, &dateStr, &f.WeightClass,
			&f.Fighter1ID, &f.Fighter2ID, &f.WinnerID,
			&f.Method, &f.RoundEnded, &f.TimeEndedSeconds)
		if err != nil {
			return nil, err
		}
		f.EventDate, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("fight %s: bad event_date %q: %w", f.ID, dateStr, err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
