package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, strategy, symbol, archive, fee, trials, wins, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Strategy, r.Symbol, r.Archive, r.Fee, r.Trials, r.Wins, r.Created,
	)
	return err
}

func (j *SQLite) RecordTrial(t TrialRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trials
		(run_id, trial, start_idx, finish_idx, base_final, quote_final, win)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.RunID, t.Trial, t.StartIdx, t.FinishIdx, t.BaseFinal, t.QuoteFinal, t.Win,
	)
	return err
}

func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	var r RunRecord
	err := j.db.QueryRow(`
		SELECT run_id, strategy, symbol, archive, fee, trials, wins, created_at
		FROM runs WHERE run_id = ?`, runID).
		Scan(&r.RunID, &r.Strategy, &r.Symbol, &r.Archive, &r.Fee, &r.Trials, &r.Wins, &r.Created)
	return r, err
}

func (j *SQLite) ListTrials(runID string) ([]TrialRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, trial, start_idx, finish_idx, base_final, quote_final, win
		FROM trials WHERE run_id = ? ORDER BY trial`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TrialRecord
	for rows.Next() {
		var t TrialRecord
		if err := rows.Scan(&t.RunID, &t.Trial, &t.StartIdx, &t.FinishIdx,
			&t.BaseFinal, &t.QuoteFinal, &t.Win); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
