package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	strategy TEXT NOT NULL,
	symbol TEXT NOT NULL,
	archive TEXT NOT NULL,
	fee REAL NOT NULL,
	trials INTEGER NOT NULL,
	wins INTEGER NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS trials (
	run_id TEXT NOT NULL,
	trial INTEGER NOT NULL,
	start_idx INTEGER NOT NULL,
	finish_idx INTEGER NOT NULL,
	base_final REAL NOT NULL,
	quote_final REAL NOT NULL,
	win INTEGER NOT NULL,
	PRIMARY KEY (run_id, trial)
);

CREATE INDEX IF NOT EXISTS idx_trials_run ON trials(run_id);
`
