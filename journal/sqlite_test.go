package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('runs','trials')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["runs"])
	assert.True(t, found["trials"])
}

func TestSQLiteRecordRun(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := RunRecord{
		RunID:    "01HTEST",
		Strategy: "dip-exit",
		Symbol:   "ETHBTC",
		Archive:  "historical_trades.json",
		Fee:      0.00001,
		Trials:   10000,
		Wins:     5321,
		Created:  created,
	}

	require.NoError(t, j.RecordRun(rec))

	got, err := j.GetRun("01HTEST")
	require.NoError(t, err)
	assert.Equal(t, rec.RunID, got.RunID)
	assert.Equal(t, rec.Strategy, got.Strategy)
	assert.Equal(t, rec.Symbol, got.Symbol)
	assert.Equal(t, rec.Archive, got.Archive)
	assert.Equal(t, rec.Fee, got.Fee)
	assert.Equal(t, rec.Trials, got.Trials)
	assert.Equal(t, rec.Wins, got.Wins)
	assert.True(t, created.Equal(got.Created))
}

func TestSQLiteRecordTrials(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	for i := 0; i < 3; i++ {
		require.NoError(t, j.RecordTrial(TrialRecord{
			RunID:      "RUN-A",
			Trial:      i,
			StartIdx:   i * 10,
			FinishIdx:  i*10 + 5,
			BaseFinal:  1.0 + float64(i),
			QuoteFinal: 0,
			Win:        i > 0,
		}))
	}
	// A different run must not leak into the listing.
	require.NoError(t, j.RecordTrial(TrialRecord{RunID: "RUN-B", Trial: 0}))

	trials, err := j.ListTrials("RUN-A")
	require.NoError(t, err)
	require.Len(t, trials, 3)

	for i, tr := range trials {
		assert.Equal(t, "RUN-A", tr.RunID)
		assert.Equal(t, i, tr.Trial)
		assert.Equal(t, i*10, tr.StartIdx)
		assert.Equal(t, 1.0+float64(i), tr.BaseFinal)
		assert.Equal(t, i > 0, tr.Win)
	}
}

func TestSQLiteGetRunMissing(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	_, err := j.GetRun("nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
