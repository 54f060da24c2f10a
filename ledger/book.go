package ledger

import (
	"context"
	"sort"
	"time"
)

// PageLimit is the page size used for every fetch against the historical
// trades endpoint. Binance caps the endpoint at 1000 rows per request.
const PageLimit = 1000

// Fetcher is the capability the Book needs from the remote adapter: one
// page of trades for a symbol, ascending by trade id, starting at fromID.
// Adapter failures (network, auth, remote rejection) propagate to the
// Book's caller unchanged; the Book never retries.
type Fetcher interface {
	FetchBatch(ctx context.Context, symbol string, fromID int64, limit int) ([]Trade, error)
}

// Book is the archive of historical trades for a single symbol: one
// contiguous, gap-free id range, totally ordered by trade id.
//
// Storage is canonical ascending order. Extremities are read off the slice
// ends, never cached separately and never trusted from disk. The Book does
// no locking; callers that share one across goroutines must serialize
// ExtendOlder and Save themselves.
type Book struct {
	trades []Trade // ascending by ID
}

// Load reads a persisted archive. Whatever physical order the file was
// written in, the trades are re-sorted into canonical order, so archives
// produced by older layouts of this tool load fine.
func Load(path string) (*Book, error) {
	trades, err := readArchive(path)
	if err != nil {
		return nil, err
	}
	return FromTrades(trades)
}

// FromTrades wraps an in-memory batch as a Book. The slice is taken over
// by the Book and sorted in place.
func FromTrades(trades []Trade) (*Book, error) {
	if len(trades) == 0 {
		return nil, ErrEmptyArchive
	}
	sortTrades(trades)
	return &Book{trades: trades}, nil
}

func sortTrades(ts []Trade) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].ID < ts[j].ID })
}

func (b *Book) Len() int { return len(b.trades) }

func (b *Book) MinTradeID() int64 { return b.trades[0].ID }

func (b *Book) MaxTradeID() int64 { return b.trades[len(b.trades)-1].ID }

func (b *Book) MinTimeMillis() int64 { return b.trades[0].Time }

// MinTime is MinTimeMillis as a wall-clock time, for progress output.
func (b *Book) MinTime() time.Time {
	return time.UnixMilli(b.trades[0].Time).UTC()
}

// At returns the trade at logical index i, where index 0 is the highest-id
// (newest) trade and growing i walks toward older trades. New batches are
// always older than existing data, so index 0 stays stable as the archive
// grows backward in time. The mapping is a view; storage stays ascending.
func (b *Book) At(i int) Trade {
	return b.trades[len(b.trades)-1-i]
}

// Trades returns a copy of the archive in canonical ascending order.
func (b *Book) Trades() []Trade {
	out := make([]Trade, len(b.trades))
	copy(out, b.trades)
	return out
}

// ExtendOlder fetches the next page of strictly older trades and merges it
// ahead of the current minimum. On any error the Book is left exactly as it
// was, so retrying after a transient adapter failure is always safe.
//
// The batch is rejected with ErrEmptyBatch when empty, and with
// IntersectingRangeError when its boundary (lowest) id is not strictly
// below the current minimum. Only the boundary is checked, not exact
// adjacency: a 1-id gap would pass undetected. That matches the historical
// behavior of this archive format and is kept on purpose.
func (b *Book) ExtendOlder(ctx context.Context, f Fetcher, symbol string) error {
	fromID := b.MinTradeID() - PageLimit

	batch, err := f.FetchBatch(ctx, symbol, fromID, PageLimit)
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		return ErrEmptyBatch
	}

	sortTrades(batch)
	if boundary := batch[0].ID; boundary >= b.MinTradeID() {
		return &IntersectingRangeError{OldMinID: b.MinTradeID(), NewID: boundary}
	}

	b.trades = append(batch, b.trades...)
	return nil
}

// Save persists the archive to path. The document is encoded fully in
// memory and written through a temp file in the same directory, so a
// failure part way never replaces a previously valid archive with a
// truncated one.
func (b *Book) Save(path string) error {
	return writeArchive(path, b.trades)
}
