package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyArchive is returned when a file or in-memory batch decodes
	// to zero trades. An empty archive is a construction error, never a
	// valid state.
	ErrEmptyArchive = errors.New("ledger: archive contains no trades")

	// ErrEmptyBatch is returned when a fetch yields zero trades. The
	// exchange always has older data below the requested id unless the
	// request was misconfigured, so this is a hard error rather than an
	// end-of-data signal.
	ErrEmptyBatch = errors.New("ledger: fetched batch contains no trades")

	// ErrCorruptRecord marks a stored decimal string that no longer
	// parses as a number.
	ErrCorruptRecord = errors.New("ledger: corrupt trade record")
)

// IntersectingRangeError reports a fetched batch whose boundary id is not
// strictly older than the archive's current minimum. It carries both ids so
// a pagination bug in the adapter can be root-caused from the message alone.
type IntersectingRangeError struct {
	OldMinID int64 // archive minimum before the fetch
	NewID    int64 // boundary id of the offending batch
}

func (e *IntersectingRangeError) Error() string {
	return fmt.Sprintf("ledger: fetched batch intersects stored trades: old min id %d, new batch id %d",
		e.OldMinID, e.NewID)
}
