package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// The on-disk archive is a single JSON array, one object per trade, field
// names matching the exchange wire schema. Physical order is not
// significant; Load re-sorts. Decimal strings round-trip byte for byte
// because they are never parsed during encode/decode.

func readArchive(path string) ([]Trade, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archive %s: %w", path, err)
	}

	var trades []Trade
	if err := json.Unmarshal(data, &trades); err != nil {
		return nil, fmt.Errorf("decode archive %s: %w", path, err)
	}
	return trades, nil
}

func writeArchive(path string, trades []Trade) error {
	data, err := json.Marshal(trades)
	if err != nil {
		return fmt.Errorf("encode archive: %w", err)
	}

	// Temp file in the destination directory so the rename is atomic.
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("write archive %s: %w", path, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write archive %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write archive %s: %w", path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write archive %s: %w", path, err)
	}
	return nil
}
