package portfolio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/phuslu/log"
	"github.com/shopspring/decimal"
)

// LedgerFilename is the name of the holdings ledger in the data directory.
const LedgerFilename = "holdings.jsonl"

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeLedger decodes operations from a stream of JSONL data, one operation per line,
// and validates them as if they were recorded in that order.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	i := 0
	for scanner.Scan() {
		i++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue // Skip empty lines
		}

		var op Operation
		if err := json.Unmarshal(line, &op); err != nil {
			return nil, fmt.Errorf("line %d: could not decode operation %q: %w", i, string(line), err)
		}
		if err := ledger.Apply(op); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ledger: %w", err)
	}
	return ledger, nil
}

// EncodeLedger writes every operation as a JSON line, in chronological order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	enc := json.NewEncoder(w)
	for _, op := range ledger.ops {
		if err := enc.Encode(op); err != nil {
			return fmt.Errorf("could not encode operation %v: %w", op, err)
		}
	}
	return nil
}

// LoadLedger reads the holdings ledger from the data directory. A missing file is an empty ledger.
func LoadLedger(dir string) (*Ledger, error) {
	filename := filepath.Join(dir, LedgerFilename)
	f, err := os.Open(filename)
	if errors.Is(err, os.ErrNotExist) {
		log.Info().Str("file", filename).Msg("no holdings ledger yet, starting empty")
		return NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger: %w", err)
	}
	defer f.Close()

	ledger, err := DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode ledger %q: %w", filename, err)
	}
	return ledger, nil
}

// SaveLedger writes the holdings ledger into the data directory.
func SaveLedger(dir string, ledger *Ledger) error {
	return writeFile(filepath.Join(dir, LedgerFilename), func(w io.Writer) error { return EncodeLedger(w, ledger) })
}

// writeFile writes a file through a temporary file so that a failure never leaves a truncated file behind.
func writeFile(filename string, encode func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("cannot create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".*")
	if err != nil {
		return fmt.Errorf("cannot create %q: %w", filename, err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	if err := encode(w); err != nil {
		tmp.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write %q: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot write %q: %w", filename, err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("cannot replace %q: %w", filename, err)
	}
	log.Debug().Str("file", filename).Msg("saved")
	return nil
}
