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
	"github.com/tstivers/portfolio/date"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const attrOn = "on"

// MarketFilename is the name of the market data file in the data directory.
const MarketFilename = "prices.jsonl"

// This file persists market data in a way that is still human-readable and git-friendly:
// one line per day, {"on":"2024-01-02","AAA":12.5,"BBB":3}, symbols in alphabetical order.

// decodeLine decodes a single line of the market data file. i is for error message only.
func decodeLine(m *MarketData, i int, line []byte) error {
	// Start simply ignoring empty lines.
	if len(bytes.TrimSpace(line)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()
	jobj := make(map[string]any)
	if err := dec.Decode(&jobj); err != nil {
		return fmt.Errorf("parse error line %d: not a correct json: %w", i, err)
	}

	// Read the timestamp
	jvalue, ok := jobj[attrOn]
	if !ok {
		return fmt.Errorf("parse error line %d: missing the property %q with a date", i, attrOn)
	}
	jstring, ok := jvalue.(string)
	if !ok {
		return fmt.Errorf("parse error line %d: property %q must be of type 'string'", i, attrOn)
	}
	var on date.Date
	if err := on.UnmarshalText([]byte(jstring)); err != nil {
		return fmt.Errorf("parse error line %d: property %q must be a valid date: %w", i, attrOn, err)
	}

	// Read all other attributes as (symbol, price) pairs.
	for symbol, price := range jobj {
		if symbol == attrOn {
			continue
		}
		num, ok := price.(json.Number)
		if !ok {
			return fmt.Errorf("parse error line %d: property %q must be of type 'number'", i, symbol)
		}
		p, err := decimal.NewFromString(num.String())
		if err != nil {
			return fmt.Errorf("parse error line %d: property %q: %w", i, symbol, err)
		}
		m.Append(symbol, on, p)
	}
	return nil
}

// DecodeMarketData reads market data from a stream of JSONL data.
func DecodeMarketData(r io.Reader) (*MarketData, error) {
	m := NewMarketData()
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		if err := decodeLine(m, i, scanner.Bytes()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading market data: %w", err)
	}
	return m, nil
}

// EncodeMarketData writes one line per day, in chronological order.
func EncodeMarketData(w io.Writer, m *MarketData) error {
	symbols := m.Symbols()
	for _, on := range m.Days() {
		line := orderedmap.New[string, any]()
		line.Set(attrOn, on)
		for _, s := range symbols {
			if p, ok := m.Close(s, on); ok {
				line.Set(s, p)
			}
		}
		data, err := json.Marshal(line)
		if err != nil {
			return fmt.Errorf("cannot encode prices on %s: %w", on, err)
		}
		data = append(data, '\n')
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}

// LoadMarketData reads the market data from the data directory. A missing file is an empty database.
func LoadMarketData(dir string) (*MarketData, error) {
	filename := filepath.Join(dir, MarketFilename)
	f, err := os.Open(filename)
	if errors.Is(err, os.ErrNotExist) {
		log.Info().Str("file", filename).Msg("no market data yet, starting empty")
		return NewMarketData(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open market data: %w", err)
	}
	defer f.Close()

	m, err := DecodeMarketData(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode market data %q: %w", filename, err)
	}
	return m, nil
}

// SaveMarketData writes the market data into the data directory.
func SaveMarketData(dir string, m *MarketData) error {
	return writeFile(filepath.Join(dir, MarketFilename), func(w io.Writer) error { return EncodeMarketData(w, m) })
}
