package renderer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tstivers/portfolio"
	"github.com/tstivers/portfolio/date"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DecodeReport reads a JSON report and validates it.
//
// The order of "symbols" and "periodic.changes" in the document is their display order.
func DecodeReport(r io.Reader) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read report: %w", err)
	}
	if !json.Valid(data) {
		return nil, &StructureError{Field: "", Err: errors.New("not a valid json document")}
	}
	rep := new(Report)
	if err := rep.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	if err := Validate(rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// object is a json object with its keys in document order.
type object = orderedmap.OrderedMap[string, json.RawMessage]

// field is a required scalar to decode from an object.
type field struct {
	name string
	dst  any
}

func isNull(raw json.RawMessage) bool { return bytes.Equal(bytes.TrimSpace(raw), []byte("null")) }

// join builds the path of a field.
func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// decodeObject reads a json object, anything else is a StructureError.
func decodeObject(path string, data []byte) (*object, error) {
	if isNull(data) {
		return nil, &StructureError{Field: path, Err: errMissing}
	}
	if kind := jsonKind(data); kind != "object" {
		return nil, &StructureError{Field: path, Err: fmt.Errorf("not an object, found %s", kind)}
	}
	obj := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(data, obj); err != nil {
		return nil, &StructureError{Field: path, Err: fmt.Errorf("not an object: %w", err)}
	}
	return obj, nil
}

// jsonKind names the kind of the json value in data.
func jsonKind(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "nothing"
	}
	switch data[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

// decodeScalars reads every field of obj, a missing or invalid one is a FormattingError.
func decodeScalars(prefix string, obj *object, fields ...field) error {
	for _, f := range fields {
		raw, ok := obj.Get(f.name)
		if !ok || isNull(raw) {
			return &FormattingError{Field: join(prefix, f.name), Err: errMissing}
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return &FormattingError{Field: join(prefix, f.name), Err: err}
		}
	}
	return nil
}

// UnmarshalJSON reads a report, keeping the order of symbols and changes.
func (r *Report) UnmarshalJSON(data []byte) error {
	top, err := decodeObject("", data)
	if err != nil {
		return err
	}

	var rep Report
	if err := decodeScalars("", top,
		field{"title", &rep.Title},
		field{"date", &rep.Date},
		field{"total", &rep.Total},
		field{"difference", &rep.Difference},
		field{"pct_difference", &rep.PctDifference},
		field{"days", &rep.Days},
		field{"rank_change", &rep.RankChange},
		field{"rank_value", &rep.RankValue},
		field{"table_text", &rep.TableText},
	); err != nil {
		return err
	}

	raw, ok := top.Get("symbols")
	if !ok {
		return &StructureError{Field: "symbols", Err: errMissing}
	}
	symbols, err := decodeObject("symbols", raw)
	if err != nil {
		return err
	}
	rep.Symbols = NewSymbols()
	for pair := symbols.Oldest(); pair != nil; pair = pair.Next() {
		path := join("symbols", pair.Key)
		obj, err := decodeObject(path, pair.Value)
		if err != nil {
			return err
		}
		var h Holding
		if err := decodeScalars(path, obj,
			field{"total", &h.Total},
			field{"difference", &h.Difference},
			field{"pct_difference", &h.PctDifference},
			field{"rank_change", &h.RankChange},
			field{"rank_value", &h.RankValue},
		); err != nil {
			return err
		}
		rep.Symbols.Set(pair.Key, h)
	}

	if raw, ok := top.Get("periodic"); ok && !isNull(raw) {
		if rep.Periodic, err = decodePeriodic(raw); err != nil {
			return err
		}
	}

	*r = rep
	return nil
}

func decodePeriodic(data []byte) (*Periodic, error) {
	obj, err := decodeObject("periodic", data)
	if err != nil {
		return nil, err
	}
	p := new(Periodic)
	if err := decodeScalars("periodic", obj,
		field{"period", &p.Period},
		field{"start", &p.Start},
		field{"end", &p.End},
		field{"difference", &p.Difference},
		field{"pct_difference", &p.PctDifference},
	); err != nil {
		return nil, err
	}

	raw, ok := obj.Get("changes")
	if !ok || isNull(raw) {
		return p, nil
	}
	days, err := decodeObject("periodic.changes", raw)
	if err != nil {
		return nil, err
	}
	p.Changes = NewChanges()
	for day := days.Oldest(); day != nil; day = day.Next() {
		path := join("periodic.changes", day.Key)
		var on date.Date
		if err := on.UnmarshalText([]byte(day.Key)); err != nil {
			return nil, &FormattingError{Field: path, Err: err}
		}
		symbols, err := decodeObject(path, day.Value)
		if err != nil {
			return nil, err
		}
		for s := symbols.Oldest(); s != nil; s = s.Next() {
			var shares portfolio.Quantity
			if err := json.Unmarshal(s.Value, &shares); err != nil {
				return nil, &FormattingError{Field: join(path, s.Key), Err: err}
			}
			p.AddChange(on, s.Key, shares)
		}
	}
	return p, nil
}

// Validate checks that a report can be rendered.
func Validate(r *Report) error {
	if r.Title == "" {
		return &FormattingError{Field: "title", Err: errMissing}
	}
	if r.Date.IsZero() {
		return &FormattingError{Field: "date", Err: errMissing}
	}
	if r.Days < 1 {
		return &FormattingError{Field: "days", Err: fmt.Errorf("%d is not a count of days", r.Days)}
	}
	if err := validateRanks("", r.RankChange, r.RankValue); err != nil {
		return err
	}
	if r.Symbols == nil {
		return &StructureError{Field: "symbols", Err: errMissing}
	}
	for pair := r.Symbols.Oldest(); pair != nil; pair = pair.Next() {
		if err := validateRanks(join("symbols", pair.Key), pair.Value.RankChange, pair.Value.RankValue); err != nil {
			return err
		}
	}
	if p := r.Periodic; p != nil {
		switch {
		case p.Period == "":
			return &FormattingError{Field: "periodic.period", Err: errMissing}
		case p.Start.IsZero():
			return &FormattingError{Field: "periodic.start", Err: errMissing}
		case p.End.IsZero():
			return &FormattingError{Field: "periodic.end", Err: errMissing}
		case p.Start.After(p.End):
			return &StructureError{Field: "periodic", Err: fmt.Errorf("start %s is after end %s", p.Start, p.End)}
		}
	}
	return nil
}

func validateRanks(prefix, change, value string) error {
	if change == "" {
		return &FormattingError{Field: join(prefix, "rank_change"), Err: errMissing}
	}
	if value == "" {
		return &FormattingError{Field: join(prefix, "rank_value"), Err: errMissing}
	}
	return nil
}
