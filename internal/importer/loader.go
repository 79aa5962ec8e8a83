package importer

import (
	"encoding/json"
	"os"

	apperrors "github.com/pandeptwidyaop/uniport/pkg/errors"
)

// OptionalString decodes a JSON value that should be a string but may be
// anything in dirty dataset variants. Non-string values (including null)
// decode as absent instead of failing the whole document.
type OptionalString struct {
	Value string
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *OptionalString) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		// not a string: treat as absent
		return nil
	}
	s.Value = v
	s.Set = true
	return nil
}

// StringList decodes a JSON array whose elements may not all be strings. A
// non-array value decodes as empty; non-string elements are kept in their
// compact JSON form so they still round through domain normalization.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = nil
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, elem := range raw {
		var s string
		if err := json.Unmarshal(elem, &s); err != nil {
			out = append(out, string(elem))
			continue
		}
		out = append(out, s)
	}
	*l = out
	return nil
}

// Record is one raw entry of the source dataset. Unrecognized fields are
// ignored. Raw holds the entry's original JSON for failure diagnostics.
type Record struct {
	Name         OptionalString `json:"name"`
	Country      OptionalString `json:"country"`
	AlphaTwoCode OptionalString `json:"alpha_two_code"`
	WebPages     StringList     `json:"web_pages"`
	Domains      StringList     `json:"domains"`

	Raw json.RawMessage `json:"-"`
}

// Load reads and parses the input document. The top-level value must be a
// JSON array; anything else is a fatal input error. Individual entries that
// are not objects decode as empty records and fall to the driver's name
// validation.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read input file")
	}

	var rawRecords []json.RawMessage
	if err := json.Unmarshal(data, &rawRecords); err != nil {
		var probe interface{}
		if json.Unmarshal(data, &probe) == nil {
			return nil, apperrors.ErrNotAnArray
		}
		return nil, apperrors.Wrap(err, "failed to parse input file")
	}

	records := make([]Record, len(rawRecords))
	for i, raw := range rawRecords {
		// a decode error leaves the record nameless, which skips it later
		_ = json.Unmarshal(raw, &records[i])
		records[i].Raw = raw
	}

	return records, nil
}
