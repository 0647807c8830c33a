package models

import (
	"bytes"
	"encoding/json"
)

// NoDataStatus is the placeholder emitted for a detail section that
// yielded nothing.
const NoDataStatus = "No data available"

// DetailField is a single label/value attribute row.
type DetailField struct {
	Label string `bson:"label" json:"label"`
	Value string `bson:"value" json:"value"`
}

// Details is an ordered label -> value mapping. Labels are unique and
// insertion order follows document order, which a plain map cannot
// guarantee. It marshals to a JSON object with keys in insertion order.
type Details []DetailField

// Set inserts a label/value pair, replacing the value if the label is
// already present.
func (d *Details) Set(label, value string) {
	for i := range *d {
		if (*d)[i].Label == label {
			(*d)[i].Value = value
			return
		}
	}
	*d = append(*d, DetailField{Label: label, Value: value})
}

// Get returns the value for a label and whether it was present.
func (d Details) Get(label string) (string, bool) {
	for _, f := range d {
		if f.Label == label {
			return f.Value, true
		}
	}
	return "", false
}

// Has reports whether the label is present.
func (d Details) Has(label string) bool {
	_, ok := d.Get(label)
	return ok
}

// Len returns the number of fields.
func (d Details) Len() int {
	return len(d)
}

// MarshalJSON emits the fields as a JSON object in insertion order.
func (d Details) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		label, err := json.Marshal(f.Label)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(label)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts a JSON object of string values. Key order is the
// decoder's token order, so a marshal/unmarshal round trip preserves it.
func (d *Details) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // opening brace
		return err
	}
	*d = (*d)[:0]
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return err
		}
		d.Set(keyTok.(string), value)
	}
	return nil
}
