package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// entryJSON is the micropub JSON form of an entry.
type entryJSON struct {
	Type       []string     `json:"type"`
	Properties *Properties  `json:"properties"`
	Derived    *derivedJSON `json:"derived,omitempty"`
}

type derivedJSON struct {
	Category   string   `json:"category,omitempty"`
	PersonTags []string `json:"personTags,omitempty"`
}

// UnmarshalJSON decodes a micropub JSON entry such as
// {"type":["h-entry"],"properties":{"content":["hello"]}}.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Type = raw.Type
	e.Properties = raw.Properties
	if raw.Derived != nil {
		e.Derived = Derived{Category: raw.Derived.Category, PersonTags: raw.Derived.PersonTags}
	}
	return nil
}

// MarshalJSON encodes the entry with properties in insertion order.
func (e *Entry) MarshalJSON() ([]byte, error) {
	out := entryJSON{Type: e.Type, Properties: e.Properties}
	if e.Derived.Category != "" || len(e.Derived.PersonTags) > 0 {
		out.Derived = &derivedJSON{Category: e.Derived.Category, PersonTags: e.Derived.PersonTags}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an object of property arrays, keeping key order.
func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("properties: expected object, got %v", tok)
	}

	p.keys = nil
	p.values = make(map[string][]Value)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("properties: unexpected key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("properties: decoding %q: %w", name, err)
		}
		values, err := decodeValues(raw)
		if err != nil {
			return fmt.Errorf("properties: decoding %q: %w", name, err)
		}
		p.Set(name, values...)
	}
	_, err = dec.Token()
	return err
}

// MarshalJSON encodes properties as an object in insertion order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		values, err := json.Marshal(p.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(values)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON encodes text and time values as strings and content as an object.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Content != nil {
		return json.Marshal(v.Content)
	}
	return json.Marshal(v.String())
}

// decodeValues accepts either an array of values or a single bare value.
func decodeValues(raw json.RawMessage) ([]Value, error) {
	raw = bytes.TrimSpace(raw)
	var items []json.RawMessage
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
	} else {
		items = []json.RawMessage{raw}
	}

	values := make([]Value, 0, len(items))
	for _, item := range items {
		v, err := decodeValue(item)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func decodeValue(raw json.RawMessage) (Value, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Value{}, fmt.Errorf("empty value")
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, err
		}
		return Text(s), nil
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return Value{}, err
		}
		_, hasHTML := fields["html"]
		_, hasValue := fields["value"]
		if !hasHTML && !hasValue {
			// Nested microformats (e.g. an h-card) are kept as their JSON text.
			return Text(string(raw)), nil
		}
		var c Content
		if err := json.Unmarshal(raw, &c); err != nil {
			return Value{}, err
		}
		return Value{Content: &c}, nil
	default:
		return Text(string(raw)), nil
	}
}
