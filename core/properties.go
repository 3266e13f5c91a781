package core

// Properties is an insertion-ordered mapping from property name to values.
// The zero value is not usable; create one with NewProperties.
type Properties struct {
	keys   []string
	values map[string][]Value
}

// NewProperties creates an empty property set.
func NewProperties() *Properties {
	return &Properties{values: make(map[string][]Value)}
}

// Get returns the values of name and whether the key is present at all.
func (p *Properties) Get(name string) ([]Value, bool) {
	v, ok := p.values[name]
	return v, ok
}

// First returns the first value of name.
func (p *Properties) First(name string) (Value, bool) {
	v := p.values[name]
	if len(v) == 0 {
		return Value{}, false
	}
	return v[0], true
}

// FirstString returns the first value of name rendered as a string, or "".
func (p *Properties) FirstString(name string) string {
	v, ok := p.First(name)
	if !ok {
		return ""
	}
	return v.String()
}

// Has reports whether name is present with at least one value.
func (p *Properties) Has(name string) bool {
	return len(p.values[name]) > 0
}

// Present reports whether name is present, even with no values.
func (p *Properties) Present(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Set replaces the values of name. A new key is appended to the key order.
func (p *Properties) Set(name string, values ...Value) {
	if _, ok := p.values[name]; !ok {
		p.keys = append(p.keys, name)
	}
	if values == nil {
		values = []Value{}
	}
	p.values[name] = values
}

// Append adds values after any existing values of name.
func (p *Properties) Append(name string, values ...Value) {
	existing := p.values[name]
	merged := make([]Value, 0, len(existing)+len(values))
	merged = append(merged, existing...)
	p.Set(name, append(merged, values...)...)
}

// Delete removes name.
func (p *Properties) Delete(name string) {
	if _, ok := p.values[name]; !ok {
		return
	}
	delete(p.values, name)
	for i, k := range p.keys {
		if k == name {
			p.keys = append(p.keys[:i:i], p.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the property names in insertion order.
func (p *Properties) Keys() []string {
	return append([]string(nil), p.keys...)
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	return len(p.keys)
}

// Clone returns a copy with independent key order and value slices.
func (p *Properties) Clone() *Properties {
	if p == nil {
		return nil
	}
	c := &Properties{
		keys:   append([]string(nil), p.keys...),
		values: make(map[string][]Value, len(p.values)),
	}
	for k, v := range p.values {
		c.values[k] = append([]Value{}, v...)
	}
	return c
}
