// Package document holds the order-preserving value model used to merge
// Clash configuration documents. A document is a tree over a closed set of
// shapes: Scalar, Sequence and Mapping.
package document

// Kind identifies the shape of a Value.
type Kind int

const (
	KindScalar Kind = iota
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is implemented only by *Scalar, *Sequence and *Mapping.
type Value interface {
	Kind() Kind
	clone() Value
}

// Scalar keeps the resolved YAML tag next to the text so that numbers,
// booleans and quoted strings survive a parse/serialize round trip.
type Scalar struct {
	Tag   string
	Text  string
	Style Style
}

// Style records how a scalar was written. Only quoting and block styles
// matter for output; plain is the zero value.
type Style int

const (
	StylePlain Style = iota
	StyleSingleQuoted
	StyleDoubleQuoted
	StyleLiteral
	StyleFolded
)

const (
	TagString = "!!str"
	TagInt    = "!!int"
	TagFloat  = "!!float"
	TagBool   = "!!bool"
	TagNull   = "!!null"
)

// String returns a plain string scalar.
func String(s string) *Scalar {
	return &Scalar{Tag: TagString, Text: s}
}

// Null returns the null scalar.
func Null() *Scalar {
	return &Scalar{Tag: TagNull, Text: "null"}
}

func (s *Scalar) Kind() Kind { return KindScalar }

func (s *Scalar) IsNull() bool { return s.Tag == TagNull }

func (s *Scalar) clone() Value {
	c := *s
	return &c
}

// Sequence is an ordered list of values. Flow marks a sequence written in
// the inline [a, b] form; it only affects serialization.
type Sequence struct {
	Items []Value
	Flow  bool
}

func NewSequence(items ...Value) *Sequence {
	return &Sequence{Items: items}
}

func (s *Sequence) Kind() Kind { return KindSequence }

func (s *Sequence) Len() int { return len(s.Items) }

// Prepend inserts values before the current items, keeping their order.
func (s *Sequence) Prepend(values ...Value) {
	items := make([]Value, 0, len(values)+len(s.Items))
	items = append(items, values...)
	s.Items = append(items, s.Items...)
}

func (s *Sequence) clone() Value {
	items := make([]Value, len(s.Items))
	for i, item := range s.Items {
		items[i] = item.clone()
	}
	return &Sequence{Items: items, Flow: s.Flow}
}

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key   *Scalar
	Value Value
}

// Mapping is an insertion-ordered map keyed by the key scalar's text.
type Mapping struct {
	entries []Entry
	index   map[string]int
	Flow    bool
}

func NewMapping() *Mapping {
	return &Mapping{index: make(map[string]int)}
}

func (m *Mapping) Kind() Kind { return KindMapping }

func (m *Mapping) Len() int { return len(m.entries) }

// Entries returns the entries in document order. The slice must not be modified.
func (m *Mapping) Entries() []Entry { return m.entries }

// Keys returns the keys in document order.
func (m *Mapping) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key.Text
	}
	return keys
}

func (m *Mapping) Get(key string) (Value, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Set replaces the value of an existing key in place or appends a new entry.
func (m *Mapping) Set(key string, v Value) {
	m.SetEntry(String(key), v)
}

// SetEntry is Set with an explicit key scalar, so a key keeps its original
// tag and quoting when it is first introduced.
func (m *Mapping) SetEntry(key *Scalar, v Value) {
	if i, ok := m.index[key.Text]; ok {
		m.entries[i].Value = v
		return
	}
	m.index[key.Text] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: v})
}

func (m *Mapping) clone() Value {
	c := &Mapping{
		entries: make([]Entry, len(m.entries)),
		index:   make(map[string]int, len(m.index)),
		Flow:    m.Flow,
	}
	for i, e := range m.entries {
		key := *e.Key
		c.entries[i] = Entry{Key: &key, Value: e.Value.clone()}
		c.index[e.Key.Text] = i
	}
	return c
}

// Clone returns a deep copy of v.
func Clone(v Value) Value {
	if v == nil {
		return nil
	}
	return v.clone()
}

// Equal reports whether a and b have the same shape and content. Scalar
// style is presentation only and is ignored; mapping order is significant.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case *Scalar:
		bv, ok := b.(*Scalar)
		return ok && av.Tag == bv.Tag && av.Text == bv.Text
	case *Sequence:
		bv, ok := b.(*Sequence)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *Mapping:
		bv, ok := b.(*Mapping)
		if !ok || len(av.entries) != len(bv.entries) {
			return false
		}
		for i := range av.entries {
			if av.entries[i].Key.Text != bv.entries[i].Key.Text {
				return false
			}
			if !Equal(av.entries[i].Value, bv.entries[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
