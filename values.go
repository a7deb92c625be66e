package kamilo

// values.go implements the named-value bag used for signal arguments and
// scene parameters alike, grounded on original_source/Kamilo/KNamedValues.h
// (an ordered name -> typed-value mapping supporting int/float/string/
// binary payloads).

// ValueKind tags which field of Value is populated.
type ValueKind uint8

const (
	ValueNone ValueKind = iota
	ValueInt
	ValueFloat
	ValueString
	ValueBool
	ValueBlob
	ValueNode
)

// Value is a tagged variant: int, float, string, blob, bool, or a reference
// to a node (spec 3: "Variants: int, float, string, blob, pointer-to-node").
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	s    string
	b    []byte
	n    *Node
}

func IntValue(i int64) Value      { return Value{kind: ValueInt, i: i} }
func FloatValue(f float64) Value  { return Value{kind: ValueFloat, f: f} }
func StringValue(s string) Value  { return Value{kind: ValueString, s: s} }
func BoolValue(b bool) Value {
	var i int64
	if b {
		i = 1
	}
	return Value{kind: ValueBool, i: i}
}
func BlobValue(b []byte) Value    { return Value{kind: ValueBlob, b: b} }
func NodeRefValue(n *Node) Value  { return Value{kind: ValueNode, n: n} }

func (v Value) Kind() ValueKind { return v.kind }

// Int returns v's int payload and true if v holds a ValueInt.
func (v Value) Int() (int64, bool) {
	if v.kind != ValueInt {
		return 0, false
	}
	return v.i, true
}

// Float returns v's float payload and true if v holds a ValueFloat.
func (v Value) Float() (float64, bool) {
	if v.kind != ValueFloat {
		return 0, false
	}
	return v.f, true
}

// String returns v's string payload and true if v holds a ValueString.
func (v Value) String() (string, bool) {
	if v.kind != ValueString {
		return "", false
	}
	return v.s, true
}

// Bool returns v's bool payload and true if v holds a ValueBool.
func (v Value) Bool() (bool, bool) {
	if v.kind != ValueBool {
		return false, false
	}
	return v.i != 0, true
}

// Blob returns v's byte-slice payload and true if v holds a ValueBlob.
func (v Value) Blob() ([]byte, bool) {
	if v.kind != ValueBlob {
		return nil, false
	}
	return v.b, true
}

// NodeRef returns v's node reference and true if v holds a ValueNode.
func (v Value) NodeRef() (*Node, bool) {
	if v.kind != ValueNode {
		return nil, false
	}
	return v.n, true
}

// NamedValues is an ordered string -> Value mapping, used for signal
// argument bags and scene parameter bags.
type NamedValues struct {
	order []string
	m     map[string]Value
}

// NewNamedValues returns an empty bag.
func NewNamedValues() NamedValues {
	return NamedValues{m: make(map[string]Value)}
}

// Set assigns name to value, appending name to the iteration order the
// first time it is used.
func (nv *NamedValues) Set(name string, value Value) {
	if nv.m == nil {
		nv.m = make(map[string]Value)
	}
	if _, exists := nv.m[name]; !exists {
		nv.order = append(nv.order, name)
	}
	nv.m[name] = value
}

// Get returns the value for name and whether it was present.
func (nv NamedValues) Get(name string) (Value, bool) {
	if nv.m == nil {
		return Value{}, false
	}
	v, ok := nv.m[name]
	return v, ok
}

// Has reports whether name is present.
func (nv NamedValues) Has(name string) bool {
	_, ok := nv.Get(name)
	return ok
}

// Keys returns the names in insertion order. The returned slice must not be
// mutated by the caller.
func (nv NamedValues) Keys() []string { return nv.order }

// Len returns the number of entries.
func (nv NamedValues) Len() int { return len(nv.order) }
