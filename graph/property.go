package graph

/*
ValueKind tags the variant held by a Value (spec §3).
*/
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindInt64
	KindFloat64
	KindBool
	KindStringList
	KindInt64List
)

/*
Value is a tagged scalar or list value held by a PropertyMap entry.
*/
type Value struct {
	Kind     ValueKind
	Str      string
	Int      int64
	Float    float64
	Bool     bool
	StrList  []string
	IntList  []int64
}

func NullValue() Value              { return Value{Kind: KindNull} }
func StringValue(s string) Value    { return Value{Kind: KindString, Str: s} }
func Int64Value(i int64) Value      { return Value{Kind: KindInt64, Int: i} }
func Float64Value(f float64) Value  { return Value{Kind: KindFloat64, Float: f} }
func BoolValue(b bool) Value        { return Value{Kind: KindBool, Bool: b} }
func StringListValue(s []string) Value {
	return Value{Kind: KindStringList, StrList: append([]string(nil), s...)}
}
func Int64ListValue(i []int64) Value {
	return Value{Kind: KindInt64List, IntList: append([]int64(nil), i...)}
}

/*
Equal reports whether two values carry the same kind and content. Used by
the query builder's exact-value property filter.
*/
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == o.Str
	case KindInt64:
		return v.Int == o.Int
	case KindFloat64:
		return v.Float == o.Float
	case KindBool:
		return v.Bool == o.Bool
	case KindStringList:
		return equalStrList(v.StrList, o.StrList)
	case KindInt64List:
		return equalIntList(v.IntList, o.IntList)
	default:
		return true // two nulls are equal
	}
}

func equalStrList(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalIntList(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

/*
PropertyMap is an ordered mapping from string keys to tagged values.
Insertion order is preserved (I5); setting an existing key updates its
value in place without moving it, satisfying last-write-wins (I4) while
keeping serialization deterministic.
*/
type PropertyMap struct {
	order  []string
	values map[string]Value
}

/*
NewPropertyMap creates an empty property map.
*/
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{values: make(map[string]Value)}
}

/*
Set assigns val to key, preserving key's original position if it already
existed, or appending it if it's new.
*/
func (p *PropertyMap) Set(key string, val Value) {
	if _, ok := p.values[key]; !ok {
		p.order = append(p.order, key)
	}
	p.values[key] = val
}

/*
Get returns the value stored under key.
*/
func (p *PropertyMap) Get(key string) (Value, bool) {
	v, ok := p.values[key]
	return v, ok
}

/*
Delete removes key from the map.
*/
func (p *PropertyMap) Delete(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	for i, k := range p.order {
		if k == key {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

/*
Keys returns the property keys in insertion order.
*/
func (p *PropertyMap) Keys() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

/*
Len returns the number of properties.
*/
func (p *PropertyMap) Len() int {
	return len(p.order)
}

/*
Clone returns a deep copy, so callers mutating the result never affect
the stored node/edge.
*/
func (p *PropertyMap) Clone() *PropertyMap {
	c := NewPropertyMap()
	for _, k := range p.order {
		c.Set(k, p.values[k])
	}
	return c
}

/*
StringOr returns the string value of key, or def if key is absent or not
a string. Used pervasively by the query builder and export writers to
read the conventional "name"/"path" properties.
*/
func (p *PropertyMap) StringOr(key, def string) string {
	if v, ok := p.Get(key); ok && v.Kind == KindString {
		return v.Str
	}
	return def
}
