package plex

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

// Dict is a string-keyed mapping whose keys double as field names for
// [Plex.Attr]. It is the typical element type held inside a Plex.
//
// Batch access with a list of keys round-trips through Plex: the derived
// collection is rooted in (key, value) pairs so a filtered view can be
// reassembled into a mapping later with [Plex.ToDict].
//
// A Dict does not carry a root reference and has no lifecycle beyond
// ordinary map semantics. It is shared, never copied implicitly: every
// Plex that holds it sees mutations made through any other.
type Dict struct {
	m map[string]any
}

// KeyValue is an immutable (key, value) pair. It preserves key identity
// when a Dict is indexed by a list of keys, so the derived collection's
// root can reconstruct a mapping from (keys, values) later.
type KeyValue struct {
	Key string
	Val any
}

// String returns "(key, value)".
func (kv KeyValue) String() string {
	return fmt.Sprintf("(%v, %v)", kv.Key, kv.Val)
}

// ─────────────────────────────────────────────────────────────────────────────
// Constructors
// ─────────────────────────────────────────────────────────────────────────────

// NewDict creates an empty Dict.
func NewDict() *Dict {
	return &Dict{m: make(map[string]any)}
}

// DictOf wraps an existing map. The map is adopted, not copied: mutations
// through the Dict are visible in m and vice versa. Nested []any and
// map[string]any values are wrapped on read, not on construction.
func DictOf(m map[string]any) *Dict {
	if m == nil {
		m = make(map[string]any)
	}
	return &Dict{m: m}
}

// ─────────────────────────────────────────────────────────────────────────────
// Single-key access
// ─────────────────────────────────────────────────────────────────────────────

// Get returns the value stored under key together with a presence flag.
// Nested plain containers are wrapped into *Plex / *Dict on the way out.
func (d *Dict) Get(key string) (any, bool) {
	v, ok := d.m[key]
	if !ok {
		return nil, false
	}
	w := wrapValue(v)
	switch v.(type) {
	case map[string]any, []any:
		d.m[key] = w // keep the wrapper stable across reads
	}
	return w, true
}

// Set stores value under key and returns the Dict for chaining.
func (d *Dict) Set(key string, value any) *Dict {
	d.m[key] = value
	return d
}

// Del removes key and returns the Dict for chaining.
func (d *Dict) Del(key string) *Dict {
	delete(d.m, key)
	return d
}

// Has reports whether key is present.
func (d *Dict) Has(key string) bool {
	_, ok := d.m[key]
	return ok
}

// Len returns the number of keys.
func (d *Dict) Len() int { return len(d.m) }

// Update merges src into the Dict, overwriting existing keys, and returns
// the Dict for chaining.
func (d *Dict) Update(src map[string]any) *Dict {
	for k, v := range src {
		d.m[k] = v
	}
	return d
}

// ─────────────────────────────────────────────────────────────────────────────
// Batch (list-keyed) access
// ─────────────────────────────────────────────────────────────────────────────

// GetList returns the values for keys as a Plex. The result is rooted in a
// Plex of [KeyValue] pairs for those keys, so a derived, filtered view can
// be turned back into a mapping with [Plex.ToDict]. Missing keys yield nil
// values.
func (d *Dict) GetList(keys []string) *Plex {
	pairs := make([]any, len(keys))
	vals := make([]any, len(keys))
	for i, k := range keys {
		v, _ := d.Get(k)
		pairs[i] = KeyValue{Key: k, Val: v}
		vals[i] = v
	}
	root := newPlex(pairs, nil)
	return &Plex{elems: vals, ids: root.ids, root: root}
}

// SetList assigns value across keys: either one shared value, or a sequence
// whose length equals the key list. A sequence of any other length is a
// [ShapeError].
func (d *Dict) SetList(keys []string, value any) error {
	if s, ok := asSeq(value); ok {
		if len(s) != len(keys) {
			return &ShapeError{Want: len(keys), Got: len(s)}
		}
		for i, k := range keys {
			d.m[k] = s[i]
		}
		return nil
	}
	for _, k := range keys {
		d.m[k] = value
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Ordered listings
// ─────────────────────────────────────────────────────────────────────────────

// Peys returns the keys in sorted order.
func (d *Dict) Peys() []string {
	keys := maps.Keys(d.m)
	sort.Strings(keys)
	return keys
}

// Palues returns the values in Peys order, as a Plex rooted in KeyValue
// pairs (see [Dict.GetList]).
func (d *Dict) Palues() *Plex {
	return d.GetList(d.Peys())
}

// Pitems returns (key, value) pairs in Peys order.
func (d *Dict) Pitems() []KeyValue {
	keys := d.Peys()
	out := make([]KeyValue, len(keys))
	for i, k := range keys {
		v, _ := d.Get(k)
		out[i] = KeyValue{Key: k, Val: v}
	}
	return out
}

// Native returns the underlying map with nested plex types converted back
// to plain containers.
func (d *Dict) Native() map[string]any {
	out := make(map[string]any, len(d.m))
	for k, v := range d.m {
		out[k] = nativeValue(v)
	}
	return out
}

// String returns a JSON representation with sorted keys.
// It implements [fmt.Stringer].
func (d *Dict) String() string {
	b, err := json.Marshal(d.Native())
	if err != nil {
		return fmt.Sprintf("%v", d.m)
	}
	return string(b)
}

// ─────────────────────────────────────────────────────────────────────────────
// Dot-notation path access
// ─────────────────────────────────────────────────────────────────────────────

// GetPath retrieves a value through nested Dicts / maps using a
// dot-separated key path.
//
//	d.GetPath("user.address.city")
func (d *Dict) GetPath(path string) (any, bool) {
	segs := strings.Split(path, ".")
	cur := d
	for i, seg := range segs {
		v, ok := cur.Get(seg)
		if !ok {
			return nil, false
		}
		if i == len(segs)-1 {
			return v, true
		}
		next, ok := v.(*Dict)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// SetPath writes value at the dot-separated key path, creating intermediate
// Dicts as needed, and returns the Dict for chaining.
func (d *Dict) SetPath(path string, value any) *Dict {
	seg, rest, nested := strings.Cut(path, ".")
	if !nested {
		d.m[path] = value
		return d
	}
	sub, ok := d.m[seg]
	next, isDict := wrapValue(sub).(*Dict)
	if !ok || !isDict {
		next = NewDict()
	}
	d.m[seg] = next
	next.SetPath(rest, value)
	return d
}

// HasPath reports whether the dot-separated key path resolves.
func (d *Dict) HasPath(path string) bool {
	_, ok := d.GetPath(path)
	return ok
}

// ─────────────────────────────────────────────────────────────────────────────
// DefaultDict
// ─────────────────────────────────────────────────────────────────────────────

// DefaultDict is a Dict that synthesizes and stores a value from a
// zero-argument factory on every missing-key read.
type DefaultDict struct {
	Dict
	factory func() any
}

// NewDefaultDict creates a DefaultDict with the given value factory.
func NewDefaultDict(factory func() any) *DefaultDict {
	return &DefaultDict{Dict: Dict{m: make(map[string]any)}, factory: factory}
}

// Get returns the value stored under key, synthesizing one via the factory
// when absent.
func (d *DefaultDict) Get(key string) any {
	if v, ok := d.Dict.Get(key); ok {
		return v
	}
	v := wrapValue(d.factory())
	d.m[key] = v
	return v
}

// ─────────────────────────────────────────────────────────────────────────────
// Reconstruction from KeyValue roots
// ─────────────────────────────────────────────────────────────────────────────

// ToDict reassembles a mapping from a Plex whose root elements are
// [KeyValue] pairs, typically a filtered view derived from
// [Dict.GetList]. Elements that are not KeyValue pairs are a
// [StructureError].
func (p *Plex) ToDict() (*Dict, error) {
	src := p.Root()
	out := NewDict()
	for i, el := range src.elems {
		kv, ok := el.(KeyValue)
		if !ok {
			return nil, &StructureError{
				Op:     "ToDict",
				Detail: fmt.Sprintf("element %d is %T, not a KeyValue pair", i, el),
			}
		}
		out.Set(kv.Key, kv.Val)
	}
	return out, nil
}
