package plex

import (
	"encoding/hex"
	"fmt"
	"reflect"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/blake2b"
)

// Element identity.
//
// Logical set operations (see [Plex.And], [Plex.Or], [Plex.Xor]) need a
// notion of "the same element" that is distinct from value equality: two
// records with equal fields are still two records. Every element is tagged
// with a ULID when it first enters a collection, and the tag travels with
// the element through selection, slicing, grouping and filtering. ULIDs are
// lexicographically sortable in creation order, which keeps identity-set
// results deterministic.

// newIDs allocates fresh identity tags for n elements.
func newIDs(n int) []ulid.ULID {
	ids := make([]ulid.ULID, n)
	for i := range ids {
		ids[i] = ulid.Make()
	}
	return ids
}

// leafRef is one leaf element together with its identity tag, produced by
// flattening a structure for identity-set combination.
type leafRef struct {
	id ulid.ULID
	v  any
}

// flattenRefs collects every ultimate leaf of p, in left-to-right
// depth-first order, paired with its identity tag.
func (p *Plex) flattenRefs() []leafRef {
	out := make([]leafRef, 0, len(p.elems))
	for i, el := range p.elems {
		if sub, ok := el.(*Plex); ok {
			out = append(out, sub.flattenRefs()...)
			continue
		}
		out = append(out, leafRef{id: p.ids[i], v: el})
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Hashability
// ─────────────────────────────────────────────────────────────────────────────

// hashable reports whether v can serve directly as a group key. Mutable
// containers (Plex, Dict) and values of non-comparable dynamic type cannot;
// callers group by [Surrogate](v) instead.
func hashable(v any) bool {
	switch v.(type) {
	case nil:
		return true
	case *Plex, *Dict, *DefaultDict:
		return false
	}
	return reflect.TypeOf(v).Comparable()
}

// groupKey returns the map key to group v under, or a [HashabilityError].
func groupKey(v any) (any, error) {
	if !hashable(v) {
		return nil, &HashabilityError{Value: v}
	}
	return v, nil
}

// Surrogate derives a stable, hashable stand-in for an arbitrary value: the
// hex form of a BLAKE2b-128 digest over the value's verbose string
// rendering. Use it to group or deduplicate by values that are not
// themselves usable as keys:
//
//	keys, _ := records.Attr("tags")           // slice-valued field
//	byTags, _ := keys.Apply(plex.Surrogate)   // hashable stand-ins
//	groups, _ := byTags.GroupBy()
func Surrogate(v any) string {
	sum := blake2b.Sum256([]byte(fmt.Sprintf("%#v", nativeValue(v))))
	return hex.EncodeToString(sum[:16])
}
