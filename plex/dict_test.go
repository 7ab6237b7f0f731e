package plex_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hasbyte1/go-plex/plex"
)

func TestDictSetGet(t *testing.T) {
	d := plex.NewDict().Set("a", 1).Set("b", 2)
	v, ok := d.Get("a")
	if !ok || v != 1 {
		t.Fatalf("Get(a) = %v, %v; want 1, true", v, ok)
	}
	if _, ok := d.Get("missing"); ok {
		t.Fatal("missing key must report absent")
	}
	if d.Len() != 2 {
		t.Fatalf("Len: got %d want 2", d.Len())
	}
}

func TestDictOfAdoptsMap(t *testing.T) {
	m := map[string]any{"a": 1}
	d := plex.DictOf(m)
	d.Set("b", 2)
	if m["b"] != 2 {
		t.Fatal("DictOf must adopt, not copy")
	}
	m["c"] = 3
	if !d.Has("c") {
		t.Fatal("outside writes must be visible")
	}
}

func TestDictGetWrapsNested(t *testing.T) {
	d := plex.DictOf(map[string]any{"sub": map[string]any{"x": 1}})
	v1, _ := d.Get("sub")
	sub, ok := v1.(*plex.Dict)
	if !ok {
		t.Fatalf("nested map not wrapped: %T", v1)
	}
	v2, _ := d.Get("sub")
	if v2 != sub {
		t.Fatal("the wrapper must be stable across reads")
	}
}

func TestDictGetWrapsNestedList(t *testing.T) {
	d := plex.DictOf(map[string]any{"tags": []any{"a", "b"}})
	v1, _ := d.Get("tags")
	tags, ok := v1.(*plex.Plex)
	if !ok {
		t.Fatalf("nested slice not wrapped: %T", v1)
	}
	v2, _ := d.Get("tags")
	if v2 != tags {
		t.Fatal("the wrapper must be stable across reads")
	}
}

func TestListFieldWritesThrough(t *testing.T) {
	records := plex.New(map[string]any{"tags": []any{"a", "b"}})
	tags := mustAttr(t, records, "tags")
	first, _ := tags.Get(0)
	if _, err := first.(*plex.Plex).ISet(0, "Z"); err != nil {
		t.Fatal(err)
	}
	again := mustAttr(t, records, "tags")
	el, _ := again.Get(0)
	if got, _ := el.(*plex.Plex).Get(0); got != "Z" {
		t.Fatalf("write not visible on re-read: got %v want Z", got)
	}
}

func TestListFieldIdentityStable(t *testing.T) {
	records := plex.New(map[string]any{"tags": []any{"a", "b"}})
	a, _ := mustAttr(t, records, "tags").Get(0)
	b, _ := mustAttr(t, records, "tags").Get(0)
	// Two reads of the same list field denote the same elements, so the
	// identity intersection keeps all of them.
	both := a.(*plex.Plex).And(b.(*plex.Plex))
	if both.Len() != 2 {
		t.Fatalf("identity intersection: got %d elements, want 2", both.Len())
	}
}

func TestDictDelUpdate(t *testing.T) {
	d := plex.NewDict().Set("a", 1)
	d.Del("a")
	if d.Has("a") {
		t.Fatal("Del failed")
	}
	d.Update(map[string]any{"x": 1, "y": 2})
	if d.Len() != 2 {
		t.Fatalf("Update: got Len %d want 2", d.Len())
	}
}

func TestDictPeys(t *testing.T) {
	d := plex.DictOf(map[string]any{"c": 3, "a": 1, "b": 2})
	if got := d.Peys(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("Peys: got %v", got)
	}
	if got := d.Palues().Native(); !reflect.DeepEqual(got, []any{1, 2, 3}) {
		t.Fatalf("Palues: got %v", got)
	}
	items := d.Pitems()
	if len(items) != 3 || items[0].Key != "a" || items[0].Val != 1 {
		t.Fatalf("Pitems: got %v", items)
	}
}

func TestDictString(t *testing.T) {
	d := plex.DictOf(map[string]any{"b": 2, "a": 1})
	if got := d.String(); got != `{"a":1,"b":2}` {
		t.Fatalf("String: got %s", got)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Batch access and reconstruction
// ─────────────────────────────────────────────────────────────────────────────

func TestDictGetList(t *testing.T) {
	d := plex.DictOf(map[string]any{"a": 1, "b": 2})
	vals := d.GetList([]string{"b", "a", "zz"})
	if got := vals.Native(); !reflect.DeepEqual(got, []any{2, 1, nil}) {
		t.Fatalf("GetList: got %v", got)
	}
}

func TestDictSetList(t *testing.T) {
	d := plex.NewDict()
	if err := d.SetList([]string{"a", "b"}, []any{1, 2}); err != nil {
		t.Fatal(err)
	}
	if v, _ := d.Get("b"); v != 2 {
		t.Fatalf("SetList per-key: got %v", v)
	}
	if err := d.SetList([]string{"x", "y"}, 0); err != nil {
		t.Fatal(err)
	}
	if v, _ := d.Get("y"); v != 0 {
		t.Fatal("SetList must broadcast scalars")
	}
	err := d.SetList([]string{"a", "b"}, []any{1})
	if err == nil || !errors.Is(err, plex.ErrShape) {
		t.Fatalf("length mismatch must be a shape error, got %v", err)
	}
}

func TestFilteredValuesToDict(t *testing.T) {
	d := plex.DictOf(map[string]any{"a": 1, "b": 2, "c": 3})
	vals := d.GetList([]string{"a", "b", "c"})

	big, err := vals.Ge(2).ToDict()
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"b": 2, "c": 3}
	if got := big.Native(); !reflect.DeepEqual(got, want) {
		t.Fatalf("ToDict: got %v want %v", got, want)
	}
}

func TestToDictRequiresKeyValues(t *testing.T) {
	_, err := plex.New(1, 2).ToDict()
	if err == nil || !errors.Is(err, plex.ErrStructure) {
		t.Fatalf("expected a structure error, got %v", err)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Dot-notation paths
// ─────────────────────────────────────────────────────────────────────────────

func TestDictPaths(t *testing.T) {
	d := plex.NewDict()
	d.SetPath("user.address.city", "oslo")
	v, ok := d.GetPath("user.address.city")
	if !ok || v != "oslo" {
		t.Fatalf("GetPath: got %v, %v", v, ok)
	}
	if !d.HasPath("user.address") {
		t.Fatal("intermediate paths must resolve")
	}
	if d.HasPath("user.phone") {
		t.Fatal("absent path must not resolve")
	}
	// A leaf in the middle of the path stops resolution.
	d.SetPath("user.age", 40)
	if d.HasPath("user.age.years") {
		t.Fatal("cannot traverse through a leaf")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// DefaultDict
// ─────────────────────────────────────────────────────────────────────────────

func TestDefaultDict(t *testing.T) {
	d := plex.NewDefaultDict(func() any { return []any{} })
	v := d.Get("fresh")
	if _, ok := v.(*plex.Plex); !ok {
		t.Fatalf("factory value not wrapped: %T", v)
	}
	if !d.Has("fresh") {
		t.Fatal("synthesized values must be stored")
	}
	d.Set("n", 1)
	if v := d.Get("n"); v != 1 {
		t.Fatalf("existing keys bypass the factory: got %v", v)
	}
}

func TestDefaultDictCounts(t *testing.T) {
	counts := plex.NewDefaultDict(func() any { return 0 })
	for _, w := range []string{"a", "b", "a"} {
		counts.Set(w, counts.Get(w).(int)+1)
	}
	if v := counts.Get("a"); v != 2 {
		t.Fatalf("count(a): got %v want 2", v)
	}
}
