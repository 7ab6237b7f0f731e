package plex_test

import (
	"reflect"
	"testing"

	"github.com/hasbyte1/go-plex/plex"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fixtures and helpers
// ─────────────────────────────────────────────────────────────────────────────

// sampleRecords builds the three-record fixture used throughout the tests.
func sampleRecords() *plex.Plex {
	return plex.From([]any{
		map[string]any{"foo": 0, "bar": 0},
		map[string]any{"foo": 1, "bar": 1},
		map[string]any{"foo": 2, "bar": 0},
	})
}

func mustAttr(t *testing.T, p *plex.Plex, name string) *plex.Plex {
	t.Helper()
	out, err := p.Attr(name)
	if err != nil {
		t.Fatalf("Attr(%q): %v", name, err)
	}
	return out
}

func assertNative(t *testing.T, p *plex.Plex, want any) {
	t.Helper()
	if got := p.Native(); !reflect.DeepEqual(got, want) {
		t.Fatalf("native form: got %v want %v", got, want)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Constructors
// ─────────────────────────────────────────────────────────────────────────────

func TestNew(t *testing.T) {
	p := plex.New(1, 2, 3)
	assertNative(t, p, []any{1, 2, 3})
}

func TestFromCopiesSlice(t *testing.T) {
	items := []any{"a", "b"}
	p := plex.From(items)
	items[0] = "z" // mutate original – should not affect the collection
	if v, _ := p.Get(0); v != "a" {
		t.Fatal("From did not copy the slice")
	}
}

func TestNewWrapsContainers(t *testing.T) {
	p := plex.New([]any{1, 2}, map[string]any{"k": "v"})
	sub, _ := p.Get(0)
	if _, ok := sub.(*plex.Plex); !ok {
		t.Fatalf("nested slice not wrapped: %T", sub)
	}
	d, _ := p.Get(1)
	if _, ok := d.(*plex.Dict); !ok {
		t.Fatalf("nested map not wrapped: %T", d)
	}
}

func TestEmpty(t *testing.T) {
	p := plex.Empty()
	if !p.IsEmpty() || p.Len() != 0 {
		t.Fatal("Empty should have no elements")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Accessors
// ─────────────────────────────────────────────────────────────────────────────

func TestGet(t *testing.T) {
	p := plex.New(10, 20, 30)
	v, ok := p.Get(1)
	if !ok || v != 20 {
		t.Fatalf("Get(1) = %v, %v; want 20, true", v, ok)
	}
	if _, ok := p.Get(3); ok {
		t.Fatal("Get out of range should return false")
	}
}

func TestEach(t *testing.T) {
	sum := 0
	plex.New(1, 2, 3).Each(func(v any, _ int) { sum += v.(int) })
	if sum != 6 {
		t.Fatalf("Each visited sum %d, want 6", sum)
	}
}

func TestRootSelfRooted(t *testing.T) {
	p := sampleRecords()
	if p.Root() != p {
		t.Fatal("an underived collection must be its own root")
	}
	if p.Root().Root() != p.Root() {
		t.Fatal("Root must be idempotent")
	}
}

func TestRootOfDerived(t *testing.T) {
	records := sampleRecords()
	foo := mustAttr(t, records, "foo")
	if foo.Root() != records {
		t.Fatal("derived collection must point back at its source")
	}
	// A second derivation still points at the outermost source.
	doubled, err := foo.Apply(func(n int) int { return n * 2 })
	if err != nil {
		t.Fatal(err)
	}
	if doubled.Root() != records {
		t.Fatal("second-order derivation lost the root")
	}
}

func TestNative(t *testing.T) {
	records := sampleRecords()
	want := []any{
		map[string]any{"foo": 0, "bar": 0},
		map[string]any{"foo": 1, "bar": 1},
		map[string]any{"foo": 2, "bar": 0},
	}
	assertNative(t, records, want)
}

func TestString(t *testing.T) {
	got := plex.New(1, "a").String()
	if got != `[1,"a"]` {
		t.Fatalf("String: got %s", got)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Deep equality
// ─────────────────────────────────────────────────────────────────────────────

func TestEqualsDeep(t *testing.T) {
	p := plex.New(1, []any{2, 3})
	if !p.EqualsDeep([]any{1, []any{2, 3}}) {
		t.Fatal("expected deep equality")
	}
	if p.EqualsDeep([]any{1, []any{2, 4}}) {
		t.Fatal("expected deep inequality on leaf")
	}
	if p.EqualsDeep([]any{1}) {
		t.Fatal("expected deep inequality on length")
	}
	// Numeric coercion at the leaves.
	if !plex.New(1, 2).EqualsDeep([]any{1.0, 2.0}) {
		t.Fatal("expected 1 == 1.0 at the leaves")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Surrogate keys
// ─────────────────────────────────────────────────────────────────────────────

func TestSurrogate(t *testing.T) {
	a := plex.Surrogate([]any{1, 2})
	b := plex.Surrogate([]any{1, 2})
	c := plex.Surrogate([]any{2, 1})
	if a != b {
		t.Fatal("equal values must share a surrogate")
	}
	if a == c {
		t.Fatal("different values must not collide trivially")
	}
	if len(a) != 32 {
		t.Fatalf("surrogate length: got %d want 32", len(a))
	}
}
