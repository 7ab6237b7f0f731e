package plex

import (
	"fmt"
	"reflect"
)

// Invocation and depth-scoped views.

// Call treats the receiver as a collection of callables and invokes each
// with per-position-broadcast arguments: a same-length Plex argument feeds
// one value per callable, anything else is shared. Functions may return
// (value), (value, error) or nothing.
func (p *Plex) Call(args ...any) (*Plex, error) {
	return p.callAt(0, args...)
}

func (p *Plex) callAt(depth int, args ...any) (*Plex, error) {
	lists := broadcastArgs(len(p.elems), args)
	out := make([]any, len(p.elems))
	for i, el := range p.elems {
		pos := argsAt(lists, i)
		sub, nested := el.(*Plex)
		switch {
		case nested && depth != 0:
			res, err := sub.callAt(depthDec(depth), pos...)
			if err != nil {
				return nil, err
			}
			out[i] = res
		case nested:
			res, err := sub.callAt(0, pos...)
			if err != nil {
				return nil, err
			}
			out[i] = res
		case depth > 0:
			return nil, &StructureError{
				Op:     "call",
				Detail: fmt.Sprintf("cannot recurse %d more levels into %T", depth, el),
			}
		default:
			res, err := invokeFunc(el, pos)
			if err != nil {
				return nil, err
			}
			out[i] = res
		}
	}
	return newPlex(out, p.Root()), nil
}

// Apply applies fn to every element, passing the element first and then
// the per-position-broadcast extra arguments. The result keeps the
// receiver's root, so applied views stay aligned with their source:
//
//	foo, _ := records.Attr("foo")
//	tripled, _ := foo.Apply(func(n int) int { return n * 3 })
//	// tripled.Root() is still records
func (p *Plex) Apply(fn any, args ...any) (*Plex, error) {
	return p.applyAt(0, fn, args...)
}

func (p *Plex) applyAt(depth int, fn any, args ...any) (*Plex, error) {
	fns := ensureLen(len(p.elems), fn, true)
	lists := broadcastArgs(len(p.elems), args)
	out := make([]any, len(p.elems))
	for i, el := range p.elems {
		pos := argsAt(lists, i)
		sub, nested := el.(*Plex)
		switch {
		case nested:
			res, err := sub.applyAt(depthDec(depth), fns[i], pos...)
			if err != nil {
				return nil, err
			}
			out[i] = res
		case depth > 0:
			return nil, &StructureError{
				Op:     "apply",
				Detail: fmt.Sprintf("cannot recurse %d more levels into %T", depth, el),
			}
		default:
			res, err := invokeFunc(fns[i], append([]any{el}, pos...))
			if err != nil {
				return nil, err
			}
			out[i] = res
		}
	}
	return newPlex(out, p.Root()), nil
}

func broadcastArgs(n int, args []any) [][]any {
	lists := make([][]any, len(args))
	for j, a := range args {
		lists[j] = ensureLen(n, a, true)
	}
	return lists
}

func argsAt(lists [][]any, i int) []any {
	pos := make([]any, len(lists))
	for j := range lists {
		pos[j] = lists[j][i]
	}
	return pos
}

// invokeFunc calls fn with args via reflection, converting argument types
// where Go allows it. A trailing error result is propagated; otherwise the
// first result (or nil) is returned.
func invokeFunc(fn any, args []any) (any, error) {
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func {
		return nil, &LookupError{
			Name:      "()",
			Container: errNoBuiltin,
			Element:   fmt.Errorf("%T is not callable", fn),
		}
	}
	ft := rv.Type()
	want := ft.NumIn()
	if ft.IsVariadic() {
		if len(args) < want-1 {
			return nil, fmt.Errorf("plex: call needs at least %d args, got %d", want-1, len(args))
		}
	} else if len(args) != want {
		return nil, fmt.Errorf("plex: call needs %d args, got %d", want, len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		var pt reflect.Type
		if ft.IsVariadic() && i >= want-1 {
			pt = ft.In(want - 1).Elem()
		} else {
			pt = ft.In(i)
		}
		if a == nil {
			in[i] = reflect.Zero(pt)
			continue
		}
		av := reflect.ValueOf(a)
		if !av.Type().AssignableTo(pt) {
			if !av.Type().ConvertibleTo(pt) {
				return nil, fmt.Errorf("plex: cannot pass %T as %s", a, pt)
			}
			av = av.Convert(pt)
		}
		in[i] = av
	}
	results := rv.Call(in)
	if n := len(results); n > 0 {
		if err, ok := results[n-1].Interface().(error); ok {
			if err != nil {
				return nil, err
			}
			results = results[:n-1]
		}
	}
	if len(results) == 0 {
		return nil, nil
	}
	return wrapValue(results[0].Interface()), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Depth-scoped views
// ─────────────────────────────────────────────────────────────────────────────

// View is a depth-scoped handle over a Plex: every operation invoked
// through it recurses the view's depth before applying, without any
// transient state on the collection itself.
type View struct {
	p     *Plex
	depth int
}

// AtDepth returns a View over the receiver at the given recursion depth.
// Use [Deepest] to recurse as far as each branch allows.
func (p *Plex) AtDepth(depth int) View {
	return View{p: p, depth: depth}
}

// Plex returns the underlying collection.
func (v View) Plex() *Plex { return v.p }

// Depth returns the view's recursion depth.
func (v View) Depth() int { return v.depth }

// Attr resolves name at the view's depth. Trailing underscores add further
// levels on top of it.
func (v View) Attr(name string) (*Plex, error) {
	base, extra, err := splitDepthMarks(name)
	if err != nil {
		return nil, err
	}
	return v.p.attrAt(base, addDepth(v.depth, extra))
}

// Call invokes the elements at the view's depth.
func (v View) Call(args ...any) (*Plex, error) {
	return v.p.callAt(v.depth, args...)
}

// Apply applies fn to the elements at the view's depth.
func (v View) Apply(fn any, args ...any) (*Plex, error) {
	return v.p.applyAt(v.depth, fn, args...)
}

// Fill numbers the structure with numbering restarting at the view's
// depth; see [Plex.Fill].
func (v View) Fill(start int) (*Plex, error) {
	return v.p.Fill(start, v.depth)
}

// Remix builds records at the view's depth; see [Plex.Remix].
func (v View) Remix(fields []string, kv map[string]any) (*Plex, error) {
	return v.p.remixAt(v.depth, fields, kv)
}

func addDepth(depth, extra int) int {
	if depth < 0 {
		return depth
	}
	return depth + extra
}
