package plex

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// Attribute access.
//
// Attr resolves a name against every element through an explicit
// capability chain, in this documented order:
//
//  1. reserved double-underscore-delimited names are rejected outright;
//  2. trailing underscores are stripped and counted; each one recurses
//     one level deeper before resolving (the ergonomic alternative to an
//     explicit depth);
//  3. nested *Plex elements resolve the name through their own elements;
//  4. Dict / map elements resolve it as a key;
//  5. other elements are probed by reflection for an exported field or
//     method, the name capitalised if needed;
//  6. finally the name is retried as a subscript key.
//
// When the whole chain fails, the error carries both the container-level
// and the element-level causes.

// errNoBuiltin is the container-level cause attached to lookup failures.
var errNoBuiltin = errors.New("name is not a built-in capability of the container")

// Attr returns a new Plex of the named member of every element, rooted at
// the receiver's root.
func (p *Plex) Attr(name string) (*Plex, error) {
	base, extra, err := splitDepthMarks(name)
	if err != nil {
		return nil, err
	}
	return p.attrAt(base, extra)
}

func (p *Plex) attrAt(name string, depth int) (*Plex, error) {
	out := make([]any, len(p.elems))
	for i, el := range p.elems {
		v, err := resolveAttrAt(el, name, depth)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return newPlex(out, p.Root()), nil
}

func resolveAttrAt(el any, name string, depth int) (any, error) {
	if depth != 0 {
		if sub, ok := el.(*Plex); ok {
			return sub.attrAt(name, depthDec(depth))
		}
		if depth > 0 {
			return nil, &StructureError{
				Op:     "attr",
				Detail: fmt.Sprintf("cannot recurse %d more levels into %T", depth, el),
			}
		}
		// Deepest absorbs the failed recursion and applies flat.
	}
	return resolveAttr(el, name)
}

// resolveAttr applies steps 3–6 of the capability chain to one element.
func resolveAttr(el any, name string) (any, error) {
	switch t := el.(type) {
	case *Plex:
		return t.attrAt(name, 0)
	case *DefaultDict:
		return t.Get(name), nil
	case *Dict:
		if v, ok := t.Get(name); ok {
			return v, nil
		}
		return nil, &LookupError{
			Name:      name,
			Container: errNoBuiltin,
			Element:   fmt.Errorf("key %q not present in Dict", name),
		}
	case map[string]any:
		if v, ok := t[name]; ok {
			return wrapValue(v), nil
		}
		return nil, &LookupError{
			Name:      name,
			Container: errNoBuiltin,
			Element:   fmt.Errorf("key %q not present in map", name),
		}
	}
	v, fieldErr := reflectAttr(el, name)
	if fieldErr == nil {
		return v, nil
	}
	v, subErr := subscript(el, name)
	if subErr == nil {
		return v, nil
	}
	return nil, &LookupError{
		Name:      name,
		Container: errNoBuiltin,
		Element:   bothFailed(fieldErr, subErr),
	}
}

// reflectAttr probes el for an exported field or method named name,
// capitalising the first rune when the exact name is unexported.
func reflectAttr(el any, name string) (any, error) {
	rv := reflect.ValueOf(el)
	if !rv.IsValid() {
		return nil, fmt.Errorf("cannot resolve %q on nil", name)
	}
	for _, probe := range probeNames(name) {
		if m := rv.MethodByName(probe); m.IsValid() {
			return m.Interface(), nil
		}
	}
	r := rv
	if r.Kind() == reflect.Pointer {
		if r.IsNil() {
			return nil, fmt.Errorf("cannot resolve %q on nil %T", name, el)
		}
		r = r.Elem()
	}
	if r.Kind() == reflect.Struct {
		for _, probe := range probeNames(name) {
			if f := r.FieldByName(probe); f.IsValid() && f.CanInterface() {
				return wrapValue(f.Interface()), nil
			}
		}
	}
	return nil, fmt.Errorf("%T has no field or method %q", el, name)
}

func probeNames(name string) []string {
	if name == "" {
		return nil
	}
	runes := []rune(name)
	if unicode.IsUpper(runes[0]) {
		return []string{name}
	}
	runes[0] = unicode.ToUpper(runes[0])
	return []string{name, string(runes)}
}

// splitDepthMarks strips trailing underscores off name, returning the base
// name and one extra recursion level per mark, after rejecting reserved
// double-underscore-delimited forms.
func splitDepthMarks(name string) (string, int, error) {
	base := strings.TrimRight(name, "_")
	extra := len(name) - len(base)
	if base == "" {
		return "", 0, &LookupError{
			Name:      name,
			Container: errors.New("name consists only of depth marks"),
		}
	}
	if isReserved(base) || isReserved(name) {
		return "", 0, &LookupError{
			Name:      name,
			Container: fmt.Errorf("%q is a reserved member and cannot be forwarded", name),
		}
	}
	return base, extra, nil
}

func isReserved(name string) bool {
	return len(name) > 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
}

// ─────────────────────────────────────────────────────────────────────────────
// Attribute assignment / deletion
// ─────────────────────────────────────────────────────────────────────────────

// SetAttr assigns value under name across every element, broadcasting per
// [ensureLen]: a same-length sequence assigns per element, anything else is
// shared. Elements are mutated in place; every view aliasing them sees the
// write. Returns the receiver for chaining.
func (p *Plex) SetAttr(name string, value any) (*Plex, error) {
	vals := ensureLen(len(p.elems), value, false)
	for i, el := range p.elems {
		if err := setMember(el, name, vals[i]); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func setMember(el any, name string, value any) error {
	switch t := el.(type) {
	case *Plex:
		_, err := t.SetAttr(name, value)
		return err
	case *DefaultDict:
		t.Set(name, value)
		return nil
	case *Dict:
		t.Set(name, value)
		return nil
	case map[string]any:
		t[name] = value
		return nil
	}
	rv := reflect.ValueOf(el)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct {
		r := rv.Elem()
		for _, probe := range probeNames(name) {
			if f := r.FieldByName(probe); f.IsValid() && f.CanSet() {
				v := reflect.ValueOf(value)
				if !v.IsValid() {
					f.Set(reflect.Zero(f.Type()))
					return nil
				}
				if !v.Type().AssignableTo(f.Type()) {
					if !v.Type().ConvertibleTo(f.Type()) {
						return fmt.Errorf("plex: cannot assign %T to field %q of %T", value, name, el)
					}
					v = v.Convert(f.Type())
				}
				f.Set(v)
				return nil
			}
		}
	}
	return &LookupError{
		Name:      name,
		Container: errNoBuiltin,
		Element:   fmt.Errorf("%T does not support member assignment", el),
	}
}

// DelAttr removes the named member from every element (Dict and map
// elements; nested collections recurse). Returns the receiver for
// chaining.
func (p *Plex) DelAttr(name string) (*Plex, error) {
	for _, el := range p.elems {
		switch t := el.(type) {
		case *Plex:
			if _, err := t.DelAttr(name); err != nil {
				return nil, err
			}
		case *DefaultDict:
			t.Del(name)
		case *Dict:
			t.Del(name)
		case map[string]any:
			delete(t, name)
		default:
			return nil, &LookupError{
				Name:      name,
				Container: errNoBuiltin,
				Element:   fmt.Errorf("%T does not support member deletion", el),
			}
		}
	}
	return p, nil
}
