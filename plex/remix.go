package plex

import "sort"

// Remix builds a new, flat collection of Dict records from the receiver:
// one record per positional element, each holding the named fields (read
// via the attribute-or-subscript chain) plus the supplied extra values,
// broadcast per [ensureLen].
//
// When the receiver is grouped, each element is a group and the record's
// field values become the grouped list. Remixing through a [View] at
// [Deepest] instead produces one record per innermost group.
func (p *Plex) Remix(fields []string, kv map[string]any) (*Plex, error) {
	return p.remixAt(0, fields, kv)
}

func (p *Plex) remixAt(depth int, fields []string, kv map[string]any) (*Plex, error) {
	targets := make([]any, 0, len(p.elems))
	if depth == 0 {
		targets = append(targets, p.elems...)
	} else {
		for _, g := range collectGroups(p, depth) {
			targets = append(targets, g)
		}
	}
	extra := make(map[string][]any, len(kv))
	for k, v := range kv {
		extra[k] = ensureLen(len(targets), v, false)
	}
	extraKeys := make([]string, 0, len(extra))
	for k := range extra {
		extraKeys = append(extraKeys, k)
	}
	sort.Strings(extraKeys)

	out := make([]any, len(targets))
	for i, el := range targets {
		d := NewDict()
		for _, f := range fields {
			v, err := remixField(el, f)
			if err != nil {
				return nil, err
			}
			d.Set(f, v)
		}
		for _, k := range extraKeys {
			d.Set(k, extra[k][i])
		}
		out[i] = d
	}
	return newPlex(out, nil), nil
}

func remixField(el any, field string) (any, error) {
	if sub, ok := el.(*Plex); ok {
		// A grouped element contributes the whole grouped list.
		return sub.Attr(field)
	}
	return resolveAttr(el, field)
}

// collectGroups gathers the sub-collections at the given depth; at
// [Deepest] it gathers the innermost groups.
func collectGroups(p *Plex, depth int) []*Plex {
	if depth < 0 {
		if !p.anyNested() {
			return []*Plex{p}
		}
		var out []*Plex
		for _, el := range p.elems {
			if sub, ok := el.(*Plex); ok {
				out = append(out, collectGroups(sub, depth)...)
			}
		}
		return out
	}
	if depth == 0 {
		return []*Plex{p}
	}
	var out []*Plex
	for _, el := range p.elems {
		if sub, ok := el.(*Plex); ok {
			out = append(out, collectGroups(sub, depth-1)...)
		}
	}
	return out
}
