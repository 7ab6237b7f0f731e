// Package interop converts plex collections to and from boundary formats:
// plain nested structures, JSON, YAML, CSV tables and numeric arrays.
//
// The core package deliberately has no serialisation surface beyond
// Native(); everything that talks to the outside world lives here.
package interop

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hasbyte1/go-plex/plex"
)

// ToJSON serialises a collection to a JSON array, nested collections and
// Dicts included.
func ToJSON(p *plex.Plex) ([]byte, error) {
	return json.Marshal(p.Native())
}

// DictToJSON serialises a Dict to a JSON object.
func DictToJSON(d *plex.Dict) ([]byte, error) {
	return json.Marshal(d.Native())
}

// FromJSON builds a Plex from JSON. An array becomes the collection's
// elements; any other document becomes a single-element collection.
func FromJSON(data []byte) (*plex.Plex, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("interop: invalid JSON: %w", err)
	}
	return fromNative(v), nil
}

// DictFromJSON builds a Dict from a JSON object.
func DictFromJSON(data []byte) (*plex.Dict, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("interop: invalid JSON object: %w", err)
	}
	return plex.DictOf(m), nil
}

// ToYAML serialises a collection to YAML.
func ToYAML(p *plex.Plex) ([]byte, error) {
	return yaml.Marshal(p.Native())
}

// DictToYAML serialises a Dict to a YAML mapping.
func DictToYAML(d *plex.Dict) ([]byte, error) {
	return yaml.Marshal(d.Native())
}

// FromYAML builds a Plex from YAML. A sequence becomes the collection's
// elements; any other document becomes a single-element collection.
func FromYAML(data []byte) (*plex.Plex, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("interop: invalid YAML: %w", err)
	}
	return fromNative(v), nil
}

// DictFromYAML builds a Dict from a YAML mapping.
func DictFromYAML(data []byte) (*plex.Dict, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("interop: invalid YAML mapping: %w", err)
	}
	return plex.DictOf(m), nil
}

// FromNative builds a Plex from an already-decoded nested structure.
func FromNative(v any) *plex.Plex {
	return fromNative(v)
}

func fromNative(v any) *plex.Plex {
	if items, ok := v.([]any); ok {
		return plex.From(items)
	}
	return plex.New(v)
}
