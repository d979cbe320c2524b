/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package metadata

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type fileHeader struct {
	Ident       string         `yaml:"ident"`
	Key         string         `yaml:"key"`
	Table       string         `yaml:"table"`
	Label       any            `yaml:"label"`
	Extends     []string       `yaml:"extends"`
	DefaultData map[string]any `yaml:"default_data"`
	Properties  yaml.Node      `yaml:"properties"`
}

// Parses YAML or JSON metadata.
//
// Property definitions order is preserved.
// If document has no `ident`, then specified ident is used.
func Parse(ident string, data []byte) (*Metadata, error) {
	m, _, err := parse(ident, data)
	return m, err
}

func parse(ident string, data []byte) (*Metadata, []string, error) {
	var h fileHeader
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, nil, fmt.Errorf("metadata «%s»: %w: %w", ident, ErrInvalidError, err)
	}
	if h.Ident != "" {
		ident = h.Ident
	}
	m := New(ident)
	if h.Key != "" {
		m.Key = h.Key
	}
	m.Table = h.Table
	m.Label = h.Label
	m.DefaultData = h.DefaultData

	props := &h.Properties
	switch props.Kind {
	case 0:
		// no properties
	case yaml.MappingNode:
		for i := 0; i+1 < len(props.Content); i += 2 {
			kn, vn := props.Content[i], props.Content[i+1]
			pd := PropertyData{}
			if err := vn.Decode(&pd); err != nil {
				return nil, nil, fmt.Errorf("metadata «%s» property «%s»: %w: %w", ident, kn.Value, ErrInvalidError, err)
			}
			if err := m.AddProperty(kn.Value, pd); err != nil {
				return nil, nil, err
			}
		}
	default:
		return nil, nil, ErrInvalid("metadata «%s»: properties must be a mapping", ident)
	}
	return m, h.Extends, nil
}
