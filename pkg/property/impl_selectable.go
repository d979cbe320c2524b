/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"fmt"
	"slices"

	"golang.org/x/exp/maps"

	"github.com/voedger/charcoal/pkg/codec"
	"github.com/voedger/charcoal/pkg/translator"
)

// Choices list, embedded into enum-like properties
//
// # Implements:
//   - ISelectable
type selectable struct {
	trans   translator.ITranslator
	choices []Choice
	index   map[string]int
}

func (s *selectable) initChoices(trans translator.ITranslator) {
	s.trans = trans
	s.choices = nil
	s.index = make(map[string]int)
}

func (s *selectable) Choices() []Choice {
	return slices.Clone(s.choices)
}

func (s *selectable) HasChoices() bool {
	return len(s.choices) > 0
}

func (s *selectable) Choice(key string) (Choice, bool) {
	if i, ok := s.index[key]; ok {
		return s.choices[i], true
	}
	return Choice{}, false
}

func (s *selectable) HasChoice(key string) bool {
	_, ok := s.index[key]
	return ok
}

func (s *selectable) ChoiceLabel(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case Choice:
		return val.Label, nil
	case map[string]any:
		if len(val) == 0 {
			return nil, ErrInvalidArgument("choice structure is empty")
		}
		if l, ok := val["label"]; ok {
			return s.trans.Translation(l), nil
		}
		cv, ok := val["value"]
		if !ok {
			return nil, ErrInvalidArgument("choice structure has neither label nor value")
		}
		v = cv
	}
	key, ok := choiceKey(v)
	if !ok {
		return nil, ErrInvalidArgument("choice key must be a string or an integer, got %T", v)
	}
	if c, ok := s.Choice(key); ok {
		return c.Label, nil
	}
	return v, nil
}

func (s *selectable) AddChoice(key string, choice any) error {
	c, err := s.parseChoice(key, choice)
	if err != nil {
		return err
	}
	if i, ok := s.index[c.Value]; ok {
		s.choices[i] = c
		return nil
	}
	s.index[c.Value] = len(s.choices)
	s.choices = append(s.choices, c)
	return nil
}

func (s *selectable) AddChoices(choices any) error {
	switch val := choices.(type) {
	case nil:
		return nil
	case map[string]any:
		keys := maps.Keys(val)
		slices.Sort(keys)
		for _, k := range keys {
			if err := s.AddChoice(k, val[k]); err != nil {
				return err
			}
		}
		return nil
	case map[string]string:
		keys := maps.Keys(val)
		slices.Sort(keys)
		for _, k := range keys {
			if err := s.AddChoice(k, val[k]); err != nil {
				return err
			}
		}
		return nil
	case []Choice:
		for _, c := range val {
			if err := s.AddChoice(c.Value, c); err != nil {
				return err
			}
		}
		return nil
	}
	if !isList(choices) {
		return ErrInvalidArgument("choices must be a map or a list, got %T", choices)
	}
	for i, item := range codec.ParseMultiple(choices, codec.DefaultSeparator) {
		key := ""
		switch c := item.(type) {
		case map[string]any:
			key, _ = choiceKey(c["value"])
		default:
			key, _ = choiceKey(c)
		}
		if key == "" {
			return ErrInvalidArgument("choice #%d has no value", i)
		}
		if err := s.AddChoice(key, item); err != nil {
			return err
		}
	}
	return nil
}

func (s *selectable) SetChoices(choices any) error {
	s.choices = nil
	s.index = make(map[string]int)
	return s.AddChoices(choices)
}

// Normalizes raw choice into {value, label} pair. Value defaults to key, label defaults to value
func (s *selectable) parseChoice(key string, choice any) (Choice, error) {
	var label any
	switch val := choice.(type) {
	case nil:
	case string, map[string]string, *translator.Translation:
		label = val
	case Choice:
		if val.Value == "" {
			return Choice{}, ErrInvalidArgument("choice key is empty")
		}
		return val, nil
	case map[string]any:
		if v, ok := val["value"]; ok {
			k, ok := choiceKey(v)
			if !ok {
				return Choice{}, ErrInvalidArgument("choice value must be a string or an integer, got %T", v)
			}
			key = k
		}
		if l, ok := val["label"]; ok {
			label = l
		} else if _, ok := val["value"]; !ok {
			// locale map
			label = val
		}
	default:
		str, ok := codec.ToString(choice)
		if !ok {
			return Choice{}, ErrInvalidArgument("choice «%s» must be a string or a map, got %T", key, choice)
		}
		label = str
	}
	if key == "" {
		return Choice{}, ErrInvalidArgument("choice key is empty")
	}
	if codec.IsBlank(label) {
		label = key
	}
	return Choice{Value: key, Label: s.trans.Translation(label)}, nil
}

func choiceKey(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(val), true
	}
	return "", false
}

// Returns choice label in locale if key is a choice
func (s *selectable) choiceText(key string, locale string) (string, bool) {
	c, ok := s.Choice(key)
	if !ok {
		return "", false
	}
	return translated(c.Label, locale, s.trans.DefaultLocale()), true
}
