/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/voedger/charcoal/pkg/codec"
)

var idModes = []string{IdMode_AutoIncrement, IdMode_Uniqid, IdMode_Uuid, IdMode_Custom}

// Floats above are not exact integers
const maxExactFloatInt = 1 << 53

// Identifier of model object.
//
// In auto-increment mode identifier is assigned in two phases: Save(nil)
// returns DeferredID, then storage engine assigns real identifier after insert.
//
// # Implements:
//   - IProperty
type IdProperty struct {
	property
	mode      string
	generator func() string
}

func newIdProperty(deps Deps) IProperty {
	p := &IdProperty{}
	p.init(p, Type_Id, deps)
	p.mode = IdMode_AutoIncrement
	return p
}

func (p *IdProperty) SetL10n(v any) error {
	if codec.ToBool(v) {
		return ErrForbiddenFlag(p.typ, "l10n")
	}
	return nil
}

func (p *IdProperty) SetMultiple(v any) error {
	if codec.ToBool(v) {
		return ErrForbiddenFlag(p.typ, "multiple")
	}
	return nil
}

func (p *IdProperty) Mode() string { return p.mode }

func (p *IdProperty) SetMode(mode string) error {
	if !slices.Contains(idModes, mode) {
		return ErrInvalidArgument("id mode «%s» is not one of %v", mode, idModes)
	}
	p.mode = mode
	return nil
}

// Sets identifier generator for custom mode
func (p *IdProperty) SetGenerator(g func() string) {
	p.generator = g
}

// Returns is identifier of value to be assigned by storage engine
func (p *IdProperty) IsDeferred(v any) bool {
	return p.mode == IdMode_AutoIncrement && codec.IsBlank(v)
}

func (p *IdProperty) ParseOne(v any) (any, error) {
	if codec.IsBlank(v) {
		return nil, nil
	}
	if p.mode == IdMode_AutoIncrement {
		switch val := v.(type) {
		case int:
			return int64(val), nil
		case int32:
			return int64(val), nil
		case int64:
			return val, nil
		case uint32:
			return int64(val), nil
		case uint64:
			if val > math.MaxInt64 {
				return nil, ErrInvalidArgument("id property «%s» value %d is out of range", p.ident, val)
			}
			return int64(val), nil
		case float64:
			if val != math.Trunc(val) || math.Abs(val) > maxExactFloatInt {
				return nil, ErrInvalidArgument("id property «%s» value %v is not an integer", p.ident, val)
			}
			return int64(val), nil
		case string:
			if n, err := strconv.ParseInt(val, 10, 64); err == nil {
				return n, nil
			}
		}
	}
	s, ok := codec.ToString(v)
	if !ok {
		return nil, ErrInvalidArgument("id property «%s» value must be scalar, got %T", p.ident, v)
	}
	return s, nil
}

// Generates identifier if value is blank
func (p *IdProperty) Save(v any) (any, error) {
	if !codec.IsBlank(v) {
		return v, nil
	}
	switch p.mode {
	case IdMode_AutoIncrement:
		return DeferredID, nil
	case IdMode_Uniqid:
		return uniqid(p.deps.Now()), nil
	case IdMode_Uuid:
		return uuid.NewString(), nil
	}
	if p.generator == nil {
		return nil, ErrRuntime("id property «%s»: custom mode requires generator", p.ident)
	}
	return p.generator(), nil
}

// 13 hex digits: 8 for seconds and 5 for microseconds
func uniqid(t time.Time) string {
	return fmt.Sprintf("%08x%05x", t.Unix(), t.Nanosecond()/int(time.Microsecond))
}

func (p *IdProperty) SqlType() string {
	switch p.mode {
	case IdMode_AutoIncrement:
		return "INT"
	case IdMode_Uniqid:
		return fmt.Sprintf("CHAR(%d)", uniqidLen)
	case IdMode_Uuid:
		return "CHAR(36)"
	}
	return "VARCHAR(255)"
}

func (p *IdProperty) SqlExtra() string {
	if p.mode == IdMode_AutoIncrement {
		return "AUTO_INCREMENT"
	}
	return ""
}

func (p *IdProperty) SqlPdoType() PdoType {
	if p.mode == IdMode_AutoIncrement {
		return PdoType_Int
	}
	return PdoType_Str
}

func (p *IdProperty) setDataKey(key string, v any) (bool, error) {
	if key == "mode" {
		s, ok := v.(string)
		if !ok {
			return true, ErrInvalidArgument("id mode must be a string, got %T", v)
		}
		return true, p.SetMode(s)
	}
	return p.property.setDataKey(key, v)
}
