/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"encoding/binary"
	"net"
	"strconv"
	"strings"

	"github.com/voedger/charcoal/pkg/codec"
)

// IPv4 address
//
// # Implements:
//   - IProperty
type IpProperty struct {
	property
	storageMode string
}

func newIpProperty(deps Deps) IProperty {
	p := &IpProperty{}
	p.init(p, Type_Ip, deps)
	p.storageMode = IpStorage_String
	return p
}

func (p *IpProperty) SetL10n(v any) error {
	if codec.ToBool(v) {
		return ErrForbiddenFlag(p.typ, "l10n")
	}
	return nil
}

func (p *IpProperty) SetMultiple(v any) error {
	if codec.ToBool(v) {
		return ErrForbiddenFlag(p.typ, "multiple")
	}
	return nil
}

func (p *IpProperty) StorageMode() string { return p.storageMode }

func (p *IpProperty) SetStorageMode(mode string) error {
	switch mode {
	case IpStorage_String, IpStorage_Int:
		p.storageMode = mode
		return nil
	}
	return ErrInvalidArgument("ip storage mode «%s» is not one of %s, %s", mode, IpStorage_String, IpStorage_Int)
}

// Converts dotted-quad or integer to unsigned 32-bit value
func (p *IpProperty) IntVal(v any) (int64, error) {
	switch val := v.(type) {
	case int, int32, int64, uint, uint32, uint64:
		n, err := strconv.ParseInt(strings.TrimSpace(toDecimal(val)), 10, 64)
		if err != nil {
			return 0, ErrInvalidArgument("ip %v is out of range", val)
		}
		return int64(uint32(n)), nil
	case string:
		s := strings.TrimSpace(val)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return int64(uint32(n)), nil
		}
		ip := net.ParseIP(s).To4()
		if ip == nil || strings.Count(s, ".") != 3 {
			return 0, ErrInvalidArgument("«%s» is not an IPv4 address", s)
		}
		return int64(binary.BigEndian.Uint32(ip)), nil
	}
	return 0, ErrInvalidArgument("ip must be a string or an integer, got %T", v)
}

// Converts integer or dotted-quad to dotted-quad.
// Negative and above 32-bit integers wrap to unsigned 32-bit, integers beyond int64 are rejected
func (p *IpProperty) StringVal(v any) (string, error) {
	n, err := p.IntVal(v)
	if err != nil {
		return "", err
	}
	b := make([]byte, net.IPv4len)
	binary.BigEndian.PutUint32(b, uint32(n))
	return net.IP(b).String(), nil
}

func toDecimal(v any) string {
	s, _ := codec.ToString(v)
	return s
}

// Integers are converted to dotted-quad, strings are kept as is
func (p *IpProperty) ParseOne(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil, nil
		}
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			return p.StringVal(s)
		}
		return s, nil
	case int, int32, int64, uint, uint32, uint64:
		return p.StringVal(val)
	}
	return nil, ErrInvalidArgument("ip property «%s» value must be a string or an integer, got %T", p.ident, v)
}

func (p *IpProperty) storageOne(v any) (any, error) {
	if p.storageMode == IpStorage_Int {
		return p.IntVal(v)
	}
	return p.StringVal(v)
}

func (p *IpProperty) validators() []validator {
	return append(p.property.validators(), validator{Validation_Ip, p.ValidateIp})
}

// Returns false if value is not a valid IPv4 address
func (p *IpProperty) ValidateIp() bool {
	for _, item := range p.valItems() {
		if _, err := p.IntVal(item); err != nil {
			return false
		}
	}
	return true
}

func (p *IpProperty) SqlType() string {
	if p.storageMode == IpStorage_Int {
		return "BIGINT"
	}
	return "VARCHAR(15)"
}

func (p *IpProperty) SqlPdoType() PdoType {
	if p.storageMode == IpStorage_Int {
		return PdoType_Int
	}
	return PdoType_Str
}

func (p *IpProperty) setDataKey(key string, v any) (bool, error) {
	if key == "storagemode" {
		s, ok := v.(string)
		if !ok {
			return true, ErrInvalidArgument("ip storage mode must be a string, got %T", v)
		}
		return true, p.SetStorageMode(s)
	}
	return p.property.setDataKey(key, v)
}
