package fields

import (
	"fmt"
	"net"
	"net/netip"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Validate checks v against f's declaration. nil is accepted if and only if
// the field is nullable; a nullable field accepts nil unconditionally, before
// any choice or type rule. Non-nil values must be a declared choice (when the
// field has choices) and fall inside the kind's value domain.
func Validate(f Field, v any) error {
	if v == nil {
		if f.Nullable() {
			return nil
		}
		return validationErr(f, v, "null value in non-nullable field")
	}
	if cs := f.Choices(); len(cs) > 0 && !cs.Contains(v) {
		return validationErr(f, v, fmt.Sprintf("%v is not a declared choice", v))
	}
	return checkDomain(f, v)
}

func checkDomain(f Field, v any) error {
	switch fld := f.(type) {
	case *Boolean:
		if _, ok := v.(bool); !ok {
			return validationErr(f, v, "expected a bool")
		}
	case *Char, *Text:
		if _, ok := v.(string); !ok {
			return validationErr(f, v, "expected a string")
		}
	case *Email:
		s, ok := v.(string)
		if !ok {
			return validationErr(f, v, "expected a string")
		}
		if !emailShape.MatchString(s) {
			return validationErr(f, v, "not a valid email address")
		}
	case *Integer, *BigInteger, *AutoSerial, *BigAutoSerial, *ForeignKey:
		if _, ok := asInt64(v); !ok {
			return validationErr(f, v, "expected an integer")
		}
	case *Float:
		switch v.(type) {
		case float32, float64:
		default:
			return validationErr(f, v, "expected a float")
		}
	case *Decimal:
		switch v.(type) {
		case decimal.Decimal, float32, float64:
		default:
			if _, ok := asInt64(v); !ok {
				return validationErr(f, v, "expected a decimal, float or integer")
			}
		}
	case *DateTime, *Date, *Time:
		if _, ok := v.(time.Time); !ok {
			return validationErr(f, v, "expected a time.Time")
		}
	case *ManyToMany:
		switch rel := v.(type) {
		case []any:
			for _, item := range rel {
				if _, ok := asInt64(item); !ok {
					return validationErr(f, item, "related ids must be integers")
				}
			}
		default:
			if _, ok := asInt64(v); !ok {
				return validationErr(f, v, "expected a related id or a list of them")
			}
		}
	case *JSON:
		switch v.(type) {
		case map[string]any, []any, string:
		default:
			return validationErr(f, v, "expected a map, list or JSON string")
		}
	case *UUID:
		switch u := v.(type) {
		case uuid.UUID:
		case string:
			if len(u) != 36 {
				return validationErr(f, v, "expected 36 characters")
			}
			if _, err := uuid.Parse(u); err != nil {
				return validationErr(f, v, "not a valid UUID")
			}
		default:
			return validationErr(f, v, "expected a UUID")
		}
	case *Array:
		items, ok := v.([]any)
		if !ok {
			return validationErr(f, v, "expected a list")
		}
		if err := checkArray(f, items); err != nil {
			return err
		}
	case *IPAddress:
		if _, err := fld.parse(v); err != nil {
			return err
		}
	case *MacAddr:
		if _, err := fld.parse(v); err != nil {
			return err
		}
	default:
		return validationErr(f, v, "unsupported field kind")
	}
	return nil
}

func checkArray(f Field, items []any) error {
	if len(items) == 0 {
		return nil
	}
	first := reflect.TypeOf(items[0])
	for _, item := range items {
		if reflect.TypeOf(item) != first {
			return validationErr(f, item, "array items must share one type")
		}
	}
	if inner, ok := items[0].([]any); ok {
		want := len(inner)
		for _, item := range items {
			if len(item.([]any)) != want {
				return validationErr(f, item, "nested arrays must have equal lengths")
			}
		}
	}
	return nil
}

// ipValue is a parsed INET payload, either a bare address or a prefix.
type ipValue struct {
	addr     netip.Addr
	prefix   netip.Prefix
	isPrefix bool
}

func (ip ipValue) version() int {
	a := ip.addr
	if ip.isPrefix {
		a = ip.prefix.Addr()
	}
	if a.Is4() {
		return 4
	}
	return 6
}

func (f *IPAddress) parse(v any) (ipValue, error) {
	var ip ipValue
	switch val := v.(type) {
	case netip.Addr:
		ip.addr = val
	case netip.Prefix:
		ip.prefix, ip.isPrefix = val, true
	case string:
		if strings.Contains(val, "/") {
			p, err := netip.ParsePrefix(val)
			if err != nil {
				return ip, validationErr(f, v, "not a valid network")
			}
			ip.prefix, ip.isPrefix = p, true
		} else {
			a, err := netip.ParseAddr(val)
			if err != nil {
				return ip, validationErr(f, v, "not a valid address")
			}
			ip.addr = a
		}
	default:
		return ip, validationErr(f, v, "expected an address, prefix or string")
	}
	switch f.protocol {
	case ProtocolIPv4:
		if ip.version() != 4 {
			return ip, validationErr(f, v, "column only accepts IPv4")
		}
	case ProtocolIPv6:
		if ip.version() != 6 {
			return ip, validationErr(f, v, "column only accepts IPv6")
		}
	}
	return ip, nil
}

func (f *MacAddr) parse(v any) (net.HardwareAddr, error) {
	switch val := v.(type) {
	case net.HardwareAddr:
		if len(val) != 6 {
			return nil, validationErr(f, v, "expected a 48-bit address")
		}
		return val, nil
	case string:
		s := val
		// A bare 12-digit form has no separators for ParseMAC; add them.
		if len(s) == 12 && !strings.ContainsAny(s, ":-.") {
			var parts []string
			for i := 0; i < 12; i += 2 {
				parts = append(parts, s[i:i+2])
			}
			s = strings.Join(parts, ":")
		}
		hw, err := net.ParseMAC(s)
		if err != nil {
			return nil, validationErr(f, v, "not a valid MAC address")
		}
		if len(hw) != 6 {
			return nil, validationErr(f, v, "expected a 48-bit address")
		}
		return hw, nil
	default:
		return nil, validationErr(f, v, "expected a MAC address or string")
	}
}
