package fields

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/netip"
	"strings"
)

// Recompose turns a raw column value read from the database back into the
// field's surface form: Char and Email unescape the statement separators,
// JSON parses serialized text into structured data, IPAddress applies its
// unpack conversion and MacAddr renders its dialect. Every other kind
// returns the value unchanged. nil passes through as nil.
func Recompose(f Field, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch fld := f.(type) {
	case *Char, *Email:
		if s, ok := raw.(string); ok {
			s = strings.ReplaceAll(s, `\;`, ";")
			s = strings.ReplaceAll(s, `\--`, "--")
			return s, nil
		}
		return raw, nil
	case *JSON:
		if s, ok := raw.(string); ok {
			var doc any
			if err := json.Unmarshal([]byte(s), &doc); err != nil {
				return nil, validationErr(f, raw, "stored payload is not valid JSON")
			}
			return doc, nil
		}
		return raw, nil
	case *IPAddress:
		return recomposeIP(fld, raw)
	case *MacAddr:
		hw, err := fld.parse(raw)
		if err != nil {
			return nil, err
		}
		return renderMAC(hw, fld.dialect), nil
	}
	return raw, nil
}

func recomposeIP(f *IPAddress, v any) (any, error) {
	if v == nil {
		if err := Validate(f, v); err != nil {
			return nil, err
		}
		return nil, nil
	}
	ip, err := f.parse(v)
	if err != nil {
		return nil, err
	}
	switch f.unpack {
	case UnpackIPv4:
		return ip.toV4(f, v)
	case UnpackIPv6:
		return ip.toV6(), nil
	default:
		if ip.isPrefix {
			return ip.prefix.String(), nil
		}
		return ip.addr.String(), nil
	}
}

func (ip ipValue) toV4(f *IPAddress, v any) (string, error) {
	if ip.isPrefix {
		a := ip.prefix.Addr()
		if a.Is4() {
			return ip.prefix.String(), nil
		}
		if !a.Is4In6() || ip.prefix.Bits() < 96 {
			return "", validationErr(f, v, "network has no IPv4 form")
		}
		p := netip.PrefixFrom(a.Unmap(), ip.prefix.Bits()-96)
		return p.String(), nil
	}
	a := ip.addr
	if a.Is4() {
		return a.String(), nil
	}
	if !a.Is4In6() {
		return "", validationErr(f, v, "address has no IPv4 form")
	}
	return a.Unmap().String(), nil
}

func (ip ipValue) toV6() string {
	if ip.isPrefix {
		a := ip.prefix.Addr()
		if !a.Is4() {
			return ip.prefix.String()
		}
		p := netip.PrefixFrom(netip.AddrFrom16(a.As16()), ip.prefix.Bits()+96)
		return p.String()
	}
	a := ip.addr
	if !a.Is4() {
		return a.String()
	}
	return netip.AddrFrom16(a.As16()).String()
}

func renderMAC(hw []byte, dialect MacDialect) string {
	enc := hex.EncodeToString(hw)
	switch dialect {
	case MacBare:
		return strings.ToUpper(enc)
	case MacCisco:
		return enc[0:4] + "." + enc[4:8] + "." + enc[8:12]
	case MacEUI48:
		parts := make([]string, 6)
		for i, b := range hw {
			parts[i] = fmt.Sprintf("%02X", b)
		}
		return strings.Join(parts, "-")
	case MacPgSQL:
		return enc[0:6] + ":" + enc[6:12]
	case MacUnix:
		parts := make([]string, 6)
		for i, b := range hw {
			parts[i] = fmt.Sprintf("%x", b)
		}
		return strings.Join(parts, ":")
	default:
		parts := make([]string, 6)
		for i, b := range hw {
			parts[i] = fmt.Sprintf("%02x", b)
		}
		return strings.Join(parts, ":")
	}
}
