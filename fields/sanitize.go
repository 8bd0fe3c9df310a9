package fields

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SanitizeData validates v and returns the canonical SQL payload for it:
// integers widen to int64, floats to float64, temporal values render to
// their layout text, JSON serializes to compact text, Char escapes the
// statement separators ";" and "--". Length bounds are enforced here, after
// validation. A nullable field sanitizes nil to nil.
func SanitizeData(f Field, v any) (any, error) {
	if err := Validate(f, v); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	switch fld := f.(type) {
	case *Boolean:
		return v.(bool), nil
	case *Char:
		return escapeBounded(fld, v.(string), fld.maxLength)
	case *Email:
		return escapeBounded(fld, v.(string), fld.maxLength)
	case *Text:
		return v.(string), nil
	case *Integer, *BigInteger, *AutoSerial, *BigAutoSerial, *ForeignKey:
		n, _ := asInt64(v)
		return n, nil
	case *Float:
		switch val := v.(type) {
		case float32:
			return float64(val), nil
		default:
			return val.(float64), nil
		}
	case *Decimal:
		switch val := v.(type) {
		case decimal.Decimal:
			return val, nil
		case float32:
			return decimal.NewFromFloat32(val), nil
		case float64:
			return decimal.NewFromFloat(val), nil
		default:
			n, _ := asInt64(v)
			return decimal.NewFromInt(n), nil
		}
	case *DateTime:
		return v.(time.Time).Format(DateTimeLayout), nil
	case *Date:
		return v.(time.Time).Format(DateLayout), nil
	case *Time:
		return v.(time.Time).Format(TimeLayout), nil
	case *ManyToMany:
		if items, ok := v.([]any); ok {
			out := make([]any, len(items))
			for i, item := range items {
				n, _ := asInt64(item)
				out[i] = n
			}
			return out, nil
		}
		n, _ := asInt64(v)
		return n, nil
	case *JSON:
		return sanitizeJSON(fld, v)
	case *UUID:
		switch val := v.(type) {
		case uuid.UUID:
			return val.String(), nil
		default:
			u, _ := uuid.Parse(val.(string))
			return u.String(), nil
		}
	case *Array:
		return normalizeArray(v.([]any)), nil
	case *IPAddress:
		ip, _ := fld.parse(v)
		if ip.isPrefix {
			return ip.prefix.String(), nil
		}
		return ip.addr.String(), nil
	case *MacAddr:
		hw, _ := fld.parse(v)
		return hw.String(), nil
	}
	return nil, validationErr(f, v, "unsupported field kind")
}

// SerializeData is the write-side counterpart of Recompose. Most kinds
// serialize exactly as they sanitize; IPAddress applies its unpack
// conversion so the stored text matches what reads will produce.
func SerializeData(f Field, v any) (any, error) {
	if fld, ok := f.(*IPAddress); ok {
		return recomposeIP(fld, v)
	}
	return SanitizeData(f, v)
}

func escapeBounded(f Field, s string, max int) (any, error) {
	if utf8.RuneCountInString(s) > max {
		return nil, validationErr(f, s, fmt.Sprintf("value longer than %d characters", max))
	}
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, "--", `\--`)
	return s, nil
}

func sanitizeJSON(f *JSON, v any) (any, error) {
	var doc any
	if s, ok := v.(string); ok {
		if err := json.Unmarshal([]byte(s), &doc); err != nil {
			return nil, validationErr(f, v, "string payload is not valid JSON")
		}
	} else {
		doc = v
	}
	text, err := json.Marshal(doc)
	if err != nil {
		return nil, validationErr(f, v, "payload cannot be serialized: "+err.Error())
	}
	if utf8.RuneCount(text) > f.maxLength {
		return nil, validationErr(f, v, fmt.Sprintf("serialized value longer than %d characters", f.maxLength))
	}
	return string(text), nil
}

func normalizeArray(items []any) []any {
	out := make([]any, len(items))
	for i, item := range items {
		switch val := item.(type) {
		case []any:
			out[i] = normalizeArray(val)
		case float32:
			out[i] = float64(val)
		default:
			if n, ok := asInt64(item); ok {
				out[i] = n
			} else {
				out[i] = item
			}
		}
	}
	return out
}

// SQLLiteral sanitizes v and renders it as a literal embeddable in a
// statement: text payloads single-quoted with '' doubling, booleans and
// numbers bare, slices as ARRAY[...], nil as NULL.
func SQLLiteral(f Field, v any) (string, error) {
	payload, err := SanitizeData(f, v)
	if err != nil {
		return "", err
	}
	return formatLiteral(payload), nil
}

func formatLiteral(payload any) string {
	switch val := payload.(type) {
	case nil:
		return "NULL"
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case decimal.Decimal:
		return val.String()
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = formatLiteral(item)
		}
		return "ARRAY[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(val)
	}
}
