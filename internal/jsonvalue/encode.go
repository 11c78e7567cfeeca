package jsonvalue

import (
	"encoding/json"
	"strconv"
)

// MarshalJSON encodes v with object members in document order and numbers
// exactly as they were written.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.appendJSON(nil), nil
}

func (v Value) appendJSON(buf []byte) []byte {
	switch v.kind {
	case KindBool:
		return strconv.AppendBool(buf, v.boolean)
	case KindNumber:
		return append(buf, v.text...)
	case KindString:
		return appendString(buf, v.text)
	case KindArray:
		buf = append(buf, '[')
		for i, item := range v.items {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = item.appendJSON(buf)
		}
		return append(buf, ']')
	case KindObject:
		buf = append(buf, '{')
		for i, m := range v.members {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendString(buf, m.Key)
			buf = append(buf, ':')
			buf = m.Value.appendJSON(buf)
		}
		return append(buf, '}')
	default:
		return append(buf, "null"...)
	}
}

func appendString(buf []byte, s string) []byte {
	// marshalling a string cannot fail
	encoded, _ := json.Marshal(s)
	return append(buf, encoded...)
}
