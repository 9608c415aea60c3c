package canonical

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pipe-works/ipc/ipcerr"
)

const opCanonicalize = "canonical.Canonicalize"

// Canonicalize returns the canonical string for a payload mapping.
//
// Structurally equal payloads, compared recursively and independent of mapping
// key order, always produce byte-identical output. Returns an error matching
// ipcerr.ErrTypeMismatch if value is not a mapping or contains a value outside
// the canonical domain.
func Canonicalize(value any) (string, error) {
	if !IsMapping(value) {
		return "", ipcerr.TypeMismatch(opCanonicalize, value)
	}

	e := &encoder{visiting: make(map[visit]struct{})}
	if err := e.encode(value, ipcerr.RootPath); err != nil {
		return "", err
	}
	return e.String(), nil
}

// IsMapping reports whether v is a mapping with string keys, following pointers
// and interfaces. A nil map of such a type is still a mapping.
func IsMapping(v any) bool {
	switch v.(type) {
	case map[string]any, map[string]string:
		return true
	case nil:
		return false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
}

// visit identifies a container currently on the encoding path.
type visit struct {
	ptr uintptr
	len int
	typ reflect.Type
}

// member is one mapping entry with its key already made valid UTF-8.
type member struct {
	key   string
	value reflect.Value
}

type encoder struct {
	strings.Builder
	visiting map[visit]struct{}
}

func (e *encoder) encode(v any, path string) error {
	switch x := v.(type) {
	case nil:
		e.WriteString("null")
	case string:
		e.writeString(x)
	case bool:
		e.writeBool(x)
	case int:
		e.WriteString(FormatInt(int64(x)))
	case int64:
		e.WriteString(FormatInt(x))
	case int32:
		e.WriteString(FormatInt(int64(x)))
	case uint64:
		e.WriteString(FormatUint(x))
	case float64:
		e.WriteString(FormatFloat(x))
	case float32:
		e.WriteString(FormatFloat(float64(x)))
	case json.Number:
		s, ok := formatNumber(x)
		if !ok {
			return mismatch(v, path)
		}
		e.WriteString(s)
	case []byte:
		return mismatch(v, path)
	case map[string]any:
		return e.encodeMap(reflect.ValueOf(x), path)
	case []any:
		return e.encodeSequence(reflect.ValueOf(x), path)
	default:
		return e.encodeReflect(reflect.ValueOf(v), path)
	}
	return nil
}

func (e *encoder) encodeReflect(rv reflect.Value, path string) error {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			e.WriteString("null")
			return nil
		}
		return e.encode(rv.Elem().Interface(), path)
	case reflect.String:
		e.writeString(rv.String())
	case reflect.Bool:
		e.writeBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.WriteString(FormatInt(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		e.WriteString(FormatUint(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		e.WriteString(FormatFloat(rv.Float()))
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return mismatch(rv.Interface(), path)
		}
		return e.encodeMap(rv, path)
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return mismatch(rv.Interface(), path)
		}
		return e.encodeSequence(rv, path)
	case reflect.Array:
		return e.encodeSequence(rv, path)
	default:
		return mismatch(rv.Interface(), path)
	}
	return nil
}

func (e *encoder) encodeMap(rv reflect.Value, path string) error {
	if rv.IsNil() || rv.Len() == 0 {
		e.WriteString("{}")
		return nil
	}
	key := visit{ptr: rv.Pointer(), typ: rv.Type()}
	if err := e.enter(key, rv, path); err != nil {
		return err
	}
	defer delete(e.visiting, key)

	members := make([]member, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		members = append(members, member{
			key:   strings.ToValidUTF8(iter.Key().String(), "\uFFFD"),
			value: iter.Value(),
		})
	}
	sort.Slice(members, func(i, j int) bool { return members[i].key < members[j].key })

	// Keys that differ only in invalid bytes collapse to the same text.
	for i := 1; i < len(members); i++ {
		if members[i].key == members[i-1].key {
			err := ipcerr.TypeMismatch(opCanonicalize, rv.Interface()).At(childKey(path, members[i].key))
			err.Got = "duplicate key in " + err.Got
			return err
		}
	}

	e.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			e.WriteString(", ")
		}
		e.writeString(m.key)
		e.WriteString(": ")
		if err := e.encode(m.value.Interface(), childKey(path, m.key)); err != nil {
			return err
		}
	}
	e.WriteByte('}')
	return nil
}

func (e *encoder) encodeSequence(rv reflect.Value, path string) error {
	n := rv.Len()
	if n == 0 {
		e.WriteString("[]")
		return nil
	}
	if rv.Kind() == reflect.Slice {
		key := visit{ptr: rv.Pointer(), len: n, typ: rv.Type()}
		if err := e.enter(key, rv, path); err != nil {
			return err
		}
		defer delete(e.visiting, key)
	}

	e.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			e.WriteString(", ")
		}
		if err := e.encode(rv.Index(i).Interface(), childIndex(path, i)); err != nil {
			return err
		}
	}
	e.WriteByte(']')
	return nil
}

// enter marks a container as being on the current path and rejects cycles.
func (e *encoder) enter(key visit, rv reflect.Value, path string) error {
	if _, ok := e.visiting[key]; ok {
		err := ipcerr.TypeMismatch(opCanonicalize, rv.Interface()).At(path)
		err.Got = fmt.Sprintf("cyclic %s", err.Got)
		return err
	}
	e.visiting[key] = struct{}{}
	return nil
}

func (e *encoder) writeBool(b bool) {
	if b {
		e.WriteString("true")
	} else {
		e.WriteString("false")
	}
}

const hexDigits = "0123456789abcdef"

// writeString writes s as a quoted string. Only '"', '\\' and C0 controls are
// escaped; invalid UTF-8 bytes are replaced with U+FFFD.
func (e *encoder) writeString(s string) {
	e.WriteByte('"')
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c >= 0x20 && c != '"' && c != '\\' {
				i++
				continue
			}
			e.WriteString(s[start:i])
			switch c {
			case '"', '\\':
				e.WriteByte('\\')
				e.WriteByte(c)
			case '\n':
				e.WriteString(`\n`)
			case '\r':
				e.WriteString(`\r`)
			case '\t':
				e.WriteString(`\t`)
			case '\b':
				e.WriteString(`\b`)
			case '\f':
				e.WriteString(`\f`)
			default:
				e.WriteString(`\u00`)
				e.WriteByte(hexDigits[c>>4])
				e.WriteByte(hexDigits[c&0xF])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			e.WriteString(s[start:i])
			e.WriteString("\uFFFD")
			i += size
			start = i
			continue
		}
		i += size
	}
	e.WriteString(s[start:])
	e.WriteByte('"')
}

func mismatch(v any, path string) error {
	return ipcerr.TypeMismatch(opCanonicalize, v).At(path)
}

func childKey(path, key string) string {
	if isIdentifier(key) {
		return path + "." + key
	}
	return path + "[" + strconv.Quote(key) + "]"
}

func childIndex(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
