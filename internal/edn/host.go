package edn

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Marshal writes arbitrary Go data. It is Write(FromGo(x), opts...).
func Marshal(x any, opts ...WriteOption) string {
	return Write(FromGo(x), opts...)
}

// FromGo converts Go data to a Value. Slices and arrays become vectors, maps
// become maps ordered by key text, time.Time becomes #inst and uuid.UUID
// becomes #uuid. String map keys that look like keywords are written as
// keywords. Anything else is converted with fmt and kept as a string.
func FromGo(x any) Value {
	switch v := x.(type) {
	case nil:
		return Nil{}
	case Value:
		return v
	case time.Time:
		return Inst{v}
	case uuid.UUID:
		return Tagged{Tag: "uuid", Value: String(v.String())}
	case []byte:
		return String(v)
	case error:
		return String(v.Error())
	}
	return fromReflect(reflect.ValueOf(x), x)
}

func fromReflect(rv reflect.Value, orig any) Value {
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Float(float64(u))
		}
		return Int(int64(u))
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.String:
		return String(rv.String())
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Nil{}
		}
		return FromGo(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return Vector{}
		}
		fallthrough
	case reflect.Array:
		out := make(Vector, rv.Len())
		for i := range out {
			out[i] = FromGo(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		return fromMap(rv)
	}
	return String(fmt.Sprint(orig))
}

func fromMap(rv reflect.Value) Value {
	out := make(Map, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out = append(out, Pair{Key: hostKey(iter.Key()), Value: FromGo(iter.Value().Interface())})
	}
	texts := make([]string, len(out))
	for i, p := range out {
		texts[i] = Write(p.Key)
	}
	sort.Sort(byText{out, texts})
	return out
}

type byText struct {
	pairs Map
	texts []string
}

func (b byText) Len() int           { return len(b.pairs) }
func (b byText) Less(i, j int) bool { return b.texts[i] < b.texts[j] }
func (b byText) Swap(i, j int) {
	b.pairs[i], b.pairs[j] = b.pairs[j], b.pairs[i]
	b.texts[i], b.texts[j] = b.texts[j], b.texts[i]
}

func hostKey(k reflect.Value) Value {
	if k.Kind() == reflect.String {
		s := k.String()
		if keywordShaped(s) {
			return Keyword(":" + strings.TrimPrefix(s, ":"))
		}
		return String(s)
	}
	return FromGo(k.Interface())
}

// keywordShaped reports whether s, with an optional leading colon, reads
// back as a keyword with the same name.
func keywordShaped(s string) bool {
	body := strings.TrimPrefix(s, ":")
	first, _ := utf8.DecodeRuneInString(body)
	if body == "" || !isSymbolStart(first) {
		return false
	}
	for _, r := range body {
		if !isSymbolChar(r) {
			return false
		}
	}
	return true
}

// ToGo converts v to plain Go data suitable for encoding/json: sequences
// become []any, maps become map[string]any keyed by keyword name or key
// text, #inst becomes time.Time and other tagged values become a one-entry
// map keyed by "#tag". Non-finite floats become their written form.
func ToGo(v Value) any {
	switch x := v.(type) {
	case nil, Nil:
		return nil
	case Bool:
		return bool(x)
	case Int:
		return int64(x)
	case Float:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return formatFloat(f)
		}
		return f
	case String:
		return string(x)
	case Keyword:
		return string(x)
	case Symbol:
		return string(x)
	case Inst:
		return x.Time
	case Tagged:
		return map[string]any{"#" + x.Tag: ToGo(x.Value)}
	case Vector:
		return seqToGo(x)
	case List:
		return seqToGo(x)
	case Set:
		return seqToGo(x)
	case Map:
		out := make(map[string]any, len(x))
		for _, p := range x {
			out[goKey(p.Key)] = ToGo(p.Value)
		}
		return out
	}
	return fmt.Sprint(v)
}

func seqToGo(items []Value) []any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = ToGo(it)
	}
	return out
}

func goKey(k Value) string {
	switch x := k.(type) {
	case Keyword:
		return strings.TrimPrefix(string(x), ":")
	case String:
		return string(x)
	}
	return Write(k)
}
