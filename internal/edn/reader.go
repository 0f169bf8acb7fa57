package edn

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// DefaultMaxDepth bounds collection and tag nesting. Recursion depth of the
// Reader is proportional to nesting, so untrusted input needs a limit.
const DefaultMaxDepth = 512

// ReadOption configures a single Parse or ParseAll call.
type ReadOption func(*reader)

// Strict makes the Reader reject input it would otherwise recover from.
func Strict(v bool) ReadOption {
	return func(r *reader) { r.strict = v }
}

// MaxDepth overrides DefaultMaxDepth. Values below 1 are ignored.
func MaxDepth(n int) ReadOption {
	return func(r *reader) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// reader is the cursor of one Parse call. It is never shared.
type reader struct {
	src      string
	pos      int
	depth    int
	maxDepth int
	strict   bool
}

func newReader(text string, opts []ReadOption) *reader {
	r := &reader{src: text, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Parse reads the first value in text.
//
// Input that falls inside a restricted JSON-compatible grammar (arrays,
// numbers, booleans and escape-free strings) is decoded directly; all other
// input goes through the full recursive-descent grammar. Both stages produce
// the same Value for any input the first accepts.
//
// In lenient mode anything after the first value is ignored.
func Parse(text string, opts ...ReadOption) (Value, error) {
	r := newReader(text, opts)
	if v, ok := readSimple(text, r.maxDepth); ok {
		return v, nil
	}
	v, err := r.readTop()
	if err != nil {
		return nil, err
	}
	if r.strict {
		r.skipSpace()
		if !r.eof() {
			return nil, r.errorf(r.pos, ErrTrailingContent, "%q", r.snippet(r.pos))
		}
	}
	return v, nil
}

// ParseAll reads every top-level value in text, in order.
func ParseAll(text string, opts ...ReadOption) ([]Value, error) {
	r := newReader(text, opts)
	var out []Value
	for {
		r.skipSpace()
		if r.eof() {
			break
		}
		v, ok, err := r.readValue()
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, r.errorf(r.pos, ErrEmptyInput, "")
	}
	return out, nil
}

func (r *reader) readTop() (Value, error) {
	for {
		r.skipSpace()
		if r.eof() {
			return nil, r.errorf(r.pos, ErrEmptyInput, "")
		}
		v, ok, err := r.readValue()
		if err != nil {
			return nil, err
		}
		if ok {
			return v, nil
		}
	}
}

// readValue reads one value at the cursor. ok is false when the cursor
// advanced without producing a value: a skipped character or a #_ discard.
func (r *reader) readValue() (v Value, ok bool, err error) {
	c := r.src[r.pos]
	switch {
	case c == '"':
		v, err = r.readString()
		return v, err == nil, err
	case c == ':':
		return r.readKeyword()
	case c == '[':
		items, err := r.readColl(1, ']')
		return Vector(items), err == nil, err
	case c == '(':
		items, err := r.readColl(1, ')')
		return List(items), err == nil, err
	case c == '{':
		return r.readMap()
	case c == '#':
		return r.readDispatch()
	case isDigit(c) || ((c == '-' || c == '+') && r.pos+1 < len(r.src) && isDigit(r.src[r.pos+1])):
		return r.readNumber()
	}
	if rn, _ := utf8.DecodeRuneInString(r.src[r.pos:]); isSymbolStart(rn) {
		return r.readSymbol(), true, nil
	}
	return r.skip(ErrUnexpectedChar)
}

// skip drops one character in lenient mode.
func (r *reader) skip(cause error) (Value, bool, error) {
	rn, size := utf8.DecodeRuneInString(r.src[r.pos:])
	if r.strict {
		return nil, false, r.errorf(r.pos, cause, "%q", rn)
	}
	r.pos += size
	return nil, false, nil
}

func (r *reader) readString() (Value, error) {
	start := r.pos
	r.pos++
	var sb strings.Builder
	for r.pos < len(r.src) {
		c := r.src[r.pos]
		switch c {
		case '"':
			r.pos++
			return String(sb.String()), nil
		case '\\':
			if r.pos+1 >= len(r.src) {
				r.pos = len(r.src)
				continue
			}
			r.pos++
			switch e := r.src[r.pos]; e {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				rn, size := utf8.DecodeRuneInString(r.src[r.pos:])
				sb.WriteRune(rn)
				r.pos += size
				continue
			}
			r.pos++
		default:
			sb.WriteByte(c)
			r.pos++
		}
	}
	return nil, r.errorf(start, ErrUnterminatedString, "")
}

func (r *reader) readKeyword() (Value, bool, error) {
	start := r.pos
	r.pos++
	r.readRun()
	if r.pos-start == 1 && r.strict {
		return nil, false, r.errorf(start, ErrUnexpectedChar, "keyword without a name")
	}
	return Keyword(r.src[start:r.pos]), true, nil
}

func (r *reader) readSymbol() Value {
	name := r.readRun()
	switch name {
	case "nil":
		return Nil{}
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	return Symbol(name)
}

// readRun consumes the longest run of symbol characters.
func (r *reader) readRun() string {
	start := r.pos
	for r.pos < len(r.src) {
		rn, size := utf8.DecodeRuneInString(r.src[r.pos:])
		if !isSymbolChar(rn) {
			break
		}
		r.pos += size
	}
	return r.src[start:r.pos]
}

func (r *reader) readNumber() (Value, bool, error) {
	start := r.pos
	if c := r.src[r.pos]; c == '-' || c == '+' {
		r.pos++
	}
	r.skipDigits()
	isFloat := false
	if r.pos < len(r.src) && r.src[r.pos] == '.' {
		isFloat = true
		r.pos++
		r.skipDigits()
	}
	if r.pos < len(r.src) && (r.src[r.pos] == 'e' || r.src[r.pos] == 'E') {
		j := r.pos + 1
		if j < len(r.src) && (r.src[j] == '+' || r.src[j] == '-') {
			j++
		}
		if j < len(r.src) && isDigit(r.src[j]) {
			isFloat = true
			r.pos = j
			r.skipDigits()
		}
	}
	lit := r.src[start:r.pos]
	if r.pos < len(r.src) && (r.src[r.pos] == 'M' || r.src[r.pos] == 'N') {
		r.pos++
	}
	if r.strict && !r.atDelimiter() {
		return nil, false, r.errorf(r.pos, ErrUnexpectedChar, "%q after number %s", r.snippet(r.pos), lit)
	}
	return numberValue(lit, isFloat), true, nil
}

func (r *reader) skipDigits() {
	for r.pos < len(r.src) && isDigit(r.src[r.pos]) {
		r.pos++
	}
}

// readColl reads elements up to closer. open is the width of the opening
// delimiter.
func (r *reader) readColl(open int, closer byte) ([]Value, error) {
	start := r.pos
	if err := r.enter(start); err != nil {
		return nil, err
	}
	defer r.leave()
	r.pos += open

	items := []Value{}
	for {
		r.skipSpace()
		if r.eof() {
			return nil, r.errorf(start, ErrUnterminatedCollection, "missing %q", closer)
		}
		c := r.src[r.pos]
		if c == closer {
			r.pos++
			return items, nil
		}
		if isCloser(c) {
			if r.strict {
				return nil, r.errorf(r.pos, ErrUnexpectedChar, "%q where %q was expected", c, closer)
			}
			r.pos++
			continue
		}
		v, ok, err := r.readValue()
		if err != nil {
			return nil, err
		}
		if ok {
			items = append(items, v)
		}
	}
}

func (r *reader) readMap() (Value, bool, error) {
	start := r.pos
	items, err := r.readColl(1, '}')
	if err != nil {
		return nil, false, err
	}
	if len(items)%2 != 0 {
		if r.strict {
			return nil, false, r.errorf(start, ErrOddMap, "key %s has no value", Write(items[len(items)-1]))
		}
		items = items[:len(items)-1]
	}
	m := make(Map, 0, len(items)/2)
	for i := 0; i < len(items); i += 2 {
		m = append(m, Pair{Key: items[i], Value: items[i+1]})
	}
	if r.strict {
		keys := make([]Value, len(m))
		for i, p := range m {
			keys[i] = p.Key
		}
		if err := r.checkUnique(start, keys); err != nil {
			return nil, false, err
		}
	}
	return m, true, nil
}

func (r *reader) checkUnique(start int, vals []Value) error {
	seen := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		k := Canonical(v)
		if _, dup := seen[k]; dup {
			return r.errorf(start, ErrDuplicateKey, "%s", k)
		}
		seen[k] = struct{}{}
	}
	return nil
}

// readDispatch handles everything that starts with '#'.
func (r *reader) readDispatch() (Value, bool, error) {
	start := r.pos
	if r.pos+1 >= len(r.src) {
		return r.skip(ErrBadTag)
	}
	switch next := r.src[r.pos+1]; next {
	case '{':
		items, err := r.readColl(2, '}')
		if err != nil {
			return nil, false, err
		}
		if r.strict {
			if err := r.checkUnique(start, items); err != nil {
				return nil, false, err
			}
		}
		return Set(items), true, nil
	case '_':
		r.pos += 2
		if err := r.enter(start); err != nil {
			return nil, false, err
		}
		defer r.leave()
		if _, err := r.readRequired(start, "#_"); err != nil {
			if r.strict || !errors.Is(err, ErrBadTag) {
				return nil, false, err
			}
		}
		return nil, false, nil
	case '#':
		r.pos += 2
		return r.readSymbolicFloat(start)
	}
	if rn, _ := utf8.DecodeRuneInString(r.src[r.pos+1:]); !unicode.IsLetter(rn) {
		return r.skip(ErrBadTag)
	}
	r.pos++
	tag := r.readRun()
	if err := r.enter(start); err != nil {
		return nil, false, err
	}
	defer r.leave()
	payload, err := r.readRequired(start, "#"+tag)
	if err != nil {
		if r.strict || !errors.Is(err, ErrBadTag) {
			return nil, false, err
		}
		return Tagged{Tag: tag, Value: Nil{}}, true, nil
	}
	v, err := r.interpretTag(start, tag, payload)
	return v, err == nil, err
}

// readRequired reads the value a tag or discard applies to. A closer or the
// end of input where that value should be is ErrBadTag.
func (r *reader) readRequired(start int, what string) (Value, error) {
	for {
		r.skipSpace()
		if r.eof() || isCloser(r.src[r.pos]) {
			return nil, r.errorf(start, ErrBadTag, "%s has no value", what)
		}
		v, ok, err := r.readValue()
		if err != nil {
			return nil, err
		}
		if ok {
			return v, nil
		}
	}
}

func (r *reader) interpretTag(start int, tag string, payload Value) (Value, error) {
	switch tag {
	case "inst":
		if s, ok := payload.(String); ok {
			if t, err := parseInst(string(s)); err == nil {
				return Inst{Time: t}, nil
			}
		}
		if r.strict {
			return nil, r.errorf(start, ErrBadTag, "#inst %s is not a timestamp", Write(payload))
		}
	case "uuid":
		if s, ok := payload.(String); ok {
			if !r.strict {
				return s, nil
			}
			if _, err := uuid.Parse(string(s)); err == nil {
				return s, nil
			}
		}
		if r.strict {
			return nil, r.errorf(start, ErrBadTag, "#uuid %s is not a UUID", Write(payload))
		}
	}
	return Tagged{Tag: tag, Value: payload}, nil
}

func (r *reader) readSymbolicFloat(start int) (Value, bool, error) {
	name := r.readRun()
	switch name {
	case "Inf":
		return Float(math.Inf(1)), true, nil
	case "-Inf":
		return Float(math.Inf(-1)), true, nil
	case "NaN":
		return Float(math.NaN()), true, nil
	}
	if r.strict {
		return nil, false, r.errorf(start, ErrBadTag, "unknown symbolic value ##%s", name)
	}
	return Symbol("##" + name), true, nil
}

var instLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

func parseInst(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range instLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func (r *reader) enter(start int) error {
	r.depth++
	if r.depth > r.maxDepth {
		return r.errorf(start, ErrTooDeep, "limit is %d", r.maxDepth)
	}
	return nil
}

func (r *reader) leave() {
	r.depth--
}

// skipSpace skips whitespace, commas and ; comments.
func (r *reader) skipSpace() {
	for r.pos < len(r.src) {
		switch r.src[r.pos] {
		case ' ', '\t', '\r', '\n', ',':
			r.pos++
		case ';':
			for r.pos < len(r.src) && r.src[r.pos] != '\n' {
				r.pos++
			}
		default:
			return
		}
	}
}

func (r *reader) eof() bool {
	return r.pos >= len(r.src)
}

func (r *reader) atDelimiter() bool {
	if r.eof() {
		return true
	}
	switch r.src[r.pos] {
	case ' ', '\t', '\r', '\n', ',', ';', '"', '[', ']', '(', ')', '{', '}':
		return true
	}
	return false
}

func (r *reader) snippet(at int) string {
	end := at + 16
	if end > len(r.src) {
		end = len(r.src)
	}
	return r.src[at:end]
}

func (r *reader) errorf(at int, cause error, format string, args ...any) *ParseError {
	return &ParseError{
		Pos: position(r.src, at),
		Msg: fmt.Sprintf(format, args...),
		Err: cause,
	}
}

func position(src string, off int) Position {
	if off > len(src) {
		off = len(src)
	}
	line, col := 1, 1
	for _, c := range src[:off] {
		if c == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return Position{Offset: off, Line: line, Column: col}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isCloser(c byte) bool {
	return c == ']' || c == ')' || c == '}'
}

const symbolPunct = "_-+*/!?<>=.$:#"

func isSymbolChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(symbolPunct, r)
}

func isSymbolStart(r rune) bool {
	return isSymbolChar(r) && !unicode.IsDigit(r) && r != ':' && r != '#'
}
