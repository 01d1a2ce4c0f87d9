package codable

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Kind tags the payload held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Member is one entry of an object Value. Objects keep members in insertion
// order so that round-trips through ordered formats stay byte-stable.
type Member struct {
	Name  string
	Value Value
}

type arrayBody struct {
	elems []Value
}

type objectBody struct {
	members []Member
	index   map[string]int
}

// Value is the format-agnostic structured-data union. The zero Value is null.
// Values are write-once: the encoder builds them bottom-up and nothing mutates
// a node after it has been attached to a parent.
type Value struct {
	kind Kind
	bv   bool
	nv   string // lexical form, json.Number semantics
	sv   string
	arr  *arrayBody
	obj  *objectBody
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Bool returns a bool Value.
func Bool(b bool) Value { return Value{kind: KindBool, bv: b} }

// Number returns a number Value from its lexical form. The text is trusted to
// be a valid JSON number; use Int or Float when constructing from Go values.
func Number(n json.Number) Value { return Value{kind: KindNumber, nv: string(n)} }

// Int returns a number Value holding an integer.
func Int(i int64) Value { return Value{kind: KindNumber, nv: strconv.FormatInt(i, 10)} }

// Float returns a number Value holding a floating-point number.
func Float(f float64) Value {
	return Value{kind: KindNumber, nv: strconv.FormatFloat(f, 'g', -1, 64)}
}

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, sv: s} }

// Array returns an array Value holding the given elements in order.
func Array(elems ...Value) Value {
	return Value{kind: KindArray, arr: &arrayBody{elems: elems}}
}

// Object returns an object Value holding the given members in order. A repeated
// name replaces the earlier member in place (last one wins).
func Object(members ...Member) Value {
	v := newObject()
	for _, m := range members {
		v.setMember(m.Name, m.Value)
	}
	return v
}

func newArray() Value  { return Value{kind: KindArray, arr: &arrayBody{}} }
func newObject() Value { return Value{kind: KindObject, obj: &objectBody{index: map[string]int{}}} }

func (v Value) appendElem(e Value) {
	v.arr.elems = append(v.arr.elems, e)
}

func (v Value) setMember(name string, e Value) {
	if i, ok := v.obj.index[name]; ok {
		v.obj.members[i].Value = e
		return
	}
	v.obj.index[name] = len(v.obj.members)
	v.obj.members = append(v.obj.members, Member{Name: name, Value: e})
}

// Kind reports the tag of the Value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the Value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the bool payload or an invalid_type issue.
func (v Value) AsBool() (bool, error) { return v.asBool("/") }

func (v Value) asBool(path string) (bool, error) {
	if v.kind != KindBool {
		return false, Issues{issueTypeMismatch(path, KindBool, v.kind)}
	}
	return v.bv, nil
}

// AsNumber returns the number payload in lexical form or an invalid_type issue.
func (v Value) AsNumber() (json.Number, error) { return v.asNumber("/") }

func (v Value) asNumber(path string) (json.Number, error) {
	if v.kind != KindNumber {
		return "", Issues{issueTypeMismatch(path, KindNumber, v.kind)}
	}
	return json.Number(v.nv), nil
}

// AsString returns the string payload or an invalid_type issue.
func (v Value) AsString() (string, error) { return v.asString("/") }

func (v Value) asString(path string) (string, error) {
	if v.kind != KindString {
		return "", Issues{issueTypeMismatch(path, KindString, v.kind)}
	}
	return v.sv, nil
}

// AsArray returns the elements of an array Value or an invalid_type issue.
func (v Value) AsArray() ([]Value, error) { return v.asArray("/") }

func (v Value) asArray(path string) ([]Value, error) {
	if v.kind != KindArray {
		return nil, Issues{issueTypeMismatch(path, KindArray, v.kind)}
	}
	return v.arr.elems, nil
}

// AsObject returns the members of an object Value in insertion order, or an
// invalid_type issue.
func (v Value) AsObject() ([]Member, error) { return v.asObject("/") }

func (v Value) asObject(path string) ([]Member, error) {
	if v.kind != KindObject {
		return nil, Issues{issueTypeMismatch(path, KindObject, v.kind)}
	}
	return v.obj.members, nil
}

// Len returns the element count for arrays, the member count for objects, and
// zero for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr.elems)
	case KindObject:
		return len(v.obj.members)
	default:
		return 0
	}
}

// Index returns the i-th element of an array Value. The bool is false when the
// Value is not an array or the index is out of range.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.arr.elems) {
		return Value{}, false
	}
	return v.arr.elems[i], true
}

// Member looks up an object member by wire name. The bool distinguishes a
// missing member from a member holding null.
func (v Value) Member(name string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	i, ok := v.obj.index[name]
	if !ok {
		return Value{}, false
	}
	return v.obj.members[i].Value, true
}

// Equal reports structural equality: order-sensitive for arrays, key-set based
// for objects, numeric for numbers ("1.0" equals "1").
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.bv == w.bv
	case KindNumber:
		return numberEqual(v.nv, w.nv)
	case KindString:
		return v.sv == w.sv
	case KindArray:
		if len(v.arr.elems) != len(w.arr.elems) {
			return false
		}
		for i := range v.arr.elems {
			if !v.arr.elems[i].Equal(w.arr.elems[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj.members) != len(w.obj.members) {
			return false
		}
		for _, m := range v.obj.members {
			o, ok := w.Member(m.Name)
			if !ok || !m.Value.Equal(o) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func numberEqual(a, b string) bool {
	if a == b {
		return true
	}
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	return errA == nil && errB == nil && fa == fb
}

// ---- JSON writer ----

// MarshalJSON renders the Value as compact JSON, preserving object member
// order. This makes Value usable directly with encoding/json-compatible APIs.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.AppendJSON(nil), nil
}

// AppendJSON appends the compact JSON rendering of v to dst.
func (v Value) AppendJSON(dst []byte) []byte {
	switch v.kind {
	case KindNull:
		return append(dst, "null"...)
	case KindBool:
		if v.bv {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case KindNumber:
		if v.nv == "" {
			return append(dst, '0')
		}
		return append(dst, v.nv...)
	case KindString:
		return appendJSONString(dst, v.sv)
	case KindArray:
		dst = append(dst, '[')
		for i, e := range v.arr.elems {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = e.AppendJSON(dst)
		}
		return append(dst, ']')
	case KindObject:
		dst = append(dst, '{')
		for i, m := range v.obj.members {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendJSONString(dst, m.Name)
			dst = append(dst, ':')
			dst = m.Value.AppendJSON(dst)
		}
		return append(dst, '}')
	default:
		return append(dst, "null"...)
	}
}

func appendJSONString(dst []byte, s string) []byte {
	// encoding/json owns the escaping rules; the tiny alloc is acceptable for
	// a leaf operation that runs once per string node.
	b, err := json.Marshal(s)
	if err != nil {
		return append(dst, `""`...)
	}
	return append(dst, b...)
}

// WriteJSON serializes a Value tree to JSON bytes. Pretty output is indented
// with two spaces; member order is preserved in both modes.
func WriteJSON(v Value, pretty bool) ([]byte, error) {
	compact := v.AppendJSON(nil)
	if !pretty {
		return compact, nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: "indent failed", Cause: err}}
	}
	return buf.Bytes(), nil
}
