package codable

import (
	"encoding/json"
	"io"
	"strconv"
	"time"
)

// Decodable is the contract a type implements to construct itself by reading
// container calls against a Value tree.
type Decodable interface {
	DecodeValue(dec *Decoder) error
}

// Decoder binds one node of the input tree to the type currently constructing
// itself. The tree is read-only for the whole decode call; each top-level
// Decode constructs its own Decoder with its own strategy snapshot.
type Decoder struct {
	val  Value
	opts DecodeOptions
	path string
}

// NewDecoder returns a root Decoder over an existing Value tree.
func NewDecoder(v Value, opts ...DecodeOptions) *Decoder {
	return &Decoder{val: v, opts: lastDecodeOpt(opts), path: "/"}
}

// Options returns the strategy configuration captured by this Decoder.
func (d *Decoder) Options() DecodeOptions { return d.opts }

// Path returns the JSON Pointer of the node this Decoder is bound to.
func (d *Decoder) Path() string { return d.path }

// Value returns the raw node this Decoder is bound to.
func (d *Decoder) Value() Value { return d.val }

// Decode drives out's contract against an existing Value tree. The first
// failure aborts the contract and propagates; the framework performs no
// recovery or partial-success merging.
func Decode(v Value, out Decodable, opts ...DecodeOptions) error {
	if err := out.DecodeValue(NewDecoder(v, opts...)); err != nil {
		return toIssues(err)
	}
	return nil
}

// DecodeJSON parses JSON bytes with the active driver and decodes out from
// the resulting tree.
func DecodeJSON(data []byte, out Decodable, opts ...DecodeOptions) error {
	v, err := ParseJSON(data, opts...)
	if err != nil {
		return err
	}
	return Decode(v, out, opts...)
}

// DecodeFrom decodes out from an arbitrary token Source.
func DecodeFrom(src Source, out Decodable, opts ...DecodeOptions) error {
	v, err := BuildValue(src, opts...)
	if err != nil {
		return err
	}
	return Decode(v, out, opts...)
}

// DecodeJSONReader decodes out from an io.Reader of JSON text.
func DecodeJSONReader(r io.Reader, out Decodable, opts ...DecodeOptions) error {
	return DecodeFrom(JSONReader(r), out, opts...)
}

// Keyed returns the keyed container over the bound node, failing with
// invalid_type when the node is not an object.
func (d *Decoder) Keyed(cat Catalog) (*KeyedDecodingContainer, error) {
	members, err := d.val.asObject(d.path)
	if err != nil {
		return nil, err
	}
	c := &KeyedDecodingContainer{dec: d, members: members, path: d.path, cat: cat}
	c.lookup = make(map[string]keyedEntry, len(members))
	for _, m := range members {
		declared := decodeDeclaredName(m.Name, d.opts)
		// last one wins, matching common JSON semantics
		c.lookup[declared] = keyedEntry{val: m.Value, wire: m.Name}
	}
	return c, nil
}

// Unkeyed returns the cursor container over the bound node, failing with
// invalid_type when the node is not an array.
func (d *Decoder) Unkeyed() (*UnkeyedDecodingContainer, error) {
	elems, err := d.val.asArray(d.path)
	if err != nil {
		return nil, err
	}
	return &UnkeyedDecodingContainer{dec: d, elems: elems, path: d.path}, nil
}

// SingleValue returns the scalar container over the bound node.
func (d *Decoder) SingleValue() *SingleValueDecodingContainer {
	return &SingleValueDecodingContainer{dec: d}
}

func (d *Decoder) child(v Value, path string) *Decoder {
	return &Decoder{val: v, opts: d.opts, path: path}
}

// ---- shared scalar reads ----

func decodeBoolAt(v Value, path string) (bool, error) {
	if v.IsNull() {
		return false, Issues{issueValueNotFound(path, KindBool)}
	}
	return v.asBool(path)
}

func decodeNumberAt(v Value, path string) (json.Number, error) {
	if v.IsNull() {
		return "", Issues{issueValueNotFound(path, KindNumber)}
	}
	return v.asNumber(path)
}

func decodeStringAt(v Value, path string) (string, error) {
	if v.IsNull() {
		return "", Issues{issueValueNotFound(path, KindString)}
	}
	return v.asString(path)
}

func decodeInt64At(v Value, path string) (int64, error) {
	n, err := decodeNumberAt(v, path)
	if err != nil {
		return 0, err
	}
	if i, perr := strconv.ParseInt(string(n), 10, 64); perr == nil {
		return i, nil
	}
	// Integral floats ("3.0", "1e3") are accepted; anything else is corrupt.
	f, perr := strconv.ParseFloat(string(n), 64)
	if perr != nil || f != float64(int64(f)) {
		return 0, Issues{issueDataCorrupted(path, "number "+string(n)+" is not representable as int64", perr)}
	}
	return int64(f), nil
}

func decodeFloat64At(v Value, path string) (float64, error) {
	n, err := decodeNumberAt(v, path)
	if err != nil {
		return 0, err
	}
	f, perr := strconv.ParseFloat(string(n), 64)
	if perr != nil {
		return 0, Issues{issueDataCorrupted(path, "invalid number "+string(n), perr)}
	}
	return f, nil
}

// ---- keyed ----

type keyedEntry struct {
	val  Value
	wire string
}

// KeyedDecodingContainer reads named children of one object node. Lookup is by
// declared name; the active key strategy transforms incoming wire names before
// matching.
type KeyedDecodingContainer struct {
	dec     *Decoder
	members []Member
	lookup  map[string]keyedEntry
	path    string
	cat     Catalog
}

// Contains reports whether the key is present (even as null) in the input.
func (c *KeyedDecodingContainer) Contains(k CodingKey) bool {
	_, ok := c.lookup[k.Name]
	return ok
}

// WireKeys returns the raw wire names in document order.
func (c *KeyedDecodingContainer) WireKeys() []string {
	out := make([]string, len(c.members))
	for i, m := range c.members {
		out[i] = m.Name
	}
	return out
}

// get resolves a required key: absent -> key_not_found. Null values pass
// through for the caller to judge.
func (c *KeyedDecodingContainer) get(k CodingKey) (Value, string, error) {
	if !c.cat.Contains(k.Name) {
		return Value{}, "", Issues{issueDataCorrupted(c.path, "key '"+k.Name+"' not declared in catalog", nil)}
	}
	e, ok := c.lookup[k.Name]
	if !ok {
		return Value{}, "", Issues{issueKeyNotFound(c.path, k.Name)}
	}
	return e.val, joinPointer(c.path, e.wire), nil
}

// getOptional resolves an optional key: absent or null -> (zero, "", false).
// Undeclared keys fail the same way the required form does.
func (c *KeyedDecodingContainer) getOptional(k CodingKey) (Value, string, bool, error) {
	if !c.cat.Contains(k.Name) {
		return Value{}, "", false, Issues{issueDataCorrupted(c.path, "key '"+k.Name+"' not declared in catalog", nil)}
	}
	e, ok := c.lookup[k.Name]
	if !ok || e.val.IsNull() {
		return Value{}, "", false, nil
	}
	return e.val, joinPointer(c.path, e.wire), true, nil
}

func (c *KeyedDecodingContainer) DecodeBool(k CodingKey) (bool, error) {
	v, path, err := c.get(k)
	if err != nil {
		return false, err
	}
	return decodeBoolAt(v, path)
}

func (c *KeyedDecodingContainer) DecodeInt(k CodingKey) (int64, error) {
	v, path, err := c.get(k)
	if err != nil {
		return 0, err
	}
	return decodeInt64At(v, path)
}

func (c *KeyedDecodingContainer) DecodeFloat(k CodingKey) (float64, error) {
	v, path, err := c.get(k)
	if err != nil {
		return 0, err
	}
	return decodeFloat64At(v, path)
}

func (c *KeyedDecodingContainer) DecodeNumber(k CodingKey) (json.Number, error) {
	v, path, err := c.get(k)
	if err != nil {
		return "", err
	}
	return decodeNumberAt(v, path)
}

func (c *KeyedDecodingContainer) DecodeString(k CodingKey) (string, error) {
	v, path, err := c.get(k)
	if err != nil {
		return "", err
	}
	return decodeStringAt(v, path)
}

func (c *KeyedDecodingContainer) DecodeTime(k CodingKey) (time.Time, error) {
	v, path, err := c.get(k)
	if err != nil {
		return time.Time{}, err
	}
	return decodeTime(v, path, c.dec.opts)
}

// Decode resolves the key and runs out's contract against its value.
func (c *KeyedDecodingContainer) Decode(k CodingKey, out Decodable) error {
	v, path, err := c.get(k)
	if err != nil {
		return err
	}
	return out.DecodeValue(c.dec.child(v, path))
}

// DecodeValue returns the raw Value under the key.
func (c *KeyedDecodingContainer) DecodeValue(k CodingKey) (Value, error) {
	v, _, err := c.get(k)
	return v, err
}

// ---- optional reads: absent and null both yield nil without error;
// present-and-wrong-type still fails ----

func (c *KeyedDecodingContainer) DecodeBoolIfPresent(k CodingKey) (*bool, error) {
	v, path, ok, err := c.getOptional(k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	b, err := v.asBool(path)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *KeyedDecodingContainer) DecodeIntIfPresent(k CodingKey) (*int64, error) {
	v, path, ok, err := c.getOptional(k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	i, err := decodeInt64At(v, path)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (c *KeyedDecodingContainer) DecodeFloatIfPresent(k CodingKey) (*float64, error) {
	v, path, ok, err := c.getOptional(k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	f, err := decodeFloat64At(v, path)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *KeyedDecodingContainer) DecodeStringIfPresent(k CodingKey) (*string, error) {
	v, path, ok, err := c.getOptional(k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	s, err := v.asString(path)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *KeyedDecodingContainer) DecodeTimeIfPresent(k CodingKey) (*time.Time, error) {
	v, path, ok, err := c.getOptional(k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	t, err := decodeTime(v, path, c.dec.opts)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DecodeIfPresent runs out's contract when the key is present and non-null.
// The bool reports whether anything was decoded.
func (c *KeyedDecodingContainer) DecodeIfPresent(k CodingKey, out Decodable) (bool, error) {
	v, path, ok, err := c.getOptional(k)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := out.DecodeValue(c.dec.child(v, path)); err != nil {
		return false, err
	}
	return true, nil
}

// NestedKeyed descends into an object-valued key.
func (c *KeyedDecodingContainer) NestedKeyed(k CodingKey, cat Catalog) (*KeyedDecodingContainer, error) {
	v, path, err := c.get(k)
	if err != nil {
		return nil, err
	}
	return c.dec.child(v, path).Keyed(cat)
}

// NestedUnkeyed descends into an array-valued key.
func (c *KeyedDecodingContainer) NestedUnkeyed(k CodingKey) (*UnkeyedDecodingContainer, error) {
	v, path, err := c.get(k)
	if err != nil {
		return nil, err
	}
	return c.dec.child(v, path).Unkeyed()
}

// ---- unkeyed ----

// UnkeyedDecodingContainer is a cursor over one array node. Every successful
// decode advances the cursor; reading past the end fails with value_not_found.
type UnkeyedDecodingContainer struct {
	dec   *Decoder
	elems []Value
	idx   int
	path  string
}

// Count returns the total number of elements.
func (c *UnkeyedDecodingContainer) Count() int { return len(c.elems) }

// Index returns the cursor position.
func (c *UnkeyedDecodingContainer) Index() int { return c.idx }

// IsAtEnd reports whether the cursor is exhausted.
func (c *UnkeyedDecodingContainer) IsAtEnd() bool { return c.idx >= len(c.elems) }

func (c *UnkeyedDecodingContainer) next(expected Kind) (Value, string, error) {
	if c.IsAtEnd() {
		return Value{}, "", Issues{issueValueNotFound(c.path, expected)}
	}
	v := c.elems[c.idx]
	path := joinPointerIndex(c.path, c.idx)
	c.idx++
	return v, path, nil
}

// DecodeNil consumes a null element, reporting true when one was present. A
// non-null element leaves the cursor in place and reports false.
func (c *UnkeyedDecodingContainer) DecodeNil() (bool, error) {
	if c.IsAtEnd() {
		return false, Issues{issueValueNotFound(c.path, KindNull)}
	}
	if c.elems[c.idx].IsNull() {
		c.idx++
		return true, nil
	}
	return false, nil
}

func (c *UnkeyedDecodingContainer) DecodeBool() (bool, error) {
	v, path, err := c.next(KindBool)
	if err != nil {
		return false, err
	}
	return decodeBoolAt(v, path)
}

func (c *UnkeyedDecodingContainer) DecodeInt() (int64, error) {
	v, path, err := c.next(KindNumber)
	if err != nil {
		return 0, err
	}
	return decodeInt64At(v, path)
}

func (c *UnkeyedDecodingContainer) DecodeFloat() (float64, error) {
	v, path, err := c.next(KindNumber)
	if err != nil {
		return 0, err
	}
	return decodeFloat64At(v, path)
}

func (c *UnkeyedDecodingContainer) DecodeNumber() (json.Number, error) {
	v, path, err := c.next(KindNumber)
	if err != nil {
		return "", err
	}
	return decodeNumberAt(v, path)
}

func (c *UnkeyedDecodingContainer) DecodeString() (string, error) {
	v, path, err := c.next(KindString)
	if err != nil {
		return "", err
	}
	return decodeStringAt(v, path)
}

func (c *UnkeyedDecodingContainer) DecodeTime() (time.Time, error) {
	v, path, err := c.next(KindString)
	if err != nil {
		return time.Time{}, err
	}
	return decodeTime(v, path, c.dec.opts)
}

// Decode runs out's contract against the next element.
func (c *UnkeyedDecodingContainer) Decode(out Decodable) error {
	v, path, err := c.next(KindObject)
	if err != nil {
		return err
	}
	return out.DecodeValue(c.dec.child(v, path))
}

// DecodeValue returns the next raw Value.
func (c *UnkeyedDecodingContainer) DecodeValue() (Value, error) {
	v, _, err := c.next(KindNull)
	return v, err
}

// NestedKeyed descends into the next element as an object.
func (c *UnkeyedDecodingContainer) NestedKeyed(cat Catalog) (*KeyedDecodingContainer, error) {
	v, path, err := c.next(KindObject)
	if err != nil {
		return nil, err
	}
	return c.dec.child(v, path).Keyed(cat)
}

// NestedUnkeyed descends into the next element as an array.
func (c *UnkeyedDecodingContainer) NestedUnkeyed() (*UnkeyedDecodingContainer, error) {
	v, path, err := c.next(KindArray)
	if err != nil {
		return nil, err
	}
	return c.dec.child(v, path).Unkeyed()
}

// ---- single value ----

// SingleValueDecodingContainer reads the bound node as a scalar. Custom
// single-value types (the store-Celsius-encode-Fahrenheit pattern) run their
// inverse transform on top of these reads.
type SingleValueDecodingContainer struct {
	dec *Decoder
}

// DecodeNil reports whether the bound node is null.
func (c *SingleValueDecodingContainer) DecodeNil() bool { return c.dec.val.IsNull() }

func (c *SingleValueDecodingContainer) DecodeBool() (bool, error) {
	return decodeBoolAt(c.dec.val, c.dec.path)
}

func (c *SingleValueDecodingContainer) DecodeInt() (int64, error) {
	return decodeInt64At(c.dec.val, c.dec.path)
}

func (c *SingleValueDecodingContainer) DecodeFloat() (float64, error) {
	return decodeFloat64At(c.dec.val, c.dec.path)
}

func (c *SingleValueDecodingContainer) DecodeNumber() (json.Number, error) {
	return decodeNumberAt(c.dec.val, c.dec.path)
}

func (c *SingleValueDecodingContainer) DecodeString() (string, error) {
	return decodeStringAt(c.dec.val, c.dec.path)
}

func (c *SingleValueDecodingContainer) DecodeTime() (time.Time, error) {
	return decodeTime(c.dec.val, c.dec.path, c.dec.opts)
}

// Value returns the raw bound node.
func (c *SingleValueDecodingContainer) Value() Value { return c.dec.val }
