package codable

import (
	"encoding/json"
	"math"
	"time"
)

// Encodable is the contract a type implements to describe its own shape in
// terms of container calls. The framework drives the contract; it never
// inspects the type through reflection.
type Encodable interface {
	EncodeValue(enc *Encoder) error
}

// Encoder binds one slot of the output tree to the type currently describing
// itself. Each top-level Encode call constructs a fresh Encoder with its own
// strategy snapshot, so concurrent encodes share no state.
type Encoder struct {
	opts EncodeOptions
	path string
	out  Value
	done bool
}

// NewEncoder returns a root Encoder. The last options value wins.
func NewEncoder(opts ...EncodeOptions) *Encoder {
	return &Encoder{opts: lastEncodeOpt(opts), path: "/"}
}

// Options returns the strategy configuration captured by this Encoder.
func (e *Encoder) Options() EncodeOptions { return e.opts }

// Path returns the JSON Pointer of the slot this Encoder is bound to.
func (e *Encoder) Path() string { return e.path }

// Encode runs v's contract and returns the resulting Value tree. The call is
// atomic: on error the partially built tree is discarded.
func Encode(v Encodable, opts ...EncodeOptions) (Value, error) {
	enc := NewEncoder(opts...)
	if err := v.EncodeValue(enc); err != nil {
		return Value{}, toIssues(err)
	}
	return enc.finish()
}

// EncodeJSON encodes v and serializes the resulting tree to compact JSON.
func EncodeJSON(v Encodable, opts ...EncodeOptions) ([]byte, error) {
	val, err := Encode(v, opts...)
	if err != nil {
		return nil, err
	}
	return WriteJSON(val, false)
}

// EncodeJSONIndent is EncodeJSON with pretty output.
func EncodeJSONIndent(v Encodable, opts ...EncodeOptions) ([]byte, error) {
	val, err := Encode(v, opts...)
	if err != nil {
		return nil, err
	}
	return WriteJSON(val, true)
}

func (e *Encoder) finish() (Value, error) {
	if !e.done {
		return Value{}, Issues{issueDataCorrupted(e.path, "contract encoded no value", nil)}
	}
	return e.out, nil
}

// Keyed allocates an empty object node and returns the keyed container bound
// to it. An Encoder is single-use: a second container acquisition fails.
func (e *Encoder) Keyed(cat Catalog) (*KeyedEncodingContainer, error) {
	if e.done {
		return nil, Issues{issueDataCorrupted(e.path, "encoder already bound to a container", nil)}
	}
	e.out = newObject()
	e.done = true
	return &KeyedEncodingContainer{enc: e, node: e.out, path: e.path, cat: cat}, nil
}

// Unkeyed allocates an empty array node and returns the unkeyed container
// bound to it. Append order is the wire contract.
func (e *Encoder) Unkeyed() (*UnkeyedEncodingContainer, error) {
	if e.done {
		return nil, Issues{issueDataCorrupted(e.path, "encoder already bound to a container", nil)}
	}
	e.out = newArray()
	e.done = true
	return &UnkeyedEncodingContainer{enc: e, node: e.out, path: e.path}, nil
}

// SingleValue binds directly to the scalar slot. Used by leaf types and by
// types with a custom single-value wire representation.
func (e *Encoder) SingleValue() *SingleValueEncodingContainer {
	return &SingleValueEncodingContainer{enc: e}
}

// encodeChild runs a nested contract in a fresh single-use sub-Encoder bound
// to the given slot path.
func (e *Encoder) encodeChild(path string, v Encodable) (Value, error) {
	child := &Encoder{opts: e.opts, path: path}
	if err := v.EncodeValue(child); err != nil {
		return Value{}, err
	}
	return child.finish()
}

func encodeFloatValue(path string, f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, Issues{issueDataCorrupted(path, "NaN/Inf not representable", nil)}
	}
	return Float(f), nil
}

// ---- keyed ----

// KeyedEncodingContainer writes named children into one object node. The
// handle is short-lived: it never outlives the contract call that created it.
type KeyedEncodingContainer struct {
	enc  *Encoder
	node Value
	path string
	cat  Catalog
}

func (c *KeyedEncodingContainer) put(k CodingKey, v Value) error {
	if !c.cat.Contains(k.Name) {
		return Issues{issueDataCorrupted(c.path, "key '"+k.Name+"' not declared in catalog", nil)}
	}
	c.node.setMember(encodeWireName(k.Name, c.enc.opts), v)
	return nil
}

func (c *KeyedEncodingContainer) childPath(k CodingKey) string {
	return joinPointer(c.path, encodeWireName(k.Name, c.enc.opts))
}

// Len returns the number of members written so far.
func (c *KeyedEncodingContainer) Len() int { return c.node.Len() }

func (c *KeyedEncodingContainer) EncodeNull(k CodingKey) error { return c.put(k, Null()) }

func (c *KeyedEncodingContainer) EncodeBool(k CodingKey, b bool) error { return c.put(k, Bool(b)) }

func (c *KeyedEncodingContainer) EncodeInt(k CodingKey, i int64) error { return c.put(k, Int(i)) }

func (c *KeyedEncodingContainer) EncodeFloat(k CodingKey, f float64) error {
	v, err := encodeFloatValue(c.childPath(k), f)
	if err != nil {
		return err
	}
	return c.put(k, v)
}

func (c *KeyedEncodingContainer) EncodeNumber(k CodingKey, n json.Number) error {
	return c.put(k, Number(n))
}

func (c *KeyedEncodingContainer) EncodeString(k CodingKey, s string) error {
	return c.put(k, String(s))
}

func (c *KeyedEncodingContainer) EncodeTime(k CodingKey, t time.Time) error {
	v, err := encodeTime(t, c.childPath(k), c.enc.opts)
	if err != nil {
		return err
	}
	return c.put(k, v)
}

// EncodeValue attaches an already built Value under the key.
func (c *KeyedEncodingContainer) EncodeValue(k CodingKey, v Value) error { return c.put(k, v) }

// Encode runs a nested contract in a sub-Encoder bound to the key's slot.
func (c *KeyedEncodingContainer) Encode(k CodingKey, v Encodable) error {
	child, err := c.enc.encodeChild(c.childPath(k), v)
	if err != nil {
		return err
	}
	return c.put(k, child)
}

// ---- optional writes: a nil pointer omits the key entirely ----

func (c *KeyedEncodingContainer) EncodeBoolIfPresent(k CodingKey, b *bool) error {
	if b == nil {
		return nil
	}
	return c.EncodeBool(k, *b)
}

func (c *KeyedEncodingContainer) EncodeIntIfPresent(k CodingKey, i *int64) error {
	if i == nil {
		return nil
	}
	return c.EncodeInt(k, *i)
}

func (c *KeyedEncodingContainer) EncodeFloatIfPresent(k CodingKey, f *float64) error {
	if f == nil {
		return nil
	}
	return c.EncodeFloat(k, *f)
}

func (c *KeyedEncodingContainer) EncodeStringIfPresent(k CodingKey, s *string) error {
	if s == nil {
		return nil
	}
	return c.EncodeString(k, *s)
}

func (c *KeyedEncodingContainer) EncodeTimeIfPresent(k CodingKey, t *time.Time) error {
	if t == nil {
		return nil
	}
	return c.EncodeTime(k, *t)
}

// NestedKeyed allocates an object node under the key and returns its container.
func (c *KeyedEncodingContainer) NestedKeyed(k CodingKey, cat Catalog) (*KeyedEncodingContainer, error) {
	node := newObject()
	if err := c.put(k, node); err != nil {
		return nil, err
	}
	return &KeyedEncodingContainer{enc: c.enc, node: node, path: c.childPath(k), cat: cat}, nil
}

// NestedUnkeyed allocates an array node under the key and returns its container.
func (c *KeyedEncodingContainer) NestedUnkeyed(k CodingKey) (*UnkeyedEncodingContainer, error) {
	node := newArray()
	if err := c.put(k, node); err != nil {
		return nil, err
	}
	return &UnkeyedEncodingContainer{enc: c.enc, node: node, path: c.childPath(k)}, nil
}

// ---- unkeyed ----

// UnkeyedEncodingContainer appends children to one array node in call order.
type UnkeyedEncodingContainer struct {
	enc  *Encoder
	node Value
	path string
}

// Count returns the number of elements appended so far.
func (c *UnkeyedEncodingContainer) Count() int { return c.node.Len() }

func (c *UnkeyedEncodingContainer) elemPath() string {
	return joinPointerIndex(c.path, c.node.Len())
}

func (c *UnkeyedEncodingContainer) EncodeNull() error {
	c.node.appendElem(Null())
	return nil
}

func (c *UnkeyedEncodingContainer) EncodeBool(b bool) error {
	c.node.appendElem(Bool(b))
	return nil
}

func (c *UnkeyedEncodingContainer) EncodeInt(i int64) error {
	c.node.appendElem(Int(i))
	return nil
}

func (c *UnkeyedEncodingContainer) EncodeFloat(f float64) error {
	v, err := encodeFloatValue(c.elemPath(), f)
	if err != nil {
		return err
	}
	c.node.appendElem(v)
	return nil
}

func (c *UnkeyedEncodingContainer) EncodeNumber(n json.Number) error {
	c.node.appendElem(Number(n))
	return nil
}

func (c *UnkeyedEncodingContainer) EncodeString(s string) error {
	c.node.appendElem(String(s))
	return nil
}

func (c *UnkeyedEncodingContainer) EncodeTime(t time.Time) error {
	v, err := encodeTime(t, c.elemPath(), c.enc.opts)
	if err != nil {
		return err
	}
	c.node.appendElem(v)
	return nil
}

func (c *UnkeyedEncodingContainer) EncodeValue(v Value) error {
	c.node.appendElem(v)
	return nil
}

// Encode runs a nested contract in a sub-Encoder bound to the next slot.
func (c *UnkeyedEncodingContainer) Encode(v Encodable) error {
	child, err := c.enc.encodeChild(c.elemPath(), v)
	if err != nil {
		return err
	}
	c.node.appendElem(child)
	return nil
}

// NestedKeyed appends an object node and returns its container.
func (c *UnkeyedEncodingContainer) NestedKeyed(cat Catalog) (*KeyedEncodingContainer, error) {
	path := c.elemPath()
	node := newObject()
	c.node.appendElem(node)
	return &KeyedEncodingContainer{enc: c.enc, node: node, path: path, cat: cat}, nil
}

// NestedUnkeyed appends an array node and returns its container.
func (c *UnkeyedEncodingContainer) NestedUnkeyed() (*UnkeyedEncodingContainer, error) {
	path := c.elemPath()
	node := newArray()
	c.node.appendElem(node)
	return &UnkeyedEncodingContainer{enc: c.enc, node: node, path: path}, nil
}

// ---- single value ----

// SingleValueEncodingContainer binds directly to the Encoder's scalar slot.
type SingleValueEncodingContainer struct {
	enc *Encoder
}

func (c *SingleValueEncodingContainer) set(v Value) error {
	if c.enc.done {
		return Issues{issueDataCorrupted(c.enc.path, "value already encoded", nil)}
	}
	c.enc.out = v
	c.enc.done = true
	return nil
}

func (c *SingleValueEncodingContainer) EncodeNull() error          { return c.set(Null()) }
func (c *SingleValueEncodingContainer) EncodeBool(b bool) error    { return c.set(Bool(b)) }
func (c *SingleValueEncodingContainer) EncodeInt(i int64) error    { return c.set(Int(i)) }
func (c *SingleValueEncodingContainer) EncodeString(s string) error { return c.set(String(s)) }

func (c *SingleValueEncodingContainer) EncodeFloat(f float64) error {
	v, err := encodeFloatValue(c.enc.path, f)
	if err != nil {
		return err
	}
	return c.set(v)
}

func (c *SingleValueEncodingContainer) EncodeNumber(n json.Number) error { return c.set(Number(n)) }

func (c *SingleValueEncodingContainer) EncodeTime(t time.Time) error {
	v, err := encodeTime(t, c.enc.path, c.enc.opts)
	if err != nil {
		return err
	}
	return c.set(v)
}

func (c *SingleValueEncodingContainer) EncodeValue(v Value) error { return c.set(v) }
