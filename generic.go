package codable

import "sort"

// EncodeSlice drives an unkeyed container over a homogeneous slice. The
// Encoder must be freshly bound (no container acquired yet).
func EncodeSlice[T Encodable](enc *Encoder, items []T) error {
	u, err := enc.Unkeyed()
	if err != nil {
		return err
	}
	for _, it := range items {
		if err := u.Encode(it); err != nil {
			return err
		}
	}
	return nil
}

// DecodeSlice reads a homogeneous slice through an unkeyed container. The
// element type implements Decodable on its pointer receiver.
func DecodeSlice[T any, P interface {
	*T
	Decodable
}](dec *Decoder) ([]T, error) {
	u, err := dec.Unkeyed()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, u.Count())
	for !u.IsAtEnd() {
		var item T
		if err := u.Decode(P(&item)); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// EncodeStringMap encodes a map as an object. Map keys go on the wire
// verbatim (no key strategy, they are data rather than declarations) and are
// sorted for deterministic output.
func EncodeStringMap[T Encodable](enc *Encoder, m map[string]T) error {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)

	obj := newObject()
	for _, name := range names {
		child, err := enc.encodeChild(joinPointer(enc.path, name), m[name])
		if err != nil {
			return err
		}
		obj.setMember(name, child)
	}
	return enc.SingleValue().EncodeValue(obj)
}

// DecodeStringMap decodes an object into a map keyed by the raw wire names.
func DecodeStringMap[T any, P interface {
	*T
	Decodable
}](dec *Decoder) (map[string]T, error) {
	members, err := dec.val.asObject(dec.path)
	if err != nil {
		return nil, err
	}
	out := make(map[string]T, len(members))
	for _, m := range members {
		var item T
		if err := P(&item).DecodeValue(dec.child(m.Value, joinPointer(dec.path, m.Name))); err != nil {
			return nil, err
		}
		out[m.Name] = item
	}
	return out, nil
}
