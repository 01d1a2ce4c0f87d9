// Package cborwire bridges Value trees to CBOR bytes using fxamacker/cbor.
// CBOR maps do not expose wire order, so decoded objects carry members in the
// library's iteration order and encoding emits canonically sorted keys; Value
// object equality is key-set based, so round-trips still compare equal.
package cborwire

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"sort"

	"github.com/fxamacker/cbor/v2"

	codable "github.com/codablekit/codable"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.EncOptions{Sort: cbor.SortCanonical}.EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Marshal serializes a Value tree to CBOR bytes.
func Marshal(v codable.Value) ([]byte, error) {
	raw, err := toAny(v, "/")
	if err != nil {
		return nil, err
	}
	out, merr := encMode.Marshal(raw)
	if merr != nil {
		return nil, codable.Issues{{Path: "/", Code: codable.CodeParseError, Message: "cbor marshal failed", Cause: merr, Offset: -1}}
	}
	return out, nil
}

// Unmarshal parses CBOR bytes into a Value tree.
func Unmarshal(data []byte) (codable.Value, error) {
	var raw any
	if err := decMode.Unmarshal(data, &raw); err != nil {
		return codable.Value{}, codable.Issues{{Path: "/", Code: codable.CodeParseError, Message: "cbor unmarshal failed", Cause: err, Offset: -1}}
	}
	return fromAny(raw, "/")
}

// Encode runs v's contract and serializes the result to CBOR.
func Encode(v codable.Encodable, opts ...codable.EncodeOptions) ([]byte, error) {
	val, err := codable.Encode(v, opts...)
	if err != nil {
		return nil, err
	}
	return Marshal(val)
}

// Decode parses CBOR bytes and drives out's contract over the tree.
func Decode(data []byte, out codable.Decodable, opts ...codable.DecodeOptions) error {
	v, err := Unmarshal(data)
	if err != nil {
		return err
	}
	return codable.Decode(v, out, opts...)
}

func toAny(v codable.Value, path string) (any, error) {
	switch v.Kind() {
	case codable.KindNull:
		return nil, nil
	case codable.KindBool:
		b, _ := v.AsBool()
		return b, nil
	case codable.KindNumber:
		n, _ := v.AsNumber()
		return numberToAny(n, path)
	case codable.KindString:
		s, _ := v.AsString()
		return s, nil
	case codable.KindArray:
		elems, _ := v.AsArray()
		out := make([]any, len(elems))
		for i, e := range elems {
			a, err := toAny(e, path+"/"+fmt.Sprint(i))
			if err != nil {
				return nil, err
			}
			out[i] = a
		}
		return out, nil
	default: // object
		members, _ := v.AsObject()
		out := make(map[string]any, len(members))
		for _, m := range members {
			a, err := toAny(m.Value, path+"/"+m.Name)
			if err != nil {
				return nil, err
			}
			out[m.Name] = a
		}
		return out, nil
	}
}

func numberToAny(n json.Number, path string) (any, error) {
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	if f, err := n.Float64(); err == nil {
		return f, nil
	}
	return nil, codable.Issues{{Path: path, Code: codable.CodeDataCorrupted, Message: "number " + string(n) + " not representable in cbor", Offset: -1}}
}

func fromAny(raw any, path string) (codable.Value, error) {
	switch t := raw.(type) {
	case nil:
		return codable.Null(), nil
	case bool:
		return codable.Bool(t), nil
	case int64:
		return codable.Int(t), nil
	case uint64:
		return codable.Number(json.Number(fmt.Sprintf("%d", t))), nil
	case float64:
		return codable.Float(t), nil
	case big.Int:
		return codable.Number(json.Number(t.String())), nil
	case string:
		return codable.String(t), nil
	case []any:
		arr := make([]codable.Value, len(t))
		for i, e := range t {
			v, err := fromAny(e, path+"/"+fmt.Sprint(i))
			if err != nil {
				return codable.Value{}, err
			}
			arr[i] = v
		}
		return codable.Array(arr...), nil
	case map[string]any:
		names := make([]string, 0, len(t))
		for k := range t {
			names = append(names, k)
		}
		sort.Strings(names)
		members := make([]codable.Member, 0, len(t))
		for _, k := range names {
			v, err := fromAny(t[k], path+"/"+k)
			if err != nil {
				return codable.Value{}, err
			}
			members = append(members, codable.Member{Name: k, Value: v})
		}
		return codable.Object(members...), nil
	default:
		return codable.Value{}, codable.Issues{{Path: path, Code: codable.CodeTypeMismatch, Message: fmt.Sprintf("unsupported cbor payload %T", raw), Offset: -1}}
	}
}
