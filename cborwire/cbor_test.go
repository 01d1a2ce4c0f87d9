package cborwire_test

import (
	"testing"

	codable "github.com/codablekit/codable"
	"github.com/codablekit/codable/cborwire"
)

func TestMarshalUnmarshal_RoundTrip(t *testing.T) {
	v, err := codable.ParseJSON([]byte(`{"b":1,"a":{"nested":[true,null,"x"]},"c":2.5}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	data, err := cborwire.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	back, err := cborwire.Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	// map order is not part of cbor equality; Value object comparison is
	// key-set based so this still holds
	if !back.Equal(v) {
		t.Fatalf("round trip mismatch:\n in:  %v\n out: %v", v, back)
	}
}

func TestUnmarshal_BadInput(t *testing.T) {
	_, err := cborwire.Unmarshal([]byte{0xff, 0x00})
	if !codable.HasCode(err, codable.CodeParseError) {
		t.Fatalf("expected parse_error, got: %v", err)
	}
}

func TestEncodeDecode_Contract(t *testing.T) {
	want := pair{Left: "l", Right: 7}
	data, err := cborwire.Encode(want)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	var got pair
	if err := cborwire.Decode(data, &got); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got != want {
		t.Fatalf("mismatch: got %+v want %+v", got, want)
	}
}

type pair struct {
	Left  string
	Right int64
}

var (
	keyLeft  = codable.Key("left")
	keyRight = codable.Key("right")
	pairKeys = codable.MustCatalog(keyLeft, keyRight)
)

func (p pair) EncodeValue(enc *codable.Encoder) error {
	c, err := enc.Keyed(pairKeys)
	if err != nil {
		return err
	}
	if err := c.EncodeString(keyLeft, p.Left); err != nil {
		return err
	}
	return c.EncodeInt(keyRight, p.Right)
}

func (p *pair) DecodeValue(dec *codable.Decoder) error {
	c, err := dec.Keyed(pairKeys)
	if err != nil {
		return err
	}
	if p.Left, err = c.DecodeString(keyLeft); err != nil {
		return err
	}
	p.Right, err = c.DecodeInt(keyRight)
	return err
}
