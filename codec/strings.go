// Package codec provides reusable wrapper types that implement the
// Encodable/Decodable contracts by composing the inner value's contract.
// They are the sanctioned home for cross-cutting wire conventions that do not
// belong in the framework core.
package codec

import (
	"strings"
	"unicode"

	codable "github.com/codablekit/codable"
)

// Trimmed is a string field that strips surrounding whitespace on decode. The
// stored value goes on the wire verbatim.
type Trimmed struct {
	Value string
}

func (t Trimmed) EncodeValue(enc *codable.Encoder) error {
	return enc.SingleValue().EncodeString(t.Value)
}

func (t *Trimmed) DecodeValue(dec *codable.Decoder) error {
	s, err := dec.SingleValue().DecodeString()
	if err != nil {
		return err
	}
	t.Value = strings.TrimSpace(s)
	return nil
}

// Capitalized is a string field whose first rune is upper-cased on decode.
type Capitalized struct {
	Value string
}

func (c Capitalized) EncodeValue(enc *codable.Encoder) error {
	return enc.SingleValue().EncodeString(c.Value)
}

func (c *Capitalized) DecodeValue(dec *codable.Decoder) error {
	s, err := dec.SingleValue().DecodeString()
	if err != nil {
		return err
	}
	r := []rune(s)
	if len(r) > 0 {
		r[0] = unicode.ToUpper(r[0])
	}
	c.Value = string(r)
	return nil
}
