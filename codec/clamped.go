package codec

import (
	codable "github.com/codablekit/codable"
)

// Real covers the numeric kinds a Clamped field can hold.
type Real interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Clamped is a numeric field constrained to [Min, Max]. Values outside the
// range are clamped on decode rather than rejected; the stored value goes on
// the wire unmodified.
type Clamped[N Real] struct {
	Min, Max N
	Value    N
}

func (c Clamped[N]) EncodeValue(enc *codable.Encoder) error {
	return enc.SingleValue().EncodeFloat(float64(c.Value))
}

func (c *Clamped[N]) DecodeValue(dec *codable.Decoder) error {
	f, err := dec.SingleValue().DecodeFloat()
	if err != nil {
		return err
	}
	v := N(f)
	if v < c.Min {
		v = c.Min
	}
	if v > c.Max {
		v = c.Max
	}
	c.Value = v
	return nil
}
