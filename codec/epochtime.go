package codec

import (
	"time"

	codable "github.com/codablekit/codable"
)

// EpochTime is a time field pinned to epoch-seconds on the wire regardless of
// the ambient DateStrategy. It demonstrates the wrapper pattern for types
// whose wire representation differs from their stored one (the
// store-Celsius-encode-Fahrenheit family): unit conversion stays in
// application wrappers, never in the framework core.
type EpochTime struct {
	Time time.Time
}

func (e EpochTime) EncodeValue(enc *codable.Encoder) error {
	return enc.SingleValue().EncodeInt(e.Time.Unix())
}

func (e *EpochTime) DecodeValue(dec *codable.Decoder) error {
	sec, err := dec.SingleValue().DecodeInt()
	if err != nil {
		return err
	}
	e.Time = time.Unix(sec, 0).UTC()
	return nil
}
