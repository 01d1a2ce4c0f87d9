package codable_test

import (
	"testing"
	"time"

	codable "github.com/codablekit/codable"
)

type stamp struct{ At time.Time }

func (s stamp) EncodeValue(enc *codable.Encoder) error {
	return enc.SingleValue().EncodeTime(s.At)
}

func (s *stamp) DecodeValue(dec *codable.Decoder) error {
	t, err := dec.SingleValue().DecodeTime()
	if err != nil {
		return err
	}
	s.At = t
	return nil
}

func TestDates_ISO8601RoundTrip(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 30, 45, 500000000, time.UTC)
	v, err := codable.Encode(stamp{At: at}, codable.EncodeOptions{Dates: codable.DateISO8601})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	s, err := v.AsString()
	if err != nil {
		t.Fatalf("expected string wire form: %v", err)
	}
	if s != "2024-03-01T12:30:45.5Z" {
		t.Fatalf("unexpected wire form %q", s)
	}

	var back stamp
	if err := codable.Decode(v, &back, codable.DecodeOptions{Dates: codable.DateISO8601}); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !back.At.Equal(at) {
		t.Fatalf("round trip drift: %v vs %v", back.At, at)
	}
}

func TestDates_EpochSecondsRoundTrip(t *testing.T) {
	at := time.Unix(1709296245, 0).UTC()
	v, err := codable.Encode(stamp{At: at}, codable.EncodeOptions{Dates: codable.DateEpochSeconds})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if _, err := v.AsNumber(); err != nil {
		t.Fatalf("expected numeric wire form: %v", err)
	}

	var back stamp
	if err := codable.Decode(v, &back, codable.DecodeOptions{Dates: codable.DateEpochSeconds}); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !back.At.Equal(at) {
		t.Fatalf("round trip drift: %v vs %v", back.At, at)
	}
}

func TestDates_EpochMillis(t *testing.T) {
	at := time.UnixMilli(1709296245123).UTC()
	v, err := codable.Encode(stamp{At: at}, codable.EncodeOptions{Dates: codable.DateEpochMillis})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	var back stamp
	if err := codable.Decode(v, &back, codable.DecodeOptions{Dates: codable.DateEpochMillis}); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !back.At.Equal(at) {
		t.Fatalf("round trip drift: %v vs %v", back.At, at)
	}
}

func TestDates_CustomLayout(t *testing.T) {
	const layout = "2006-01-02"
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	v, err := codable.Encode(stamp{At: at}, codable.EncodeOptions{
		Dates: codable.DateCustomLayout, DateLayout: layout,
	})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if s, _ := v.AsString(); s != "2024-03-01" {
		t.Fatalf("unexpected wire form %q", s)
	}
	var back stamp
	err = codable.Decode(v, &back, codable.DecodeOptions{
		Dates: codable.DateCustomLayout, DateLayout: layout,
	})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !back.At.Equal(at) {
		t.Fatalf("round trip drift: %v vs %v", back.At, at)
	}
}

func TestDates_StrategyMismatchIsDataCorrupted(t *testing.T) {
	var back stamp
	// a numeric payload under the string-only ISO strategy
	err := codable.Decode(codable.Int(1709296245), &back,
		codable.DecodeOptions{Dates: codable.DateISO8601})
	if !codable.HasCode(err, codable.CodeDataCorrupted) {
		t.Fatalf("expected data_corrupted, got: %v", err)
	}

	err = codable.Decode(codable.String("not-a-date"), &back,
		codable.DecodeOptions{Dates: codable.DateISO8601})
	if !codable.HasCode(err, codable.CodeDataCorrupted) {
		t.Fatalf("expected data_corrupted, got: %v", err)
	}
}

func TestDates_DefaultProbesStringThenNumber(t *testing.T) {
	var back stamp
	if err := codable.Decode(codable.String("2024-03-01T12:30:45Z"), &back); err != nil {
		t.Fatalf("default strategy must accept ISO strings: %v", err)
	}
	if back.At.Year() != 2024 {
		t.Fatalf("unexpected time %v", back.At)
	}

	if err := codable.Decode(codable.Int(1709296245), &back); err != nil {
		t.Fatalf("default strategy must accept epoch seconds: %v", err)
	}
	if !back.At.Equal(time.Unix(1709296245, 0)) {
		t.Fatalf("unexpected time %v", back.At)
	}

	err := codable.Decode(codable.Bool(true), &back)
	if !codable.HasCode(err, codable.CodeDataCorrupted) {
		t.Fatalf("expected data_corrupted for unusable payload, got: %v", err)
	}
}

func TestDates_NullIsValueNotFound(t *testing.T) {
	var back stamp
	err := codable.Decode(codable.Null(), &back)
	if !codable.HasCode(err, codable.CodeValueNotFound) {
		t.Fatalf("expected value_not_found, got: %v", err)
	}
}
