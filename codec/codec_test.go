package codec_test

import (
	"testing"
	"time"

	codable "github.com/codablekit/codable"
	"github.com/codablekit/codable/codec"
)

func TestTrimmed(t *testing.T) {
	var v codec.Trimmed
	if err := codable.DecodeJSON([]byte(`"  padded \t"`), &v); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if v.Value != "padded" {
		t.Fatalf("got %q", v.Value)
	}

	out, err := codable.EncodeJSON(codec.Trimmed{Value: "as-is "})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if string(out) != `"as-is "` {
		t.Fatalf("encode must not trim, got %s", out)
	}
}

func TestCapitalized(t *testing.T) {
	var v codec.Capitalized
	if err := codable.DecodeJSON([]byte(`"übung"`), &v); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if v.Value != "Übung" {
		t.Fatalf("got %q", v.Value)
	}

	if err := codable.DecodeJSON([]byte(`""`), &v); err != nil {
		t.Fatalf("empty string must decode: %v", err)
	}
	if v.Value != "" {
		t.Fatalf("got %q", v.Value)
	}
}

func TestClamped(t *testing.T) {
	v := codec.Clamped[int]{Min: 0, Max: 10}
	if err := codable.DecodeJSON([]byte(`42`), &v); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if v.Value != 10 {
		t.Fatalf("expected clamp to 10, got %d", v.Value)
	}

	v = codec.Clamped[int]{Min: 0, Max: 10}
	if err := codable.DecodeJSON([]byte(`-3`), &v); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if v.Value != 0 {
		t.Fatalf("expected clamp to 0, got %d", v.Value)
	}

	f := codec.Clamped[float64]{Min: -1, Max: 1, Value: 0.5}
	out, err := codable.EncodeJSON(f)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if string(out) != "0.5" {
		t.Fatalf("got %s", out)
	}
}

func TestEpochTime_IgnoresAmbientStrategy(t *testing.T) {
	at := time.Unix(1709296245, 0).UTC()
	out, err := codable.EncodeJSON(codec.EpochTime{Time: at},
		codable.EncodeOptions{Dates: codable.DateISO8601})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if string(out) != "1709296245" {
		t.Fatalf("wire form must stay epoch seconds, got %s", out)
	}

	var back codec.EpochTime
	err = codable.DecodeJSON(out, &back, codable.DecodeOptions{Dates: codable.DateISO8601})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !back.Time.Equal(at) {
		t.Fatalf("round trip drift: %v vs %v", back.Time, at)
	}
}
