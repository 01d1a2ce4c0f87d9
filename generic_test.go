package codable_test

import (
	"testing"

	codable "github.com/codablekit/codable"
)

type inventory map[string]item

func (m inventory) EncodeValue(enc *codable.Encoder) error {
	return codable.EncodeStringMap(enc, map[string]item(m))
}

func TestStringMap_SortedKeysAndRawNames(t *testing.T) {
	m := inventory{
		"zeta":     {Name: "z", Price: 1},
		"alpha":    {Name: "a", Price: 2},
		"weird/~k": {Name: "w", Price: 3},
	}
	v, err := codable.Encode(m)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	members, err := v.AsObject()
	if err != nil {
		t.Fatalf("expected object: %v", err)
	}
	if len(members) != 3 || members[0].Name != "alpha" || members[1].Name != "weird/~k" || members[2].Name != "zeta" {
		t.Fatalf("keys must encode sorted and raw, got %v", members)
	}

	got, err := codable.DecodeStringMap[item](codable.NewDecoder(v))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(got) != 3 || got["weird/~k"].Name != "w" || got["alpha"].Price != 2 {
		t.Fatalf("mismatch: %+v", got)
	}
}

func TestStringMap_NestedErrorPath(t *testing.T) {
	v := codable.Object(
		codable.Member{Name: "ok", Value: codable.Object(
			codable.Member{Name: "name", Value: codable.String("x")},
			codable.Member{Name: "price", Value: codable.Float(1)},
		)},
		codable.Member{Name: "bad", Value: codable.String("not an item")},
	)
	_, err := codable.DecodeStringMap[item](codable.NewDecoder(v))
	if !codable.HasCode(err, codable.CodeTypeMismatch) {
		t.Fatalf("expected invalid_type, got: %v", err)
	}
	issues, _ := codable.AsIssues(err)
	if issues[0].Path != "/bad" {
		t.Fatalf("expected path /bad, got %q", issues[0].Path)
	}
}
