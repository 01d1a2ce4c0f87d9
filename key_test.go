package codable_test

import (
	"testing"

	codable "github.com/codablekit/codable"
)

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"userName":  "user_name",
		"fullName":  "full_name",
		"id":        "id",
		"HTMLBody":  "html_body",
		"a":         "a",
		"already_s": "already_s",
	}
	for in, want := range cases {
		if got := codable.ToSnakeCase(in); got != want {
			t.Fatalf("ToSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFromSnakeCase(t *testing.T) {
	cases := map[string]string{
		"user_name": "userName",
		"full_name": "fullName",
		"id":        "id",
		"_private":  "_private",
	}
	for in, want := range cases {
		if got := codable.FromSnakeCase(in); got != want {
			t.Fatalf("FromSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCatalog_RejectsDuplicateNames(t *testing.T) {
	_, err := codable.NewCatalog(codable.Key("id"), codable.Key("id"))
	if err == nil {
		t.Fatalf("expected data_corrupted for duplicate catalog name")
	}
	if !codable.HasCode(err, codable.CodeDataCorrupted) {
		t.Fatalf("expected data_corrupted code, got: %v", err)
	}
}

func TestCatalog_EmptyCatalogIsUnrestricted(t *testing.T) {
	var cat codable.Catalog
	if !cat.Contains("anything") {
		t.Fatalf("empty catalog must contain every name")
	}
}
