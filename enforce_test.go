package codable_test

import (
	"strings"
	"testing"

	codable "github.com/codablekit/codable"
)

func TestParse_MaxDepthExceeded(t *testing.T) {
	deep := strings.Repeat("[", 40) + strings.Repeat("]", 40)
	_, err := codable.ParseJSON([]byte(deep), codable.DecodeOptions{MaxDepth: 8})
	if !codable.HasCode(err, codable.CodeDataCorrupted) {
		t.Fatalf("expected data_corrupted for depth overflow, got: %v", err)
	}
	issues, _ := codable.AsIssues(err)
	if !strings.Contains(issues[0].Message, "max depth") {
		t.Fatalf("unexpected message %q", issues[0].Message)
	}

	// within the limit the same shape parses
	if _, err := codable.ParseJSON([]byte(deep), codable.DecodeOptions{MaxDepth: 64}); err != nil {
		t.Fatalf("parse within limit failed: %v", err)
	}
}

func TestParse_DuplicateKeyStrictness(t *testing.T) {
	data := []byte(`{"a":1,"a":2}`)

	// default: last value wins, no error
	v, err := codable.ParseJSON(data)
	if err != nil {
		t.Fatalf("lenient parse failed: %v", err)
	}
	got, ok := v.Member("a")
	if !ok {
		t.Fatalf("key a missing")
	}
	if n, _ := got.AsNumber(); n.String() != "2" {
		t.Fatalf("last write must win, got %s", n)
	}

	// strict: the duplicate is an error with its pointer path
	_, err = codable.ParseJSON(data, codable.DecodeOptions{
		Strictness: codable.Strictness{OnDuplicateKey: codable.Error},
	})
	if !codable.HasCode(err, codable.CodeDuplicateKey) {
		t.Fatalf("expected duplicate_key, got: %v", err)
	}
	issues, _ := codable.AsIssues(err)
	if issues[0].Path != "/a" {
		t.Fatalf("expected path /a, got %q", issues[0].Path)
	}
}

func TestParse_DuplicateKeyWarnReportsViaSink(t *testing.T) {
	data := []byte(`{"a":1,"b":{"c":1,"c":2},"a":3}`)

	var warned codable.Issues
	v, err := codable.ParseJSON(data, codable.DecodeOptions{
		Strictness:  codable.Strictness{OnDuplicateKey: codable.Warn},
		WarningSink: func(is codable.Issue) { warned = append(warned, is) },
	})
	if err != nil {
		t.Fatalf("warn severity must not fail the parse: %v", err)
	}
	if got, _ := v.Member("a"); !got.Equal(codable.Int(3)) {
		t.Fatalf("last write must still win, got %v", got)
	}
	if len(warned) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(warned), warned)
	}
	if warned[0].Code != codable.CodeDuplicateKey || warned[0].Path != "/b/c" {
		t.Fatalf("unexpected first warning %+v", warned[0])
	}
	if warned[1].Path != "/a" {
		t.Fatalf("unexpected second warning %+v", warned[1])
	}
}

func TestParse_MaxBytes(t *testing.T) {
	big := []byte(`{"k":"` + strings.Repeat("x", 1024) + `"}`)
	_, err := codable.ParseJSON(big, codable.DecodeOptions{MaxBytes: 64})
	if !codable.HasCode(err, codable.CodeTruncated) {
		t.Fatalf("expected truncated, got: %v", err)
	}
}

func TestDetectJSONDuplicateKeys(t *testing.T) {
	data := []byte(`{"a":1,"b":{"c":1,"c":2},"a":3}`)
	issues, err := codable.DetectJSONDuplicateKeys(data, codable.Strictness{OnDuplicateKey: codable.Warn}, 10)
	if err != nil {
		t.Fatalf("detection failed: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 duplicates, got %d: %v", len(issues), issues)
	}
	paths := []string{issues[0].Path, issues[1].Path}
	if paths[0] != "/b/c" || paths[1] != "/a" {
		t.Fatalf("unexpected duplicate paths %v", paths)
	}

	clean, err := codable.DetectJSONDuplicateKeys([]byte(`{"a":1,"b":2}`), codable.Strictness{OnDuplicateKey: codable.Warn}, 10)
	if err != nil || len(clean) != 0 {
		t.Fatalf("clean input must report nothing, got %v / %v", clean, err)
	}
}
