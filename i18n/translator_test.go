package i18n_test

import (
	"testing"

	"github.com/codablekit/codable/i18n"
)

func TestDictionaryLanguages(t *testing.T) {
	defer i18n.SetLanguage("en")

	if got := i18n.T("invalid_type", nil); got != "invalid type" {
		t.Fatalf("en: got %q", got)
	}
	i18n.SetLanguage("ja")
	if got := i18n.T("invalid_type", nil); got != "型が不正です" {
		t.Fatalf("ja: got %q", got)
	}
	// unknown languages fall back to en
	i18n.SetLanguage("xx")
	if got := i18n.T("key_not_found", nil); got != "required key missing" {
		t.Fatalf("fallback: got %q", got)
	}
	// unknown codes come back verbatim
	if got := i18n.T("no_such_code", nil); got != "no_such_code" {
		t.Fatalf("unknown code: got %q", got)
	}
}

type upperTranslator struct{}

func (upperTranslator) Message(code string, data map[string]string) string {
	return "[" + code + "]"
}

func TestCustomTranslator(t *testing.T) {
	i18n.SetTranslator(upperTranslator{})
	defer i18n.SetTranslator(nil)

	if got := i18n.T("truncated", nil); got != "[truncated]" {
		t.Fatalf("custom: got %q", got)
	}
	i18n.SetTranslator(nil)
	if got := i18n.T("truncated", nil); got != "truncated" {
		t.Fatalf("reset: got %q", got)
	}
}
