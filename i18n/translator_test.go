package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("malstructured_data", nil); msg == "malstructured_data" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("malstructured_data", nil); msg == "malstructured data" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_DuplicateIDCarriesID(t *testing.T) {
	if msg := T("duplicate_id", map[string]string{"id": "http://e.com/a"}); msg != "duplicate @id http://e.com/a" {
		t.Fatalf("unexpected message %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator_NilRestoresDefault(t *testing.T) {
	SetTranslator(upper{})
	if msg := T("bad_value", nil); msg != "X:bad_value" {
		t.Fatalf("expected custom translator, got %q", msg)
	}
	SetTranslator(nil)
	if msg := T("bad_value", nil); msg != "bad value" {
		t.Fatalf("expected default translator, got %q", msg)
	}
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected code echo, got %q", msg)
	}
}
