package widget

import "testing"

func TestFormatCardNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"4111", "4111"},
		{"41111", "4111 1"},
		{"4111-1111-1111-1111", "4111 1111 1111 1111"},
		{"4111111111111111extra", "4111 1111 1111 1111"},
		{"41111111111111119999", "4111 1111 1111 1111"},
		{"abc", ""},
	}

	for _, tc := range tests {
		if got := FormatCardNumber(tc.in); got != tc.want {
			t.Errorf("FormatCardNumber(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestTypeCardKey_RejectsAfterSixteenDigits(t *testing.T) {
	v := ""
	for _, k := range "4111111111111111" {
		var ok bool
		v, ok = TypeCardKey(v, string(k))
		if !ok {
			t.Fatalf("keystroke %q rejected early at %q", k, v)
		}
	}
	if v != "4111 1111 1111 1111" {
		t.Fatalf("unexpected value %q", v)
	}

	next, ok := TypeCardKey(v, "2")
	if ok {
		t.Fatal("expected keystroke to be rejected")
	}
	if next != v {
		t.Fatalf("expected value unchanged, got %q", next)
	}
}

func TestCardDigitCountValid(t *testing.T) {
	tests := map[string]bool{
		"4111 1111 1111 1111": true,
		"4111-1111-1111-1":    true,
		"4111 1111 1111":      false,
		"":                    false,
		"4111111111111111111": false,
	}
	for in, want := range tests {
		if got := CardDigitCountValid(in); got != want {
			t.Errorf("CardDigitCountValid(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestClassifyCard(t *testing.T) {
	tests := map[string]CardNetwork{
		"4111":       NetworkVisa,
		"5500 0000":  NetworkMastercard,
		"2221 0000":  NetworkMastercard,
		"3782 8224":  NetworkUnknown,
		"":           NetworkUnknown,
		" 4111 1111": NetworkVisa,
	}
	for in, want := range tests {
		if got := ClassifyCard(in); got != want {
			t.Errorf("ClassifyCard(%q): expected %s, got %s", in, want, got)
		}
	}
}

func TestMaskCard(t *testing.T) {
	if got := MaskCard("4111 1111 1111 1234"); got != "**** 1234" {
		t.Fatalf("unexpected mask %q", got)
	}
}

func TestSanitizePhone(t *testing.T) {
	if got := SanitizePhone("+971 (50) 123-4567"); got != "971501234567" {
		t.Fatalf("unexpected phone %q", got)
	}
}
