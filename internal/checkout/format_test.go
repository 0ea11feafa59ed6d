package checkout

import "testing"

func TestFormatCardNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"4111111111111111", "4111 1111 1111 1111"},
		{"4111-1111-1111-1111", "4111 1111 1111 1111"},
		{"41111111111111112222", "4111 1111 1111 1111"},
		{"41111", "4111 1"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := FormatCardNumber(tc.in); got != tc.want {
			t.Fatalf("FormatCardNumber(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatCardExpiry(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"0928", "09/28"},
		{"09/28", "09/28"},
		{"092833", "09/28"},
		{"09", "09"},
		{"9", "9"},
	}
	for _, tc := range cases {
		if got := FormatCardExpiry(tc.in); got != tc.want {
			t.Fatalf("FormatCardExpiry(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatCardCvv(t *testing.T) {
	t.Parallel()

	if got := FormatCardCvv("12345"); got != "1234" {
		t.Fatalf("expected truncation to 4 digits, got %q", got)
	}
	if got := FormatCardCvv("12a"); got != "12" {
		t.Fatalf("expected digits only, got %q", got)
	}
}

func TestMasking(t *testing.T) {
	t.Parallel()

	if got := MaskCardNumber("4111 1111 1111 1111"); got != "**** **** **** 1111" {
		t.Fatalf("unexpected masked number: %q", got)
	}
	if got := MaskCardCvv("123"); got != "***" {
		t.Fatalf("unexpected masked cvv: %q", got)
	}
}
