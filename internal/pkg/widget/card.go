// Package widget holds the input formatting rules of the booking form controls.
// Every function is a pure value-in/value-out transformation.
package widget

import "strings"

const (
	// CardMaxDigits is where the card input stops accepting keystrokes.
	CardMaxDigits = 16
	// CardMinDigits is the shortest card number accepted on submit.
	CardMinDigits = 13

	cardGroupSize = 4
)

// CardNetwork is only used for the badge shown next to the card input.
type CardNetwork string

const (
	NetworkVisa       CardNetwork = "visa"
	NetworkMastercard CardNetwork = "mastercard"
	NetworkUnknown    CardNetwork = "unknown"
)

// Digits strips everything but ASCII digits.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCardNumber regroups the digits of raw into blocks of four, keeping at most 16 digits.
// "4111111111111111extra" becomes "4111 1111 1111 1111".
func FormatCardNumber(raw string) string {
	digits := Digits(raw)
	if len(digits) > CardMaxDigits {
		digits = digits[:CardMaxDigits]
	}

	var b strings.Builder
	for i := 0; i < len(digits); i++ {
		if i > 0 && i%cardGroupSize == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(digits[i])
	}
	return b.String()
}

// TypeCardKey applies one keystroke to the formatted value. Once 16 digits are present
// further input is rejected and the current value is returned unchanged with ok=false.
func TypeCardKey(current, key string) (string, bool) {
	if len(Digits(current)) >= CardMaxDigits && Digits(key) != "" {
		return FormatCardNumber(current), false
	}
	return FormatCardNumber(current + key), true
}

// CardDigitCountValid reports whether the number has 13 to 16 digits after stripping separators.
func CardDigitCountValid(number string) bool {
	n := len(Digits(number))
	return n >= CardMinDigits && n <= CardMaxDigits
}

// ClassifyCard picks the display badge from the leading digit.
func ClassifyCard(number string) CardNetwork {
	digits := Digits(number)
	if digits == "" {
		return NetworkUnknown
	}
	switch digits[0] {
	case '4':
		return NetworkVisa
	case '5', '2':
		return NetworkMastercard
	default:
		return NetworkUnknown
	}
}

// MaskCard keeps the last four digits.
func MaskCard(number string) string {
	digits := Digits(number)
	if len(digits) <= 4 {
		return digits
	}
	return "**** " + digits[len(digits)-4:]
}
