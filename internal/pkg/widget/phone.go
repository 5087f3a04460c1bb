package widget

// SanitizePhone runs on every change of the phone input.
func SanitizePhone(raw string) string {
	return Digits(raw)
}
