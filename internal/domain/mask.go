package domain

import "strings"

// Display masks. '#' marks a digit slot.
const (
	TelephoneMask = "(##)####-####"
	CPFMask       = "###.###.###-##"
)

// ApplyMask formats the digits of value into mask. Non-digit input is dropped and
// literal mask characters are emitted only while digits remain. Digits beyond the
// mask are appended unformatted so nothing typed is lost.
func ApplyMask(value, mask string) string {
	digits := make([]rune, 0, len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) == 0 {
		return ""
	}

	var b strings.Builder
	i := 0
	for _, m := range mask {
		if i == len(digits) {
			break
		}
		if m == '#' {
			b.WriteRune(digits[i])
			i++
			continue
		}
		b.WriteRune(m)
	}
	b.WriteString(string(digits[i:]))
	return b.String()
}
