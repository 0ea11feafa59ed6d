package checkout

import "strings"

const (
	formattedCardNumberLen = 19
	formattedExpiryLen     = 5
	formattedCvvLen        = 4
)

// FormatCardNumber groups card digits in blocks of four separated by spaces,
// truncated to 16 digits. Non-digit input characters are dropped.
func FormatCardNumber(value string) string {
	digits := digitsOnly(value)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		if b.Len() >= formattedCardNumberLen {
			break
		}
	}
	return b.String()
}

// FormatCardExpiry inserts a slash after the month digits and truncates to
// MM/YY length.
func FormatCardExpiry(value string) string {
	digits := digitsOnly(value)
	if len(digits) <= 2 {
		return digits
	}
	formatted := digits[:2] + "/" + digits[2:]
	if len(formatted) > formattedExpiryLen {
		formatted = formatted[:formattedExpiryLen]
	}
	return formatted
}

// FormatCardCvv keeps at most four digits.
func FormatCardCvv(value string) string {
	digits := digitsOnly(value)
	if len(digits) > formattedCvvLen {
		return digits[:formattedCvvLen]
	}
	return digits
}

// MaskCardNumber hides all but the last four digits of a formatted number.
func MaskCardNumber(formatted string) string {
	digits := digitsOnly(formatted)
	if len(digits) <= 4 {
		return strings.Repeat("*", len(digits))
	}
	return "**** **** **** " + digits[len(digits)-4:]
}

// MaskCardCvv replaces every digit with an asterisk.
func MaskCardCvv(cvv string) string {
	return strings.Repeat("*", len(digitsOnly(cvv)))
}
