package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	priceNoiseRe = regexp.MustCompile(`[^\d,.]`)
	nonDigitRe   = regexp.MustCompile(`\D`)
)

// ParsePrice converts localized price text to a float value.
//
// Currency symbols and whitespace are stripped, the locale decimal comma
// becomes a period, and the remainder is parsed as a decimal. Text that
// still fails to parse (e.g. "onbekend", or a thousands-separated value
// after the comma swap) yields nil — a recoverable condition; the caller
// keeps the raw text verbatim and never substitutes zero.
func ParsePrice(s string) *float64 {
	if s == "" {
		return nil
	}

	cleaned := priceNoiseRe.ReplaceAllString(s, "")
	if cleaned == "" {
		return nil
	}
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}

// stripLabel removes a leading label (e.g. "Merk:") from extracted text.
// Text without the label passes through trimmed.
func stripLabel(s, label string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, label) {
		return strings.TrimSpace(s[len(label):])
	}
	return s
}

// digitsOnly reduces an extracted value to its digits. EAN cells on real
// pages carry stray whitespace and annotations around the code.
func digitsOnly(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}

// normalizeSpace collapses runs of whitespace into single spaces. goquery's
// Text() preserves the source's newlines and indentation, which is noise in
// a spreadsheet cell.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
