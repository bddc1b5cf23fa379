package whois_tools

import (
	"strings"

	"golang.org/x/net/idna"
)

// NormalizeDomain converts a user-supplied domain into the canonical ASCII
// form used for WHOIS queries: surrounding whitespace and trailing dots are
// trimmed, the string is lowercased, a default TLD is appended when the input
// has no dot at all, and IDN labels are converted to Punycode
// (e.g. "пример.рф" -> "xn--e1afmkfd.xn--p1ai").
//
// If the IDN conversion fails the trimmed, lowercased string is used as-is;
// a bad label should not abort the whole check. The returned string may still
// be empty or dotless, which callers treat as an invalid domain.
func NormalizeDomain(domain, defaultTLD string) string {
	d := strings.ToLower(strings.Trim(strings.TrimSpace(domain), "."))
	if d == "" {
		return ""
	}

	if !strings.Contains(d, ".") && defaultTLD != "" {
		d = d + "." + strings.Trim(defaultTLD, ".")
	}

	if ascii, err := idna.ToASCII(d); err == nil && ascii != "" {
		d = ascii
	}

	return d
}

// IsCheckable reports whether a normalized domain can be queried at all:
// it must be non-empty and contain a zone separator.
func IsCheckable(normalized string) bool {
	return normalized != "" && strings.Contains(normalized, ".")
}
