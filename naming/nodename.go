package naming

import "strings"

// SanitizeNodeName rewrites name in place so that it is accepted as a node
// name by the messaging layer. Every character other than an ASCII letter,
// digit or underscore becomes an underscore, and a name starting with a digit
// gets an underscore prefix. Sanitizing a sanitized name changes nothing.
func SanitizeNodeName(name *string) {
	if name == nil || *name == "" {
		return
	}

	var b strings.Builder
	b.Grow(len(*name) + 1)

	for i, r := range *name {
		if i == 0 && isDigit(r) {
			b.WriteByte('_')
		}

		if isDigit(r) || isLetter(r) || r == '_' {
			b.WriteRune(r)
			continue
		}

		b.WriteByte('_')
	}

	*name = b.String()
}

// SanitizedNodeName returns a sanitized copy of name.
func SanitizedNodeName(name string) string {
	SanitizeNodeName(&name)
	return name
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
