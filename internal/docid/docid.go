// Package docid normalizes travel document numbers for fuzzy comparison.
package docid

// Normalize lowercases s and strips every character outside [A-Za-z0-9].
// Passport numbers arrive as free text, so "AB-123", "ab 123" and "ab123"
// all normalize to "ab123".
func Normalize(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			out = append(out, c)
		case c >= 'A' && c <= 'Z':
			out = append(out, c+'a'-'A')
		}
	}
	return string(out)
}
