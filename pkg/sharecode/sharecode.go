// Package sharecode generates the short public codes users exchange to add
// each other as contacts.
package sharecode

import (
	"math/rand"
	"strings"
)

// Alphabet excludes visually ambiguous characters (I, O, 0, 1).
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Length of every generated code.
const Length = 6

// Generate returns a random code of Length characters drawn uniformly, with
// replacement, from Alphabet. Codes are discovery handles, not secrets, so
// math/rand is sufficient; uniqueness is the caller's concern.
func Generate() string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		b.WriteByte(Alphabet[rand.Intn(len(Alphabet))])
	}
	return b.String()
}

// Normalize prepares user-entered input for lookup: trimmed and uppercased,
// matching the generator's alphabet.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
