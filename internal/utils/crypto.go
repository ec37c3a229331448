// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"
)

// tx_ref alphabet: uppercase letters and digits without 0, so references
// stay unambiguous when read aloud or typed.
const txRefCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ123456789"

const TxRefLength = 12

func randomFromCharset(charset string, length int) (string, error) {
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}
	return string(b), nil
}

// GenerateTxRef returns a candidate transaction reference. Uniqueness is
// the caller's problem: check against existing orders and retry.
func GenerateTxRef() (string, error) {
	return randomFromCharset(txRefCharset, TxRefLength)
}

// GenerateSlugSuffix returns a short lowercase suffix used to
// disambiguate colliding slugs.
func GenerateSlugSuffix() (string, error) {
	return randomFromCharset("abcdefghijklmnopqrstuvwxyz0123456789", 4)
}

// Slugify derives a URL-safe identifier from a human-readable name:
// lowercase, non-alphanumerics collapsed into single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
