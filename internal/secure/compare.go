// Package secure holds small security primitives shared across the server.
package secure

import "crypto/subtle"

// ConstantTimeEquals compares two strings in time independent of where they
// first differ. Use it for anything secret shaped: CSRF tokens, setup keys,
// impersonation tokens.
func ConstantTimeEquals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
