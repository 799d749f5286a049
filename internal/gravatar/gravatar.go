// Package gravatar derives avatar image URLs from email addresses.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// URL returns the avatar URL for an email address: size in pixels, rated pg,
// with an identicon fallback when the address has no gravatar.
func URL(email string, size int) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%d&r=pg&d=mm", hex.EncodeToString(sum[:]), size)
}
