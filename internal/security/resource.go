package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// SignResource produces the HMAC the media host expects in transformation
// URLs. Parts are joined with ":" in the order the host canonicalizes them.
func SignResource(secret string, parts ...string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	payload := strings.Join(parts, ":")
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
