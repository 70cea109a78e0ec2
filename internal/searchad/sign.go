package searchad

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Sign returns the request signature: base64(HMAC-SHA256(secret, "timestamp.METHOD.path")).
// path must not include the query string.
func Sign(secret, timestamp, method, path string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + "." + method + "." + path))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
