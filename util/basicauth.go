package util

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeAuthHeader builds the HTTP Basic Authorization header value for
// the given client id and secret.
func EncodeAuthHeader(id, secret string) string {
	raw := id + ":" + secret
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

// DecodeAuthHeader parses an HTTP Basic Authorization header value and
// returns the decoded client id and secret. It fails on a missing,
// malformed, or non-Basic header.
func DecodeAuthHeader(header string) (id, secret string, err error) {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", fmt.Errorf("util: not a Basic authorization header")
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, prefix))
	if err != nil {
		return "", "", fmt.Errorf("util: malformed Basic credentials: %w", err)
	}
	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("util: malformed Basic credentials")
	}
	return parts[0], parts[1], nil
}
