package auth

import (
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// ExtractBearerToken returns the token carried by an Authorization header
// value. The header must start with the literal "Bearer " prefix; anything
// after those seven characters is returned verbatim, so a header with two
// spaces yields a token with one leading space. Clients have come to depend
// on that pass-through, so it is pinned by tests rather than trimmed.
func ExtractBearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	return header[len(bearerPrefix):], true
}

// Authenticate extracts the bearer token from the request and verifies it,
// returning nil when the header is absent, malformed, or the token fails
// verification.
func (s *JWTService) Authenticate(r *http.Request) *Claims {
	token, ok := ExtractBearerToken(r.Header.Get("Authorization"))
	if !ok {
		return nil
	}
	return s.VerifyToken(token)
}
