package gate

import (
	"net/http"
	"strings"

	"github.com/louisbranch/crmportal/internal/services/portal/platform/sessioncookie"
)

const bearerPrefix = "Bearer "

// ExtractToken returns the request access token. The access token cookie
// wins; otherwise the Authorization header is used with a literal "Bearer "
// prefix stripped when present. Blank values are reported as absent.
func ExtractToken(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	if token, ok := sessioncookie.Read(r); ok {
		return token, true
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return "", false
	}
	return token, true
}
