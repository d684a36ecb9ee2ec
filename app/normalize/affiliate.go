package normalize

import (
	"strings"
)

// RewriteURL appends the vendor's tracking parameter to rawURL. A URL that
// already carries a query string is returned unchanged so an existing
// parameter is never double-tagged or collided with. Pure and deterministic.
func RewriteURL(rawURL, param, value string) string {
	if param == "" || value == "" {
		return rawURL
	}
	if strings.Contains(rawURL, "?") {
		return rawURL
	}
	return rawURL + "?" + param + "=" + value
}
