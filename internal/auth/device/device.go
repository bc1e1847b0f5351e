// Package device turns raw User-Agent strings into human-readable device
// names for the sign-in audit trail.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// ParseUserAgent renders a short "Browser on OS" display name. Unknown or
// empty agents degrade to a generic label rather than an error.
func ParseUserAgent(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "Unknown Device"
	}

	ua := useragent.New(raw)
	browser, _ := ua.Browser()
	os := ua.OS()

	if browser == "" {
		browser = "Unknown Browser"
	}
	if os == "" {
		os = "Unknown OS"
	}
	return browser + " on " + os
}
