// Package redirect decides whether a post-login redirect target is safe to
// honor. Only same-origin relative paths or URLs under the trusted base are
// ever returned; everything else silently falls back to the base, so an
// open-redirect attempt is indistinguishable from a plain login.
package redirect

import "strings"

// Resolve maps a requested redirect target onto the trusted base URL.
func Resolve(requested, trustedBase string) string {
	base := strings.TrimRight(trustedBase, "/")

	if requested == "" {
		return base
	}

	if strings.HasPrefix(requested, "/") {
		// Protocol-relative URLs (//evil.test) would escape the origin.
		if strings.HasPrefix(requested, "//") {
			return base
		}
		return base + requested
	}

	if requested == base || strings.HasPrefix(requested, base+"/") ||
		strings.HasPrefix(requested, base+"?") || strings.HasPrefix(requested, base+"#") {
		return requested
	}

	return base
}
