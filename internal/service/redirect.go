package service

import (
	"net/url"
	"strings"
)

// ResolveRedirect decides where to send the browser after sign-in. Relative
// paths are joined onto trustedBase; absolute URLs pass through only when
// their origin matches trustedBase. Anything else, including unparseable
// input, falls back to trustedBase itself rather than failing the sign-in.
func ResolveRedirect(requested, trustedBase string) string {
	// "//host/path" is scheme-relative, not a path; it must not be joined
	// onto the base or the browser would leave the trusted origin
	if strings.HasPrefix(requested, "/") && !strings.HasPrefix(requested, "//") {
		return strings.TrimRight(trustedBase, "/") + requested
	}

	target, err := url.Parse(requested)
	if err != nil || !target.IsAbs() || target.Host == "" {
		return trustedBase
	}
	base, err := url.Parse(trustedBase)
	if err != nil {
		return trustedBase
	}

	if target.Scheme == base.Scheme && target.Host == base.Host {
		return requested
	}
	return trustedBase
}
