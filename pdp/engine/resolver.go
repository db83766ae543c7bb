package engine

import (
	"strings"

	"github.com/campusweb/mediagate/model"
	pdp_model "github.com/campusweb/mediagate/pdp/model"
)

const (
	// RootMarker is the path segment denoting the media root. When it is
	// the first segment the request targets the domain's root site.
	RootMarker = "files"

	// RestrictedMarker is the path segment that names an explicit
	// protection group in the segment that follows it.
	RestrictedMarker = "__restricted"
)

// ResolveSite classifies a request path against the site protection index.
// It is the single path classifier: authorization and size-table lookups
// both go through it.
func ResolveSite(path, forwardedHost string, index model.SiteProtectionIndex) pdp_model.SiteContext {
	site := pdp_model.SiteContext{
		Domain: domainFromForwardedHost(forwardedHost),
	}

	segments := splitPath(path)

	if len(segments) > 0 && segments[0] == RootMarker {
		site.IsRootSite = true
	} else if len(segments) > 0 {
		// The site name is the segment preceding the media root marker,
		// which sits first in the path for non-root sites.
		site.SiteName = segments[0]
	}

	site.DefaultGroup = index.DefaultGroup(site.SiteKey())

	for i, segment := range segments {
		if segment == RestrictedMarker && i+1 < len(segments) {
			site.ExplicitGroup = segments[i+1]
			break
		}
	}

	return site
}

func domainFromForwardedHost(forwardedHost string) string {
	if forwardedHost == "" {
		return ""
	}
	return strings.TrimSpace(strings.Split(forwardedHost, ",")[0])
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
