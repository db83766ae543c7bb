// model/access.go
package model

// AccessRule is the per-group protection rule as stored in the rule store.
// A missing satisfy_all field decodes to false, which selects ANY-of
// combination between the identity and network conditions.
type AccessRule struct {
	Users         []string `json:"users"`
	Admins        []string `json:"admins"`
	Affiliations  []string `json:"affiliations"`
	Entitlements  []string `json:"entitlements"`
	NetworkRanges []string `json:"ranges"`
	SatisfyAll    bool     `json:"satisfy_all"`
}

// SiteProtectionEntry maps a site key (domain or domain/sitePath) to the
// default protection group for that site.
type SiteProtectionEntry struct {
	SiteKey string `json:"site_key"`
	Group   string `json:"group"`
}

// SiteProtectionIndex is the whole-site protection table, loaded wholesale
// from the rule store and cached process-wide.
type SiteProtectionIndex []SiteProtectionEntry

// DefaultGroup returns the default group for an exact site key match, or ""
// when the site carries no whole-site protection.
func (idx SiteProtectionIndex) DefaultGroup(siteKey string) string {
	for _, entry := range idx {
		if entry.SiteKey == siteKey {
			return entry.Group
		}
	}
	return ""
}

// NetworkRange is a single inclusive IPv4 interval.
type NetworkRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// NetworkRangeTable maps a range name to its intervals.
type NetworkRangeTable map[string][]NetworkRange

// RequestContext carries the identity and addressing signals for one request,
// populated once at ingress from the trusted upstream headers.
type RequestContext struct {
	Path          string
	ForwardedHost string
	Eppn          string
	Principal     string // unscoped eppn (local part), trimmed
	Affiliation   string
	Entitlements  []string
	ClientIP      string
	CropParam     string // explicit resize-position query parameter, if any
}

// HasIdentity reports whether any authentication evidence arrived with the
// request. It distinguishes a 401 from a 403; it plays no part in the
// allow/deny decision itself.
func (rc RequestContext) HasIdentity() bool {
	return rc.Eppn != ""
}
