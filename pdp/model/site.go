package model

// SiteContext is the result of classifying a request path against the site
// protection index.
type SiteContext struct {
	Domain        string `json:"domain"`
	SiteName      string `json:"site_name,omitempty"`
	IsRootSite    bool   `json:"is_root_site"`
	DefaultGroup  string `json:"default_group,omitempty"`
	ExplicitGroup string `json:"explicit_group,omitempty"`
}

// SiteKey is the identifier the protection index and size tables are keyed
// by: the domain alone for a root site, domain/siteName otherwise.
func (s SiteContext) SiteKey() string {
	if s.IsRootSite || s.SiteName == "" {
		return s.Domain
	}
	return s.Domain + "/" + s.SiteName
}

// Group returns the protection group governing this request. An explicit
// group named in the path overrides the site's default group; no group at
// all means the resource is public.
func (s SiteContext) Group() string {
	if s.ExplicitGroup != "" {
		return s.ExplicitGroup
	}
	return s.DefaultGroup
}
