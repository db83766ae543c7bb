// middleware/identity.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusweb/mediagate/model"
)

// Headers injected by the upstream shibboleth layer. They are trusted as-is;
// authentication itself happens before requests reach this service.
const (
	HeaderForwardedHost = "X-Forwarded-Host"
	HeaderEppn          = "Eppn"
	HeaderAffiliation   = "Primary-Affiliation"
	HeaderEntitlement   = "Entitlement"
	HeaderForwardedIP   = "X-Ip-Forwarded-For"
)

const requestContextKey = "requestContext"

// RequestContext populates the typed request context from the identity
// headers once at ingress, so downstream code never reads headers with ad
// hoc defaults.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		eppn := c.GetHeader(HeaderEppn)

		rc := model.RequestContext{
			Path:          c.Request.URL.Path,
			ForwardedHost: c.GetHeader(HeaderForwardedHost),
			Eppn:          eppn,
			Principal:     unscopedPrincipal(eppn),
			Affiliation:   c.GetHeader(HeaderAffiliation),
			Entitlements:  parseEntitlements(c.Request.Header.Values(HeaderEntitlement)),
			ClientIP:      clientIP(c),
			CropParam:     c.Query("resize-position"),
		}

		c.Set(requestContextKey, rc)
		c.Next()
	}
}

// FromContext returns the request context populated by RequestContext.
func FromContext(c *gin.Context) model.RequestContext {
	if rc, exists := c.Get(requestContextKey); exists {
		return rc.(model.RequestContext)
	}
	return model.RequestContext{}
}

// unscopedPrincipal extracts the local part of the eppn. Whitespace-only
// local parts collapse to empty and therefore never match a rule.
func unscopedPrincipal(eppn string) string {
	local, _, _ := strings.Cut(eppn, "@")
	return strings.TrimSpace(local)
}

// parseEntitlements flattens repeated and semicolon-delimited entitlement
// header values into one list.
func parseEntitlements(values []string) []string {
	var entitlements []string
	for _, value := range values {
		for _, entry := range strings.Split(value, ";") {
			if entry = strings.TrimSpace(entry); entry != "" {
				entitlements = append(entitlements, entry)
			}
		}
	}
	return entitlements
}

// clientIP prefers the forwarded address injected upstream, first token
// when it carries a proxy chain.
func clientIP(c *gin.Context) string {
	forwarded := c.GetHeader(HeaderForwardedIP)
	if forwarded == "" {
		return c.ClientIP()
	}
	return strings.TrimSpace(strings.Split(forwarded, ",")[0])
}
