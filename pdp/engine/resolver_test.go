package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusweb/mediagate/model"
)

func TestResolveSite_RootSite(t *testing.T) {
	site := ResolveSite("/files/01/image.jpg", "www.example.edu", nil)

	assert.True(t, site.IsRootSite)
	assert.Equal(t, "www.example.edu", site.Domain)
	assert.Equal(t, "", site.SiteName)
	assert.Equal(t, "www.example.edu", site.SiteKey())
}

func TestResolveSite_NamedSite(t *testing.T) {
	site := ResolveSite("/somesite/files/01/image.jpg", "www.example.edu", nil)

	assert.False(t, site.IsRootSite)
	assert.Equal(t, "somesite", site.SiteName)
	assert.Equal(t, "www.example.edu/somesite", site.SiteKey())
}

func TestResolveSite_ForwardedHostFirstToken(t *testing.T) {
	site := ResolveSite("/files/a.jpg", "www.example.edu, proxy.internal", nil)
	assert.Equal(t, "www.example.edu", site.Domain)

	site = ResolveSite("/files/a.jpg", "", nil)
	assert.Equal(t, "", site.Domain)
}

func TestResolveSite_ExplicitGroup(t *testing.T) {
	site := ResolveSite("/somesite/files/__restricted/somegroup/image.jpg", "www.example.edu", nil)

	assert.Equal(t, "somegroup", site.ExplicitGroup)
	assert.Equal(t, "somegroup", site.Group())
}

func TestResolveSite_TrailingRestrictedMarkerHasNoGroup(t *testing.T) {
	site := ResolveSite("/somesite/files/__restricted", "www.example.edu", nil)

	assert.Equal(t, "", site.ExplicitGroup)
	assert.Equal(t, "", site.Group())
}

func TestResolveSite_SiteIndexDefaultGroup(t *testing.T) {
	index := model.SiteProtectionIndex{
		{SiteKey: "www.example.edu/somesite", Group: "sitegroup"},
	}

	site := ResolveSite("/somesite/files/01/image.jpg", "www.example.edu", index)
	assert.Equal(t, "sitegroup", site.DefaultGroup)
	assert.Equal(t, "sitegroup", site.Group())

	// A different site stays public.
	site = ResolveSite("/othersite/files/01/image.jpg", "www.example.edu", index)
	assert.Equal(t, "", site.Group())
}

func TestResolveSite_ExplicitGroupOverridesDefault(t *testing.T) {
	index := model.SiteProtectionIndex{
		{SiteKey: "www.example.edu/somesite", Group: "othergroup"},
	}

	site := ResolveSite("/somesite/files/__restricted/somegroup/image.jpg", "www.example.edu", index)

	assert.Equal(t, "othergroup", site.DefaultGroup)
	assert.Equal(t, "somegroup", site.Group(), "explicit path group governs")
}

func TestResolveSite_RootSiteDefaultGroupKeyedByDomain(t *testing.T) {
	index := model.SiteProtectionIndex{
		{SiteKey: "www.example.edu", Group: "rootgroup"},
	}

	site := ResolveSite("/files/01/image.jpg", "www.example.edu", index)
	assert.Equal(t, "rootgroup", site.Group())
}
