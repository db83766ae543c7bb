package engine

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	mg_errors "github.com/campusweb/mediagate/errors"
	logger "github.com/campusweb/mediagate/logging"
	"github.com/campusweb/mediagate/model"
	mock_store "github.com/campusweb/mediagate/test/mock"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	zap.ReplaceGlobals(logger.Log)
	os.Exit(m.Run())
}

const communityGroup = "entire-community"

func newController(store *mock_store.MockRuleStore) *AccessController {
	return NewAccessController(store, time.Minute, 6*time.Hour, communityGroup)
}

func TestAuthorize_PublicResource(t *testing.T) {
	store := new(mock_store.MockRuleStore)
	store.On("GetSiteProtectionIndex", mock.Anything).Return(model.SiteProtectionIndex{}, nil)

	ac := newController(store)
	decision := ac.Authorize(context.Background(), model.RequestContext{
		Path:          "/somesite/files/01/image.jpg",
		ForwardedHost: "www.example.edu",
	})

	assert.True(t, decision.Allowed)
	assert.True(t, decision.Public)
	store.AssertNotCalled(t, "GetRule", mock.Anything, mock.Anything)
}

func TestAuthorize_CommunityGroupSkipsRuleFetch(t *testing.T) {
	store := new(mock_store.MockRuleStore)
	store.On("GetSiteProtectionIndex", mock.Anything).Return(model.SiteProtectionIndex{}, nil)

	ac := newController(store)
	path := "/somesite/files/__restricted/entire-community/image.jpg"

	decision := ac.Authorize(context.Background(), model.RequestContext{
		Path:          path,
		ForwardedHost: "www.example.edu",
		Eppn:          "user1@example.edu",
		Principal:     "user1",
	})
	assert.True(t, decision.Allowed)
	assert.False(t, decision.Public)

	decision = ac.Authorize(context.Background(), model.RequestContext{
		Path:          path,
		ForwardedHost: "www.example.edu",
	})
	assert.False(t, decision.Allowed)

	store.AssertNotCalled(t, "GetRule", mock.Anything, mock.Anything)
}

func TestAuthorize_MissingRuleDenies(t *testing.T) {
	store := new(mock_store.MockRuleStore)
	store.On("GetSiteProtectionIndex", mock.Anything).Return(model.SiteProtectionIndex{}, nil)
	store.On("GetRule", mock.Anything, "www.example.edu/somesite#somegroup").
		Return(nil, mg_errors.ErrRuleNotFound)

	ac := newController(store)
	decision := ac.Authorize(context.Background(), model.RequestContext{
		Path:          "/somesite/files/__restricted/somegroup/image.jpg",
		ForwardedHost: "www.example.edu",
		Eppn:          "user1@example.edu",
		Principal:     "user1",
	})

	assert.False(t, decision.Allowed)
}

func TestAuthorize_StoreUnavailableDenies(t *testing.T) {
	store := new(mock_store.MockRuleStore)
	store.On("GetSiteProtectionIndex", mock.Anything).Return(model.SiteProtectionIndex{}, nil)
	store.On("GetRule", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: connection refused", mg_errors.ErrStoreUnavailable))

	ac := newController(store)
	decision := ac.Authorize(context.Background(), model.RequestContext{
		Path:          "/somesite/files/__restricted/somegroup/image.jpg",
		ForwardedHost: "www.example.edu",
		Principal:     "user1",
	})

	assert.False(t, decision.Allowed)
}

func TestAuthorize_SiteIndexUnavailableDenies(t *testing.T) {
	store := new(mock_store.MockRuleStore)
	store.On("GetSiteProtectionIndex", mock.Anything).
		Return(nil, fmt.Errorf("%w: connection refused", mg_errors.ErrStoreUnavailable))

	ac := newController(store)
	decision := ac.Authorize(context.Background(), model.RequestContext{
		Path:          "/somesite/files/01/image.jpg",
		ForwardedHost: "www.example.edu",
	})

	assert.False(t, decision.Allowed)
}

func TestAuthorize_ExplicitGroupGovernsOverSiteDefault(t *testing.T) {
	store := new(mock_store.MockRuleStore)
	store.On("GetSiteProtectionIndex", mock.Anything).Return(model.SiteProtectionIndex{
		{SiteKey: "www.example.edu/somesite", Group: "othergroup"},
	}, nil)
	// Only the explicit group's rule is consulted, and it admits the user
	// that othergroup's rule would deny.
	store.On("GetRule", mock.Anything, "www.example.edu/somesite#somegroup").
		Return(&model.AccessRule{Users: []string{"user1"}}, nil)

	ac := newController(store)
	decision := ac.Authorize(context.Background(), model.RequestContext{
		Path:          "/somesite/files/__restricted/somegroup/image.jpg",
		ForwardedHost: "www.example.edu",
		Eppn:          "user1@example.edu",
		Principal:     "user1",
	})

	assert.True(t, decision.Allowed)
	store.AssertNotCalled(t, "GetRule", mock.Anything, "www.example.edu/somesite#othergroup")
}

func TestAuthorize_SiteDefaultGroupApplies(t *testing.T) {
	store := new(mock_store.MockRuleStore)
	store.On("GetSiteProtectionIndex", mock.Anything).Return(model.SiteProtectionIndex{
		{SiteKey: "www.example.edu/somesite", Group: "sitegroup"},
	}, nil)
	store.On("GetRule", mock.Anything, "www.example.edu/somesite#sitegroup").
		Return(&model.AccessRule{Users: []string{"someone-else"}}, nil)

	ac := newController(store)
	decision := ac.Authorize(context.Background(), model.RequestContext{
		Path:          "/somesite/files/01/image.jpg",
		ForwardedHost: "www.example.edu",
		Eppn:          "user1@example.edu",
		Principal:     "user1",
	})

	assert.False(t, decision.Allowed, "path without markers still restricted by site default")
}

func TestAuthorize_NetworkRangeAllows(t *testing.T) {
	store := new(mock_store.MockRuleStore)
	store.On("GetSiteProtectionIndex", mock.Anything).Return(model.SiteProtectionIndex{}, nil)
	store.On("GetRule", mock.Anything, "www.example.edu/somesite#somegroup").
		Return(&model.AccessRule{NetworkRanges: []string{"campus"}}, nil)
	store.On("GetNetworkRanges", mock.Anything).Return(model.NetworkRangeTable{
		"campus": {{Start: "128.197.0.0", End: "128.197.255.255"}},
	}, nil)

	ac := newController(store)
	decision := ac.Authorize(context.Background(), model.RequestContext{
		Path:          "/somesite/files/__restricted/somegroup/image.jpg",
		ForwardedHost: "www.example.edu",
		ClientIP:      "128.197.30.30",
	})

	assert.True(t, decision.Allowed)
}

func TestAuthorize_RangesUnavailableDenies(t *testing.T) {
	store := new(mock_store.MockRuleStore)
	store.On("GetSiteProtectionIndex", mock.Anything).Return(model.SiteProtectionIndex{}, nil)
	store.On("GetRule", mock.Anything, mock.Anything).
		Return(&model.AccessRule{Users: []string{"user1"}, NetworkRanges: []string{"campus"}}, nil)
	store.On("GetNetworkRanges", mock.Anything).
		Return(nil, fmt.Errorf("%w: timeout", mg_errors.ErrStoreUnavailable))

	ac := newController(store)
	decision := ac.Authorize(context.Background(), model.RequestContext{
		Path:          "/somesite/files/__restricted/somegroup/image.jpg",
		ForwardedHost: "www.example.edu",
		Principal:     "user1",
	})

	assert.False(t, decision.Allowed, "a failing store never allows")
}

func TestAuthorize_SiteIndexServedFromCache(t *testing.T) {
	store := new(mock_store.MockRuleStore)
	store.On("GetSiteProtectionIndex", mock.Anything).Return(model.SiteProtectionIndex{}, nil).Once()

	ac := newController(store)
	reqCtx := model.RequestContext{
		Path:          "/somesite/files/01/image.jpg",
		ForwardedHost: "www.example.edu",
	}

	ac.Authorize(context.Background(), reqCtx)
	ac.Authorize(context.Background(), reqCtx)

	store.AssertExpectations(t)
	store.AssertNumberOfCalls(t, "GetSiteProtectionIndex", 1)
}
