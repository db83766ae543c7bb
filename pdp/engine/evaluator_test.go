package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusweb/mediagate/model"
)

var evalRanges = model.NetworkRangeTable{
	"campus": {{Start: "128.197.0.0", End: "128.197.255.255"}},
}

func TestEvaluate_AnyOf(t *testing.T) {
	pe := NewPolicyEvaluator()
	rule := &model.AccessRule{
		Users:         []string{"user1"},
		Admins:        []string{"admin1"},
		Affiliations:  []string{"staff"},
		Entitlements:  []string{"lib:special"},
		NetworkRanges: []string{"campus"},
	}

	tests := []struct {
		name string
		ctx  model.RequestContext
		want bool
	}{
		{"user match", model.RequestContext{Principal: "user1"}, true},
		{"admin match", model.RequestContext{Principal: "admin1"}, true},
		{"affiliation match", model.RequestContext{Affiliation: "staff"}, true},
		{"entitlement match", model.RequestContext{Entitlements: []string{"other", "lib:special"}}, true},
		{"network match", model.RequestContext{ClientIP: "128.197.30.30"}, true},
		{"no signal", model.RequestContext{Principal: "stranger", ClientIP: "127.0.0.1"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pe.Evaluate(rule, tt.ctx, evalRanges))
		})
	}
}

func TestEvaluate_SatisfyAll(t *testing.T) {
	pe := NewPolicyEvaluator()
	rule := &model.AccessRule{
		Users:         []string{"user1"},
		NetworkRanges: []string{"campus"},
		SatisfyAll:    true,
	}

	tests := []struct {
		name string
		ctx  model.RequestContext
		want bool
	}{
		{"identity and network", model.RequestContext{Principal: "user1", ClientIP: "128.197.30.30"}, true},
		{"network only", model.RequestContext{ClientIP: "128.197.30.30"}, false},
		{"identity only", model.RequestContext{Principal: "user1", ClientIP: "127.0.0.1"}, false},
		{"neither", model.RequestContext{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pe.Evaluate(rule, tt.ctx, evalRanges))
		})
	}
}

func TestEvaluate_EmptyPrincipalNeverMatches(t *testing.T) {
	pe := NewPolicyEvaluator()

	// Even a rule that somehow lists an empty user must not admit an
	// anonymous or whitespace-only principal.
	rule := &model.AccessRule{Users: []string{"", "user1"}}

	assert.False(t, pe.Evaluate(rule, model.RequestContext{Principal: ""}, nil))
	assert.True(t, pe.Evaluate(rule, model.RequestContext{Principal: "user1"}, nil))
}

func TestEvaluate_EmptyAffiliationNeverMatches(t *testing.T) {
	pe := NewPolicyEvaluator()
	rule := &model.AccessRule{Affiliations: []string{""}}

	assert.False(t, pe.Evaluate(rule, model.RequestContext{}, nil))
}

func TestEvaluate_NoEntitlementIntersection(t *testing.T) {
	pe := NewPolicyEvaluator()
	rule := &model.AccessRule{Entitlements: []string{"lib:special"}}

	assert.False(t, pe.Evaluate(rule, model.RequestContext{Entitlements: []string{"lib:basic"}}, nil))
	assert.False(t, pe.Evaluate(rule, model.RequestContext{}, nil))
}

func TestEvaluate_SatisfyAllDefaultsToAnyOf(t *testing.T) {
	pe := NewPolicyEvaluator()

	// Zero-value SatisfyAll selects the OR combination.
	rule := &model.AccessRule{Users: []string{"user1"}}
	assert.True(t, pe.Evaluate(rule, model.RequestContext{Principal: "user1", ClientIP: "127.0.0.1"}, nil))
}
