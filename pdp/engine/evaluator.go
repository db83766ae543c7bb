package engine

import (
	"github.com/campusweb/mediagate/model"
)

// PolicyEvaluator combines the identity and network signals of a request
// against one access rule. It is pure: all inputs arrive as arguments.
type PolicyEvaluator struct{}

func NewPolicyEvaluator() *PolicyEvaluator {
	return &PolicyEvaluator{}
}

// Evaluate returns the allow/deny outcome for a rule. With satisfy_all the
// rule requires a network match and at least one identity signal; otherwise
// any single signal is sufficient.
func (pe *PolicyEvaluator) Evaluate(rule *model.AccessRule, reqCtx model.RequestContext, ranges model.NetworkRangeTable) bool {
	identityAllowed := pe.identityAllowed(rule, reqCtx)
	networkAllowed := ContainsIP(ranges, rule.NetworkRanges, reqCtx.ClientIP)

	if rule.SatisfyAll {
		return identityAllowed && networkAllowed
	}
	return identityAllowed || networkAllowed
}

func (pe *PolicyEvaluator) identityAllowed(rule *model.AccessRule, reqCtx model.RequestContext) bool {
	return pe.userAllowed(rule, reqCtx.Principal) ||
		pe.affiliationAllowed(rule, reqCtx.Affiliation) ||
		pe.entitlementAllowed(rule, reqCtx.Entitlements)
}

// userAllowed matches the unscoped principal against the rule's users and
// admins. An empty principal (absent, or a whitespace-only local part)
// never matches.
func (pe *PolicyEvaluator) userAllowed(rule *model.AccessRule, principal string) bool {
	if principal == "" {
		return false
	}
	for _, user := range rule.Users {
		if user == principal {
			return true
		}
	}
	for _, admin := range rule.Admins {
		if admin == principal {
			return true
		}
	}
	return false
}

func (pe *PolicyEvaluator) affiliationAllowed(rule *model.AccessRule, affiliation string) bool {
	if affiliation == "" {
		return false
	}
	for _, allowed := range rule.Affiliations {
		if allowed == affiliation {
			return true
		}
	}
	return false
}

func (pe *PolicyEvaluator) entitlementAllowed(rule *model.AccessRule, entitlements []string) bool {
	for _, required := range rule.Entitlements {
		for _, held := range entitlements {
			if required == held {
				return true
			}
		}
	}
	return false
}
