package engine

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	mg_errors "github.com/campusweb/mediagate/errors"
	logger "github.com/campusweb/mediagate/logging"
	"github.com/campusweb/mediagate/model"
	pdp_model "github.com/campusweb/mediagate/pdp/model"
)

// RuleStore is the read interface the controller needs from the rule DAO.
type RuleStore interface {
	GetRule(ctx context.Context, compositeKey string) (*model.AccessRule, error)
	GetSiteProtectionIndex(ctx context.Context) (model.SiteProtectionIndex, error)
	GetNetworkRanges(ctx context.Context) (model.NetworkRangeTable, error)
}

// AccessController resolves the site context for a request and produces the
// final allow/deny decision. It owns the two process-wide TTL caches: the
// site protection index and the network range table. Failures anywhere in
// the store path deny, never allow.
type AccessController struct {
	store          RuleStore
	evaluator      *PolicyEvaluator
	siteIndex      *TTLCache[model.SiteProtectionIndex]
	networkRanges  *TTLCache[model.NetworkRangeTable]
	communityGroup string
}

func NewAccessController(store RuleStore, siteIndexTTL, networkRangesTTL time.Duration, communityGroup string) *AccessController {
	return &AccessController{
		store:          store,
		evaluator:      NewPolicyEvaluator(),
		siteIndex:      NewTTLCache(siteIndexTTL, store.GetSiteProtectionIndex),
		networkRanges:  NewTTLCache(networkRangesTTL, store.GetNetworkRanges),
		communityGroup: communityGroup,
	}
}

// Authorize runs the decision state machine: public resources allow
// immediately; restricted ones require a rule fetched by composite key and
// an evaluation pass.
func (ac *AccessController) Authorize(ctx context.Context, reqCtx model.RequestContext) pdp_model.Decision {
	index, err := ac.siteIndex.GetOrRefresh(ctx)
	if err != nil {
		logger.Error("Failed to load site protection index", zap.Error(err))
		return pdp_model.Decision{Reason: pdp_model.ReasonStoreUnavailable}
	}

	site := ResolveSite(reqCtx.Path, reqCtx.ForwardedHost, index)
	group := site.Group()

	if group == "" {
		return pdp_model.Decision{Allowed: true, Public: true, Site: site, Reason: pdp_model.ReasonPublic}
	}

	// The entire-community group admits any authenticated principal. No
	// rule exists for it, so looking one up would be a guaranteed miss.
	if group == ac.communityGroup {
		if reqCtx.Principal != "" {
			return pdp_model.Decision{Allowed: true, Site: site, Reason: pdp_model.ReasonCommunity}
		}
		return pdp_model.Decision{Site: site, Reason: pdp_model.ReasonNoPrincipal}
	}

	rule, err := ac.store.GetRule(ctx, site.SiteKey()+"#"+group)
	if err != nil {
		if errors.Is(err, mg_errors.ErrRuleNotFound) {
			logger.Warn("Protection group has no rule",
				zap.String("siteKey", site.SiteKey()),
				zap.String("group", group))
			return pdp_model.Decision{Site: site, Reason: pdp_model.ReasonRuleNotFound}
		}
		logger.Error("Failed to fetch access rule", zap.String("group", group), zap.Error(err))
		return pdp_model.Decision{Site: site, Reason: pdp_model.ReasonStoreUnavailable}
	}

	ranges := model.NetworkRangeTable{}
	if len(rule.NetworkRanges) > 0 {
		ranges, err = ac.networkRanges.GetOrRefresh(ctx)
		if err != nil {
			logger.Error("Failed to load network ranges", zap.Error(err))
			return pdp_model.Decision{Site: site, Reason: pdp_model.ReasonStoreUnavailable}
		}
	}

	if ac.evaluator.Evaluate(rule, reqCtx, ranges) {
		return pdp_model.Decision{Allowed: true, Site: site, Reason: pdp_model.ReasonPolicyAllowed}
	}
	return pdp_model.Decision{Site: site, Reason: pdp_model.ReasonPolicyDenied}
}
