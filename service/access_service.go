// service/access_service.go
package service

import (
	"context"

	"github.com/campusweb/mediagate/model"
	"github.com/campusweb/mediagate/pdp/engine"
	pdp_model "github.com/campusweb/mediagate/pdp/model"
	"github.com/campusweb/mediagate/util"
)

// Event topics published by the services.
const (
	TopicAccessDecision = "access.decision"
	TopicAssetDerived   = "asset.derived"
)

// AccessDecisionEvent is the payload published for every authorization
// decision.
type AccessDecisionEvent struct {
	Principal string             `json:"principal"`
	ClientIP  string             `json:"client_ip"`
	Path      string             `json:"path"`
	Decision  pdp_model.Decision `json:"decision"`
}

// AssetDerivedEvent is the payload published when a new derived asset is
// rendered and persisted.
type AssetDerivedEvent struct {
	Domain      string `json:"domain"`
	Path        string `json:"path"`
	DerivedKey  string `json:"derived_key"`
	OriginalKey string `json:"original_key"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Crop        string `json:"crop,omitempty"`
}

type IAccessService interface {
	Authorize(ctx context.Context, reqCtx model.RequestContext) pdp_model.Decision
}

// AccessService fronts the access controller and publishes each decision
// for the audit trail.
type AccessService struct {
	controller *engine.AccessController
	eventBus   *util.EventBus
}

var _ IAccessService = (*AccessService)(nil)

func NewAccessService(controller *engine.AccessController, eventBus *util.EventBus) *AccessService {
	return &AccessService{controller: controller, eventBus: eventBus}
}

func (s *AccessService) Authorize(ctx context.Context, reqCtx model.RequestContext) pdp_model.Decision {
	decision := s.controller.Authorize(ctx, reqCtx)

	s.eventBus.Publish(ctx, TopicAccessDecision, AccessDecisionEvent{
		Principal: reqCtx.Principal,
		ClientIP:  reqCtx.ClientIP,
		Path:      reqCtx.Path,
		Decision:  decision,
	})

	return decision
}
