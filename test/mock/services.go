// test/mock/services.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/campusweb/mediagate/model"
	pdp_model "github.com/campusweb/mediagate/pdp/model"
)

// MockAccessService is a mock implementation of service.IAccessService
type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) Authorize(ctx context.Context, reqCtx model.RequestContext) pdp_model.Decision {
	args := m.Called(ctx, reqCtx)
	return args.Get(0).(pdp_model.Decision)
}

// MockAssetService is a mock implementation of service.IAssetService
type MockAssetService struct {
	mock.Mock
}

func (m *MockAssetService) GetOrCreate(ctx context.Context, reqCtx model.RequestContext, site pdp_model.SiteContext) (*model.StoredObject, error) {
	args := m.Called(ctx, reqCtx, site)
	if obj := args.Get(0); obj != nil {
		return obj.(*model.StoredObject), args.Error(1)
	}
	return nil, args.Error(1)
}
