// test/mock/stores.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/campusweb/mediagate/model"
)

// MockRuleStore is a mock implementation of engine.RuleStore
type MockRuleStore struct {
	mock.Mock
}

func (m *MockRuleStore) GetRule(ctx context.Context, compositeKey string) (*model.AccessRule, error) {
	args := m.Called(ctx, compositeKey)
	if rule := args.Get(0); rule != nil {
		return rule.(*model.AccessRule), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRuleStore) GetSiteProtectionIndex(ctx context.Context) (model.SiteProtectionIndex, error) {
	args := m.Called(ctx)
	if index := args.Get(0); index != nil {
		return index.(model.SiteProtectionIndex), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRuleStore) GetNetworkRanges(ctx context.Context) (model.NetworkRangeTable, error) {
	args := m.Called(ctx)
	if table := args.Get(0); table != nil {
		return table.(model.NetworkRangeTable), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockObjectStore is a mock implementation of service.ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) GetObject(ctx context.Context, key string) (*model.StoredObject, error) {
	args := m.Called(ctx, key)
	if obj := args.Get(0); obj != nil {
		return obj.(*model.StoredObject), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockObjectStore) PutObject(ctx context.Context, key string, body []byte, contentType string, metadata map[string]string) error {
	args := m.Called(ctx, key, body, contentType, metadata)
	return args.Error(0)
}

// MockSizeTableReader is a mock implementation of service.SizeTableReader
type MockSizeTableReader struct {
	mock.Mock
}

func (m *MockSizeTableReader) GetSizeTable(ctx context.Context, domain, siteName string) (model.SizeTable, error) {
	args := m.Called(ctx, domain, siteName)
	if table := args.Get(0); table != nil {
		return table.(model.SizeTable), args.Error(1)
	}
	return nil, args.Error(1)
}
