// dao/rule_dao.go
package dao

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	mg_errors "github.com/campusweb/mediagate/errors"
	logger "github.com/campusweb/mediagate/logging"
	"github.com/campusweb/mediagate/model"
)

const (
	ruleKeyPrefix    = "rule:"
	sizesKeyPrefix   = "sizes:"
	siteIndexKey     = "sites:protected"
	networkRangesKey = "param:network-ranges"
)

// RuleDAO reads the protection reference data: per-group access rules, the
// whole-site protection index, the network range parameter blob, and the
// per-site render size tables. All of it is owned and written upstream; this
// side only reads.
type RuleDAO struct {
	Client *redis.Client
}

func NewRuleDAO(client *redis.Client) *RuleDAO {
	return &RuleDAO{Client: client}
}

// GetRule fetches the access rule for a composite key (domain/site#group).
// A missing rule is a defined outcome, not a failure: callers map
// ErrRuleNotFound to a deny.
func (dao *RuleDAO) GetRule(ctx context.Context, compositeKey string) (*model.AccessRule, error) {
	val, err := dao.Client.Get(ctx, ruleKeyPrefix+compositeKey).Result()
	if err == redis.Nil {
		logger.Debug("No access rule for key", zap.String("compositeKey", compositeKey))
		return nil, mg_errors.ErrRuleNotFound
	} else if err != nil {
		logger.Error("Failed to fetch access rule", zap.String("compositeKey", compositeKey), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", mg_errors.ErrStoreUnavailable, err)
	}

	var rule model.AccessRule
	if err := json.Unmarshal([]byte(val), &rule); err != nil {
		return nil, fmt.Errorf("failed to unmarshal access rule %s: %w", compositeKey, err)
	}

	return &rule, nil
}

// GetSiteProtectionIndex fetches the whole-site protection table. An absent
// index means no site carries a whole-site default group.
func (dao *RuleDAO) GetSiteProtectionIndex(ctx context.Context) (model.SiteProtectionIndex, error) {
	val, err := dao.Client.Get(ctx, siteIndexKey).Result()
	if err == redis.Nil {
		return model.SiteProtectionIndex{}, nil
	} else if err != nil {
		logger.Error("Failed to fetch site protection index", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", mg_errors.ErrStoreUnavailable, err)
	}

	var index model.SiteProtectionIndex
	if err := json.Unmarshal([]byte(val), &index); err != nil {
		return nil, fmt.Errorf("failed to unmarshal site protection index: %w", err)
	}

	logger.Debug("Loaded site protection index", zap.Int("entries", len(index)))
	return index, nil
}

// GetNetworkRanges fetches the network range table, stored as a single JSON
// parameter blob.
func (dao *RuleDAO) GetNetworkRanges(ctx context.Context) (model.NetworkRangeTable, error) {
	val, err := dao.Client.Get(ctx, networkRangesKey).Result()
	if err == redis.Nil {
		return model.NetworkRangeTable{}, nil
	} else if err != nil {
		logger.Error("Failed to fetch network ranges", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", mg_errors.ErrStoreUnavailable, err)
	}

	var table model.NetworkRangeTable
	if err := json.Unmarshal([]byte(val), &table); err != nil {
		return nil, fmt.Errorf("failed to unmarshal network ranges: %w", err)
	}

	return table, nil
}

// GetSizeTable fetches the render size presets for one site. siteName is
// empty for root sites, whose table is keyed by domain alone.
func (dao *RuleDAO) GetSizeTable(ctx context.Context, domain, siteName string) (model.SizeTable, error) {
	key := sizesKeyPrefix + domain
	if siteName != "" {
		key += "/" + siteName
	}

	val, err := dao.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		logger.Error("Failed to fetch size table", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", mg_errors.ErrStoreUnavailable, err)
	}

	var table model.SizeTable
	if err := json.Unmarshal([]byte(val), &table); err != nil {
		return nil, fmt.Errorf("failed to unmarshal size table %s: %w", key, err)
	}

	return table, nil
}
