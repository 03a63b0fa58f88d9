package guidance

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/careerlens/internal/cache"
	"github.com/spigell/careerlens/internal/career"
	"github.com/spigell/careerlens/internal/normalize"
)

// Market returns demand, salary and outlook insights for a role. Successful
// results are cached per role and region.
func (s *Service) Market(ctx context.Context, req MarketRequest) career.MarketInsights {
	role := strings.TrimSpace(req.Role)
	region := regionOrDefault(req.Region)

	key := cache.Key(whereMarket, role, region)
	if hit, ok := cached[career.MarketInsights](s.cache, key); ok {
		s.logger.Debug("cache hit", zap.String("key", key))
		return hit
	}

	payload, degraded := s.ask(ctx, whereMarket, render(promptMarket, map[string]string{
		"ROLE":   role,
		"REGION": region,
	}))

	result := normalize.Market(payload, role, region)
	result.Degradation = degraded
	if !degraded.Degraded() {
		s.cache.Set(key, result, s.cfg.MarketTTL)
	}
	return result
}

// Compare contrasts two roles within a region. Successful results are cached.
func (s *Service) Compare(ctx context.Context, req CompareRequest) career.Comparison {
	roleA := strings.TrimSpace(req.RoleA)
	roleB := strings.TrimSpace(req.RoleB)
	region := regionOrDefault(req.Region)

	key := cache.Key(whereCompare, roleA, roleB, region)
	if hit, ok := cached[career.Comparison](s.cache, key); ok {
		s.logger.Debug("cache hit", zap.String("key", key))
		return hit
	}

	payload, degraded := s.ask(ctx, whereCompare, render(promptCompare, map[string]string{
		"ROLE_A": roleA,
		"ROLE_B": roleB,
		"REGION": region,
	}))

	result := normalize.Compare(payload, roleA, roleB)
	result.Degradation = degraded
	if !degraded.Degraded() {
		s.cache.Set(key, result, s.cfg.CompareTTL)
	}
	return result
}
