package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tailtown/pricingservice/internal/cache"
	"github.com/tailtown/pricingservice/internal/domain"
	"github.com/tailtown/pricingservice/internal/events"
	"github.com/tailtown/pricingservice/internal/log"
	"github.com/tailtown/pricingservice/internal/repository"
)

// AdminService manages tenant pricing configuration. All validation of
// rule sets, refund tiers and capacity bands happens here, on writes; the
// calculation path trusts stored configuration.
type AdminService struct {
	store     repository.Store
	cache     *cache.Cache // nil disables invalidation
	publisher events.Publisher
}

func NewAdminService(store repository.Store, c *cache.Cache, publisher events.Publisher) *AdminService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &AdminService{store: store, cache: c, publisher: publisher}
}

// ListRules returns a tenant's rules of one kind, including inactive ones.
func (s *AdminService) ListRules(ctx context.Context, tenantID string, kind domain.RuleKind) ([]domain.Rule, error) {
	return s.store.Rules().ListByTenant(ctx, tenantID, kind)
}

// UpsertRule validates and stores a rule, rejecting priority collisions
// with the tenant's existing rules of the same kind.
func (s *AdminService) UpsertRule(ctx context.Context, rule domain.Rule) (domain.Rule, error) {
	if err := rule.Validate(); err != nil {
		return domain.Rule{}, err
	}

	existing, err := s.store.Rules().ListByTenant(ctx, rule.TenantID, rule.Kind)
	if err != nil {
		return domain.Rule{}, err
	}
	combined := make([]domain.Rule, 0, len(existing)+1)
	for _, r := range existing {
		if r.ID != rule.ID {
			combined = append(combined, r)
		}
	}
	combined = append(combined, rule)
	if err := domain.ValidatePriorities(combined); err != nil {
		return domain.Rule{}, err
	}

	stored, err := s.store.Rules().Upsert(ctx, rule)
	if err != nil {
		return domain.Rule{}, err
	}

	s.invalidate(ctx, cache.RulesKey(stored.TenantID, string(stored.Kind)))
	s.emitConfigChanged(ctx, stored.TenantID, string(stored.Kind), "upsert", map[string]interface{}{
		"rule_id":   stored.ID.String(),
		"rule_name": stored.Name,
	})
	log.Info(ctx, "rule upserted",
		zap.String("rule_id", stored.ID.String()),
		zap.String("kind", string(stored.Kind)),
		zap.Int("priority", stored.Priority))
	return stored, nil
}

// DeleteRule removes a rule.
func (s *AdminService) DeleteRule(ctx context.Context, tenantID string, kind domain.RuleKind, id uuid.UUID) error {
	if err := s.store.Rules().Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.invalidate(ctx, cache.RulesKey(tenantID, string(kind)))
	s.emitConfigChanged(ctx, tenantID, string(kind), "delete", map[string]interface{}{
		"rule_id": id.String(),
	})
	return nil
}

// GetDepositConfig returns the tenant's deposit defaults.
func (s *AdminService) GetDepositConfig(ctx context.Context, tenantID string) (domain.DepositConfig, error) {
	return s.store.DepositConfigs().Get(ctx, tenantID)
}

// PutDepositConfig validates and stores the tenant's deposit defaults.
func (s *AdminService) PutDepositConfig(ctx context.Context, cfg domain.DepositConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := s.store.DepositConfigs().Put(ctx, cfg); err != nil {
		return err
	}
	s.invalidate(ctx, cache.DepositConfigKey(cfg.TenantID))
	s.emitConfigChanged(ctx, cfg.TenantID, "deposit_config", "put", map[string]interface{}{
		"refund_policy": string(cfg.RefundPolicy),
	})
	return nil
}

// ListCapacities returns all suite capacity records for a tenant.
func (s *AdminService) ListCapacities(ctx context.Context, tenantID string) ([]domain.SuiteCapacity, error) {
	return s.store.Capacities().ListByTenant(ctx, tenantID)
}

// UpsertCapacity validates and stores a suite capacity record.
func (s *AdminService) UpsertCapacity(ctx context.Context, capacity domain.SuiteCapacity) error {
	if err := capacity.Validate(); err != nil {
		return err
	}
	if err := s.store.Capacities().Upsert(ctx, capacity); err != nil {
		return err
	}
	s.invalidate(ctx, cache.CapacityKey(capacity.TenantID, capacity.SuiteType))
	s.emitConfigChanged(ctx, capacity.TenantID, "capacity", "upsert", map[string]interface{}{
		"suite_type": capacity.SuiteType,
	})
	return nil
}

func (s *AdminService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Warn(ctx, "cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (s *AdminService) emitConfigChanged(ctx context.Context, tenantID, kind, action string, payload map[string]interface{}) {
	if err := s.publisher.PublishConfigChanged(ctx, tenantID, kind, action, payload); err != nil {
		log.Warn(ctx, "config event publish failed",
			zap.String("kind", kind), zap.String("action", action), zap.Error(err))
	}
}
