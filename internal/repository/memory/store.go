// Package memory provides an in-memory Store used in tests and local
// development.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tailtown/pricingservice/internal/domain"
	"github.com/tailtown/pricingservice/internal/repository"
)

// Store is an in-memory implementation of repository.Store.
type Store struct {
	mu         sync.RWMutex
	rules      map[uuid.UUID]domain.Rule
	ruleOrder  []uuid.UUID // maintain insertion order
	configs    map[string]domain.DepositConfig
	capacities map[string]domain.SuiteCapacity // key: tenant + "/" + suite type
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		rules:      make(map[uuid.UUID]domain.Rule),
		configs:    make(map[string]domain.DepositConfig),
		capacities: make(map[string]domain.SuiteCapacity),
	}
}

func (s *Store) Rules() repository.RuleRepository { return (*ruleRepo)(s) }

func (s *Store) DepositConfigs() repository.DepositConfigRepository { return (*configRepo)(s) }

func (s *Store) Capacities() repository.CapacityRepository { return (*capacityRepo)(s) }

func (s *Store) Close() error { return nil }

type ruleRepo Store

func (r *ruleRepo) ListByTenant(ctx context.Context, tenantID string, kind domain.RuleKind) ([]domain.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Rule
	for _, id := range r.ruleOrder {
		rule, ok := r.rules[id]
		if ok && rule.TenantID == tenantID && rule.Kind == kind {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *ruleRepo) Upsert(ctx context.Context, rule domain.Rule) (domain.Rule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	if _, exists := r.rules[rule.ID]; !exists {
		r.ruleOrder = append(r.ruleOrder, rule.ID)
		rule.CreatedAt = time.Now()
	}
	rule.UpdatedAt = time.Now()
	r.rules[rule.ID] = rule
	return rule, nil
}

func (r *ruleRepo) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rule, ok := r.rules[id]
	if !ok || rule.TenantID != tenantID {
		return domain.NewNotFoundError("rule", id.String())
	}
	for i, orderID := range r.ruleOrder {
		if orderID == id {
			r.ruleOrder = append(r.ruleOrder[:i], r.ruleOrder[i+1:]...)
			break
		}
	}
	delete(r.rules, id)
	return nil
}

type configRepo Store

func (r *configRepo) Get(ctx context.Context, tenantID string) (domain.DepositConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[tenantID]
	if !ok {
		return domain.DepositConfig{}, domain.NewNotFoundError("deposit config", tenantID)
	}
	return cfg, nil
}

func (r *configRepo) Put(ctx context.Context, cfg domain.DepositConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg.UpdatedAt = time.Now()
	r.configs[cfg.TenantID] = cfg
	return nil
}

type capacityRepo Store

func capacityKey(tenantID, suiteType string) string { return tenantID + "/" + suiteType }

func (r *capacityRepo) GetBySuiteType(ctx context.Context, tenantID, suiteType string) (domain.SuiteCapacity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	capacity, ok := r.capacities[capacityKey(tenantID, suiteType)]
	if !ok {
		return domain.SuiteCapacity{}, domain.NewNotFoundError("suite capacity", suiteType)
	}
	return capacity, nil
}

func (r *capacityRepo) ListByTenant(ctx context.Context, tenantID string) ([]domain.SuiteCapacity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.SuiteCapacity
	for _, capacity := range r.capacities {
		if capacity.TenantID == tenantID {
			out = append(out, capacity)
		}
	}
	return out, nil
}

func (r *capacityRepo) Upsert(ctx context.Context, capacity domain.SuiteCapacity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	capacity.UpdatedAt = time.Now()
	r.capacities[capacityKey(capacity.TenantID, capacity.SuiteType)] = capacity
	return nil
}
