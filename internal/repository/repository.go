// Package repository defines the persistence interfaces for tenant pricing
// configuration. Implementations live in the postgres and memory
// subpackages.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/tailtown/pricingservice/internal/domain"
)

// RuleRepository persists deposit and dynamic pricing rules.
type RuleRepository interface {
	// ListByTenant returns all rules of a kind for a tenant, including
	// inactive ones; the matcher filters.
	ListByTenant(ctx context.Context, tenantID string, kind domain.RuleKind) ([]domain.Rule, error)

	// Upsert creates or replaces a rule and returns the stored record.
	Upsert(ctx context.Context, rule domain.Rule) (domain.Rule, error)

	// Delete removes a rule.
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
}

// DepositConfigRepository persists the per-tenant deposit defaults.
type DepositConfigRepository interface {
	// Get returns the tenant's deposit config, or a NOT_FOUND domain
	// error when the tenant has none.
	Get(ctx context.Context, tenantID string) (domain.DepositConfig, error)

	// Put creates or replaces the tenant's deposit config.
	Put(ctx context.Context, cfg domain.DepositConfig) error
}

// CapacityRepository persists per-suite-type pricing configuration.
type CapacityRepository interface {
	// GetBySuiteType returns one capacity record, or a NOT_FOUND domain
	// error.
	GetBySuiteType(ctx context.Context, tenantID, suiteType string) (domain.SuiteCapacity, error)

	// ListByTenant returns all capacity records for a tenant.
	ListByTenant(ctx context.Context, tenantID string) ([]domain.SuiteCapacity, error)

	// Upsert creates or replaces a capacity record.
	Upsert(ctx context.Context, capacity domain.SuiteCapacity) error
}

// Store bundles the repositories behind one connection lifecycle.
type Store interface {
	Rules() RuleRepository
	DepositConfigs() DepositConfigRepository
	Capacities() CapacityRepository
	Close() error
}
