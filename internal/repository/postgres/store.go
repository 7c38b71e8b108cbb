package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tailtown/pricingservice/internal/domain"
	"github.com/tailtown/pricingservice/internal/metrics"
	"github.com/tailtown/pricingservice/internal/repository"
)

// Store represents the PostgreSQL store implementation
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new PostgreSQL store
func NewStore(connString string) (*Store, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: pool}, nil
}

// NewStoreWithPool creates a new PostgreSQL store with an existing pool
func NewStoreWithPool(pool *pgxpool.Pool) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("database pool cannot be nil")
	}
	return &Store{db: pool}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// Rules returns the rule repository implementation
func (s *Store) Rules() repository.RuleRepository {
	return &ruleRepository{store: s}
}

// DepositConfigs returns the deposit config repository implementation
func (s *Store) DepositConfigs() repository.DepositConfigRepository {
	return &depositConfigRepository{store: s}
}

// Capacities returns the capacity repository implementation
func (s *Store) Capacities() repository.CapacityRepository {
	return &capacityRepository{store: s}
}

// ruleRepository implements repository.RuleRepository
type ruleRepository struct {
	store *Store
}

// ListByTenant retrieves all rules of a kind for a tenant, ordered by
// priority.
func (r *ruleRepository) ListByTenant(ctx context.Context, tenantID string, kind domain.RuleKind) ([]domain.Rule, error) {
	defer observe("list_rules", time.Now())

	rows, err := r.store.db.Query(ctx, `
		SELECT id, tenant_id, kind, name, priority, active,
		       valid_from, valid_until, conditions,
		       amount_type, percentage, fixed_amount,
		       created_at, updated_at
		FROM pricing_rules
		WHERE tenant_id = $1 AND kind = $2
		ORDER BY priority`,
		tenantID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}
	return rules, nil
}

// Upsert creates or replaces a rule
func (r *ruleRepository) Upsert(ctx context.Context, rule domain.Rule) (domain.Rule, error) {
	defer observe("upsert_rule", time.Now())

	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	conditions, err := json.Marshal(rule.Conditions)
	if err != nil {
		return domain.Rule{}, fmt.Errorf("failed to marshal conditions: %w", err)
	}

	row := r.store.db.QueryRow(ctx, `
		INSERT INTO pricing_rules
			(id, tenant_id, kind, name, priority, active,
			 valid_from, valid_until, conditions,
			 amount_type, percentage, fixed_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			priority = EXCLUDED.priority,
			active = EXCLUDED.active,
			valid_from = EXCLUDED.valid_from,
			valid_until = EXCLUDED.valid_until,
			conditions = EXCLUDED.conditions,
			amount_type = EXCLUDED.amount_type,
			percentage = EXCLUDED.percentage,
			fixed_amount = EXCLUDED.fixed_amount,
			updated_at = now()
		RETURNING id, tenant_id, kind, name, priority, active,
		          valid_from, valid_until, conditions,
		          amount_type, percentage, fixed_amount,
		          created_at, updated_at`,
		rule.ID, rule.TenantID, string(rule.Kind), rule.Name, rule.Priority, rule.Active,
		rule.ValidFrom, rule.ValidUntil, conditions,
		string(rule.AmountType), rule.Percentage, rule.FixedAmount)

	stored, err := scanRule(row)
	if err != nil {
		return domain.Rule{}, fmt.Errorf("failed to upsert rule: %w", err)
	}
	return stored, nil
}

// Delete removes a rule
func (r *ruleRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	defer observe("delete_rule", time.Now())

	tag, err := r.store.db.Exec(ctx,
		`DELETE FROM pricing_rules WHERE tenant_id = $1 AND id = $2`,
		tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("rule", id.String())
	}
	return nil
}

// depositConfigRepository implements repository.DepositConfigRepository
type depositConfigRepository struct {
	store *Store
}

// Get retrieves the tenant's deposit config
func (r *depositConfigRepository) Get(ctx context.Context, tenantID string) (domain.DepositConfig, error) {
	defer observe("get_deposit_config", time.Now())

	var (
		cfg       domain.DepositConfig
		amountTyp string
		policy    string
		tiersRaw  []byte
	)
	err := r.store.db.QueryRow(ctx, `
		SELECT tenant_id, default_amount_type, default_percentage,
		       default_fixed_amount, refund_policy, refund_tiers, updated_at
		FROM deposit_configs
		WHERE tenant_id = $1`,
		tenantID).Scan(&cfg.TenantID, &amountTyp, &cfg.DefaultPercentage,
		&cfg.DefaultFixedAmount, &policy, &tiersRaw, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DepositConfig{}, domain.NewNotFoundError("deposit config", tenantID)
		}
		return domain.DepositConfig{}, fmt.Errorf("failed to get deposit config: %w", err)
	}

	cfg.DefaultAmountType = domain.AmountType(amountTyp)
	cfg.RefundPolicy = domain.RefundPolicy(policy)
	if err := json.Unmarshal(tiersRaw, &cfg.RefundTiers); err != nil {
		return domain.DepositConfig{}, fmt.Errorf("failed to unmarshal refund tiers: %w", err)
	}
	return cfg, nil
}

// Put creates or replaces the tenant's deposit config
func (r *depositConfigRepository) Put(ctx context.Context, cfg domain.DepositConfig) error {
	defer observe("put_deposit_config", time.Now())

	tiers, err := json.Marshal(cfg.RefundTiers)
	if err != nil {
		return fmt.Errorf("failed to marshal refund tiers: %w", err)
	}
	if cfg.RefundTiers == nil {
		tiers = []byte("[]")
	}

	_, err = r.store.db.Exec(ctx, `
		INSERT INTO deposit_configs
			(tenant_id, default_amount_type, default_percentage,
			 default_fixed_amount, refund_policy, refund_tiers, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (tenant_id) DO UPDATE SET
			default_amount_type = EXCLUDED.default_amount_type,
			default_percentage = EXCLUDED.default_percentage,
			default_fixed_amount = EXCLUDED.default_fixed_amount,
			refund_policy = EXCLUDED.refund_policy,
			refund_tiers = EXCLUDED.refund_tiers,
			updated_at = now()`,
		cfg.TenantID, string(cfg.DefaultAmountType), cfg.DefaultPercentage,
		cfg.DefaultFixedAmount, string(cfg.RefundPolicy), tiers)
	if err != nil {
		return fmt.Errorf("failed to put deposit config: %w", err)
	}
	return nil
}

// capacityRepository implements repository.CapacityRepository
type capacityRepository struct {
	store *Store
}

// GetBySuiteType retrieves one capacity record
func (r *capacityRepository) GetBySuiteType(ctx context.Context, tenantID, suiteType string) (domain.SuiteCapacity, error) {
	defer observe("get_capacity", time.Now())

	row := r.store.db.QueryRow(ctx, `
		SELECT tenant_id, suite_type, max_pets, base_price, pricing_type,
		       additional_pet_price, tiered_pricing, percentage_off, updated_at
		FROM suite_capacities
		WHERE tenant_id = $1 AND suite_type = $2`,
		tenantID, suiteType)

	capacity, err := scanCapacity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SuiteCapacity{}, domain.NewNotFoundError("suite capacity", suiteType)
		}
		return domain.SuiteCapacity{}, fmt.Errorf("failed to get capacity: %w", err)
	}
	return capacity, nil
}

// ListByTenant retrieves all capacity records for a tenant
func (r *capacityRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.SuiteCapacity, error) {
	defer observe("list_capacities", time.Now())

	rows, err := r.store.db.Query(ctx, `
		SELECT tenant_id, suite_type, max_pets, base_price, pricing_type,
		       additional_pet_price, tiered_pricing, percentage_off, updated_at
		FROM suite_capacities
		WHERE tenant_id = $1
		ORDER BY suite_type`,
		tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list capacities: %w", err)
	}
	defer rows.Close()

	var capacities []domain.SuiteCapacity
	for rows.Next() {
		capacity, err := scanCapacity(rows)
		if err != nil {
			return nil, err
		}
		capacities = append(capacities, capacity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read capacities: %w", err)
	}
	return capacities, nil
}

// Upsert creates or replaces a capacity record
func (r *capacityRepository) Upsert(ctx context.Context, capacity domain.SuiteCapacity) error {
	defer observe("upsert_capacity", time.Now())

	tiers, err := json.Marshal(capacity.TieredPricing)
	if err != nil {
		return fmt.Errorf("failed to marshal tiered pricing: %w", err)
	}
	if capacity.TieredPricing == nil {
		tiers = []byte("[]")
	}

	_, err = r.store.db.Exec(ctx, `
		INSERT INTO suite_capacities
			(tenant_id, suite_type, max_pets, base_price, pricing_type,
			 additional_pet_price, tiered_pricing, percentage_off, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (tenant_id, suite_type) DO UPDATE SET
			max_pets = EXCLUDED.max_pets,
			base_price = EXCLUDED.base_price,
			pricing_type = EXCLUDED.pricing_type,
			additional_pet_price = EXCLUDED.additional_pet_price,
			tiered_pricing = EXCLUDED.tiered_pricing,
			percentage_off = EXCLUDED.percentage_off,
			updated_at = now()`,
		capacity.TenantID, capacity.SuiteType, capacity.MaxPets, capacity.BasePrice,
		string(capacity.PricingType), capacity.AdditionalPetPrice, tiers, capacity.PercentageOff)
	if err != nil {
		return fmt.Errorf("failed to upsert capacity: %w", err)
	}
	return nil
}

// scanRule converts a rule row to the domain model
func scanRule(row pgx.Row) (domain.Rule, error) {
	var (
		rule          domain.Rule
		kind          string
		amountTyp     string
		conditionsRaw []byte
	)
	err := row.Scan(&rule.ID, &rule.TenantID, &kind, &rule.Name, &rule.Priority, &rule.Active,
		&rule.ValidFrom, &rule.ValidUntil, &conditionsRaw,
		&amountTyp, &rule.Percentage, &rule.FixedAmount,
		&rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return domain.Rule{}, err
	}
	rule.Kind = domain.RuleKind(kind)
	rule.AmountType = domain.AmountType(amountTyp)
	if err := json.Unmarshal(conditionsRaw, &rule.Conditions); err != nil {
		return domain.Rule{}, fmt.Errorf("failed to unmarshal conditions: %w", err)
	}
	return rule, nil
}

// scanCapacity converts a capacity row to the domain model
func scanCapacity(row pgx.Row) (domain.SuiteCapacity, error) {
	var (
		capacity   domain.SuiteCapacity
		pricingTyp string
		tiersRaw   []byte
	)
	err := row.Scan(&capacity.TenantID, &capacity.SuiteType, &capacity.MaxPets,
		&capacity.BasePrice, &pricingTyp, &capacity.AdditionalPetPrice,
		&tiersRaw, &capacity.PercentageOff, &capacity.UpdatedAt)
	if err != nil {
		return domain.SuiteCapacity{}, err
	}
	capacity.PricingType = domain.PricingType(pricingTyp)
	if err := json.Unmarshal(tiersRaw, &capacity.TieredPricing); err != nil {
		return domain.SuiteCapacity{}, fmt.Errorf("failed to unmarshal tiered pricing: %w", err)
	}
	return capacity, nil
}

func observe(operation string, start time.Time) {
	metrics.RecordDatabaseQuery(operation, time.Since(start))
}
