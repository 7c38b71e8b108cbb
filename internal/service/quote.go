// Package service wires the pure calculators to storage, caching, metrics
// and event publishing.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/tailtown/pricingservice/internal/cache"
	"github.com/tailtown/pricingservice/internal/deposit"
	"github.com/tailtown/pricingservice/internal/domain"
	"github.com/tailtown/pricingservice/internal/events"
	"github.com/tailtown/pricingservice/internal/explain"
	"github.com/tailtown/pricingservice/internal/log"
	"github.com/tailtown/pricingservice/internal/metrics"
	"github.com/tailtown/pricingservice/internal/multipet"
	"github.com/tailtown/pricingservice/internal/pricing"
	"github.com/tailtown/pricingservice/internal/repository"
)

// QuoteService computes deposit, refund, multi-pet and dynamic pricing
// quotes. Quotes are ephemeral: nothing is persisted per call.
type QuoteService struct {
	store     repository.Store
	cache     *cache.Cache // nil disables caching
	publisher events.Publisher
}

func NewQuoteService(store repository.Store, c *cache.Cache, publisher events.Publisher) *QuoteService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &QuoteService{store: store, cache: c, publisher: publisher}
}

// DepositQuote computes the deposit owed for a booking.
func (s *QuoteService) DepositQuote(ctx context.Context, tenantID string, booking domain.BookingContext) (domain.DepositQuote, error) {
	rules, err := s.loadRules(ctx, tenantID, domain.RuleKindDeposit)
	if err != nil {
		return domain.DepositQuote{}, err
	}
	cfg, err := s.loadDepositConfig(ctx, tenantID)
	if err != nil {
		return domain.DepositQuote{}, err
	}

	quote := deposit.Calculate(rules, cfg, booking)
	metrics.RecordRuleMatch(string(domain.RuleKindDeposit), quote.MatchedRuleID != nil)
	metrics.RecordQuote("deposit", tenantID, quote.DepositAmount)
	s.emitQuote(ctx, tenantID, "deposit", quote.DepositAmount)
	return quote, nil
}

// RefundQuote computes the refund owed when a booking is cancelled,
// applying the tenant's refund policy to the deposit that was taken.
func (s *QuoteService) RefundQuote(ctx context.Context, tenantID string, depositAmount float64, start, cancel time.Time) (domain.RefundQuote, error) {
	cfg, err := s.loadDepositConfig(ctx, tenantID)
	if err != nil {
		return domain.RefundQuote{}, err
	}

	quote := deposit.CalculateRefund(depositAmount, cfg.RefundPolicy, cfg.RefundTiers, start, cancel)
	metrics.RecordQuote("refund", tenantID, quote.RefundAmount)
	s.emitQuote(ctx, tenantID, "refund", quote.RefundAmount)
	return quote, nil
}

// MultiPetQuote composes the price breakdown for boarding several pets in
// one suite type.
func (s *QuoteService) MultiPetQuote(ctx context.Context, tenantID, suiteType string, numberOfPets int) (domain.PricingQuote, error) {
	capacity, err := s.loadCapacity(ctx, tenantID, suiteType)
	if err != nil {
		return domain.PricingQuote{}, err
	}

	quote := multipet.Calculate(capacity, numberOfPets)
	metrics.RecordQuote("multi_pet", tenantID, quote.TotalPrice)
	s.emitQuote(ctx, tenantID, "multi_pet", quote.TotalPrice)
	return quote, nil
}

// PriceQuote evaluates the tenant's dynamic pricing rules against a
// booking and reports the derived adjustment amount, zero when no rule
// matches.
func (s *QuoteService) PriceQuote(ctx context.Context, tenantID string, booking domain.BookingContext) (domain.PriceQuote, error) {
	rules, err := s.loadRules(ctx, tenantID, domain.RuleKindPricing)
	if err != nil {
		return domain.PriceQuote{}, err
	}

	quote := domain.PriceQuote{BaseCost: booking.TotalCost}
	rule := pricing.Match(rules, booking)
	metrics.RecordRuleMatch(string(domain.RuleKindPricing), rule != nil)
	if rule != nil {
		quote.AmountType = rule.AmountType
		quote.Amount = pricing.CalculateAmount(booking.TotalCost, rule.AmountType, rule.Percentage, rule.FixedAmount)
		id := rule.ID
		quote.MatchedRuleID = &id
		quote.MatchedRuleName = rule.Name
		quote.Explanation = explain.Price(rule.AmountType, rule.Percentage, quote.Amount, rule.Name)
	} else {
		quote.Explanation = explain.Price("", 0, 0, "")
	}

	metrics.RecordQuote("price", tenantID, quote.Amount)
	s.emitQuote(ctx, tenantID, "price", quote.Amount)
	return quote, nil
}

func (s *QuoteService) loadRules(ctx context.Context, tenantID string, kind domain.RuleKind) ([]domain.Rule, error) {
	key := cache.RulesKey(tenantID, string(kind))
	if s.cache != nil {
		var rules []domain.Rule
		err := s.cache.Get(ctx, key, &rules)
		if err == nil {
			metrics.RecordConfigCacheHit()
			return rules, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Warn(ctx, "rule cache read failed", zap.Error(err))
		}
		metrics.RecordConfigCacheMiss()
	}

	rules, err := s.store.Rules().ListByTenant(ctx, tenantID, kind)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, rules)
	return rules, nil
}

// loadDepositConfig returns the zero-value config when the tenant has
// none: no rules match, the default derives a zero deposit, and the
// policy is treated as unknown.
func (s *QuoteService) loadDepositConfig(ctx context.Context, tenantID string) (domain.DepositConfig, error) {
	key := cache.DepositConfigKey(tenantID)
	if s.cache != nil {
		var cfg domain.DepositConfig
		err := s.cache.Get(ctx, key, &cfg)
		if err == nil {
			metrics.RecordConfigCacheHit()
			return cfg, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Warn(ctx, "deposit config cache read failed", zap.Error(err))
		}
		metrics.RecordConfigCacheMiss()
	}

	cfg, err := s.store.DepositConfigs().Get(ctx, tenantID)
	if err != nil {
		if de := domain.GetDomainError(err); de != nil && de.Code == domain.ErrCodeNotFound {
			return domain.DepositConfig{TenantID: tenantID}, nil
		}
		return domain.DepositConfig{}, err
	}
	s.cacheSet(ctx, key, cfg)
	return cfg, nil
}

func (s *QuoteService) loadCapacity(ctx context.Context, tenantID, suiteType string) (domain.SuiteCapacity, error) {
	key := cache.CapacityKey(tenantID, suiteType)
	if s.cache != nil {
		var capacity domain.SuiteCapacity
		err := s.cache.Get(ctx, key, &capacity)
		if err == nil {
			metrics.RecordConfigCacheHit()
			return capacity, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Warn(ctx, "capacity cache read failed", zap.Error(err))
		}
		metrics.RecordConfigCacheMiss()
	}

	capacity, err := s.store.Capacities().GetBySuiteType(ctx, tenantID, suiteType)
	if err != nil {
		return domain.SuiteCapacity{}, err
	}
	s.cacheSet(ctx, key, capacity)
	return capacity, nil
}

func (s *QuoteService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, cache.DefaultTTL); err != nil {
		log.Warn(ctx, "cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *QuoteService) emitQuote(ctx context.Context, tenantID, quoteType string, amount float64) {
	if err := s.publisher.PublishQuote(ctx, tenantID, quoteType, amount); err != nil {
		log.Warn(ctx, "quote event publish failed",
			zap.String("quote_type", quoteType), zap.Error(err))
	}
}
