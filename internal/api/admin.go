package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tailtown/pricingservice/internal/domain"
	"github.com/tailtown/pricingservice/internal/service"
)

// AdminHandler serves the configuration management endpoints.
type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func ruleKindParam(r *http.Request) (domain.RuleKind, error) {
	kind := domain.RuleKind(chi.URLParam(r, "kind"))
	if kind != domain.RuleKindDeposit && kind != domain.RuleKindPricing {
		return "", domain.NewInvalidInputError("invalid rule kind", string(kind))
	}
	return kind, nil
}

// ListRules handles GET /admin/rules/{kind}.
func (h *AdminHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")
	kind, err := ruleKindParam(r)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	rules, err := h.admin.ListRules(r.Context(), tenant, kind)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	if rules == nil {
		rules = []domain.Rule{}
	}
	respondData(w, http.StatusOK, rules)
}

// UpsertRule handles PUT /admin/rules/{kind}.
func (h *AdminHandler) UpsertRule(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")
	kind, err := ruleKindParam(r)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	var rule domain.Rule
	if err := decodeJSON(r, &rule); err != nil {
		respondError(r.Context(), w, err)
		return
	}
	rule.TenantID = tenant
	rule.Kind = kind

	stored, err := h.admin.UpsertRule(r.Context(), rule)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondData(w, http.StatusOK, stored)
}

// DeleteRule handles DELETE /admin/rules/{kind}/{id}.
func (h *AdminHandler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")
	kind, err := ruleKindParam(r)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(r.Context(), w, domain.NewInvalidInputError("invalid rule id", chi.URLParam(r, "id")))
		return
	}

	if err := h.admin.DeleteRule(r.Context(), tenant, kind, id); err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"deleted": id.String()})
}

// GetDepositConfig handles GET /admin/deposit-config.
func (h *AdminHandler) GetDepositConfig(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")

	cfg, err := h.admin.GetDepositConfig(r.Context(), tenant)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondData(w, http.StatusOK, cfg)
}

// PutDepositConfig handles PUT /admin/deposit-config.
func (h *AdminHandler) PutDepositConfig(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")

	var cfg domain.DepositConfig
	if err := decodeJSON(r, &cfg); err != nil {
		respondError(r.Context(), w, err)
		return
	}
	cfg.TenantID = tenant

	if err := h.admin.PutDepositConfig(r.Context(), cfg); err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondData(w, http.StatusOK, cfg)
}

// ListCapacities handles GET /admin/capacities.
func (h *AdminHandler) ListCapacities(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")

	capacities, err := h.admin.ListCapacities(r.Context(), tenant)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	if capacities == nil {
		capacities = []domain.SuiteCapacity{}
	}
	respondData(w, http.StatusOK, capacities)
}

// UpsertCapacity handles PUT /admin/capacities/{suiteType}.
func (h *AdminHandler) UpsertCapacity(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")
	suiteType := chi.URLParam(r, "suiteType")

	var capacity domain.SuiteCapacity
	if err := decodeJSON(r, &capacity); err != nil {
		respondError(r.Context(), w, err)
		return
	}
	capacity.TenantID = tenant
	capacity.SuiteType = suiteType

	if err := h.admin.UpsertCapacity(r.Context(), capacity); err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondData(w, http.StatusOK, capacity)
}
