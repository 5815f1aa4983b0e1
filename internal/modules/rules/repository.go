package rules

import (
	"context"
	"errors"

	"github.com/printops/scheduler/internal/store"
)

// Repository defines read/write access to the rule catalogs. A dataset
// that has never been saved reads as an empty rule set: an operator who
// has not configured a rule set simply has no rules, not an error.
type Repository interface {
	HubRules(ctx context.Context) ([]HubRule, error)
	ImposingRules(ctx context.Context) ([]ImposingRule, error)
	PreflightRules(ctx context.Context) ([]PreflightRule, error)
	FinishingRules(ctx context.Context) (FinishingRuleSet, error)

	SaveHubRules(ctx context.Context, ruleList []HubRule) error
	SaveImposingRules(ctx context.Context, ruleList []ImposingRule) error
	SavePreflightRules(ctx context.Context, ruleList []PreflightRule) error
	SaveFinishingRules(ctx context.Context, set FinishingRuleSet) error
}

type storeRepo struct{ kv store.Store }

// NewRepository builds a Repository over the dataset store.
func NewRepository(kv store.Store) Repository { return &storeRepo{kv: kv} }

func (r *storeRepo) HubRules(ctx context.Context) ([]HubRule, error) {
	var doc struct {
		Rules []HubRule `json:"rules"`
	}
	if err := r.kv.Load(ctx, store.DatasetHubRules, &doc); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return doc.Rules, nil
}

func (r *storeRepo) ImposingRules(ctx context.Context) ([]ImposingRule, error) {
	var ruleList []ImposingRule
	if err := r.kv.Load(ctx, store.DatasetImposingRules, &ruleList); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ruleList, nil
}

func (r *storeRepo) PreflightRules(ctx context.Context) ([]PreflightRule, error) {
	var ruleList []PreflightRule
	if err := r.kv.Load(ctx, store.DatasetPreflightRules, &ruleList); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ruleList, nil
}

func (r *storeRepo) FinishingRules(ctx context.Context) (FinishingRuleSet, error) {
	var set FinishingRuleSet
	if err := r.kv.Load(ctx, store.DatasetFinishingRules, &set); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return FinishingRuleSet{}, nil
		}
		return FinishingRuleSet{}, err
	}
	return set, nil
}

func (r *storeRepo) SaveHubRules(ctx context.Context, ruleList []HubRule) error {
	doc := struct {
		Rules []HubRule `json:"rules"`
	}{Rules: ruleList}
	return r.kv.Save(ctx, store.DatasetHubRules, doc)
}

func (r *storeRepo) SaveImposingRules(ctx context.Context, ruleList []ImposingRule) error {
	return r.kv.Save(ctx, store.DatasetImposingRules, ruleList)
}

func (r *storeRepo) SavePreflightRules(ctx context.Context, ruleList []PreflightRule) error {
	return r.kv.Save(ctx, store.DatasetPreflightRules, ruleList)
}

func (r *storeRepo) SaveFinishingRules(ctx context.Context, set FinishingRuleSet) error {
	return r.kv.Save(ctx, store.DatasetFinishingRules, set)
}
