package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/printops/scheduler/internal/store"
)

// Repository defines read/write access to the reference-data catalogs.
// Reads return a fresh snapshot per call; there is no caching contract,
// so rule edits are visible to the next scheduling request.
type Repository interface {
	Products(ctx context.Context) (map[int]Product, error)
	ProductKeywords(ctx context.Context) ([]ProductKeywordEntry, error)
	Hubs(ctx context.Context) ([]Hub, error)
	PreflightProfiles(ctx context.Context) ([]PreflightProfile, error)
	ProductionGroups(ctx context.Context) ([]ProductionGroup, error)
	PostcodeOverrides(ctx context.Context) ([]PostcodeOverride, error)

	SaveProducts(ctx context.Context, products map[int]Product) error
	SaveProductKeywords(ctx context.Context, entries []ProductKeywordEntry) error
	SaveHubs(ctx context.Context, hubs []Hub) error
	SavePreflightProfiles(ctx context.Context, profiles []PreflightProfile) error
	SaveProductionGroups(ctx context.Context, groups []ProductionGroup) error
	SavePostcodeOverrides(ctx context.Context, overrides []PostcodeOverride) error
}

type storeRepo struct{ kv store.Store }

// NewRepository builds a Repository over the dataset store.
func NewRepository(kv store.Store) Repository { return &storeRepo{kv: kv} }

// Products loads the product catalog. The dataset is a JSON object keyed
// by stringified product id; keys are parsed once here and the load
// fails on an unparseable key rather than deferring coercion to lookup
// sites.
func (r *storeRepo) Products(ctx context.Context) (map[int]Product, error) {
	raw := map[string]Product{}
	if err := r.kv.Load(ctx, store.DatasetProducts, &raw); err != nil {
		return nil, err
	}
	products := make(map[int]Product, len(raw))
	for key, p := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("product catalog: invalid product id key %q: %w", key, err)
		}
		p.ID = id
		products[id] = p
	}
	return products, nil
}

func (r *storeRepo) ProductKeywords(ctx context.Context) ([]ProductKeywordEntry, error) {
	var entries []ProductKeywordEntry
	if err := r.kv.Load(ctx, store.DatasetProductKeywords, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *storeRepo) Hubs(ctx context.Context) ([]Hub, error) {
	var hubs []Hub
	if err := r.kv.Load(ctx, store.DatasetHubs, &hubs); err != nil {
		return nil, err
	}
	return hubs, nil
}

func (r *storeRepo) PreflightProfiles(ctx context.Context) ([]PreflightProfile, error) {
	var profiles []PreflightProfile
	if err := r.kv.Load(ctx, store.DatasetPreflightProfiles, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *storeRepo) ProductionGroups(ctx context.Context) ([]ProductionGroup, error) {
	var groups []ProductionGroup
	if err := r.kv.Load(ctx, store.DatasetProductionGroups, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *storeRepo) PostcodeOverrides(ctx context.Context) ([]PostcodeOverride, error) {
	var overrides []PostcodeOverride
	if err := r.kv.Load(ctx, store.DatasetPostcodeOverrides, &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}

func (r *storeRepo) SaveProducts(ctx context.Context, products map[int]Product) error {
	raw := make(map[string]Product, len(products))
	for id, p := range products {
		p.ID = id
		raw[strconv.Itoa(id)] = p
	}
	return r.kv.Save(ctx, store.DatasetProducts, raw)
}

func (r *storeRepo) SaveProductKeywords(ctx context.Context, entries []ProductKeywordEntry) error {
	return r.kv.Save(ctx, store.DatasetProductKeywords, entries)
}

func (r *storeRepo) SaveHubs(ctx context.Context, hubs []Hub) error {
	return r.kv.Save(ctx, store.DatasetHubs, hubs)
}

func (r *storeRepo) SavePreflightProfiles(ctx context.Context, profiles []PreflightProfile) error {
	return r.kv.Save(ctx, store.DatasetPreflightProfiles, profiles)
}

func (r *storeRepo) SaveProductionGroups(ctx context.Context, groups []ProductionGroup) error {
	return r.kv.Save(ctx, store.DatasetProductionGroups, groups)
}

func (r *storeRepo) SavePostcodeOverrides(ctx context.Context, overrides []PostcodeOverride) error {
	return r.kv.Save(ctx, store.DatasetPostcodeOverrides, overrides)
}
