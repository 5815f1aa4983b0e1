package catalog

import (
	"context"
	"fmt"
)

// Service defines catalog read and edit operations. The scheduling
// engine only ever reads; editing is a separate operator surface.
type Service interface {
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

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Products(ctx context.Context) (map[int]Product, error) {
	return s.repo.Products(ctx)
}

func (s *service) ProductKeywords(ctx context.Context) ([]ProductKeywordEntry, error) {
	return s.repo.ProductKeywords(ctx)
}

func (s *service) Hubs(ctx context.Context) ([]Hub, error) {
	return s.repo.Hubs(ctx)
}

func (s *service) PreflightProfiles(ctx context.Context) ([]PreflightProfile, error) {
	return s.repo.PreflightProfiles(ctx)
}

func (s *service) ProductionGroups(ctx context.Context) ([]ProductionGroup, error) {
	return s.repo.ProductionGroups(ctx)
}

func (s *service) PostcodeOverrides(ctx context.Context) ([]PostcodeOverride, error) {
	return s.repo.PostcodeOverrides(ctx)
}

// SaveProducts validates every product before persisting. An empty
// start-day set is rejected here because the calendar engine's forward
// scan relies on at least one allowed weekday existing.
func (s *service) SaveProducts(ctx context.Context, products map[int]Product) error {
	for id, p := range products {
		if p.CutoffHour < 0 || p.CutoffHour > 23 {
			return fmt.Errorf("product %d: cutoff hour %d out of range", id, p.CutoffHour)
		}
		if len(p.StartDays) == 0 {
			return fmt.Errorf("product %d: start_days must not be empty", id)
		}
		if len(p.ProductionHubs) == 0 {
			return fmt.Errorf("product %d: at least one production hub is required", id)
		}
	}
	return s.repo.SaveProducts(ctx, products)
}

func (s *service) SaveProductKeywords(ctx context.Context, entries []ProductKeywordEntry) error {
	return s.repo.SaveProductKeywords(ctx, entries)
}

func (s *service) SaveHubs(ctx context.Context, hubs []Hub) error {
	seen := map[string]bool{}
	for _, h := range hubs {
		if h.Name == "" {
			return fmt.Errorf("hub with id %d has no name", h.ID)
		}
		if seen[h.Name] {
			return fmt.Errorf("duplicate hub %q", h.Name)
		}
		seen[h.Name] = true
	}
	return s.repo.SaveHubs(ctx, hubs)
}

func (s *service) SavePreflightProfiles(ctx context.Context, profiles []PreflightProfile) error {
	return s.repo.SavePreflightProfiles(ctx, profiles)
}

func (s *service) SaveProductionGroups(ctx context.Context, groups []ProductionGroup) error {
	return s.repo.SaveProductionGroups(ctx, groups)
}

func (s *service) SavePostcodeOverrides(ctx context.Context, overrides []PostcodeOverride) error {
	return s.repo.SavePostcodeOverrides(ctx, overrides)
}
