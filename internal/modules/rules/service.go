package rules

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines rule-set reads and per-rule edit operations. Saving a
// rule upserts by id (minting an id for new rules) and keeps the stored
// list sorted highest priority first, which makes the stored dataset
// match evaluation order.
type Service interface {
	HubRules(ctx context.Context) ([]HubRule, error)
	ImposingRules(ctx context.Context) ([]ImposingRule, error)
	PreflightRules(ctx context.Context) ([]PreflightRule, error)
	FinishingRules(ctx context.Context) (FinishingRuleSet, error)

	SaveHubRule(ctx context.Context, rule HubRule) (HubRule, error)
	DeleteHubRule(ctx context.Context, id string) error
	SaveImposingRule(ctx context.Context, rule ImposingRule) (ImposingRule, error)
	DeleteImposingRule(ctx context.Context, id string) error
	SavePreflightRule(ctx context.Context, rule PreflightRule) (PreflightRule, error)
	DeletePreflightRule(ctx context.Context, id string) error
	SaveKeywordRule(ctx context.Context, rule KeywordRule) (KeywordRule, error)
	SaveCenterRule(ctx context.Context, rule CenterRule) (CenterRule, error)
	DeleteFinishingRule(ctx context.Context, id string) error
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) HubRules(ctx context.Context) ([]HubRule, error) { return s.repo.HubRules(ctx) }

func (s *service) ImposingRules(ctx context.Context) ([]ImposingRule, error) {
	return s.repo.ImposingRules(ctx)
}

func (s *service) PreflightRules(ctx context.Context) ([]PreflightRule, error) {
	return s.repo.PreflightRules(ctx)
}

func (s *service) FinishingRules(ctx context.Context) (FinishingRuleSet, error) {
	return s.repo.FinishingRules(ctx)
}

func (s *service) SaveHubRule(ctx context.Context, rule HubRule) (HubRule, error) {
	if rule.Hub == "" {
		return HubRule{}, fmt.Errorf("hub rule must name a target hub")
	}
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	ruleList, err := s.repo.HubRules(ctx)
	if err != nil {
		return HubRule{}, err
	}
	ruleList = upsert(ruleList, rule, func(r HubRule) string { return r.ID })
	SortByPriority(ruleList)
	if err := s.repo.SaveHubRules(ctx, ruleList); err != nil {
		return HubRule{}, err
	}
	return rule, nil
}

func (s *service) DeleteHubRule(ctx context.Context, id string) error {
	ruleList, err := s.repo.HubRules(ctx)
	if err != nil {
		return err
	}
	filtered, removed := remove(ruleList, id, func(r HubRule) string { return r.ID })
	if !removed {
		return fmt.Errorf("hub rule %s not found", id)
	}
	return s.repo.SaveHubRules(ctx, filtered)
}

func (s *service) SaveImposingRule(ctx context.Context, rule ImposingRule) (ImposingRule, error) {
	if rule.Action < ImposeNone || rule.Action > ImposeManual {
		return ImposingRule{}, fmt.Errorf("invalid imposing action %d", rule.Action)
	}
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	ruleList, err := s.repo.ImposingRules(ctx)
	if err != nil {
		return ImposingRule{}, err
	}
	ruleList = upsert(ruleList, rule, func(r ImposingRule) string { return r.ID })
	SortByPriority(ruleList)
	if err := s.repo.SaveImposingRules(ctx, ruleList); err != nil {
		return ImposingRule{}, err
	}
	return rule, nil
}

func (s *service) DeleteImposingRule(ctx context.Context, id string) error {
	ruleList, err := s.repo.ImposingRules(ctx)
	if err != nil {
		return err
	}
	filtered, removed := remove(ruleList, id, func(r ImposingRule) string { return r.ID })
	if !removed {
		return fmt.Errorf("imposing rule %s not found", id)
	}
	return s.repo.SaveImposingRules(ctx, filtered)
}

func (s *service) SavePreflightRule(ctx context.Context, rule PreflightRule) (PreflightRule, error) {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	ruleList, err := s.repo.PreflightRules(ctx)
	if err != nil {
		return PreflightRule{}, err
	}
	ruleList = upsert(ruleList, rule, func(r PreflightRule) string { return r.ID })
	SortByPriority(ruleList)
	if err := s.repo.SavePreflightRules(ctx, ruleList); err != nil {
		return PreflightRule{}, err
	}
	return rule, nil
}

func (s *service) DeletePreflightRule(ctx context.Context, id string) error {
	ruleList, err := s.repo.PreflightRules(ctx)
	if err != nil {
		return err
	}
	filtered, removed := remove(ruleList, id, func(r PreflightRule) string { return r.ID })
	if !removed {
		return fmt.Errorf("preflight rule %s not found", id)
	}
	return s.repo.SavePreflightRules(ctx, filtered)
}

func (s *service) SaveKeywordRule(ctx context.Context, rule KeywordRule) (KeywordRule, error) {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	set, err := s.repo.FinishingRules(ctx)
	if err != nil {
		return KeywordRule{}, err
	}
	set.KeywordRules = upsert(set.KeywordRules, rule, func(r KeywordRule) string { return r.ID })
	if err := s.repo.SaveFinishingRules(ctx, set); err != nil {
		return KeywordRule{}, err
	}
	return rule, nil
}

func (s *service) SaveCenterRule(ctx context.Context, rule CenterRule) (CenterRule, error) {
	if rule.CenterID == 0 {
		return CenterRule{}, fmt.Errorf("center rule must name a center id")
	}
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	set, err := s.repo.FinishingRules(ctx)
	if err != nil {
		return CenterRule{}, err
	}
	set.CenterRules = upsert(set.CenterRules, rule, func(r CenterRule) string { return r.ID })
	if err := s.repo.SaveFinishingRules(ctx, set); err != nil {
		return CenterRule{}, err
	}
	return rule, nil
}

// DeleteFinishingRule removes the rule from whichever finishing list
// holds it.
func (s *service) DeleteFinishingRule(ctx context.Context, id string) error {
	set, err := s.repo.FinishingRules(ctx)
	if err != nil {
		return err
	}
	var removedKeyword, removedCenter bool
	set.KeywordRules, removedKeyword = remove(set.KeywordRules, id, func(r KeywordRule) string { return r.ID })
	set.CenterRules, removedCenter = remove(set.CenterRules, id, func(r CenterRule) string { return r.ID })
	if !removedKeyword && !removedCenter {
		return fmt.Errorf("finishing rule %s not found", id)
	}
	return s.repo.SaveFinishingRules(ctx, set)
}

func upsert[T any](list []T, item T, id func(T) string) []T {
	for i := range list {
		if id(list[i]) == id(item) {
			list[i] = item
			return list
		}
	}
	return append(list, item)
}

func remove[T any](list []T, target string, id func(T) string) ([]T, bool) {
	out := list[:0]
	removed := false
	for _, item := range list {
		if id(item) == target {
			removed = true
			continue
		}
		out = append(out, item)
	}
	return out, removed
}
