package routing

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/printops/scheduler/internal/modules/catalog"
	"github.com/printops/scheduler/internal/modules/rules"
)

// Input is everything hub selection needs for one order. Facts carry
// the resolved product id and group, not raw request fields.
type Input struct {
	EligibleHubs []string
	DestState    string
	OriginHub    string
	ProductID    int
	Facts        rules.OrderFacts
	Hubs         []catalog.Hub
	HubRules     []rules.HubRule
	Today        time.Time
}

// SelectHub resolves the production hub for an order: pick an initial
// candidate, build the full preference list, then validate candidates
// in order against the hub rules until one survives. A preference list
// with no survivor still yields its first entry rather than failing.
func SelectHub(in Input) Decision {
	dest := normalizeDestState(in.DestState, in.OriginHub)
	eligible := lowerAll(in.EligibleHubs)
	if len(eligible) == 0 {
		zap.S().Warnw("product lists no production hubs, using default", "hub", catalog.DefaultHubName)
		eligible = []string{catalog.DefaultHubName}
	}

	d := Decision{}
	if dest != strings.ToLower(in.DestState) {
		d.Trail = append(d.Trail, fmt.Sprintf("destination state unusable, using origin hub %q", dest))
	}

	d.InitialHub = initialCandidate(eligible, dest, in.OriginHub, in.ProductID, in.Hubs, &d)
	d.Preference = preferenceList(d.InitialHub, dest, eligible, in.Hubs)

	final, survived := validate(d.Preference, in.HubRules, in.Facts, in.Today, &d)
	if !survived {
		zap.S().Warnw("no hub survived rule validation, using first preference",
			"preference", d.Preference, "fallback", final)
		d.Trail = append(d.Trail, fmt.Sprintf("no candidate survived validation, falling back to %q", final))
	}
	d.FinalHub = final
	return d
}

// normalizeDestState substitutes the origin hub name when the caller
// sent no usable destination state.
func normalizeDestState(dest, originHub string) string {
	dest = strings.ToLower(strings.TrimSpace(dest))
	if dest == "" || dest == "null" || dest == "undefined" {
		return strings.ToLower(originHub)
	}
	return dest
}

func initialCandidate(eligible []string, dest, originHub string, productID int, hubs []catalog.Hub, d *Decision) string {
	var chosen string
	switch {
	case len(eligible) == 1:
		chosen = eligible[0]
		d.Trail = append(d.Trail, fmt.Sprintf("single eligible hub %q", chosen))
	case containsStr(eligible, dest):
		chosen = dest
		d.Trail = append(d.Trail, fmt.Sprintf("destination state %q is an eligible hub", chosen))
	default:
		chosen = nextBestForState(dest, eligible, hubs)
		if chosen == "" {
			if containsStr(eligible, strings.ToLower(originHub)) {
				chosen = strings.ToLower(originHub)
				d.Trail = append(d.Trail, fmt.Sprintf("origin hub %q is eligible", chosen))
			} else {
				chosen = eligible[0]
				d.Trail = append(d.Trail, fmt.Sprintf("first eligible hub %q", chosen))
			}
		} else {
			d.Trail = append(d.Trail, fmt.Sprintf("next best for state %q is %q", dest, chosen))
		}
	}

	// qld-destined cards produce in vic unless they already originate
	// in nqld.
	if containsInt(qldCardProducts, productID) &&
		!strings.EqualFold(originHub, "nqld") && dest == "qld" {
		d.Trail = append(d.Trail, fmt.Sprintf("qld card override, %q replaced with vic", chosen))
		chosen = "vic"
	}
	return chosen
}

// nextBestForState walks the destination state's next-best list and
// returns the first eligible hub, or "" when the state has no usable
// entry.
func nextBestForState(dest string, eligible []string, hubs []catalog.Hub) string {
	for _, h := range hubs {
		if !strings.EqualFold(h.State, dest) {
			continue
		}
		for _, candidate := range h.NextBest {
			if containsStr(eligible, strings.ToLower(candidate)) {
				return strings.ToLower(candidate)
			}
		}
		break
	}
	return ""
}

// preferenceList builds the ordered candidate list: initial first, then
// the destination state's next-best hubs, then the initial hub's own
// next-best hubs, then whatever eligible hubs remain, de-duplicated and
// filtered to eligible throughout.
func preferenceList(initial, dest string, eligible []string, hubs []catalog.Hub) []string {
	pref := make([]string, 0, len(eligible))
	seen := map[string]bool{}
	add := func(name string) {
		name = strings.ToLower(name)
		if seen[name] || !containsStr(eligible, name) {
			return
		}
		seen[name] = true
		pref = append(pref, name)
	}

	add(initial)
	if h, ok := catalog.HubByState(hubs, dest); ok {
		for _, c := range h.NextBest {
			add(c)
		}
	}
	if h, ok := catalog.HubByName(hubs, initial); ok {
		for _, c := range h.NextBest {
			add(c)
		}
	}
	for _, c := range eligible {
		add(c)
	}
	return pref
}

// validate walks the preference list and returns the first candidate
// no rule excludes. The bool reports whether any candidate survived.
func validate(pref []string, ruleList []rules.HubRule, f rules.OrderFacts, today time.Time, d *Decision) (string, bool) {
	sorted := make([]rules.HubRule, len(ruleList))
	copy(sorted, ruleList)
	rules.SortByPriority(sorted)

	for _, candidate := range pref {
		excluded := false
		for _, rule := range sorted {
			if !rule.Enabled || !strings.EqualFold(rule.Hub, candidate) {
				continue
			}
			if !rules.WindowValid(rule, today) {
				continue
			}
			if ruleExcludes(rule, f) {
				zap.S().Infow("hub excluded by rule", "hub", candidate, "rule", rule.ID)
				d.Trail = append(d.Trail, fmt.Sprintf("hub %q excluded by rule %q", candidate, rule.ID))
				excluded = true
				break
			}
		}
		if !excluded {
			return candidate, true
		}
	}
	if len(pref) == 0 {
		return catalog.DefaultHubName, false
	}
	return pref[0], false
}

// ruleExcludes decides whether one rule knocks out its hub for this
// order. A rule with only a size constraint excludes when the size is
// violated; only criteria, when the criteria match; both, only when
// both trigger independently. An excludeProductIds hit cancels the
// exclusion outright, size included.
func ruleExcludes(rule rules.HubRule, f rules.OrderFacts) bool {
	sizeDefined := rule.Size != nil && (rule.Size.MaxWidth != nil || rule.Size.MaxHeight != nil)
	criteriaDefined := !rule.Criteria.Empty()
	if !sizeDefined && !criteriaDefined {
		return false
	}

	sizeViolated := sizeDefined && !rule.Size.Fits(f.Width, f.Height)
	criteriaMatched := criteriaDefined && rule.Criteria.Matches(f)

	var excludes bool
	switch {
	case sizeDefined && criteriaDefined:
		excludes = sizeViolated && criteriaMatched
	case sizeDefined:
		excludes = sizeViolated
	default:
		excludes = criteriaMatched
	}
	if !excludes {
		return false
	}

	if rule.Criteria != nil && containsInt(rule.Criteria.ExcludeProductIDs, f.ProductID) {
		zap.S().Infow("hub exclusion overridden by product carve-out",
			"rule", rule.ID, "product_id", f.ProductID)
		return false
	}
	return true
}

func lowerAll(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = strings.ToLower(s)
	}
	return out
}

func containsStr(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
