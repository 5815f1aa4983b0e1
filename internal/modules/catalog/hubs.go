package catalog

import (
	"strings"

	"go.uber.org/zap"
)

// Default hub used whenever a lookup cannot be resolved. The engine
// prefers a wrong-but-schedulable hub over a hard failure.
const (
	DefaultHubName = "vic"
	DefaultHubID   = 1
)

// HubByName finds a hub by canonical name, case-insensitive.
func HubByName(hubs []Hub, name string) (Hub, bool) {
	for _, h := range hubs {
		if strings.EqualFold(h.Name, name) {
			return h, true
		}
	}
	return Hub{}, false
}

// HubByID finds a hub by numeric id.
func HubByID(hubs []Hub, id int) (Hub, bool) {
	for _, h := range hubs {
		if h.ID == id {
			return h, true
		}
	}
	return Hub{}, false
}

// HubByState finds the hub serving a state, case-insensitive.
func HubByState(hubs []Hub, state string) (Hub, bool) {
	for _, h := range hubs {
		if strings.EqualFold(h.State, state) {
			return h, true
		}
	}
	return Hub{}, false
}

// HubID resolves a hub name to its numeric id, defaulting to vic.
func HubID(hubs []Hub, name string) int {
	if h, ok := HubByName(hubs, name); ok {
		return h.ID
	}
	return DefaultHubID
}

// ClosedDatesFor returns the closed-date calendar of the named hub, or
// nil when the hub is unknown.
func ClosedDatesFor(hubs []Hub, name string) []string {
	if h, ok := HubByName(hubs, name); ok {
		return h.ClosedDates
	}
	return nil
}

// ResolveHubDetails normalises an order's origin hub from whatever
// combination of name and id the caller supplied. When both are present
// and disagree, the id wins and the mismatch is logged. When neither
// resolves, the default hub is returned.
func ResolveHubDetails(name string, id int, hubs []Hub) (string, int) {
	if id != 0 {
		if h, ok := HubByID(hubs, id); ok {
			if name != "" && !strings.EqualFold(h.Name, name) {
				zap.S().Warnw("origin hub name does not match id, trusting id",
					"name", name, "hub_id", id, "resolved", h.Name)
			}
			return strings.ToLower(h.Name), h.ID
		}
	}
	if name != "" {
		if h, ok := HubByName(hubs, name); ok {
			return strings.ToLower(h.Name), h.ID
		}
	}
	zap.S().Warnw("unable to resolve origin hub, using default", "name", name, "hub_id", id)
	return DefaultHubName, DefaultHubID
}
