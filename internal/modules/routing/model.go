package routing

// Decision records how the production hub was chosen for an order. The
// trail keeps one line per routing step so operators can see why an
// order left its obvious hub.
type Decision struct {
	InitialHub string   `json:"initial_hub"`
	FinalHub   string   `json:"final_hub"`
	Preference []string `json:"preference"`
	Trail      []string `json:"trail,omitempty"`
}

// Business-card class product ids that are pulled out of qld.
var qldCardProducts = []int{6, 7, 8, 9}
