package catalog

import (
	"strings"

	"go.uber.org/zap"
)

// Grain direction ids used by press setup downstream.
const (
	GrainEither     = 1
	GrainHorizontal = 2
	GrainVertical   = 3
)

// Business-card size thresholds in millimetres. An item is card-class
// when its long edge fits within bcLongMax and its short edge within
// bcShortMax.
const (
	bcLongMax  = 100.0
	bcShortMax = 65.0
)

// IsBusinessCardSize reports whether the dimensions alone qualify as
// business-card class, irrespective of description.
func IsBusinessCardSize(width, height float64) bool {
	long, short := width, height
	if height > width {
		long, short = height, width
	}
	return long <= bcLongMax && short <= bcShortMax
}

// DetermineGrain resolves the grain direction for an order. Card-class
// items (by size, or the literal "bc" token in the description) trust
// the orientation-implied grain: portrait runs Vertical, landscape runs
// Horizontal. Everything else is grain Either regardless of orientation.
// Orientations other than portrait/landscape are inferred from whichever
// dimension is larger, with square defaulting to portrait.
func DetermineGrain(orientation string, width, height float64, description string) (string, int) {
	isCard := IsBusinessCardSize(width, height) ||
		strings.Contains(strings.ToLower(description), "bc")

	o := strings.ToLower(orientation)
	if o != "portrait" && o != "landscape" {
		zap.S().Warnw("unexpected orientation, inferring from dimensions", "orientation", orientation)
		if width > height {
			o = "landscape"
		} else {
			o = "portrait"
		}
	}

	if !isCard {
		return "Either", GrainEither
	}
	if o == "landscape" {
		return "Horizontal", GrainHorizontal
	}
	return "Vertical", GrainVertical
}
