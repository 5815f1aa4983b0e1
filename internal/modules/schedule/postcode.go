package schedule

import (
	"strconv"
	"strings"

	"github.com/printops/scheduler/internal/modules/catalog"
)

// PostcodeInRange reports whether postcode falls inside a range string
// of comma-separated tokens, each either an exact code or a numeric
// "start-end" range. Tokens that fail to parse are skipped.
func PostcodeInRange(postcode, rangeString string) bool {
	for _, segment := range strings.Split(rangeString, ",") {
		segment = strings.TrimSpace(segment)
		if start, end, ok := strings.Cut(segment, "-"); ok {
			p, errP := strconv.Atoi(postcode)
			s, errS := strconv.Atoi(strings.TrimSpace(start))
			e, errE := strconv.Atoi(strings.TrimSpace(end))
			if errP != nil || errS != nil || errE != nil {
				continue
			}
			if p >= s && p <= e {
				return true
			}
		} else if postcode == segment {
			return true
		}
	}
	return false
}

// LookupHubByPostcode returns the first override whose range contains
// the postcode. First match wins across the configured entries.
func LookupHubByPostcode(postcode string, overrides []catalog.PostcodeOverride) (catalog.PostcodeOverride, bool) {
	for _, o := range overrides {
		if PostcodeInRange(postcode, o.Postcodes) {
			return o, true
		}
	}
	return catalog.PostcodeOverride{}, false
}
