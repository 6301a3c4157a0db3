// Package interval derives service intervals, next-due kilometer thresholds
// and service status for fleet vehicles. All functions are pure and total;
// unknown inputs degrade to documented defaults instead of failing.
package interval

import "strings"

// Status classifies how close a vehicle is to its next service.
type Status string

const (
	StatusActive       Status = "active"
	StatusServiceSoon  Status = "service soon"
	StatusNeedsService Status = "needs service"
	StatusUnknown      Status = "unknown"
)

// DefaultIntervalKm is used when the engine type is not recognised.
// Policy: unknown types get the standard (larger) interval rather than
// the small-engine one.
const DefaultIntervalKm = 4000

// WarnBandKm is the fixed distance before the threshold at which a vehicle
// is flagged "service soon". Not configurable.
const WarnBandKm = 500

// engineIntervals maps engine type tags to their service interval in km.
// The mapping is data, not code: adding a powertrain class is a table edit.
var engineIntervals = map[string]int{
	"50cc":       2500,
	"125cc":      4000,
	"125cc BOLT": 3000,
}

// categoryOverride fixes the interval for a rental category regardless of
// engine type. Matching is a case-insensitive substring test against the
// category name, mirroring how categories are routed elsewhere in the app.
type categoryOverride struct {
	match      string
	intervalKm int
}

// categoryOverrides are checked in order; the first match wins.
var categoryOverrides = []categoryOverride{
	{match: "bolt", intervalKm: 3000},
	{match: "private rental", intervalKm: 4500},
}

// IntervalFor returns the service interval in km for a vehicle.
// Category overrides take precedence over the engine-type mapping;
// unrecognised engine types fall back to DefaultIntervalKm. Never fails.
func IntervalFor(engineType, categoryName string) int {
	name := strings.ToLower(strings.TrimSpace(categoryName))
	for _, o := range categoryOverrides {
		if name != "" && strings.Contains(name, o.match) {
			return o.intervalKm
		}
	}
	if km, ok := engineIntervals[strings.TrimSpace(engineType)]; ok {
		return km
	}
	return DefaultIntervalKm
}

// NextServiceKm returns the odometer reading at which the next service is
// due. A negative currentKm is invalid input and yields the 0 sentinel;
// callers must treat 0 as "could not compute", not as a real threshold.
func NextServiceKm(currentKm int, engineType, categoryName string) int {
	if currentKm < 0 {
		return 0
	}
	return currentKm + IntervalFor(engineType, categoryName)
}

// Classify derives the service status from a current/next km pair.
// A zero or negative value on either side means the reading is missing and
// the status is unknown. remaining <= 0 is overdue; remaining within
// WarnBandKm (inclusive) is "service soon"; everything else is active.
func Classify(currentKm, nextKm int) Status {
	if currentKm <= 0 || nextKm <= 0 {
		return StatusUnknown
	}
	remaining := nextKm - currentKm
	switch {
	case remaining <= 0:
		return StatusNeedsService
	case remaining <= WarnBandKm:
		return StatusServiceSoon
	default:
		return StatusActive
	}
}
