package consts

import "time"

const (
	// MinStarRating and MaxStarRating bound every star-like value in the system.
	MinStarRating = 1
	MaxStarRating = 5
)

// Attendee-to-member sanity bound. The strict deployments use 3, the lenient
// ones 10; the validator takes the bound from configuration with this default.
const DefaultMaxAttendeeRatio = 10.0

const (
	// DefaultRecalculationDebounce is how long the scheduler waits after the
	// first recalculation request for a church before executing it.
	DefaultRecalculationDebounce = 5 * time.Second

	// RecentActivityWindow bounds the "recently active" church queries.
	RecentActivityWindow = 30 * 24 * time.Hour

	// MaxRankedQueryLimit caps limit parameters on ranked summary queries.
	MaxRankedQueryLimit = 100
)

// Batch recalculation cadence per priority.
const (
	BatchGroupSizeHigh   = 5
	BatchGroupSizeNormal = 3
	BatchGroupSizeLow    = 1

	BatchGroupDelayHigh   = 100 * time.Millisecond
	BatchGroupDelayNormal = 500 * time.Millisecond
	BatchGroupDelayLow    = 1000 * time.Millisecond
)
