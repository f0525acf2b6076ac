package aggregator

import (
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/misioncampo/visitas-api/consts"
	"github.com/misioncampo/visitas-api/schema"
)

const logPrefix = "aggregator"

// Store is the slice of the storage collaborator the aggregator consumes.
type Store interface {
	FetchRatingsForChurch(churchID string) ([]schema.VisitRatingRecord, error)
	UpsertChurchSummary(summary schema.ChurchRatingSummary) error
	GetChurchSummary(churchID string) (*schema.ChurchRatingSummary, error)
	QueryTopRated(limit, offset int64) ([]schema.ChurchRatingSummary, error)
	QueryRecentlyActive(limit int64) ([]schema.ChurchRatingSummary, error)
	QueryGlobalRatingStats() (*schema.GlobalRatingStats, error)
}

// Aggregator maintains the per-church rating summaries. Every recalculation
// is a full recompute over the church's current ratings followed by a full
// overwrite of the summary row, so it is idempotent and needs no locking
// against concurrent runs.
type Aggregator struct {
	store Store
}

func New(store Store) *Aggregator {
	return &Aggregator{store: store}
}

// Recalculate rebuilds and persists the summary for one church from every
// finalized rating currently stored. A church with no ratings gets the
// canonical empty summary, never a missing row.
func (a *Aggregator) Recalculate(churchID string) (*schema.ChurchRatingSummary, error) {
	records, err := a.store.FetchRatingsForChurch(churchID)
	if err != nil {
		return nil, err
	}

	summary := Summarize(churchID, records, time.Now().UTC())

	if err := a.store.UpsertChurchSummary(summary); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"prefix":    logPrefix,
		"church ID": churchID,
		"visits":    summary.TotalVisits,
		"stars":     summary.AverageStars,
	}).Debug("church summary recalculated")

	return &summary, nil
}

// GetSummary returns the current summary row, or nil when the church has
// never been recalculated.
func (a *Aggregator) GetSummary(churchID string) (*schema.ChurchRatingSummary, error) {
	return a.store.GetChurchSummary(churchID)
}

// TopRated returns summaries ranked by average stars, ties broken by visit
// count. The limit is bounded to [1,100].
func (a *Aggregator) TopRated(limit, offset int64) ([]schema.ChurchRatingSummary, error) {
	return a.store.QueryTopRated(boundLimit(limit), maxInt64(offset, 0))
}

// RecentlyActive returns summaries whose last visit falls inside the recent
// activity window, most recent first.
func (a *Aggregator) RecentlyActive(limit int64) ([]schema.ChurchRatingSummary, error) {
	return a.store.QueryRecentlyActive(boundLimit(limit))
}

// GlobalStatistics returns the cross-church statistics row.
func (a *Aggregator) GlobalStatistics() (*schema.GlobalRatingStats, error) {
	return a.store.QueryGlobalRatingStats()
}

// Summarize recomputes a church summary from scratch. Records with a
// malformed (zero) visit date still count toward the averages but are
// excluded from the recency fields; an upstream record with out-of-range
// scores is clamped rather than aborting the whole pass.
func Summarize(churchID string, records []schema.VisitRatingRecord, now time.Time) schema.ChurchRatingSummary {
	summary := schema.ChurchRatingSummary{
		ChurchID:       churchID,
		RecalculatedAt: now,
	}

	if len(records) == 0 {
		return summary
	}

	var starsSum, opennessSum, hospitalitySum, financialSum, offeringsSum float64
	var financialCount int64
	var lastVisit time.Time

	// fallback when no record carries a usable date
	supportCount := records[len(records)-1].Input.MissionarySupportCount

	for _, r := range records {
		starsSum += float64(r.Calculated.Stars)
		opennessSum += r.Calculated.Breakdown.MissionOpenness
		hospitalitySum += r.Calculated.Breakdown.Hospitality
		offeringsSum += r.Input.OfferingAmount

		// a no-offering visit reports financial 0 meaning "not applicable";
		// averaging it in would punish the church for the visit type
		if r.Input.HasOffering() {
			financialSum += r.Calculated.Breakdown.Financial
			financialCount++
		}

		// zero and future dates count toward the totals above but are
		// excluded from every recency signal
		if r.VisitDate.IsZero() || r.VisitDate.After(now) {
			continue
		}
		if r.VisitDate.After(lastVisit) {
			lastVisit = r.VisitDate
			supportCount = r.Input.MissionarySupportCount
		}

		age := now.Sub(r.VisitDate)
		if age <= 30*24*time.Hour {
			summary.VisitsLast30Days++
		}
		if age <= 90*24*time.Hour {
			summary.VisitsLast90Days++
		}
	}

	total := int64(len(records))
	summary.TotalVisits = total
	summary.AverageStars = roundToTenth(clampScore(starsSum / float64(total)))
	summary.Components = schema.ComponentAverages{
		MissionOpenness: clampScore(opennessSum / float64(total)),
		Hospitality:     clampScore(hospitalitySum / float64(total)),
	}
	if financialCount > 0 {
		summary.Components.Financial = clampScore(financialSum / float64(financialCount))
	}
	summary.TotalOfferings = offeringsSum
	summary.AverageOfferingPerVisit = offeringsSum / float64(total)
	summary.MissionarySupportCount = supportCount
	if !lastVisit.IsZero() {
		summary.LastVisitAt = &lastVisit
	}

	return summary
}

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(float64(consts.MaxStarRating), v))
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func boundLimit(limit int64) int64 {
	if limit < 1 {
		return 1
	}
	if limit > consts.MaxRankedQueryLimit {
		return consts.MaxRankedQueryLimit
	}
	return limit
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
