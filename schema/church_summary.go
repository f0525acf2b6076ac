package schema

import "time"

const ChurchSummaryCollection = "churchSummary"

// ComponentAverages holds the per-component averages across a church's
// ratings. Financial averages only the ratings whose visits took an offering.
type ComponentAverages struct {
	MissionOpenness float64 `json:"missionOpenness" bson:"mission_openness"`
	Hospitality     float64 `json:"hospitality" bson:"hospitality"`
	Financial       float64 `json:"financial" bson:"financial"`
}

// ChurchRatingSummary is the denormalized current state of a church's
// ratings, one row per church. It is fully derived data: it may be dropped
// and rebuilt from the visitRating collection at any time, and every
// recalculation overwrites the whole row.
type ChurchRatingSummary struct {
	ChurchID                string            `json:"churchId" bson:"church_id"`
	AverageStars            float64           `json:"averageStars" bson:"average_stars"`
	TotalVisits             int64             `json:"totalVisits" bson:"total_visits"`
	VisitsLast30Days        int64             `json:"visitsLast30Days" bson:"visits_last_30_days"`
	VisitsLast90Days        int64             `json:"visitsLast90Days" bson:"visits_last_90_days"`
	Components              ComponentAverages `json:"components" bson:"components"`
	TotalOfferings          float64           `json:"totalOfferings" bson:"total_offerings"`
	AverageOfferingPerVisit float64           `json:"averageOfferingPerVisit" bson:"average_offering_per_visit"`
	// MissionarySupportCount is taken from the most recent rating, not
	// averaged: it is a point-in-time church attribute.
	MissionarySupportCount int        `json:"missionarySupportCount" bson:"missionary_support_count"`
	LastVisitAt            *time.Time `json:"lastVisitAt,omitempty" bson:"last_visit_at,omitempty"`
	RecalculatedAt         time.Time  `json:"recalculatedAt" bson:"recalculated_at"`
}

// GlobalRatingStats is the cross-church statistics row served to dashboards.
type GlobalRatingStats struct {
	ChurchCount     int64         `json:"churchCount" bson:"church_count"`
	MeanRating      float64       `json:"meanRating" bson:"mean_rating"`
	TotalVisits     int64         `json:"totalVisits" bson:"total_visits"`
	TotalOfferings  float64       `json:"totalOfferings" bson:"total_offerings"`
	RatingHistogram map[int]int64 `json:"ratingHistogram" bson:"-"`
}
