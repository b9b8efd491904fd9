// Package insight derives prioritized findings from event statistics and
// mined association rules.
package insight

import (
	"github.com/bibliomine/bibliomine/internal/model"
)

// DeviceStats summarizes usage for a single device type.
type DeviceStats struct {
	Events      int
	MeanSession float64 // seconds
}

// Aggregates holds the summary statistics the scorer works from. All fields
// are derived from a single pass over the loaded events.
type Aggregates struct {
	DeviceStats    map[model.DeviceType]DeviceStats
	BookBorrows    map[string]int
	RatingCounts   map[int]int
	HourlyBorrows  [24]int
	WeekdayBorrows [7]int

	TotalEvents  int
	UniqueUsers  int
	UniqueBooks  int
	TotalBorrows int

	MeanSession float64 // seconds, over all events
	MeanRating  float64
	RatedCount  int

	CompletedBorrows int

	RecommendedMeanRating float64
	RecommendedRated      int
	OtherMeanRating       float64
	OtherRated            int
}

// Aggregate computes summary statistics over the loaded events.
func Aggregate(events []model.Event) Aggregates {
	agg := Aggregates{
		DeviceStats:  make(map[model.DeviceType]DeviceStats),
		BookBorrows:  make(map[string]int),
		RatingCounts: make(map[int]int),
	}

	users := make(map[string]struct{})
	books := make(map[string]struct{})
	deviceSession := make(map[model.DeviceType]int)
	var sessionSum, ratingSum, recRatingSum, otherRatingSum int

	for _, ev := range events {
		agg.TotalEvents++
		users[ev.UserID] = struct{}{}
		books[ev.BookID] = struct{}{}
		sessionSum += ev.SessionSeconds

		if ev.Device.Valid() {
			stats := agg.DeviceStats[ev.Device]
			stats.Events++
			agg.DeviceStats[ev.Device] = stats
			deviceSession[ev.Device] += ev.SessionSeconds
		}

		if ev.Rating != nil {
			agg.RatedCount++
			ratingSum += *ev.Rating
			agg.RatingCounts[*ev.Rating]++
			if ev.Recommended {
				agg.RecommendedRated++
				recRatingSum += *ev.Rating
			} else {
				agg.OtherRated++
				otherRatingSum += *ev.Rating
			}
		}

		if !ev.IsBorrow() {
			continue
		}
		agg.TotalBorrows++
		agg.BookBorrows[ev.BookID]++
		if !ev.BorrowedAt.IsZero() {
			agg.HourlyBorrows[ev.BorrowedAt.Hour()]++
			agg.WeekdayBorrows[int(ev.BorrowedAt.Weekday())]++
		}
		if ev.Completed() {
			agg.CompletedBorrows++
		}
	}

	agg.UniqueUsers = len(users)
	agg.UniqueBooks = len(books)

	if agg.TotalEvents > 0 {
		agg.MeanSession = float64(sessionSum) / float64(agg.TotalEvents)
	}
	if agg.RatedCount > 0 {
		agg.MeanRating = float64(ratingSum) / float64(agg.RatedCount)
	}
	if agg.RecommendedRated > 0 {
		agg.RecommendedMeanRating = float64(recRatingSum) / float64(agg.RecommendedRated)
	}
	if agg.OtherRated > 0 {
		agg.OtherMeanRating = float64(otherRatingSum) / float64(agg.OtherRated)
	}
	for device, sum := range deviceSession {
		stats := agg.DeviceStats[device]
		if stats.Events > 0 {
			stats.MeanSession = float64(sum) / float64(stats.Events)
		}
		agg.DeviceStats[device] = stats
	}
	return agg
}
