package insight

import (
	"fmt"
	"sort"
	"time"

	"github.com/bibliomine/bibliomine/internal/model"
)

// Thresholds holds the numeric cutoffs behind the insight heuristics. The
// defaults mirror long-standing dashboard behavior but are plain data so
// deployments can tune them.
type Thresholds struct {
	HighEngagementActions float64 // actions per user
	LowEngagementActions  float64
	GoodBorrowsPerBook    float64
	SessionDeviationHigh  float64 // fraction above overall mean
	SessionDeviationMed   float64
	HighSatisfaction      float64 // mean rating
	ModerateSatisfaction  float64
	FiveStarShare         float64
	OneStarShare          float64
	HighCompletionRate    float64
	LowCompletionRate     float64
	RatingGap             float64 // recommended vs other mean rating
	HighUptakeShare       float64
	LowUptakeShare        float64
	ConcentrationShare    float64 // top-10 borrow share
	LongTailShare         float64 // single-borrow book share
}

// DefaultThresholds returns the standard heuristic cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighEngagementActions: 10,
		LowEngagementActions:  3,
		GoodBorrowsPerBook:    5,
		SessionDeviationHigh:  0.5,
		SessionDeviationMed:   0.2,
		HighSatisfaction:      4.0,
		ModerateSatisfaction:  3.0,
		FiveStarShare:         0.3,
		OneStarShare:          0.1,
		HighCompletionRate:    0.8,
		LowCompletionRate:     0.5,
		RatingGap:             0.2,
		HighUptakeShare:       0.3,
		LowUptakeShare:        0.1,
		ConcentrationShare:    0.5,
		LongTailShare:         0.4,
	}
}

// Scorer turns aggregates and ranked rules into prioritized insight records.
type Scorer struct {
	thresholds Thresholds
}

// NewScorer creates a scorer with the given thresholds.
func NewScorer(thresholds Thresholds) *Scorer {
	return &Scorer{thresholds: thresholds}
}

// Score produces insight records from the aggregates and ranked rules. The
// output is never empty: with no events at all it explains that nothing was
// loaded, and with events but no rules it falls back to raw-count insights
// plus a suggestion to lower the mining thresholds.
func (s *Scorer) Score(agg Aggregates, rules []model.AssociationRule) []model.InsightRecord {
	if agg.TotalEvents == 0 {
		return []model.InsightRecord{{
			Category: model.CategoryStatistics,
			Priority: model.PriorityHigh,
			Title:    "No data loaded",
			Message:  "No interaction events are loaded; import a dataset before mining.",
		}}
	}

	var out []model.InsightRecord
	out = append(out, s.overview(agg))
	out = append(out, s.engagement(agg)...)
	out = append(out, s.contentQuality(agg)...)
	out = append(out, s.temporal(agg)...)
	out = append(out, s.devices(agg)...)
	out = append(out, s.recommendation(agg)...)
	out = append(out, s.association(agg, rules)...)
	return out
}

func (s *Scorer) overview(agg Aggregates) model.InsightRecord {
	return model.InsightRecord{
		Category: model.CategoryStatistics,
		Priority: model.PriorityHigh,
		Title:    "Library usage overview",
		Message: fmt.Sprintf("%d interactions from %d users across %d books, with %d borrows recorded.",
			agg.TotalEvents, agg.UniqueUsers, agg.UniqueBooks, agg.TotalBorrows),
		Metric: float64(agg.TotalEvents),
	}
}

func (s *Scorer) engagement(agg Aggregates) []model.InsightRecord {
	var out []model.InsightRecord
	if agg.UniqueUsers == 0 {
		return out
	}

	perUser := float64(agg.TotalEvents) / float64(agg.UniqueUsers)
	switch {
	case perUser > s.thresholds.HighEngagementActions:
		out = append(out, model.InsightRecord{
			Category: model.CategoryEngagement,
			Priority: model.PriorityMedium,
			Title:    "High user engagement",
			Message:  fmt.Sprintf("Users average %.1f actions each, indicating strong library utilization.", perUser),
			Metric:   perUser,
		})
	case perUser < s.thresholds.LowEngagementActions:
		out = append(out, model.InsightRecord{
			Category: model.CategoryEngagement,
			Priority: model.PriorityHigh,
			Title:    "Low user engagement",
			Message:  fmt.Sprintf("Users average only %.1f actions each; consider engagement campaigns.", perUser),
			Metric:   perUser,
		})
	default:
		out = append(out, model.InsightRecord{
			Category: model.CategoryEngagement,
			Priority: model.PriorityMedium,
			Title:    "Moderate user engagement",
			Message:  fmt.Sprintf("Users average %.1f actions each; there is room for improvement.", perUser),
			Metric:   perUser,
		})
	}

	if agg.TotalBorrows > 0 {
		rate := float64(agg.CompletedBorrows) / float64(agg.TotalBorrows)
		switch {
		case rate > s.thresholds.HighCompletionRate:
			out = append(out, model.InsightRecord{
				Category: model.CategoryEngagement,
				Priority: model.PriorityMedium,
				Title:    "High completion rate",
				Message:  fmt.Sprintf("%.0f%% of borrowed books are returned, showing active engagement with content.", rate*100),
				Metric:   rate,
			})
		case rate < s.thresholds.LowCompletionRate:
			out = append(out, model.InsightRecord{
				Category: model.CategoryEngagement,
				Priority: model.PriorityHigh,
				Title:    "Low completion rate",
				Message:  fmt.Sprintf("Only %.0f%% of borrowed books are returned; users may be abandoning books.", rate*100),
				Metric:   rate,
			})
		}
	}
	return out
}

func (s *Scorer) contentQuality(agg Aggregates) []model.InsightRecord {
	var out []model.InsightRecord

	if agg.UniqueBooks > 0 && agg.TotalBorrows > 0 {
		perBook := float64(agg.TotalBorrows) / float64(agg.UniqueBooks)
		if perBook < s.thresholds.GoodBorrowsPerBook {
			out = append(out, model.InsightRecord{
				Category: model.CategoryContentQuality,
				Priority: model.PriorityMedium,
				Title:    "Low book utilization",
				Message:  fmt.Sprintf("Each book is borrowed %.1f times on average; consider promoting underused titles.", perBook),
				Metric:   perBook,
			})
		} else {
			out = append(out, model.InsightRecord{
				Category: model.CategoryContentQuality,
				Priority: model.PriorityLow,
				Title:    "Good book utilization",
				Message:  fmt.Sprintf("Each book is borrowed %.1f times on average.", perBook),
				Metric:   perBook,
			})
		}
	}

	if agg.RatedCount > 0 {
		level := "low"
		switch {
		case agg.MeanRating >= s.thresholds.HighSatisfaction:
			level = "high"
		case agg.MeanRating >= s.thresholds.ModerateSatisfaction:
			level = "moderate"
		}
		out = append(out, model.InsightRecord{
			Category: model.CategoryContentQuality,
			Priority: model.PriorityHigh,
			Title:    "User satisfaction",
			Message:  fmt.Sprintf("Average rating is %.1f out of 5, indicating %s satisfaction with the collection.", agg.MeanRating, level),
			Metric:   agg.MeanRating,
		})

		fiveShare := float64(agg.RatingCounts[5]) / float64(agg.RatedCount)
		if fiveShare > s.thresholds.FiveStarShare {
			out = append(out, model.InsightRecord{
				Category: model.CategoryContentQuality,
				Priority: model.PriorityMedium,
				Title:    "Excellent content quality",
				Message:  fmt.Sprintf("%.0f%% of ratings are 5 stars.", fiveShare*100),
				Metric:   fiveShare,
			})
		}
		oneShare := float64(agg.RatingCounts[1]) / float64(agg.RatedCount)
		if oneShare > s.thresholds.OneStarShare {
			out = append(out, model.InsightRecord{
				Category: model.CategoryContentQuality,
				Priority: model.PriorityHigh,
				Title:    "Content quality concern",
				Message:  fmt.Sprintf("%.0f%% of ratings are 1 star; review poorly rated titles.", oneShare*100),
				Metric:   oneShare,
			})
		}
	}

	out = append(out, s.popularity(agg)...)
	return out
}

func (s *Scorer) popularity(agg Aggregates) []model.InsightRecord {
	var out []model.InsightRecord
	if len(agg.BookBorrows) == 0 || agg.TotalBorrows == 0 {
		return out
	}

	counts := make([]int, 0, len(agg.BookBorrows))
	singles := 0
	for _, c := range agg.BookBorrows {
		counts = append(counts, c)
		if c == 1 {
			singles++
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	top := 0
	for i := 0; i < len(counts) && i < 10; i++ {
		top += counts[i]
	}
	topShare := float64(top) / float64(agg.TotalBorrows)
	if topShare > s.thresholds.ConcentrationShare {
		out = append(out, model.InsightRecord{
			Category: model.CategoryContentQuality,
			Priority: model.PriorityMedium,
			Title:    "Concentrated popularity",
			Message:  fmt.Sprintf("The top 10 books account for %.0f%% of all borrows.", topShare*100),
			Metric:   topShare,
		})
	}

	tailShare := float64(singles) / float64(len(agg.BookBorrows))
	if tailShare > s.thresholds.LongTailShare {
		out = append(out, model.InsightRecord{
			Category: model.CategoryContentQuality,
			Priority: model.PriorityMedium,
			Title:    "Long tail distribution",
			Message:  fmt.Sprintf("%.0f%% of books have been borrowed only once.", tailShare*100),
			Metric:   tailShare,
		})
	}
	return out
}

func (s *Scorer) temporal(agg Aggregates) []model.InsightRecord {
	var out []model.InsightRecord
	if agg.TotalBorrows == 0 {
		return out
	}

	peakHour, peakCount := 0, 0
	for hour, count := range agg.HourlyBorrows {
		if count > peakCount {
			peakHour, peakCount = hour, count
		}
	}
	if peakCount > 0 {
		out = append(out, model.InsightRecord{
			Category: model.CategoryTemporal,
			Priority: model.PriorityMedium,
			Title:    "Peak usage time",
			Message:  fmt.Sprintf("Borrowing peaks at %02d:00 (%s) with %d borrows.", peakHour, dayPart(peakHour), peakCount),
			Metric:   float64(peakHour),
		})
	}

	busiest, quietest := 0, 0
	for day := range agg.WeekdayBorrows {
		if agg.WeekdayBorrows[day] > agg.WeekdayBorrows[busiest] {
			busiest = day
		}
		if agg.WeekdayBorrows[day] < agg.WeekdayBorrows[quietest] {
			quietest = day
		}
	}
	if agg.WeekdayBorrows[busiest] > 0 && busiest != quietest {
		out = append(out, model.InsightRecord{
			Category: model.CategoryTemporal,
			Priority: model.PriorityLow,
			Title:    "Weekly usage pattern",
			Message: fmt.Sprintf("%s is the busiest day while %s sees the least activity.",
				time.Weekday(busiest), time.Weekday(quietest)),
			Metric: float64(agg.WeekdayBorrows[busiest]),
		})
	}
	return out
}

func dayPart(hour int) string {
	switch {
	case hour < 6:
		return "early morning"
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	case hour < 21:
		return "evening"
	default:
		return "night"
	}
}

func (s *Scorer) devices(agg Aggregates) []model.InsightRecord {
	var out []model.InsightRecord
	if len(agg.DeviceStats) == 0 {
		return out
	}

	devices := make([]model.DeviceType, 0, len(agg.DeviceStats))
	for device := range agg.DeviceStats {
		devices = append(devices, device)
	}
	sort.Slice(devices, func(i, j int) bool {
		a, b := devices[i], devices[j]
		if agg.DeviceStats[a].Events != agg.DeviceStats[b].Events {
			return agg.DeviceStats[a].Events > agg.DeviceStats[b].Events
		}
		return a < b
	})

	top := devices[0]
	share := float64(agg.DeviceStats[top].Events) / float64(agg.TotalEvents)
	out = append(out, model.InsightRecord{
		Category: model.CategoryDevice,
		Priority: model.PriorityMedium,
		Title:    "Preferred access method",
		Message:  fmt.Sprintf("%s is the preferred access method at %.0f%% of interactions.", top, share*100),
		Metric:   share,
	})

	if agg.MeanSession > 0 {
		longest := devices[0]
		for _, device := range devices[1:] {
			if agg.DeviceStats[device].MeanSession > agg.DeviceStats[longest].MeanSession {
				longest = device
			}
		}
		deviation := agg.DeviceStats[longest].MeanSession/agg.MeanSession - 1
		if deviation > 0 {
			priority := model.PriorityLow
			switch {
			case deviation > s.thresholds.SessionDeviationHigh:
				priority = model.PriorityHigh
			case deviation > s.thresholds.SessionDeviationMed:
				priority = model.PriorityMedium
			}
			out = append(out, model.InsightRecord{
				Category: model.CategoryDevice,
				Priority: priority,
				Title:    "Extended reading sessions",
				Message: fmt.Sprintf("Sessions on %s run %.0f%% longer than the overall average (%.1f minutes).",
					longest, deviation*100, agg.DeviceStats[longest].MeanSession/60),
				Metric: deviation,
			})
		}
	}
	return out
}

func (s *Scorer) recommendation(agg Aggregates) []model.InsightRecord {
	var out []model.InsightRecord
	if agg.RecommendedRated == 0 || agg.OtherRated == 0 {
		return out
	}

	gap := agg.RecommendedMeanRating - agg.OtherMeanRating
	switch {
	case gap > s.thresholds.RatingGap:
		out = append(out, model.InsightRecord{
			Category: model.CategoryRecommendation,
			Priority: model.PriorityMedium,
			Title:    "Effective recommendations",
			Message: fmt.Sprintf("Recommended books rate higher (%.1f) than others (%.1f).",
				agg.RecommendedMeanRating, agg.OtherMeanRating),
			Metric: gap,
		})
	case gap < -s.thresholds.RatingGap:
		out = append(out, model.InsightRecord{
			Category: model.CategoryRecommendation,
			Priority: model.PriorityHigh,
			Title:    "Recommendations need improvement",
			Message: fmt.Sprintf("Recommended books rate lower (%.1f) than others (%.1f); the algorithm may need refinement.",
				agg.RecommendedMeanRating, agg.OtherMeanRating),
			Metric: gap,
		})
	}

	uptake := float64(agg.RecommendedRated) / float64(agg.RecommendedRated+agg.OtherRated)
	switch {
	case uptake > s.thresholds.HighUptakeShare:
		out = append(out, model.InsightRecord{
			Category: model.CategoryRecommendation,
			Priority: model.PriorityLow,
			Title:    "High recommendation uptake",
			Message:  fmt.Sprintf("%.0f%% of rated interactions involve recommended books.", uptake*100),
			Metric:   uptake,
		})
	case uptake < s.thresholds.LowUptakeShare:
		out = append(out, model.InsightRecord{
			Category: model.CategoryRecommendation,
			Priority: model.PriorityMedium,
			Title:    "Low recommendation uptake",
			Message:  fmt.Sprintf("Only %.0f%% of rated interactions involve recommended books.", uptake*100),
			Metric:   uptake,
		})
	}
	return out
}

func (s *Scorer) association(agg Aggregates, rules []model.AssociationRule) []model.InsightRecord {
	if len(rules) == 0 {
		return []model.InsightRecord{{
			Category: model.CategoryAssociation,
			Priority: model.PriorityMedium,
			Title:    "No co-borrowing patterns found",
			Message:  "No association rules met the current thresholds; lowering min support or confidence may surface patterns.",
			Metric:   float64(agg.TotalBorrows),
		}}
	}

	strong, moderate := 0, 0
	for _, rule := range rules {
		switch rule.Strength() {
		case model.StrengthStrong:
			strong++
		case model.StrengthModerate:
			moderate++
		}
	}

	priority := model.PriorityLow
	if strong > 0 {
		priority = model.PriorityMedium
	}
	out := []model.InsightRecord{{
		Category: model.CategoryAssociation,
		Priority: priority,
		Title:    "Co-borrowing patterns",
		Message: fmt.Sprintf("%d association rules found: %d strong, %d moderate, %d weak.",
			len(rules), strong, moderate, len(rules)-strong-moderate),
		Metric: float64(len(rules)),
	}}

	top := rules[0]
	if top.Strength() == model.StrengthStrong {
		out = append(out, model.InsightRecord{
			Category: model.CategoryAssociation,
			Priority: model.PriorityHigh,
			Title:    "Strong book association",
			Message:  fmt.Sprintf("Readers of %v strongly tend to also borrow %v (lift %.1f).", top.Antecedent, top.Consequent, top.Lift),
			Metric:   top.Lift,
		})
	}
	return out
}
