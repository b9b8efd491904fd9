package model

// InsightPriority orders insights for display.
type InsightPriority string

// Insight priorities.
const (
	PriorityHigh   InsightPriority = "high"
	PriorityMedium InsightPriority = "medium"
	PriorityLow    InsightPriority = "low"
)

// InsightCategory groups related insights.
type InsightCategory string

// Insight categories.
const (
	CategoryStatistics     InsightCategory = "statistics"
	CategoryEngagement     InsightCategory = "engagement"
	CategoryContentQuality InsightCategory = "content-quality"
	CategoryTemporal       InsightCategory = "temporal"
	CategoryDevice         InsightCategory = "device"
	CategoryRecommendation InsightCategory = "recommendation"
	CategoryAssociation    InsightCategory = "association"
)

// InsightRecord is a prioritized, human-readable finding derived from rule and
// event statistics.
type InsightRecord struct {
	Category InsightCategory `json:"category"`
	Priority InsightPriority `json:"priority"`
	Title    string          `json:"title"`
	Message  string          `json:"message"`
	Metric   float64         `json:"metric"`
}
