package service

import (
	"time"

	"github.com/lingopulse/insight-server/internal/cluster"
	"github.com/lingopulse/insight-server/internal/stats"
	"github.com/lingopulse/insight-server/internal/theme"
)

// GroupBy selects the grouping dimension for GroupInsights.
type GroupBy string

const (
	GroupByCampus  GroupBy = "campus"
	GroupByTeacher GroupBy = "teacher"
)

// OverviewSummary is the whole-school analytics bundle for the dashboard.
// Optional scores are nil when no record qualifies.
type OverviewSummary struct {
	TotalResponses   int                  `json:"totalResponses"`
	CompositeScore   *float64             `json:"compositeScore"`
	LessonsAverage   *float64             `json:"lessonsAverage"`
	TeacherAverage   *float64             `json:"teacherAverage"`
	ThisWeekCount    int                  `json:"thisWeekCount"`
	ThisMonthCount   int                  `json:"thisMonthCount"`
	ThisMonthScore   *float64             `json:"thisMonthScore"`
	LastMonthScore   *float64             `json:"lastMonthScore"`
	Trend            stats.TrendDirection `json:"trend,omitempty"`
	PositiveClusters []cluster.Cluster    `json:"positiveClusters"`
	NegativeClusters []cluster.Cluster    `json:"negativeClusters"`
	Themes           []theme.ThemeCount   `json:"themes"`
}

// GroupSummary is one group's slice of the analytics (per campus or teacher).
type GroupSummary struct {
	Key              string            `json:"key"`
	Count            int               `json:"count"`
	CompositeScore   *float64          `json:"compositeScore"`
	LessonsAverage   *float64          `json:"lessonsAverage"`
	TeacherAverage   *float64          `json:"teacherAverage"`
	PositiveClusters []cluster.Cluster `json:"positiveClusters"`
	NegativeClusters []cluster.Cluster `json:"negativeClusters"`
}

// RangeScore is the composite score over a custom window plus the trend
// against the equal-length preceding window.
type RangeScore struct {
	Start         time.Time            `json:"start"`
	End           time.Time            `json:"end"`
	Count         int                  `json:"count"`
	Score         *float64             `json:"score"`
	PreviousScore *float64             `json:"previousScore"`
	Trend         stats.TrendDirection `json:"trend,omitempty"`
}

// SectionScore is one section's cross-record composite average.
type SectionScore struct {
	Section string   `json:"section"`
	Average *float64 `json:"average"`
}

// SectionedSummary is the analytics bundle for the twenty-question survey.
type SectionedSummary struct {
	TotalResponses    int               `json:"totalResponses"`
	CompleteResponses int               `json:"completeResponses"`
	OverallAverage    *float64          `json:"overallAverage"`
	SectionAverages   []SectionScore    `json:"sectionAverages"`
	PositiveClusters  []cluster.Cluster `json:"positiveClusters"`
	NegativeClusters  []cluster.Cluster `json:"negativeClusters"`
}
