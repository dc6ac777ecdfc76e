package domain

type AnalyticsPeriod string

const (
	PeriodDay   AnalyticsPeriod = "day"
	PeriodWeek  AnalyticsPeriod = "week"
	PeriodMonth AnalyticsPeriod = "month"
)

func (p AnalyticsPeriod) Valid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return true
	default:
		return false
	}
}

type RepoUsage struct {
	Name       string
	Path       string
	Count      int
	Percentage float64
}

// AnalyticsReport is the historical roll-up the backend computes for a
// period; every *Change field is percent change against the previous
// period of the same length.
type AnalyticsReport struct {
	Period              AnalyticsPeriod
	TotalSessions       int
	TotalSessionsChange float64
	TotalTokens         int64
	TotalTokensChange   float64
	EstimatedCost       float64
	EstimatedCostChange float64
	ActiveTimeHours     float64
	ActiveTimeChange    float64
	TopRepos            []RepoUsage
	ActivityByHour      map[int]int
	PeakHour            int
}

type ResponseTimeStats struct {
	Min    float64
	Avg    float64
	Max    float64
	Median float64
}

// SessionMetrics is the per-session performance roll-up extracted from
// the session transcript.
type SessionMetrics struct {
	ResponseTime     ResponseTimeStats
	ToolCalls        map[string]int
	TotalToolCalls   int
	Turns            int
	AvgTokensPerTurn int
	DurationSeconds  int
	ToolsPerHour     float64
}
