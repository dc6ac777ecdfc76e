package api

import (
	"time"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
)

// Wire shapes for the visualizer backend. Session fields are camelCase,
// analytics fields snake_case; both follow the backend verbatim.

type sessionsPayload struct {
	Sessions  []sessionPayload `json:"sessions"`
	Timestamp string           `json:"timestamp"`
}

type sessionPayload struct {
	SessionID       string                  `json:"sessionId"`
	Slug            string                  `json:"slug"`
	Cwd             string                  `json:"cwd"`
	GitBranch       string                  `json:"gitBranch"`
	Summary         string                  `json:"summary"`
	AISummary       string                  `json:"aiSummary"`
	ContextTokens   int64                   `json:"contextTokens"`
	State           string                  `json:"state"`
	StateSource     string                  `json:"stateSource"`
	PID             int                     `json:"pid"`
	TTY             string                  `json:"tty"`
	CPUPercent      float64                 `json:"cpuPercent"`
	Timestamp       string                  `json:"timestamp"`
	StartTimestamp  string                  `json:"startTimestamp"`
	LastActivity    string                  `json:"lastActivity"`
	RecentActivity  []string                `json:"recentActivity"`
	CurrentActivity *currentActivityPayload `json:"currentActivity"`
	CumulativeUsage *usagePayload           `json:"cumulativeUsage"`
	IsGastown       bool                    `json:"isGastown"`
	GastownRole     string                  `json:"gastownRole"`
	Machine         string                  `json:"machine"`
	MachineHostname string                  `json:"machineHostname"`
}

type currentActivityPayload struct {
	Description string `json:"description"`
	Tool        string `json:"tool"`
}

type usagePayload struct {
	InputTokens         int64 `json:"input_tokens"`
	OutputTokens        int64 `json:"output_tokens"`
	CacheReadTokens     int64 `json:"cache_read_input_tokens"`
	CacheCreationTokens int64 `json:"cache_creation_input_tokens"`
}

type allSessionsPayload struct {
	Local struct {
		Sessions []sessionPayload `json:"sessions"`
		Hostname string           `json:"hostname"`
	} `json:"local"`
	Remote       map[string]remoteMachinePayload `json:"remote"`
	RemoteTotals map[string]machineTotalsPayload `json:"remoteTotals"`
	MachineCount int                             `json:"machineCount"`
	Timestamp    string                          `json:"timestamp"`
}

type remoteMachinePayload struct {
	Sessions []sessionPayload `json:"sessions"`
	Hostname string           `json:"hostname"`
	Error    string           `json:"error"`
}

type machineTotalsPayload struct {
	Active  int    `json:"active"`
	Waiting int    `json:"waiting"`
	Error   string `json:"error"`
}

type changedPayload struct {
	Changed   bool    `json:"changed"`
	Timestamp float64 `json:"timestamp"`
}

type machinesPayload struct {
	Machines []machinePayload `json:"machines"`
}

type machinePayload struct {
	Name          string `json:"name"`
	Host          string `json:"host"`
	Status        string `json:"status"`
	AutoReconnect bool   `json:"auto_reconnect"`
	Error         string `json:"error"`
	ConnectedAt   string `json:"connected_at"`
}

// MachineRequest is the body for POST /api/machines.
type MachineRequest struct {
	Name          string `json:"name"`
	Host          string `json:"host"`
	SSHKey        string `json:"ssh_key,omitempty"`
	AutoReconnect bool   `json:"auto_reconnect"`
}

type templatesPayload struct {
	Templates []templatePayload `json:"templates"`
}

type templatePayload struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	Config      map[string]any `json:"config"`
	Created     string         `json:"created"`
	Updated     string         `json:"updated"`
}

// TemplateRequest is the body for POST /api/templates.
type TemplateRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	Config      map[string]any `json:"config"`
}

type analyticsPayload struct {
	Period              string             `json:"period"`
	TotalSessions       int                `json:"total_sessions"`
	TotalSessionsChange float64            `json:"total_sessions_change"`
	TotalTokens         int64              `json:"total_tokens"`
	TotalTokensChange   float64            `json:"total_tokens_change"`
	EstimatedCost       float64            `json:"estimated_cost"`
	EstimatedCostChange float64            `json:"estimated_cost_change"`
	ActiveTimeHours     float64            `json:"active_time_hours"`
	ActiveTimeChange    float64            `json:"active_time_change"`
	TopRepos            []repoUsagePayload `json:"top_repos"`
	ActivityByHour      map[string]int     `json:"activity_by_hour"`
	PeakHour            int                `json:"peak_hour"`
}

type repoUsagePayload struct {
	Name       string  `json:"name"`
	Path       string  `json:"path"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type timelinePayload struct {
	SessionID       string                  `json:"sessionId"`
	ActivityPeriods []activityPeriodPayload `json:"activityPeriods"`
	EventCount      int                     `json:"eventCount"`
}

type activityPeriodPayload struct {
	Start      string         `json:"start"`
	End        string         `json:"end"`
	State      string         `json:"state"`
	Activities []string       `json:"activities"`
	Tools      map[string]int `json:"tools"`
}

type conversationPayload struct {
	Messages        []messagePayload `json:"messages"`
	HasContinuation bool             `json:"hasContinuation"`
}

type messagePayload struct {
	Type           string   `json:"type"`
	Timestamp      string   `json:"timestamp"`
	Text           string   `json:"text"`
	Tools          []string `json:"tools"`
	IsContinuation bool     `json:"isContinuation"`
}

type metricsPayload struct {
	ResponseTime struct {
		Min    float64 `json:"min"`
		Avg    float64 `json:"avg"`
		Max    float64 `json:"max"`
		Median float64 `json:"median"`
	} `json:"responseTime"`
	ToolCalls        map[string]int `json:"toolCalls"`
	TotalToolCalls   int            `json:"totalToolCalls"`
	Turns            int            `json:"turns"`
	AvgTokensPerTurn int            `json:"avgTokensPerTurn"`
	DurationSeconds  int            `json:"durationSeconds"`
	ToolsPerHour     float64        `json:"toolsPerHour"`
}

type gitInfoPayload struct {
	Status *struct {
		Branch         string `json:"branch"`
		HasUncommitted bool   `json:"has_uncommitted"`
		Ahead          int    `json:"ahead"`
		Behind         int    `json:"behind"`
	} `json:"status"`
	Commits []struct {
		SHA     string `json:"sha"`
		Message string `json:"message"`
		Author  string `json:"author"`
		Date    string `json:"date"`
	} `json:"commits"`
	DiffStats *struct {
		FilesChanged int `json:"files_changed"`
		Insertions   int `json:"insertions"`
		Deletions    int `json:"deletions"`
	} `json:"diff_stats"`
	PR string `json:"pr"`
}

type summaryPayload struct {
	SessionID string `json:"sessionId"`
	Summary   string `json:"summary"`
}

type sharePayload struct {
	Token     string `json:"token"`
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}

type exportPayload struct {
	Markdown string `json:"markdown"`
	Filename string `json:"filename"`
}

type killPayload struct {
	Success bool `json:"success"`
	PID     int  `json:"pid"`
}

type testConnectionPayload struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (p sessionPayload) toDomain() domain.Session {
	session := domain.Session{
		ID:              domain.SessionID(p.SessionID),
		Slug:            p.Slug,
		Cwd:             p.Cwd,
		GitBranch:       p.GitBranch,
		Summary:         p.Summary,
		AISummary:       p.AISummary,
		ContextTokens:   p.ContextTokens,
		State:           domain.SessionState(p.State),
		StateSource:     domain.StateSource(p.StateSource),
		PID:             p.PID,
		TTY:             p.TTY,
		CPUPercent:      p.CPUPercent,
		StartedAt:       parseTime(p.StartTimestamp),
		LastActivity:    parseTime(p.LastActivity),
		RecentActivity:  p.RecentActivity,
		IsGastown:       p.IsGastown,
		GastownRole:     p.GastownRole,
		Machine:         p.Machine,
		MachineHostname: p.MachineHostname,
	}

	if session.LastActivity.IsZero() {
		session.LastActivity = parseTime(p.Timestamp)
	}

	if p.CurrentActivity != nil {
		session.CurrentActivity = &domain.CurrentActivity{
			Description: p.CurrentActivity.Description,
			Tool:        p.CurrentActivity.Tool,
		}
	}

	if p.CumulativeUsage != nil {
		session.Usage = domain.TokenUsage{
			InputTokens:         p.CumulativeUsage.InputTokens,
			OutputTokens:        p.CumulativeUsage.OutputTokens,
			CacheReadTokens:     p.CumulativeUsage.CacheReadTokens,
			CacheCreationTokens: p.CumulativeUsage.CacheCreationTokens,
		}
	}

	return session
}

func (p machinePayload) toDomain() domain.Machine {
	return domain.Machine{
		Name:          p.Name,
		Host:          p.Host,
		Status:        domain.MachineStatus(p.Status),
		AutoReconnect: p.AutoReconnect,
		LastError:     p.Error,
		ConnectedAt:   parseTime(p.ConnectedAt),
	}
}

func (p templatePayload) toDomain() domain.Template {
	return domain.Template{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Icon:        p.Icon,
		Config:      p.Config,
		Created:     parseTime(p.Created),
		Updated:     parseTime(p.Updated),
	}
}

func (p analyticsPayload) toDomain() domain.AnalyticsReport {
	report := domain.AnalyticsReport{
		Period:              domain.AnalyticsPeriod(p.Period),
		TotalSessions:       p.TotalSessions,
		TotalSessionsChange: p.TotalSessionsChange,
		TotalTokens:         p.TotalTokens,
		TotalTokensChange:   p.TotalTokensChange,
		EstimatedCost:       p.EstimatedCost,
		EstimatedCostChange: p.EstimatedCostChange,
		ActiveTimeHours:     p.ActiveTimeHours,
		ActiveTimeChange:    p.ActiveTimeChange,
		PeakHour:            p.PeakHour,
	}

	for _, repo := range p.TopRepos {
		report.TopRepos = append(report.TopRepos, domain.RepoUsage{
			Name:       repo.Name,
			Path:       repo.Path,
			Count:      repo.Count,
			Percentage: repo.Percentage,
		})
	}

	if len(p.ActivityByHour) > 0 {
		report.ActivityByHour = make(map[int]int, len(p.ActivityByHour))
		for hour, count := range p.ActivityByHour {
			report.ActivityByHour[parseHour(hour)] = count
		}
	}

	return report
}

func (p activityPeriodPayload) toDomain() domain.ActivityPeriod {
	return domain.ActivityPeriod{
		Start:      parseTime(p.Start),
		End:        parseTime(p.End),
		State:      domain.PeriodState(p.State),
		Activities: p.Activities,
		Tools:      p.Tools,
	}
}

func (p messagePayload) toDomain() domain.ConversationMessage {
	return domain.ConversationMessage{
		Role:           domain.MessageRole(p.Type),
		Timestamp:      parseTime(p.Timestamp),
		Text:           p.Text,
		Tools:          p.Tools,
		IsContinuation: p.IsContinuation,
	}
}

func (p metricsPayload) toDomain() domain.SessionMetrics {
	return domain.SessionMetrics{
		ResponseTime: domain.ResponseTimeStats{
			Min:    p.ResponseTime.Min,
			Avg:    p.ResponseTime.Avg,
			Max:    p.ResponseTime.Max,
			Median: p.ResponseTime.Median,
		},
		ToolCalls:        p.ToolCalls,
		TotalToolCalls:   p.TotalToolCalls,
		Turns:            p.Turns,
		AvgTokensPerTurn: p.AvgTokensPerTurn,
		DurationSeconds:  p.DurationSeconds,
		ToolsPerHour:     p.ToolsPerHour,
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}

	return time.Time{}
}

func parseHour(raw string) int {
	hour := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0
		}
		hour = hour*10 + int(r-'0')
	}
	return hour
}
