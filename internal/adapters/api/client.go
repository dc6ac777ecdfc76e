package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
	"github.com/rs/zerolog"
)

// Client talks to the visualizer backend. Every non-2xx response comes
// back as a *StatusError so callers can treat it as a recoverable,
// per-cycle failure.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(baseURL string, httpClient *http.Client, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// StatusError reports a non-2xx backend response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("backend returned status %d", e.Code)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Code, body)
}

func (c *Client) Sessions(ctx context.Context, includeSummaries bool) (domain.SessionBatch, error) {
	path := "/api/sessions"
	if includeSummaries {
		path += "?include_summaries=true"
	}

	var payload sessionsPayload
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return domain.SessionBatch{}, fmt.Errorf("get sessions: %w", err)
	}

	return domain.SessionBatch{
		Sessions:  sessionsToDomain(payload.Sessions),
		Timestamp: parseTime(payload.Timestamp),
	}, nil
}

// AllSessions flattens the multi-machine aggregate into one batch;
// remote sessions carry their machine name, and per-machine totals are
// returned alongside (including error entries for unreachable hosts).
func (c *Client) AllSessions(ctx context.Context) (domain.SessionBatch, map[string]domain.MachineTotals, error) {
	var payload allSessionsPayload
	if err := c.getJSON(ctx, "/api/sessions/all", &payload); err != nil {
		return domain.SessionBatch{}, nil, fmt.Errorf("get all sessions: %w", err)
	}

	sessions := make([]domain.Session, 0, len(payload.Local.Sessions))
	for _, raw := range payload.Local.Sessions {
		session := raw.toDomain()
		session.Machine = "local"
		session.MachineHostname = payload.Local.Hostname
		sessions = append(sessions, session)
	}

	totals := make(map[string]domain.MachineTotals, len(payload.RemoteTotals))
	for name, raw := range payload.RemoteTotals {
		totals[name] = domain.MachineTotals{Active: raw.Active, Waiting: raw.Waiting, Error: raw.Error}
	}

	for name, remote := range payload.Remote {
		if remote.Error != "" {
			c.logger.Warn().Str("machine", name).Str("error", remote.Error).Msg("remote machine unreachable")
			continue
		}
		for _, raw := range remote.Sessions {
			session := raw.toDomain()
			session.Machine = name
			if session.MachineHostname == "" {
				session.MachineHostname = remote.Hostname
			}
			sessions = append(sessions, session)
		}
	}

	return domain.SessionBatch{
		Sessions:  sessions,
		Timestamp: parseTime(payload.Timestamp),
	}, totals, nil
}

// SessionsChanged is the cheap dirty-check endpoint; it reports whether
// anything changed since the given backend timestamp.
func (c *Client) SessionsChanged(ctx context.Context, since float64) (bool, float64, error) {
	path := "/api/sessions/changed?since=" + strconv.FormatFloat(since, 'f', -1, 64)

	var payload changedPayload
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return false, since, fmt.Errorf("check sessions changed: %w", err)
	}

	return payload.Changed, payload.Timestamp, nil
}

func (c *Client) Kill(ctx context.Context, pid int) error {
	var payload killPayload
	if err := c.postJSON(ctx, "/api/kill", map[string]int{"pid": pid}, &payload); err != nil {
		return fmt.Errorf("kill pid %d: %w", pid, err)
	}
	if !payload.Success {
		return fmt.Errorf("kill pid %d: backend refused", pid)
	}
	return nil
}

func (c *Client) Machines(ctx context.Context) ([]domain.Machine, error) {
	var payload machinesPayload
	if err := c.getJSON(ctx, "/api/machines", &payload); err != nil {
		return nil, fmt.Errorf("list machines: %w", err)
	}

	machines := make([]domain.Machine, 0, len(payload.Machines))
	for _, raw := range payload.Machines {
		machines = append(machines, raw.toDomain())
	}
	return machines, nil
}

func (c *Client) AddMachine(ctx context.Context, request MachineRequest) error {
	if err := c.postJSON(ctx, "/api/machines", request, nil); err != nil {
		return fmt.Errorf("add machine %q: %w", request.Name, err)
	}
	return nil
}

func (c *Client) RemoveMachine(ctx context.Context, name string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/machines/"+url.PathEscape(name), nil, nil); err != nil {
		return fmt.Errorf("remove machine %q: %w", name, err)
	}
	return nil
}

func (c *Client) ReconnectMachine(ctx context.Context, name string) error {
	if err := c.postJSON(ctx, "/api/machines/"+url.PathEscape(name)+"/reconnect", nil, nil); err != nil {
		return fmt.Errorf("reconnect machine %q: %w", name, err)
	}
	return nil
}

func (c *Client) TestMachine(ctx context.Context, host, sshKey string) (bool, string, error) {
	query := url.Values{"host": {host}}
	if sshKey != "" {
		query.Set("ssh_key", sshKey)
	}

	var payload testConnectionPayload
	if err := c.postJSON(ctx, "/api/machines/test?"+query.Encode(), nil, &payload); err != nil {
		return false, "", fmt.Errorf("test machine %q: %w", host, err)
	}

	message := payload.Message
	if message == "" {
		message = payload.Error
	}
	return payload.Success, message, nil
}

func (c *Client) Templates(ctx context.Context) ([]domain.Template, error) {
	var payload templatesPayload
	if err := c.getJSON(ctx, "/api/templates", &payload); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	templates := make([]domain.Template, 0, len(payload.Templates))
	for _, raw := range payload.Templates {
		templates = append(templates, raw.toDomain())
	}
	return templates, nil
}

func (c *Client) CreateTemplate(ctx context.Context, request TemplateRequest) (domain.Template, error) {
	var payload templatePayload
	if err := c.postJSON(ctx, "/api/templates", request, &payload); err != nil {
		return domain.Template{}, fmt.Errorf("create template %q: %w", request.Name, err)
	}
	return payload.toDomain(), nil
}

func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/templates/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("delete template %q: %w", id, err)
	}
	return nil
}

func (c *Client) UseTemplate(ctx context.Context, id string) (domain.Template, error) {
	var payload struct {
		Template templatePayload `json:"template"`
	}
	if err := c.postJSON(ctx, "/api/templates/"+url.PathEscape(id)+"/use", map[string]any{}, &payload); err != nil {
		return domain.Template{}, fmt.Errorf("use template %q: %w", id, err)
	}
	return payload.Template.toDomain(), nil
}

func (c *Client) Analytics(ctx context.Context, period domain.AnalyticsPeriod) (domain.AnalyticsReport, error) {
	var payload analyticsPayload
	if err := c.getJSON(ctx, "/api/analytics?period="+url.QueryEscape(string(period)), &payload); err != nil {
		return domain.AnalyticsReport{}, fmt.Errorf("get analytics: %w", err)
	}
	return payload.toDomain(), nil
}

func (c *Client) Timeline(ctx context.Context, id domain.SessionID, bucketMinutes int) ([]domain.ActivityPeriod, error) {
	path := fmt.Sprintf("/api/session/%s/timeline?bucket_minutes=%d", url.PathEscape(string(id)), bucketMinutes)

	var payload timelinePayload
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, fmt.Errorf("get timeline for %s: %w", id, err)
	}

	periods := make([]domain.ActivityPeriod, 0, len(payload.ActivityPeriods))
	for _, raw := range payload.ActivityPeriods {
		periods = append(periods, raw.toDomain())
	}
	return periods, nil
}

func (c *Client) Conversation(ctx context.Context, id domain.SessionID, limit int) ([]domain.ConversationMessage, bool, error) {
	path := fmt.Sprintf("/api/session/%s/conversation?limit=%d", url.PathEscape(string(id)), limit)

	var payload conversationPayload
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, false, fmt.Errorf("get conversation for %s: %w", id, err)
	}

	messages := make([]domain.ConversationMessage, 0, len(payload.Messages))
	for _, raw := range payload.Messages {
		messages = append(messages, raw.toDomain())
	}
	return messages, payload.HasContinuation, nil
}

func (c *Client) Metrics(ctx context.Context, id domain.SessionID) (domain.SessionMetrics, error) {
	var payload metricsPayload
	if err := c.getJSON(ctx, "/api/session/"+url.PathEscape(string(id))+"/metrics", &payload); err != nil {
		return domain.SessionMetrics{}, fmt.Errorf("get metrics for %s: %w", id, err)
	}
	return payload.toDomain(), nil
}

// GitInfo bundles the per-session git endpoint's response.
type GitInfo struct {
	Status    *domain.GitStatus
	Commits   []domain.Commit
	DiffStats *domain.DiffStats
	PR        string
}

func (c *Client) SessionGitInfo(ctx context.Context, id domain.SessionID) (GitInfo, error) {
	var payload gitInfoPayload
	if err := c.getJSON(ctx, "/api/sessions/"+url.PathEscape(string(id))+"/git", &payload); err != nil {
		return GitInfo{}, fmt.Errorf("get git info for %s: %w", id, err)
	}

	info := GitInfo{PR: payload.PR}
	if payload.Status != nil {
		info.Status = &domain.GitStatus{
			Branch:         payload.Status.Branch,
			HasUncommitted: payload.Status.HasUncommitted,
			Ahead:          payload.Status.Ahead,
			Behind:         payload.Status.Behind,
		}
	}
	for _, raw := range payload.Commits {
		info.Commits = append(info.Commits, domain.Commit{
			SHA:     raw.SHA,
			Message: raw.Message,
			Author:  raw.Author,
			Date:    parseTime(raw.Date),
		})
	}
	if payload.DiffStats != nil {
		info.DiffStats = &domain.DiffStats{
			FilesChanged: payload.DiffStats.FilesChanged,
			Insertions:   payload.DiffStats.Insertions,
			Deletions:    payload.DiffStats.Deletions,
		}
	}
	return info, nil
}

// RefreshSummary asks the backend for the session's AI summary. With
// force set the backend drops its cached summary and regenerates.
func (c *Client) RefreshSummary(ctx context.Context, id domain.SessionID, force bool) (string, error) {
	path := "/api/sessions/" + url.PathEscape(string(id)) + "/summary"
	if force {
		path += "?force_refresh=true"
	}

	var payload summaryPayload
	if err := c.postJSON(ctx, path, nil, &payload); err != nil {
		return "", fmt.Errorf("refresh summary for %s: %w", id, err)
	}
	return payload.Summary, nil
}

// ShareLink is a backend-issued share token for one session.
type ShareLink struct {
	Token     string
	URL       string
	ExpiresAt string
}

func (c *Client) Share(ctx context.Context, id domain.SessionID, expiresDays int) (ShareLink, error) {
	path := fmt.Sprintf("/api/sessions/%s/share?expires_days=%d", url.PathEscape(string(id)), expiresDays)

	var payload sharePayload
	if err := c.postJSON(ctx, path, nil, &payload); err != nil {
		return ShareLink{}, fmt.Errorf("share session %s: %w", id, err)
	}

	return ShareLink{Token: payload.Token, URL: payload.URL, ExpiresAt: payload.ExpiresAt}, nil
}

func (c *Client) ExportMarkdown(ctx context.Context, id domain.SessionID) (string, error) {
	var payload exportPayload
	if err := c.postJSON(ctx, "/api/sessions/"+url.PathEscape(string(id))+"/export", nil, &payload); err != nil {
		return "", fmt.Errorf("export session %s: %w", id, err)
	}
	return payload.Markdown, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("backend error response")
		return &StatusError{Code: resp.StatusCode, Body: string(data)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func sessionsToDomain(payloads []sessionPayload) []domain.Session {
	sessions := make([]domain.Session, 0, len(payloads))
	for _, raw := range payloads {
		sessions = append(sessions, raw.toDomain())
	}
	return sessions
}
