package htmlexport

import (
	"strings"
	"testing"
	"time"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRenderCardEscapesHostileSessionFields(t *testing.T) {
	t.Parallel()

	out := RenderCard(Snapshot{
		Session: domain.Session{
			ID:            "sess-1",
			Slug:          "<img src=x onerror=alert(1)>",
			Cwd:           "/home/user/it's-a-repo",
			GitBranch:     "feat/<script>",
			State:         domain.StateActive,
			ContextTokens: 50_000,
			RecentActivity: []string{
				"Edit \"main.go\"",
				"<script>alert(2)</script>",
			},
		},
		Note:        "don't kill this one\nsecond line",
		GeneratedAt: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
	})

	assert.NotContains(t, out, "<img src=x")
	assert.NotContains(t, out, "<script>alert")
	assert.Contains(t, out, "&lt;script&gt;alert(2)&lt;/script&gt;")

	// Spliced JS values must not break the single-quoted literal.
	assert.Contains(t, out, `copyText('/home/user/it\'s-a-repo')`)
	assert.Contains(t, out, `copyText('don\'t kill this one\nsecond line')`)
}

func TestRenderCardStructure(t *testing.T) {
	t.Parallel()

	out := RenderCard(Snapshot{
		Session: domain.Session{
			ID:            "sess-1",
			Slug:          "midnight-otter",
			Cwd:           "/code/visualizer",
			State:         domain.StateWaiting,
			StateSource:   domain.StateSourceHooks,
			ContextTokens: 100_000,
			CPUPercent:    3.5,
			IsGastown:     true,
			GastownRole:   "polecat",
			CurrentActivity: &domain.CurrentActivity{
				Description: "running tests",
				Tool:        "Bash",
			},
			LastActivity: time.Date(2026, 8, 24, 11, 59, 0, 0, time.UTC),
		},
	})

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, `class="card state-waiting"`)
	assert.Contains(t, out, "midnight-otter")
	assert.Contains(t, out, "via hooks")
	assert.Contains(t, out, "gastown/polecat")
	assert.Contains(t, out, "width:50.0%")
	assert.Contains(t, out, "running tests")
	assert.Contains(t, out, "[Bash]")
	assert.NotContains(t, out, `<div class="note"`)
}
