package htmlexport

import (
	"fmt"
	"strings"
	"time"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
)

// Snapshot bundles what the exporter renders for one session.
type Snapshot struct {
	Session     domain.Session
	Note        string
	GeneratedAt time.Time
}

// RenderCard produces a standalone HTML page holding one session card.
// The page carries inline onclick handlers built by string
// concatenation, which is why every spliced value goes through
// EscapeJSString and every text node through EscapeHTML.
func RenderCard(snapshot Snapshot) string {
	session := snapshot.Session

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>Session %s</title>\n", EscapeHTML(session.Slug))
	b.WriteString("<style>\n")
	b.WriteString(cardCSS)
	b.WriteString("</style>\n")
	b.WriteString("<script>\n")
	b.WriteString(cardScript)
	b.WriteString("</script>\n")
	b.WriteString("</head>\n<body>\n")

	fmt.Fprintf(&b, "<div class=\"card state-%s\" id=\"session-%s\">\n",
		EscapeHTML(string(session.State)), EscapeHTML(string(session.ID)))

	b.WriteString("<div class=\"card-header\">\n")
	fmt.Fprintf(&b, "<span class=\"slug\">%s</span>\n", EscapeHTML(session.Slug))
	fmt.Fprintf(&b, "<span class=\"state\">%s</span>\n", EscapeHTML(string(session.State)))
	if session.StateSource != "" {
		fmt.Fprintf(&b, "<span class=\"state-source\">via %s</span>\n", EscapeHTML(string(session.StateSource)))
	}
	fmt.Fprintf(&b, "<button onclick=\"copyText('%s')\">copy id</button>\n", EscapeJSString(string(session.ID)))
	b.WriteString("</div>\n")

	b.WriteString("<div class=\"card-meta\">\n")
	fmt.Fprintf(&b, "<div class=\"cwd\" onclick=\"copyText('%s')\">%s</div>\n",
		EscapeJSString(session.Cwd), EscapeHTML(session.Cwd))
	if session.GitBranch != "" {
		fmt.Fprintf(&b, "<div class=\"branch\">%s</div>\n", EscapeHTML(session.GitBranch))
	}
	fmt.Fprintf(&b, "<div class=\"machine\">%s</div>\n", EscapeHTML(session.MachineLabel()))
	if session.IsGastown {
		fmt.Fprintf(&b, "<div class=\"gastown\">%s</div>\n", EscapeHTML(session.RoleLabel()))
	}
	b.WriteString("</div>\n")

	fmt.Fprintf(&b, "<div class=\"tokens\"><div class=\"tokens-fill\" style=\"width:%.1f%%\"></div></div>\n",
		session.TokenPercent())
	fmt.Fprintf(&b, "<div class=\"tokens-label\">%s tokens (%.0f%%), cpu %.1f%%</div>\n",
		EscapeHTML(domain.CompactNumber(session.ContextTokens)), session.TokenPercent(), session.CPUPercent)

	if session.CurrentActivity != nil {
		fmt.Fprintf(&b, "<div class=\"current\">%s", EscapeHTML(session.CurrentActivity.Description))
		if session.CurrentActivity.Tool != "" {
			fmt.Fprintf(&b, " <span class=\"tool\">[%s]</span>", EscapeHTML(session.CurrentActivity.Tool))
		}
		b.WriteString("</div>\n")
	}

	if len(session.RecentActivity) > 0 {
		b.WriteString("<ul class=\"activity\">\n")
		for _, entry := range session.RecentActivity {
			fmt.Fprintf(&b, "<li>%s</li>\n", EscapeHTML(entry))
		}
		b.WriteString("</ul>\n")
	}

	if snapshot.Note != "" {
		fmt.Fprintf(&b, "<div class=\"note\" onclick=\"copyText('%s')\">%s</div>\n",
			EscapeJSString(snapshot.Note), EscapeHTML(snapshot.Note))
	}

	if !session.LastActivity.IsZero() {
		fmt.Fprintf(&b, "<div class=\"footer\">last activity %s</div>\n",
			EscapeHTML(session.LastActivity.Format(time.RFC3339)))
	}
	if !snapshot.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "<div class=\"footer\">exported %s</div>\n",
			EscapeHTML(snapshot.GeneratedAt.Format(time.RFC3339)))
	}

	b.WriteString("</div>\n</body>\n</html>\n")
	return b.String()
}

const cardCSS = `body{font-family:monospace;background:#1a1b26;color:#c0caf5;margin:2rem}
.card{border:1px solid #414868;border-radius:8px;padding:1rem;max-width:42rem}
.card.state-active{border-color:#9ece6a}
.card.state-waiting{border-color:#e0af68}
.card-header{display:flex;gap:.75rem;align-items:baseline}
.slug{font-weight:bold;font-size:1.1rem}
.state{text-transform:uppercase;font-size:.8rem}
.state-source,.footer{color:#565f89;font-size:.75rem}
.tokens{height:6px;background:#24283b;border-radius:3px;margin:.5rem 0}
.tokens-fill{height:100%;background:#7aa2f7;border-radius:3px}
.activity{color:#a9b1d6;font-size:.85rem}
.note{border-left:2px solid #bb9af7;padding-left:.5rem;margin:.5rem 0;cursor:pointer}
.cwd{cursor:pointer}
`

const cardScript = `function copyText(value){navigator.clipboard&&navigator.clipboard.writeText(value);}
`
