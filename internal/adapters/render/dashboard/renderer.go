package dashboard

import "github.com/NathanNorman/claude-session-visualizer/internal/application"

// Renderer exposes the card and group drawing primitives so the live
// watch view can reuse them while owning its own chrome.
type Renderer struct {
	styles styles
}

func NewRenderer() Renderer {
	return Renderer{styles: newStyles()}
}

func (r Renderer) Card(view application.SessionView, opts RenderOptions) string {
	return renderCard(view, opts, r.styles)
}

func (r Renderer) GroupHeader(group application.Group) string {
	header := r.styles.groupHeader.Render(groupTitle(group))
	if group.Collapsed {
		header += " " + r.styles.meta.Render("(collapsed)")
	}
	return header
}

func (r Renderer) Faint(text string) string {
	return r.styles.meta.Render(text)
}

func (r Renderer) Warning(text string) string {
	return r.styles.warning.Render(text)
}

func (r Renderer) Title(text string) string {
	return r.styles.title.Render(text)
}

func (r Renderer) Header(text string) string {
	return r.styles.header.Render(text)
}
