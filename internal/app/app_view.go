package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/chatpane/internal/api"
	"github.com/zhubert/chatpane/internal/chat"
	"github.com/zhubert/chatpane/internal/ui"
)

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	m.footer.SetContext(m.state.Selected() != nil, m.focus == FocusSidebar, m.modal.IsVisible())

	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), m.chat.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), panels, m.footer.View())
}

// syncComponents pushes the view state into the UI components.
// The sidebar list and the thread are replaced only when a load lands.
func (m *Model) syncComponents() {
	s := m.state

	m.header.SetPage(s.Page(), s.MaxPage())
	m.sidebar.SetPage(s.Page(), s.MaxPage())
	m.sidebar.SetLoading(s.ListPending())
	m.sidebar.SetFailed(!s.ListPending() && s.ListStatus() == api.StatusFailed)

	sel := s.Selected()
	if sel == nil {
		m.header.SetCreatorName("")
		m.sidebar.SetActive(chat.ID(""))
		return
	}
	m.header.SetCreatorName(sel.Creator.DisplayName())
	m.sidebar.SetActive(sel.ID)
	m.chat.SetLoading(s.MessagesPending())
	m.chat.SetFailed(!s.MessagesPending() && s.MessagesStatus() == api.StatusFailed)
}

// updateSizes updates component sizes based on terminal dimensions
func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.sidebar.SetSize(ctx.SidebarWidth, ctx.ContentHeight)
	m.chat.SetSize(ctx.ChatWidth, ctx.ContentHeight)
}
