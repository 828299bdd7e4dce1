package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/chatpane/internal/chat"
	"github.com/zhubert/chatpane/internal/keys"
	"github.com/zhubert/chatpane/internal/ui"
)

// Shortcut is a sidebar key binding and its handler.
type Shortcut struct {
	Keys                 []string
	Description          string
	RequiresConversation bool // an open thread is needed
	Handler              func(m *Model) tea.Cmd
}

// ShortcutRegistry holds every shortcut available while the sidebar is focused.
var ShortcutRegistry = []Shortcut{
	{Keys: []string{keys.Enter}, Description: "Open conversation", Handler: shortcutSelect},
	{Keys: []string{keys.Left, "h", "["}, Description: "Previous page", Handler: shortcutPrevPage},
	{Keys: []string{keys.Right, "l", "]"}, Description: "Next page", Handler: shortcutNextPage},
	{Keys: []string{"g"}, Description: "Go to page", Handler: shortcutGoToPage},
	{Keys: []string{"r"}, Description: "Reload", Handler: shortcutReload},
	{Keys: []string{"y"}, Description: "Copy thread", RequiresConversation: true, Handler: shortcutCopy},
	{Keys: []string{keys.Tab}, Description: "Focus composer", RequiresConversation: true, Handler: shortcutToggleFocus},
	{Keys: []string{"?"}, Description: "Help", Handler: shortcutHelp},
	{Keys: []string{"q"}, Description: "Quit", Handler: shortcutQuit},
}

// ExecuteShortcut runs the sidebar shortcut bound to key.
// It reports false when no shortcut matched or its guard failed.
func (m *Model) ExecuteShortcut(key string) (tea.Cmd, bool) {
	for _, s := range ShortcutRegistry {
		for _, k := range s.Keys {
			if k != key {
				continue
			}
			if s.RequiresConversation && m.state.Selected() == nil {
				m.log.Debug("shortcut guard failed", "key", key)
				return nil, false
			}
			return s.Handler(m), true
		}
	}
	return nil, false
}

// handleKey routes a key press to the modal, the composer or the sidebar
func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == keys.CtrlC {
		return m.shutdown()
	}

	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	if m.focus == FocusChat {
		switch key {
		case keys.Tab, keys.Escape:
			return m.setFocus(FocusSidebar)
		case keys.Enter:
			return m.ShowFlashInfo("Sending messages is not available")
		}
		_, cmd := m.chat.Update(msg)
		return cmd
	}

	// Scroll keys reach the thread while the sidebar keeps focus
	switch key {
	case keys.PgUp, keys.PgDown, keys.CtrlU, keys.CtrlD:
		_ = m.chat.SetFocused(true)
		_, cmd := m.chat.Update(msg)
		_ = m.chat.SetFocused(false)
		return cmd
	}

	if cmd, ok := m.ExecuteShortcut(key); ok {
		return cmd
	}

	_, cmd := m.sidebar.Update(msg)
	return cmd
}

// shortcutSelect opens the conversation under the cursor. While a page load is
// pending the rows belong to the previous page, so enter is ignored.
func shortcutSelect(m *Model) tea.Cmd {
	conv := m.sidebar.SelectedConversation()
	if conv == nil || m.state.ListPending() {
		return nil
	}
	return m.selectConversation(*conv)
}

func (m *Model) selectConversation(conv chat.Conversation) tea.Cmd {
	next, gen := m.state.Select(conv)
	return m.startMessagesLoad(next, gen)
}

func shortcutPrevPage(m *Model) tea.Cmd {
	next, gen, ok := m.state.PrevPage()
	if !ok {
		return nil
	}
	return m.startListLoad(next, gen)
}

func shortcutNextPage(m *Model) tea.Cmd {
	next, gen, ok := m.state.NextPage()
	if !ok {
		return nil
	}
	return m.startListLoad(next, gen)
}

func shortcutGoToPage(m *Model) tea.Cmd {
	m.modal.Show(ui.NewGoToPageState(m.state.Page(), m.state.MaxPage()))
	return nil
}

// shortcutReload refetches the current page and the open thread
func shortcutReload(m *Model) tea.Cmd {
	next, gen := m.state.Reload()
	cmd := m.startListLoad(next, gen)
	if sel := m.state.Selected(); sel != nil {
		cmd = tea.Batch(cmd, m.selectConversation(*sel))
	}
	return cmd
}

func shortcutCopy(m *Model) tea.Cmd {
	sel := m.state.Selected()
	messages := m.state.Messages()
	if len(messages) == 0 {
		return m.ShowFlashWarning("Nothing to copy")
	}
	if err := m.copyText(chat.Transcript(*sel, messages)); err != nil {
		m.log.Warn("copy failed", "error", err)
		return m.ShowFlashError("Copy failed")
	}
	return m.ShowFlashSuccess("Copied thread to clipboard")
}

func shortcutToggleFocus(m *Model) tea.Cmd {
	return m.toggleFocus()
}

func shortcutHelp(m *Model) tea.Cmd {
	m.modal.Show(ui.NewHelpState())
	return nil
}

func shortcutQuit(m *Model) tea.Cmd {
	return m.shutdown()
}
