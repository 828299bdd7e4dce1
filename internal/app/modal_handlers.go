package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/chatpane/internal/keys"
	"github.com/zhubert/chatpane/internal/ui"
)

// handleModalKey handles key presses while a modal is open
func (m *Model) handleModalKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == keys.Escape {
		m.modal.Hide()
		return nil
	}

	switch s := m.modal.State.(type) {
	case *ui.HelpState:
		if key == "?" || key == "q" {
			m.modal.Hide()
		}
		return nil

	case *ui.GoToPageState:
		if key != keys.Enter {
			_, cmd := m.modal.Update(msg)
			return cmd
		}
		page, err := s.Page()
		if err != nil {
			m.modal.SetError(err.Error())
			return nil
		}
		m.modal.Hide()
		if page == m.state.Page() && !m.state.ListPending() {
			return nil
		}
		next, gen := m.state.RequestPage(page)
		return m.startListLoad(next, gen)
	}

	_, cmd := m.modal.Update(msg)
	return cmd
}
