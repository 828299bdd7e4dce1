package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/chatpane/internal/errors"
	"github.com/zhubert/chatpane/internal/ui"
)

// ShowFlash sets the footer flash and starts its dismiss timer
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	m.footer.SetFlash(text, flashType)
	return ui.FlashTick()
}

func (m *Model) ShowFlashError(text string) tea.Cmd   { return m.ShowFlash(text, ui.FlashError) }
func (m *Model) ShowFlashWarning(text string) tea.Cmd { return m.ShowFlash(text, ui.FlashWarning) }
func (m *Model) ShowFlashInfo(text string) tea.Cmd    { return m.ShowFlash(text, ui.FlashInfo) }
func (m *Model) ShowFlashSuccess(text string) tea.Cmd { return m.ShowFlash(text, ui.FlashSuccess) }

// flashLoadFailure reports a failed load, naming timeouts and bad responses
func (m *Model) flashLoadFailure(what string, err error) tea.Cmd {
	switch errors.GetKind(err) {
	case errors.KindTimeout:
		return m.ShowFlashError(fmt.Sprintf("Timed out loading %s", what))
	case errors.KindStatus, errors.KindDecode:
		return m.ShowFlashError(fmt.Sprintf("Server returned a bad response for %s", what))
	default:
		return m.ShowFlashError(fmt.Sprintf("Failed to load %s", what))
	}
}
