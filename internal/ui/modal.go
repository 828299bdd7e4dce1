package ui

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// ModalState is a discriminated union interface for modal-specific state.
// Each modal type implements it with its own state struct.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// Modal is a popup dialog. State is nil when no modal is visible.
type Modal struct {
	State ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message shown under the modal content
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update delegates to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal centered on the screen
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	content := ModalTitleStyle.Render(m.State.Title()) + "\n" + m.State.Render()
	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}
	if help := m.State.Help(); help != "" {
		content += "\n" + ModalHelpStyle.Render(help)
	}

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		ModalStyle.Render(content),
	)
}

// =============================================================================
// HelpState - keyboard shortcuts
// =============================================================================

// HelpShortcut is one row of the help modal
type HelpShortcut struct {
	Key  string
	Desc string
}

// HelpSection groups shortcuts under a heading
type HelpSection struct {
	Title     string
	Shortcuts []HelpShortcut
}

// DefaultHelpSections lists every key binding of the viewer
var DefaultHelpSections = []HelpSection{
	{
		Title: "Conversations",
		Shortcuts: []HelpShortcut{
			{Key: "↑/k  ↓/j", Desc: "Move the cursor"},
			{Key: "enter", Desc: "Open conversation"},
			{Key: "←/h/[", Desc: "Previous page"},
			{Key: "→/l/]", Desc: "Next page"},
			{Key: "g", Desc: "Go to page"},
			{Key: "r", Desc: "Reload page and open thread"},
			{Key: "y", Desc: "Copy thread to clipboard"},
		},
	},
	{
		Title: "Thread",
		Shortcuts: []HelpShortcut{
			{Key: "tab", Desc: "Focus composer"},
			{Key: "pgup/pgdn", Desc: "Scroll thread"},
			{Key: "wheel", Desc: "Scroll thread"},
			{Key: "tab/esc", Desc: "Back to conversations"},
		},
	},
	{
		Title: "General",
		Shortcuts: []HelpShortcut{
			{Key: "?", Desc: "Toggle this help"},
			{Key: "q", Desc: "Quit"},
			{Key: "ctrl+c", Desc: "Quit from anywhere"},
		},
	},
}

// HelpState renders the shortcut list
type HelpState struct {
	Sections []HelpSection
}

func (*HelpState) modalState() {}

// NewHelpState creates the help modal state
func NewHelpState() *HelpState {
	return &HelpState{Sections: DefaultHelpSections}
}

func (s *HelpState) Title() string { return "Keyboard Shortcuts" }

func (s *HelpState) Help() string { return "esc, ? or q to close" }

func (s *HelpState) Render() string {
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary)
	descStyle := lipgloss.NewStyle().Foreground(ColorText)

	var sb strings.Builder
	for i, section := range s.Sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(sectionStyle.Render(section.Title))
		sb.WriteString("\n")
		for _, sc := range section.Shortcuts {
			sb.WriteString("  " + ModalKeyStyle.Render(sc.Key) + descStyle.Render(sc.Desc) + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (s *HelpState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// =============================================================================
// GoToPageState - jump straight to a page
// =============================================================================

// GoToPageState holds the page number input
type GoToPageState struct {
	Input   textinput.Model
	Current int
	MaxPage int
}

func (*GoToPageState) modalState() {}

// NewGoToPageState creates the go-to-page modal with the input focused
func NewGoToPageState(current, maxPage int) *GoToPageState {
	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("1-%d", maxPage)
	ti.CharLimit = ModalInputCharLimit
	ti.SetWidth(ModalInputWidth)
	ti.Focus()

	return &GoToPageState{
		Input:   ti,
		Current: current,
		MaxPage: maxPage,
	}
}

func (s *GoToPageState) Title() string { return "Go to Page" }

func (s *GoToPageState) Help() string { return "enter to go, esc to cancel" }

func (s *GoToPageState) Render() string {
	current := lipgloss.NewStyle().Foreground(ColorTextMuted).
		Render(fmt.Sprintf("Currently on page %d of %d", s.Current, s.MaxPage))
	return current + "\n\n" + "Page: " + s.Input.View()
}

func (s *GoToPageState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// Page parses the entered page number and checks it is within [1, MaxPage]
func (s *GoToPageState) Page() (int, error) {
	raw := strings.TrimSpace(s.Input.Value())
	if raw == "" {
		return 0, fmt.Errorf("enter a page number")
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not a page number", raw)
	}
	if page < 1 || page > s.MaxPage {
		return 0, fmt.Errorf("page must be between 1 and %d", s.MaxPage)
	}
	return page, nil
}
