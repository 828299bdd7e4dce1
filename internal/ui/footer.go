package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType is the severity of a flash message
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// FlashMessage is a transient notice shown in place of the key bindings
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has been shown for its full duration
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) >= f.Duration
}

// FlashTickMsg is sent periodically so expired flash messages get cleared
type FlashTickMsg time.Time

// FlashTick returns a command that sends a FlashTickMsg after FlashTickInterval
func FlashTick() tea.Cmd {
	return tea.Tick(FlashTickInterval, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer represents the bottom bar with key bindings and flash messages
type Footer struct {
	width           int
	hasConversation bool
	sidebarFocused  bool
	modalOpen       bool
	flashMessage    *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{sidebarFocused: true}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetContext updates which bindings apply
func (f *Footer) SetContext(hasConversation, sidebarFocused, modalOpen bool) {
	f.hasConversation = hasConversation
	f.sidebarFocused = sidebarFocused
	f.modalOpen = modalOpen
}

// SetFlash shows a flash message for DefaultFlashDuration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message for the given duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, duration time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  duration,
	}
}

// ClearFlash removes the flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired clears an expired flash message and reports whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// Bindings returns the bindings for the current context
func (f *Footer) Bindings() []KeyBinding {
	switch {
	case f.modalOpen:
		return []KeyBinding{
			{Key: "enter", Desc: "confirm"},
			{Key: "esc", Desc: "close"},
		}
	case !f.sidebarFocused:
		return []KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "tab/esc", Desc: "conversations"},
		}
	}

	bindings := []KeyBinding{
		{Key: "↑/↓", Desc: "move"},
		{Key: "enter", Desc: "open"},
		{Key: "←/→", Desc: "page"},
		{Key: "g", Desc: "go to page"},
		{Key: "r", Desc: "reload"},
	}
	if f.hasConversation {
		bindings = append(bindings,
			KeyBinding{Key: "y", Desc: "copy"},
			KeyBinding{Key: "tab", Desc: "compose"},
		)
	}
	return append(bindings,
		KeyBinding{Key: "?", Desc: "help"},
		KeyBinding{Key: "q", Desc: "quit"},
	)
}

func flashIcon(t FlashType) string {
	switch t {
	case FlashError:
		return "✕"
	case FlashWarning:
		return "⚠"
	case FlashSuccess:
		return "✓"
	default:
		return "ℹ"
	}
}

func (f *Footer) renderFlash() string {
	style := FlashInfoStyle
	switch f.flashMessage.Type {
	case FlashSuccess:
		style = FlashSuccessStyle
	case FlashWarning:
		style = FlashWarningStyle
	case FlashError:
		style = FlashErrorStyle
	}
	text := flashIcon(f.flashMessage.Type) + " " + f.flashMessage.Text
	avail := f.width - FooterStyle.GetHorizontalPadding()
	if avail > 0 {
		text = ansi.Truncate(text, avail, "…")
	}
	return style.Render(text)
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return FooterStyle.Width(f.width).Render(f.renderFlash())
	}

	bindings := f.Bindings()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, FooterKeyStyle.Render(b.Key)+FooterDescStyle.Render(": "+b.Desc))
	}

	sep := "  " + FooterSepStyle.Render("|") + "  "
	content := strings.Join(parts, sep)

	// Drop trailing bindings rather than wrapping onto a second line
	avail := f.width - FooterStyle.GetHorizontalPadding()
	for len(parts) > 1 && avail > 0 && ansi.StringWidth(content) > avail {
		parts = parts[:len(parts)-1]
		content = strings.Join(parts, sep)
	}

	return FooterStyle.Width(f.width).Render(content)
}
